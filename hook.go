package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"
	"text/template"
	"time"

	"github.com/google/uuid"
)

/**************************
 ****** Hook Message ******
 **************************/
type HookRequest struct {
	Hook              string `json:"hook"`
	HookInstance      string `json:"hookInstance"`
	FHIRServer        string `json:"fhirServer"`
	FHIRAuthorization struct {
		AccessToken string `json:"access_token"`
	} `json:"fhirAuthorization"`
	Context struct {
		PatientId  string     `json:"patientId"`
		UserId     string     `json:"userId"`
		PayerId    string     `json:"payerId"`
		Phase      string     `json:"phase"`
		DraftOrder DraftOrder `json:"draftOrder"`
	} `json:"context"`
}

// DraftOrder carries the free-text drug names from the ordering flow
type DraftOrder struct {
	Generic string `json:"generic"`
	Brand   string `json:"brand"`
}

/***************************
 ****** Hook Response ******
 ***************************/

type Hook struct {
	Cards         []Card          `json:"cards,omitempty"`
	SystemActions []SystemActions `json:"systemActions"`
}

type Card struct {
	UUID      string     `json:"uuid"`
	Summary   string     `json:"summary"`
	Detail    string     `json:"detail"`
	Indicator string     `json:"indicator"`
	Source    Source     `json:"source"`
	Extension *Extension `json:"extension"`
	Links     []Link     `json:"links"`
}

type Source struct {
	Label string  `json:"label"`
	URL   string  `json:"url"`
	Topic *Coding `json:"topic"`
}

type Extension struct {
	ContentType string `json:"com.epic.cdshooks.card.detail.content-type"`
}

type SystemActions struct {
	// Define fields if needed
}

// decisionDetail feeds the card detail template via structToMap
type decisionDetail struct {
	Decision       string
	DrugKey        string
	Payer          string
	Phase          string
	Considered     int
	ApprovalMonths int
	Missing        string
	Messages       string
}

// Labels for rendering missing requirement ids as actionable links
var requirementLabels = map[string]string{
	"diseaseActivity_moderate_or_high":  "Record moderate or high disease activity",
	"tuberculosis_screening_date":       "Provide TB screening date",
	"hepatitis_b_screening_date":        "Provide hepatitis B screening date",
	"csDMARD_trial_failure":             "Document prior csDMARD trial/failure",
	"prescriber_specialty_rheumatology": "Route to a rheumatology/immunology prescriber",
	"no_concurrent_immunomodulators":    "Discontinue concurrent biologic/JAK therapy",
	"cv_risk_discussed":                 "Attest cardiovascular risk discussion",
	"thrombosis_risk_discussed":         "Attest thrombosis risk discussion",
	"malignancy_risk_discussed":         "Attest malignancy risk discussion",
	"clinical_response_summary":         "Summarize clinical response on current therapy",
}

func parseCDSHooksRequest(body io.Reader) (HookRequest, error) {

	reqBytes, err := io.ReadAll(body)
	if err != nil {
		return HookRequest{}, err
	}

	// Unmarshal response into struct
	var hookRequest HookRequest
	if err := json.Unmarshal(reqBytes, &hookRequest); err != nil {
		return HookRequest{}, fmt.Errorf("unable to unmarhsal hooks message: %v", err)
	}

	return hookRequest, nil
}

func generateCardDetail(m map[string]string, fileName string) (string, error) {
	tmpl := template.Must(template.ParseFiles(fileName))

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, m); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func structToMap(s any) map[string]string {
	// Initialize map
	result := make(map[string]string)

	// Create value and type fields
	val := reflect.ValueOf(s)
	typ := reflect.TypeOf(s)

	// Iterate over struct fields
	for i := 0; i < val.NumField(); i++ {
		field := typ.Field(i)
		value := val.Field(i)

		// Convert valus to string
		var strValue string
		switch value.Kind() {
		case reflect.Bool:
			strValue = strconv.FormatBool(value.Bool())
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			strValue = strconv.FormatInt(value.Int(), 10)
		case reflect.String:
			strValue = value.String()
		default:
			strValue = fmt.Sprintf("%v", value.Interface()) // Fallback for other types
		}

		// Append result to map
		result[field.Name] = strValue
	}
	return result
}

func newDecisionDetail(payerId, drugKey, phase string, result DecisionResult) decisionDetail {
	return decisionDetail{
		Decision:       string(result.Decision),
		DrugKey:        drugKey,
		Payer:          payerId,
		Phase:          phase,
		Considered:     result.Considered,
		ApprovalMonths: result.ApprovalMonths,
		Missing:        strings.Join(result.Missing, "; "),
		Messages:       strings.Join(result.Messages, " "),
	}
}

func (h *Hook) addDecisionCard(result DecisionResult, detail string) {
	// Get string formated time
	formattedTime := time.Now().Format("20060102150405")

	// Approvals are informational; anything short of approval warns the
	// ordering clinician
	summary := "Prior Authorization Approved"
	indicator := "info"
	if result.Decision != DecisionApprove {
		summary = "Prior Authorization Needs More Information"
		indicator = "warning"
	}

	// Build card
	h.Cards = append(h.Cards, Card{
		UUID:      uuid.NewString(),
		Summary:   summary,
		Indicator: indicator,
		Extension: &Extension{
			ContentType: "text/html",
		},
		Detail: "<p hidden>" + detail + "</p>",
		Source: Source{
			Label: config.SourceLabel,
			URL:   config.EvidenceURL,
			Topic: &Coding{
				Code: fmt.Sprintf("RAPriorAuth%s", formattedTime),
			},
		},
	})
}

func (h *Hook) addRequirementLinks(card int, missing []string) {
	// Check if link list exists, if not, build it
	if h.Cards[card].Links == nil {
		h.Cards[card].Links = []Link{}
	}

	// One link per outstanding requirement so the EHR can surface targeted
	// input widgets
	for _, id := range missing {
		label, ok := requirementLabels[id]
		if !ok {
			label = id
		}
		h.Cards[card].Links = append(h.Cards[card].Links, Link{
			Label: label,
			URL:   config.EvidenceURL + "#" + id,
			Type:  "absolute",
		})
	}
}
