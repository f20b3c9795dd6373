package main

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

var (
	appVersion string
)

// EvaluateRequest is the direct-evaluation surface: the caller supplies the
// full patient context inline, the way the demo UI's re-check loop does.
type EvaluateRequest struct {
	PayerId string         `json:"payerId"`
	Phase   string         `json:"phase"`
	Drug    DraftOrder     `json:"drug"`
	Context PatientContext `json:"context"`
}

type EvaluateResponse struct {
	DrugKey string         `json:"drugKey"`
	Result  DecisionResult `json:"result"`
}

func cdsServices(c echo.Context) error {
	// Build basic Hook response
	serviceResponse := ServiceResponse{
		Services: []Service{
			{
				Hook:        "order-select",
				Title:       "Check RA Prior Authorization",
				Description: "Evaluates payer prior-authorization criteria for a rheumatoid arthritis drug order",
				Id:          "prior-auth",
				Prefetch: map[string]string{
					"patient":     "Patient/{{context.patientId}}",
					"medications": "MedicationRequest?patient={{context.patientId}}",
				},
			},
		},
	}

	// Return response
	return c.JSON(http.StatusOK, serviceResponse)
}

func heartbeat(c echo.Context) error {
	// Heartbeat function to assess service status. Immediately return 200
	return c.NoContent(http.StatusOK)
}

func demoPatientList(c echo.Context) error {
	// Preset list for the demo patient picker
	return c.JSON(http.StatusOK, patients.list())
}

func priorAuth(c echo.Context) error {

	// Obtains raw http request
	r := c.Request()

	// Obtains http request context
	ctx := r.Context()

	hookRequest, err := parseCDSHooksRequest(r.Body)
	if err != nil {
		logger(ctx, err)
		return c.NoContent(http.StatusInternalServerError)
	}

	// Remove access token to avoid storing this in the logs
	hookRequest.FHIRAuthorization.AccessToken = ""

	// Resolve the demo patient preset carrying the clinical context
	patient, ok := patients.get(hookRequest.Context.PatientId)
	if !ok {
		logger(ctx, fmt.Errorf("unknown patient: %s", hookRequest.Context.PatientId))
		return c.NoContent(http.StatusUnprocessableEntity)
	}

	// Fall back to configured defaults when the hook omits payer or phase
	payerId := hookRequest.Context.PayerId
	if payerId == "" {
		payerId = config.DefaultPayer
	}
	phase := hookRequest.Context.Phase
	if phase == "" {
		phase = config.DefaultPhase
	}

	// Resolve drug and evaluate
	order := hookRequest.Context.DraftOrder
	drugKey := resolveDrugKey(paRules, payerId, order.Generic, order.Brand)
	result := evaluatePA(paRules, payerId, drugKey, phase, patient.PatientContext)

	// Build detail string
	detailMap := structToMap(newDecisionDetail(payerId, drugKey, phase, result))
	detail, err := generateCardDetail(detailMap, config.CardDetailTemplate)
	if err != nil {
		logger(ctx, fmt.Errorf("%v (patient: %s)", err, patient.Id))
		return c.NoContent(http.StatusInternalServerError)
	}

	// Log evaluation results
	sendDecisionLog(ctx, patient.Id, tokenIssuer(c), payerId, drugKey, phase, result)

	// Build basic Hook response
	hook := Hook{
		Cards:         []Card{},
		SystemActions: []SystemActions{},
	}
	hook.addDecisionCard(result, detail)

	// Outstanding requirements become targeted links on the card
	if result.Decision == DecisionNeedsInfo {
		hook.addRequirementLinks(0, result.Missing)
	}

	// Return response
	return c.JSON(http.StatusOK, hook)
}

func evaluate(c echo.Context) error {

	// Obtains raw http request
	r := c.Request()

	// Obtains http request context
	ctx := r.Context()

	var req EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger(ctx, fmt.Errorf("unable to unmarshal evaluate request: %v", err))
		return c.NoContent(http.StatusBadRequest)
	}

	// Fall back to configured defaults when the request omits payer or phase
	if req.PayerId == "" {
		req.PayerId = config.DefaultPayer
	}
	if req.Phase == "" {
		req.Phase = config.DefaultPhase
	}

	// Resolve drug and evaluate
	drugKey := resolveDrugKey(paRules, req.PayerId, req.Drug.Generic, req.Drug.Brand)
	result := evaluatePA(paRules, req.PayerId, drugKey, req.Phase, req.Context)

	// Log evaluation results
	sendDecisionLog(ctx, "", tokenIssuer(c), req.PayerId, drugKey, req.Phase, result)

	// Return response
	return c.JSON(http.StatusOK, EvaluateResponse{
		DrugKey: drugKey,
		Result:  result,
	})
}

// tokenIssuer extracts the issuer from the token the openId middleware
// stored on the request, for decision-log context. Absence is not an error.
func tokenIssuer(c echo.Context) string {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return ""
	}

	issuer, err := getIssuer(token)
	if err != nil {
		return ""
	}
	return issuer
}
