package main

import (
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCDSHooksRequest(t *testing.T) {
	body := `{
		"hook": "order-select",
		"hookInstance": "abc",
		"fhirAuthorization": {"access_token": "secret"},
		"context": {
			"patientId": "ptA",
			"payerId": "optumrx-like",
			"phase": "reauth",
			"draftOrder": {"generic": "tofacitinib", "brand": "Xeljanz"}
		}
	}`

	req, err := parseCDSHooksRequest(strings.NewReader(body))
	require.NoError(t, err)
	assert.Equal(t, "order-select", req.Hook)
	assert.Equal(t, "secret", req.FHIRAuthorization.AccessToken)
	assert.Equal(t, "ptA", req.Context.PatientId)
	assert.Equal(t, "reauth", req.Context.Phase)
	assert.Equal(t, "Xeljanz", req.Context.DraftOrder.Brand)

	_, err = parseCDSHooksRequest(strings.NewReader("{broken"))
	assert.Error(t, err)
}

func TestDecisionDetailTemplate(t *testing.T) {
	result := DecisionResult{
		Decision:       DecisionNeedsInfo,
		Messages:       []string{"TB/HBV screening dates required."},
		Missing:        []string{"tuberculosis_screening_date", "hepatitis_b_screening_date"},
		Considered:     4,
		ApprovalMonths: 12,
	}

	detailMap := structToMap(newDecisionDetail("optumrx-like", "adalimumab", PhaseInitialAuth, result))
	assert.Equal(t, "needsInfo", detailMap["Decision"])
	assert.Equal(t, "4", detailMap["Considered"])
	assert.Equal(t, "adalimumab", detailMap["DrugKey"])

	detail, err := generateCardDetail(detailMap, "static/cardDetail.txt")
	require.NoError(t, err)
	assert.Contains(t, detail, "Prior authorization decision: needsInfo")
	assert.Contains(t, detail, "tuberculosis_screening_date; hepatitis_b_screening_date")
	assert.Contains(t, detail, "Approval term (months): 12")
}

func TestAddDecisionCard(t *testing.T) {
	hook := Hook{Cards: []Card{}, SystemActions: []SystemActions{}}

	hook.addDecisionCard(DecisionResult{Decision: DecisionApprove}, "detail text")
	require.Len(t, hook.Cards, 1)
	assert.Equal(t, "info", hook.Cards[0].Indicator)
	assert.Contains(t, hook.Cards[0].Detail, "detail text")
	assert.NotEmpty(t, hook.Cards[0].UUID)

	hook.addDecisionCard(DecisionResult{Decision: DecisionNeedsInfo}, "detail text")
	require.Len(t, hook.Cards, 2)
	assert.Equal(t, "warning", hook.Cards[1].Indicator)

	// Card uuids are unique per card
	assert.NotEqual(t, hook.Cards[0].UUID, hook.Cards[1].UUID)
}

func TestAddRequirementLinks(t *testing.T) {
	hook := Hook{Cards: []Card{}, SystemActions: []SystemActions{}}
	hook.addDecisionCard(DecisionResult{Decision: DecisionNeedsInfo}, "")

	hook.addRequirementLinks(0, []string{"cv_risk_discussed", "some_future_requirement"})

	require.Len(t, hook.Cards[0].Links, 2)
	assert.Equal(t, "Attest cardiovascular risk discussion", hook.Cards[0].Links[0].Label)
	// Unknown ids fall back to the raw id as the label
	assert.Equal(t, "some_future_requirement", hook.Cards[0].Links[1].Label)
}

func TestTokenIssuer(t *testing.T) {
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"iss": "https://idp.example.org",
	}).SignedString([]byte("test-key"))
	require.NoError(t, err)

	token, err := parseToken("Bearer " + signed)
	require.NoError(t, err)

	issuer, err := getIssuer(token)
	require.NoError(t, err)
	assert.Equal(t, "https://idp.example.org", issuer)

	// Token without an issuer claim
	signed, err = jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{}).SignedString([]byte("test-key"))
	require.NoError(t, err)
	token, err = parseToken(signed)
	require.NoError(t, err)
	_, err = getIssuer(token)
	assert.Error(t, err)
}
