package main

import "strings"

/********************************
 ****** Patient Context ********
 ********************************/

// PatientContext is assembled by the caller (form edits, demo presets) and
// passed by value on every evaluation. The engine never retains or mutates
// it; absent maps and slices read as empty.
type PatientContext struct {
	Disease             string            `json:"disease"`
	DiseaseActivity     string            `json:"diseaseActivity"`
	PriorTherapies      []Therapy         `json:"priorTherapies"`
	ConcurrentTherapies []Therapy         `json:"concurrentTherapies"`
	Labs                map[string]string `json:"labs"`
	Documentation       map[string]string `json:"documentation"`
	SafetyAttestations  map[string]bool   `json:"safetyAttestations"`
	Prescriber          Prescriber        `json:"prescriber"`
}

// Therapy covers both prior and concurrent entries; Outcome is only
// meaningful for prior therapies, Name only for concurrent ones.
type Therapy struct {
	Class   string `json:"class"`
	Name    string `json:"name,omitempty"`
	Outcome string `json:"outcome,omitempty"`
}

type Prescriber struct {
	Specialty string `json:"specialty"`
}

func normalizeContext(ctx PatientContext) PatientContext {
	ctx.DiseaseActivity = strings.ToLower(strings.TrimSpace(ctx.DiseaseActivity))
	return ctx
}
