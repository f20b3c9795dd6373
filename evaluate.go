package main

import "strings"

type Decision string

const (
	DecisionApprove   Decision = "approve"
	DecisionNeedsInfo Decision = "needsInfo"
)

// Term length attached to every approval
const approvalMonths = 12

const (
	PhaseInitialAuth = "initialAuth"
	PhaseReauth      = "reauth"
)

// DecisionResult is the immutable outcome of one evaluation. Missing holds
// opaque requirement ids the caller maps to targeted input widgets; Messages
// holds one human-readable explanation per failed criterion, in evaluation
// order.
type DecisionResult struct {
	Decision       Decision `json:"decision"`
	Messages       []string `json:"messages"`
	Missing        []string `json:"missing"`
	Considered     int      `json:"considered"`
	ApprovalMonths int      `json:"approvalMonths"`
}

// evaluation carries the normalized inputs shared by the criterion checks
// for a single evaluatePA call.
type evaluation struct {
	ctx        PatientContext
	drugKey    string
	isBiologic bool
	isJAK      bool
}

func (e *evaluation) isBiologicOrJAK() bool {
	return e.isBiologic || e.isJAK
}

type checkResult struct {
	missing []string
	message string
}

// criterion is one entry in a phase's ordered battery. An inapplicable
// criterion contributes nothing, not even to the considered count.
type criterion struct {
	id         string
	applicable func(e *evaluation) bool
	check      func(e *evaluation) checkResult
}

// Ordered criteria batteries by authorization phase. Order determines the
// sequence of missing/message entries only; the decision depends on the
// union of missing ids.
var phaseBatteries = map[string][]criterion{
	PhaseInitialAuth: {
		activityFloor,
		infectionScreening,
		csDMARDHistory,
		prescriberSpecialty,
		concurrentImmunomodulators,
		jakSafetyAttestations,
	},
	PhaseReauth: {
		activityFloor,
		infectionScreening,
		prescriberSpecialty,
		concurrentImmunomodulators,
		jakSafetyAttestations,
		clinicalResponse,
	},
}

// evaluatePA runs the ordered criteria battery for the given phase against
// the patient context and aggregates one decision record. It is pure and
// synchronous: no I/O, no retained state, and no panic for any input shape
// described above; worst case is needsInfo with many missing entries.
//
// The rules catalog and payerId select the drug list during name resolution
// (see resolveDrugKey); payer-specific criteria batteries are not yet
// differentiated, so they do not alter which criteria run here.
func evaluatePA(rules *RulesCatalog, payerId, drugKey, phase string, ctx PatientContext) DecisionResult {
	dk := strings.ToLower(strings.TrimSpace(drugKey))

	e := &evaluation{
		ctx:        normalizeContext(ctx),
		drugKey:    dk,
		isBiologic: biologics[dk],
		isJAK:      jaks[dk],
	}

	battery, ok := phaseBatteries[phase]
	if !ok {
		// Unknown phases get the initial-authorization battery
		battery = phaseBatteries[PhaseInitialAuth]
	}

	result := DecisionResult{
		Messages:       []string{},
		Missing:        []string{},
		ApprovalMonths: approvalMonths,
	}

	for _, c := range battery {
		if !c.applicable(e) {
			continue
		}
		result.Considered++

		r := c.check(e)
		result.Missing = append(result.Missing, r.missing...)
		if r.message != "" {
			result.Messages = append(result.Messages, r.message)
		}
	}

	if len(result.Missing) == 0 {
		result.Decision = DecisionApprove
	} else {
		result.Decision = DecisionNeedsInfo
	}

	return result
}
