package main

import (
	"regexp"
	"strings"
)

var preferredSpecialtyRegex = regexp.MustCompile(`rheumatology|immunology|internal-medicine-rheum`)

// Prior-therapy outcomes that count as a completed trial/failure
var failureOutcomes = map[string]bool{
	"failed":          true,
	"ineffective":     true,
	"intolerant":      true,
	"contraindicated": true,
}

/*
 * Disease activity floor
 *
 * Biologic/JAK therapy requires disease activity of at least "moderate" on
 * the low < moderate < high ladder. Unrecognized activity labels are
 * incomparable and do not fail the criterion on their own.
 */
var activityFloor = criterion{
	id: "activity_floor",
	applicable: func(e *evaluation) bool {
		return e.isBiologicOrJAK()
	},
	check: func(e *evaluation) checkResult {
		if isBelowRequiredActivity(e.ctx.DiseaseActivity, "moderate") {
			return checkResult{
				missing: []string{"diseaseActivity_moderate_or_high"},
				message: "For biologic/JAK initiation or re-auth, requires at least moderate disease activity.",
			}
		}
		return checkResult{}
	},
}

/*
 * TB/HBV screening
 *
 * Both screening dates must be on file for any drug. Presence, not
 * validity, is checked; each absent date gets its own missing entry but the
 * pair shares a single message and a single considered unit.
 */
var infectionScreening = criterion{
	id: "infection_screening",
	applicable: func(e *evaluation) bool {
		return true
	},
	check: func(e *evaluation) checkResult {
		var res checkResult
		if e.ctx.Labs["tuberculosis_screening_date"] == "" {
			res.missing = append(res.missing, "tuberculosis_screening_date")
		}
		if e.ctx.Labs["hepatitis_b_screening_date"] == "" {
			res.missing = append(res.missing, "hepatitis_b_screening_date")
		}
		if len(res.missing) > 0 {
			res.message = "TB/HBV screening dates required."
		}
		return res
	},
}

/*
 * Prior csDMARD trial/failure
 *
 * Biologic/JAK initiation requires at least one prior conventional
 * synthetic DMARD trial with a failed, ineffective, intolerant, or
 * contraindicated outcome.
 */
var csDMARDHistory = criterion{
	id: "csdmard_history",
	applicable: func(e *evaluation) bool {
		return e.isBiologicOrJAK()
	},
	check: func(e *evaluation) checkResult {
		for _, t := range e.ctx.PriorTherapies {
			if parseTherapyClass(t.Class) != ClassCsDMARD {
				continue
			}
			if failureOutcomes[strings.ToLower(strings.TrimSpace(t.Outcome))] {
				return checkResult{}
			}
		}
		return checkResult{
			missing: []string{"csDMARD_trial_failure"},
			message: "Document prior csDMARD trial/failure (e.g., methotrexate).",
		}
	},
}

/*
 * Prescriber specialty
 *
 * Hard requirement for every drug: prescriber must be rheumatology,
 * immunology, or internal medicine (rheum).
 */
var prescriberSpecialty = criterion{
	id: "prescriber_specialty",
	applicable: func(e *evaluation) bool {
		return true
	},
	check: func(e *evaluation) checkResult {
		spec := strings.ToLower(e.ctx.Prescriber.Specialty)
		if !preferredSpecialtyRegex.MatchString(spec) {
			return checkResult{
				missing: []string{"prescriber_specialty_rheumatology"},
				message: "Prescriber must be Rheumatology/Immunology (or Internal Medicine—Rheum).",
			}
		}
		return checkResult{}
	},
}

/*
 * No concurrent biologic or JAK
 *
 * Only evaluated when the patient is on something. A conflict exists when
 * any concurrent entry is a biologic/JAK by class label, or its name is a
 * known biologic or JAK key.
 */
var concurrentImmunomodulators = criterion{
	id: "concurrent_immunomodulators",
	applicable: func(e *evaluation) bool {
		return len(e.ctx.ConcurrentTherapies) > 0
	},
	check: func(e *evaluation) checkResult {
		for _, t := range e.ctx.ConcurrentTherapies {
			cls := parseTherapyClass(t.Class)
			name := strings.ToLower(strings.TrimSpace(t.Name))

			if cls == ClassBiologic || cls == ClassJAK || biologics[name] || jaks[name] {
				return checkResult{
					missing: []string{"no_concurrent_immunomodulators"},
					message: "Cannot combine with another biologic or JAK at the same time.",
				}
			}
		}
		return checkResult{}
	},
}

/*
 * JAK safety attestations
 *
 * JAK inhibitors carry boxed warnings; the prescriber must attest that the
 * cardiovascular, thrombosis, and malignancy risks were each discussed.
 * Absent attestations are reported individually under one message.
 */
var jakSafetyAttestations = criterion{
	id: "jak_safety_attestations",
	applicable: func(e *evaluation) bool {
		return e.isJAK
	},
	check: func(e *evaluation) checkResult {
		var res checkResult
		for _, key := range []string{"cv_risk_discussed", "thrombosis_risk_discussed", "malignancy_risk_discussed"} {
			if !e.ctx.SafetyAttestations[key] {
				res.missing = append(res.missing, key)
			}
		}
		if len(res.missing) > 0 {
			res.message = "Safety JAK attestations required (CV, thrombosis, malignancy)."
		}
		return res
	},
}

/*
 * Clinical response documentation
 *
 * Reauthorization only: continuation requires a summary of the patient's
 * response during the prior authorization period.
 */
var clinicalResponse = criterion{
	id: "clinical_response",
	applicable: func(e *evaluation) bool {
		return true
	},
	check: func(e *evaluation) checkResult {
		if strings.TrimSpace(e.ctx.Documentation["clinical_response_summary"]) == "" {
			return checkResult{
				missing: []string{"clinical_response_summary"},
				message: "Summarize the clinical response on the current therapy for reauthorization.",
			}
		}
		return checkResult{}
	},
}
