package main

import "strings"

// TherapyClass is the closed set of drug classes the criteria battery cares
// about. Free-text class labels from the request are parsed into this type
// once, so the criteria compare variants rather than raw strings.
type TherapyClass int

const (
	ClassOther TherapyClass = iota
	ClassBiologic
	ClassJAK
	ClassCsDMARD
	ClassNSAID
)

// Canonical drug keys treated as biologics for the "activity must be >= moderate" guard
var biologics = map[string]bool{
	"adalimumab":   true,
	"etanercept":   true,
	"infliximab":   true,
	"golimumab":    true,
	"certolizumab": true,
	"abatacept":    true,
	"tocilizumab":  true,
	"sarilumab":    true,
	"rituximab":    true,
}

// Canonical drug keys for JAK inhibitors, which additionally require the
// boxed-warning safety attestations
var jaks = map[string]bool{
	"tofacitinib":  true,
	"upadacitinib": true,
	"baricitinib":  true,
	"filgotinib":   true,
}

// Ladder for disease activity comparisons
var activityOrder = []string{"low", "moderate", "high"}

func activityIndex(activity string) int {
	a := strings.ToLower(strings.TrimSpace(activity))
	for i, level := range activityOrder {
		if level == a {
			return i
		}
	}
	return -1
}

// isBelowRequiredActivity reports whether activity sits strictly below
// minRequired on the ladder. Unrecognized values on either side are
// incomparable and never count as below.
func isBelowRequiredActivity(activity, minRequired string) bool {
	a := activityIndex(activity)
	r := activityIndex(minRequired)
	return a != -1 && r != -1 && a < r
}

func parseTherapyClass(label string) TherapyClass {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "biologic":
		return ClassBiologic
	case "jaki", "jak", "jak inhibitor":
		return ClassJAK
	case "csdmard":
		return ClassCsDMARD
	case "nsaid":
		return ClassNSAID
	default:
		return ClassOther
	}
}
