package main

import "strings"

// RulesCatalog is the externally supplied payer rules document. The service
// only reads it; catalog authors own key uniqueness within a payer.
type RulesCatalog struct {
	Payers []Payer `json:"payers"`
}

type Payer struct {
	Id    string     `json:"id"`
	Name  string     `json:"name"`
	Drugs []DrugRule `json:"drugs"`
}

type DrugRule struct {
	DrugKey string   `json:"drugKey"`
	Aliases []string `json:"aliases"`
}

// payer returns the payer record matching the given id, falling through to
// the first payer when the id is unknown or empty. A nil or empty catalog
// returns nil, which downstream lookups treat as "no match".
func (rc *RulesCatalog) payer(id string) *Payer {
	if rc == nil || len(rc.Payers) == 0 {
		return nil
	}
	for i := range rc.Payers {
		if rc.Payers[i].Id == id {
			return &rc.Payers[i]
		}
	}
	return &rc.Payers[0]
}

// resolveDrugKey normalizes a free-text generic/brand name pair into a
// canonical drug key from the payer's drug list. An exact generic match on
// drugKey wins over any alias match. When nothing matches, the lower-cased
// generic (else brand) is returned as a best guess so downstream criteria
// can still run; classification lookups simply miss for unknown keys.
func resolveDrugKey(rules *RulesCatalog, payerId, generic, brand string) string {
	g := strings.ToLower(strings.TrimSpace(generic))
	b := strings.ToLower(strings.TrimSpace(brand))
	if g == "" && b == "" {
		return ""
	}

	if payer := rules.payer(payerId); payer != nil {
		for _, d := range payer.Drugs {
			if d.DrugKey == g {
				return d.DrugKey
			}
		}
		for _, d := range payer.Drugs {
			for _, alias := range d.Aliases {
				a := strings.ToLower(alias)
				if a == g || a == b {
					return d.DrugKey
				}
			}
		}
	}

	if g != "" {
		return g
	}
	return b
}
