package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testCatalog() *RulesCatalog {
	return &RulesCatalog{
		Payers: []Payer{
			{
				Id: "optumrx-like",
				Drugs: []DrugRule{
					{DrugKey: "adalimumab", Aliases: []string{"Humira", "Amjevita"}},
					{DrugKey: "tofacitinib", Aliases: []string{"Xeljanz"}},
					{DrugKey: "etanercept", Aliases: []string{"Enbrel"}},
				},
			},
			{
				Id: "medicare-like",
				Drugs: []DrugRule{
					{DrugKey: "infliximab", Aliases: []string{"Remicade"}},
				},
			},
		},
	}
}

func TestResolveDrugKeyExactGenericWins(t *testing.T) {
	catalog := testCatalog()

	key := resolveDrugKey(catalog, "optumrx-like", "adalimumab", "Humira")
	assert.Equal(t, "adalimumab", key)
}

func TestResolveDrugKeyBrandAlias(t *testing.T) {
	catalog := testCatalog()

	key := resolveDrugKey(catalog, "optumrx-like", "", "Humira")
	assert.Equal(t, "adalimumab", key)

	// Alias comparison is case-insensitive
	key = resolveDrugKey(catalog, "optumrx-like", "", "HUMIRA")
	assert.Equal(t, "adalimumab", key)
}

func TestResolveDrugKeyGenericAlias(t *testing.T) {
	catalog := testCatalog()

	// Alias match works through the generic field too
	key := resolveDrugKey(catalog, "optumrx-like", "xeljanz", "")
	assert.Equal(t, "tofacitinib", key)
}

func TestResolveDrugKeyUnknownFallback(t *testing.T) {
	catalog := testCatalog()

	// Unknown names degrade to the lower-cased input, never an error
	key := resolveDrugKey(catalog, "optumrx-like", "UnknownDrug", "")
	assert.Equal(t, "unknowndrug", key)

	key = resolveDrugKey(catalog, "optumrx-like", "", "Mystery Brand")
	assert.Equal(t, "mystery brand", key)
}

func TestResolveDrugKeyEmptyInputs(t *testing.T) {
	catalog := testCatalog()

	key := resolveDrugKey(catalog, "optumrx-like", "", "")
	assert.Equal(t, "", key)

	key = resolveDrugKey(catalog, "optumrx-like", "  ", " ")
	assert.Equal(t, "", key)
}

func TestResolveDrugKeyPayerScoped(t *testing.T) {
	catalog := testCatalog()

	key := resolveDrugKey(catalog, "medicare-like", "", "Remicade")
	assert.Equal(t, "infliximab", key)

	// Humira is not on the medicare-like list, so the name falls through
	key = resolveDrugKey(catalog, "medicare-like", "", "Humira")
	assert.Equal(t, "humira", key)
}

func TestResolveDrugKeyUnknownPayerFallsThrough(t *testing.T) {
	catalog := testCatalog()

	// Unknown payer ids use the first payer's drug list
	key := resolveDrugKey(catalog, "no-such-payer", "", "Humira")
	assert.Equal(t, "adalimumab", key)
}

func TestResolveDrugKeyMalformedCatalog(t *testing.T) {
	key := resolveDrugKey(nil, "optumrx-like", "adalimumab", "")
	assert.Equal(t, "adalimumab", key)

	key = resolveDrugKey(&RulesCatalog{}, "optumrx-like", "adalimumab", "")
	assert.Equal(t, "adalimumab", key)
}

func TestPayerLookup(t *testing.T) {
	catalog := testCatalog()

	payer := catalog.payer("medicare-like")
	assert.Equal(t, "medicare-like", payer.Id)

	// Empty and unknown ids fall through to the first payer
	assert.Equal(t, "optumrx-like", catalog.payer("").Id)
	assert.Equal(t, "optumrx-like", catalog.payer("no-such-payer").Id)

	var empty *RulesCatalog
	assert.Nil(t, empty.payer("optumrx-like"))
	assert.Nil(t, (&RulesCatalog{}).payer("optumrx-like"))
}
