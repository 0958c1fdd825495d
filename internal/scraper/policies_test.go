package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractPoliciesClassification(t *testing.T) {
	card := parseFragment(t, `
		<div class="c5l3f">
			<div class="BZag-freebie">Free cancellation until Sep 10</div>
			<div class="BZag-freebie">Check-in from 14:00</div>
			<div class="BZag-freebie">Check-out before 11:00</div>
			<div class="BZag-freebie">Breakfast included</div>
		</div>`)

	policies := ExtractPolicies(card, DefaultSelectors(), testLog)
	assert.Equal(t, "Free cancellation until Sep 10", policies.Cancellation)
	assert.Equal(t, "Check-in from 14:00", policies.CheckIn)
	assert.Equal(t, "Check-out before 11:00", policies.CheckOut)
	assert.Equal(t, []string{"Breakfast included"}, policies.SpecialConditions)
}

func TestExtractPoliciesEachElementFeedsOneBucket(t *testing.T) {
	// "cancellation" wins over "check-in" within the same element
	card := parseFragment(t, `
		<div class="c5l3f">
			<div class="BZag-freebie">Free cancellation after check-in</div>
		</div>`)

	policies := ExtractPolicies(card, DefaultSelectors(), testLog)
	assert.Equal(t, "Free cancellation after check-in", policies.Cancellation)
	assert.Empty(t, policies.CheckIn)
	assert.Empty(t, policies.SpecialConditions)
}

func TestExtractPoliciesCaseInsensitive(t *testing.T) {
	card := parseFragment(t, `
		<div class="c5l3f">
			<div class="BZag-freebie">FREE CANCELLATION</div>
		</div>`)

	policies := ExtractPolicies(card, DefaultSelectors(), testLog)
	assert.Equal(t, "FREE CANCELLATION", policies.Cancellation)
}

func TestExtractPoliciesEmpty(t *testing.T) {
	card := parseFragment(t, `<div class="c5l3f"></div>`)
	assert.True(t, ExtractPolicies(card, DefaultSelectors(), testLog).Empty())
}
