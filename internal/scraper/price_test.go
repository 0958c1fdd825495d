package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractPricePerNight(t *testing.T) {
	sel := parseFragment(t, `<span class="C9NJ-amount">$120 per night</span>`)

	price := ExtractPrice(sel, DefaultSelectors(), testLog)
	require.NotNil(t, price)
	assert.Equal(t, "$", price.CurrencySymbol)
	assert.Equal(t, "120", price.Amount)
	require.NotNil(t, price.PerNight)
	assert.True(t, *price.PerNight)
}

func TestExtractPriceWithoutNightMention(t *testing.T) {
	sel := parseFragment(t, `<span class="C9NJ-amount">€95 total</span>`)

	price := ExtractPrice(sel, DefaultSelectors(), testLog)
	require.NotNil(t, price)
	assert.Equal(t, "€", price.CurrencySymbol)
	assert.Equal(t, "95", price.Amount)
	assert.Nil(t, price.PerNight)
}

func TestExtractPriceSingleToken(t *testing.T) {
	// One token only, so nothing can be split into symbol and amount
	sel := parseFragment(t, `<span class="C9NJ-amount">$120</span>`)

	price := ExtractPrice(sel, DefaultSelectors(), testLog)
	require.NotNil(t, price)
	assert.Empty(t, price.CurrencySymbol)
	assert.Empty(t, price.Amount)
}

func TestExtractPriceTotalAndTaxes(t *testing.T) {
	sel := parseFragment(t, `
		<div>
			$120 per night
			<div class="D9i2-total">$360</div>
			<div class="D9i2-taxes-fees">$42 taxes and fees</div>
		</div>`)

	price := ExtractPrice(sel, DefaultSelectors(), testLog)
	require.NotNil(t, price)
	assert.Equal(t, "$360", price.Total)
	assert.Equal(t, "$42 taxes and fees", price.TaxesFees)
}

func TestExtractPriceEmptyElement(t *testing.T) {
	sel := parseFragment(t, `<span class="C9NJ-amount">   </span>`)
	assert.Nil(t, ExtractPrice(sel, DefaultSelectors(), testLog))
	assert.Nil(t, ExtractPrice(nil, DefaultSelectors(), testLog))
}
