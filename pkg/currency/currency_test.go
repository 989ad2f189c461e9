package currency_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/beanshub/roastery-api/pkg/currency"
)

func TestFormatIDR(t *testing.T) {
	casos := []struct {
		monto    float64
		esperado string
	}{
		{0, "Rp0"},
		{85000, "Rp85.000"},
		{42500000, "Rp42.500.000"},
		{1250.75, "Rp1.251"}, // la Rupia se muestra sin decimales
	}
	for _, c := range casos {
		assert.Equal(t, c.esperado, currency.FormatIDR(c.monto),
			"formato id-ID con punto como separador de miles")
	}
}

func TestFormatIDRDecimal(t *testing.T) {
	assert.Equal(t, "Rp95.000", currency.FormatIDRDecimal(decimal.NewFromInt(95000)))
}
