package invoice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"konica/pkg/model"
)

func TestDerive(t *testing.T) {
	tests := []struct {
		name              string
		packPrice         float64
		additionalCharges float64
		discount          float64
		paidAmount        float64
		wantTotal         float64
		wantRemaining     float64
	}{
		{
			name:          "pack price only",
			packPrice:     500,
			wantTotal:     500,
			wantRemaining: 500,
		},
		{
			name:              "charges and discount",
			packPrice:         500,
			additionalCharges: 100,
			discount:          50,
			paidAmount:        200,
			wantTotal:         550,
			wantRemaining:     350,
		},
		{
			name:          "fully paid",
			packPrice:     300,
			paidAmount:    300,
			wantTotal:     300,
			wantRemaining: 0,
		},
		{
			name:              "discount swallowed by charges",
			packPrice:         100,
			additionalCharges: 80,
			discount:          150,
			wantTotal:         30,
			wantRemaining:     30,
		},
		{
			name: "all zero",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv, err := Derive(tt.packPrice, tt.additionalCharges, tt.discount, tt.paidAmount)
			require.NoError(t, err)

			assert.Equal(t, tt.packPrice, inv.PackPrice)
			assert.Equal(t, tt.additionalCharges, inv.AdditionalCharges)
			assert.Equal(t, tt.discount, inv.Discount)
			assert.Equal(t, tt.paidAmount, inv.PaidAmount)
			assert.Equal(t, tt.wantTotal, inv.TotalPrice)
			assert.Equal(t, tt.wantRemaining, inv.RemainingAmount)
		})
	}
}

func TestDeriveRejectsNegativeInputs(t *testing.T) {
	tests := []struct {
		name string
		args [4]float64
	}{
		{name: "negative pack price", args: [4]float64{-1, 0, 0, 0}},
		{name: "negative additional charges", args: [4]float64{100, -5, 0, 0}},
		{name: "negative discount", args: [4]float64{100, 0, -10, 0}},
		{name: "negative paid amount", args: [4]float64{100, 0, 0, -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Derive(tt.args[0], tt.args[1], tt.args[2], tt.args[3])
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrNegativeAmount)
		})
	}
}

func TestDeriveRejectsNegativeDerivedFields(t *testing.T) {
	tests := []struct {
		name    string
		args    [4]float64
		wantErr error
	}{
		{name: "discount exceeding price", args: [4]float64{100, 0, 150, 0}, wantErr: ErrDiscountTooLarge},
		{name: "discount exceeding price plus charges", args: [4]float64{100, 40, 150, 0}, wantErr: ErrDiscountTooLarge},
		{name: "overpaid", args: [4]float64{200, 0, 0, 250}, wantErr: ErrOverpaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Derive(tt.args[0], tt.args[1], tt.args[2], tt.args[3])
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRecalculateIdempotent(t *testing.T) {
	inv := model.Invoice{
		PackPrice:         500,
		AdditionalCharges: 100,
		Discount:          50,
		PaidAmount:        200,
		// stale derived values, as found in documents written by hand
		TotalPrice:      9999,
		RemainingAmount: -1,
	}

	once := Recalculate(inv)
	assert.Equal(t, 550.0, once.TotalPrice)
	assert.Equal(t, 350.0, once.RemainingAmount)

	twice := Recalculate(once)
	assert.Equal(t, once, twice)
}
