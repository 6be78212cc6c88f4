// Package invoice derives the computed fields of a reservation invoice.
// Everything here is a pure transformation; persistence and logging belong to
// the reservation service.
package invoice

import (
	"errors"
	"fmt"

	"konica/pkg/model"
)

var (
	ErrNegativeAmount   = errors.New("invoice amounts cannot be negative")
	ErrDiscountTooLarge = errors.New("discount exceeds pack price plus additional charges")
	ErrOverpaid         = errors.New("paid amount exceeds total price")
)

// Derive builds a consistent invoice from raw inputs:
//
//	totalPrice      = packPrice + additionalCharges - discount
//	remainingAmount = totalPrice - paidAmount
//
// All inputs must be >= 0, and so must both derived fields: a discount larger
// than the billable amount or a payment above the total is rejected.
func Derive(packPrice, additionalCharges, discount, paidAmount float64) (model.Invoice, error) {
	for name, v := range map[string]float64{
		"packPrice":         packPrice,
		"additionalCharges": additionalCharges,
		"discount":          discount,
		"paidAmount":        paidAmount,
	} {
		if v < 0 {
			return model.Invoice{}, fmt.Errorf("%w: %s = %v", ErrNegativeAmount, name, v)
		}
	}

	inv := Recalculate(model.Invoice{
		PackPrice:         packPrice,
		AdditionalCharges: additionalCharges,
		Discount:          discount,
		PaidAmount:        paidAmount,
	})
	if inv.TotalPrice < 0 {
		return model.Invoice{}, fmt.Errorf("%w: discount = %v, totalPrice = %v", ErrDiscountTooLarge, discount, inv.TotalPrice)
	}
	if inv.RemainingAmount < 0 {
		return model.Invoice{}, fmt.Errorf("%w: paidAmount = %v, totalPrice = %v", ErrOverpaid, paidAmount, inv.TotalPrice)
	}
	return inv, nil
}

// Recalculate re-derives TotalPrice and RemainingAmount from the invoice's
// own raw fields. Idempotent: applying it twice equals applying it once.
func Recalculate(inv model.Invoice) model.Invoice {
	inv.TotalPrice = inv.PackPrice + inv.AdditionalCharges - inv.Discount
	inv.RemainingAmount = inv.TotalPrice - inv.PaidAmount
	return inv
}
