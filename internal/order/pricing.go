package order

// Surcharge is the 2% fee added on top of the summed item total,
// truncated toward zero.
func Surcharge(base int64) int64 {
	return base * 2 / 100
}

// TotalWithSurcharge is the amount persisted on the order.
func TotalWithSurcharge(base int64) int64 {
	return base + Surcharge(base)
}

// UnitAmountMinor is the per-unit checkout price in minor currency
// units (cents) with the 2% surcharge applied per line. This is
// deliberately independent of TotalWithSurcharge: the order-level
// amount floors the surcharge once on the total, the checkout line
// applies it exactly per unit, and the two may disagree by rounding.
func UnitAmountMinor(offerPrice int64) int64 {
	return offerPrice * 102
}
