package quoting

import "github.com/shopspring/decimal"

// Volume discount tiers, highest threshold first.
var discountTiers = []struct {
	minQuantity int
	percent     decimal.Decimal
}{
	{10000, decimal.NewFromFloat(0.15)},
	{5000, decimal.NewFromFloat(0.10)},
	{1000, decimal.NewFromFloat(0.05)},
}

// DiscountPercent returns the bulk discount fraction for a quantity.
// Each line is discounted on its own quantity only.
func DiscountPercent(quantity int) decimal.Decimal {
	for _, tier := range discountTiers {
		if quantity >= tier.minQuantity {
			return tier.percent
		}
	}
	return decimal.Zero
}

// DiscountedUnitPrice applies the tier discount to a catalog price.
func DiscountedUnitPrice(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(1).Sub(DiscountPercent(quantity)))
}
