package pos

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Line is one cart entry as the calculator sees it.
type Line struct {
	Price    decimal.Decimal
	Quantity int
	Discount decimal.Decimal // absolute per-line discount
}

// Totals is the full breakdown stored on the Sale record.
type Totals struct {
	Subtotal           decimal.Decimal
	ItemDiscount       decimal.Decimal
	PercentageDiscount decimal.Decimal
	TotalDiscount      decimal.Decimal
	Tax                decimal.Decimal
	Total              decimal.Decimal
}

// LineTotal is what a single line contributes to the bill:
// price * quantity - line discount.
func LineTotal(l Line) decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity))).Sub(l.Discount)
}

// CalculateTotals computes the invoice breakdown:
//
//	subtotal           = sum(price * qty)
//	itemDiscount       = sum(line discounts)
//	percentageDiscount = (subtotal - itemDiscount) * discountPercent / 100
//	totalDiscount      = itemDiscount + percentageDiscount
//	tax                = taxEnabled ? (subtotal - totalDiscount) * taxRate / 100 : 0
//	total              = subtotal - totalDiscount + tax
//
// Percent inputs are taken as given and not clamped to [0,100].
func CalculateTotals(lines []Line, discountPercent, taxRate decimal.Decimal, taxEnabled bool) Totals {
	var t Totals

	for _, l := range lines {
		t.Subtotal = t.Subtotal.Add(l.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
		t.ItemDiscount = t.ItemDiscount.Add(l.Discount)
	}

	t.PercentageDiscount = t.Subtotal.Sub(t.ItemDiscount).Mul(discountPercent).Div(hundred)
	t.TotalDiscount = t.ItemDiscount.Add(t.PercentageDiscount)

	if taxEnabled {
		t.Tax = t.Subtotal.Sub(t.TotalDiscount).Mul(taxRate).Div(hundred)
	} else {
		t.Tax = decimal.Zero
	}

	t.Total = t.Subtotal.Sub(t.TotalDiscount).Add(t.Tax)
	return t
}
