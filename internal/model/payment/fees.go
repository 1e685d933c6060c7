package payment

import (
	"github.com/shopspring/decimal"
)

// FeeSchedule is the pricing of one payment method. Percentage is
// expressed in percent, Fixed/Min/Max in currency units.
type FeeSchedule struct {
	Percentage decimal.Decimal
	Fixed      decimal.Decimal
	Min        decimal.Decimal
	Max        decimal.Decimal
}

func schedule(percentage, fixed, lo, hi string) FeeSchedule {
	return FeeSchedule{
		Percentage: decimal.RequireFromString(percentage),
		Fixed:      decimal.RequireFromString(fixed),
		Min:        decimal.RequireFromString(lo),
		Max:        decimal.RequireFromString(hi),
	}
}

var feeSchedules = map[Method]FeeSchedule{
	MethodCard:         schedule("1.8", "0.25", "0.50", "10.00"),
	MethodMobile:       schedule("0.5", "0", "0.10", "5.00"),
	MethodBankTransfer: schedule("0", "1.50", "1.50", "1.50"),
	MethodCash:         schedule("0", "0", "0", "0"),
}

// ScheduleFor returns the fee schedule of m. Unknown methods are priced as
// card.
func ScheduleFor(m Method) FeeSchedule {
	if s, ok := feeSchedules[m]; ok {
		return s
	}
	return feeSchedules[MethodCard]
}

var hundred = decimal.NewFromInt(100)

// FeeQuote is the cost breakdown of a payment.
type FeeQuote struct {
	Amount        decimal.Decimal `json:"amount"`
	Fee           decimal.Decimal `json:"fee"`
	Total         decimal.Decimal `json:"total"`
	Currency      string          `json:"currency"`
	Method        Method          `json:"method"`
	FeePercentage decimal.Decimal `json:"fee_percentage"`
	FeeFixed      decimal.Decimal `json:"fee_fixed"`
}

// CalculateFees applies the schedule of method to amount: percentage plus
// fixed part, clamped to [Min, Max], rounded half-up to cents.
func CalculateFees(amount decimal.Decimal, method Method, currency string) FeeQuote {
	if method == "" {
		method = MethodCard
	}
	if currency == "" {
		currency = DefaultCurrency
	}
	s := ScheduleFor(method)

	fee := amount.Mul(s.Percentage).Div(hundred).Add(s.Fixed)
	if fee.LessThan(s.Min) {
		fee = s.Min
	}
	if fee.GreaterThan(s.Max) {
		fee = s.Max
	}
	fee = fee.Round(2)

	return FeeQuote{
		Amount:        amount,
		Fee:           fee,
		Total:         amount.Add(fee),
		Currency:      currency,
		Method:        method,
		FeePercentage: s.Percentage,
		FeeFixed:      s.Fixed,
	}
}
