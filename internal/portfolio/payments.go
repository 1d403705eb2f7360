package portfolio

import (
	"math"
	"sort"

	"github.com/hybel/portfolio/internal/types"
)

// IsOverdue reports whether a payment carries the overdue status. The status
// is authoritative input from the source and is deliberately not derived
// from due date versus paid date here.
func IsOverdue(payment types.RentPayment) bool {
	return payment.Status == types.PaymentOverdue
}

// HasOverduePayment reports whether any payment for the given property is
// overdue. False for an empty payment set.
func HasOverduePayment(property types.Property, payments []types.RentPayment) bool {
	for _, payment := range payments {
		if payment.PropertyID == property.ID && IsOverdue(payment) {
			return true
		}
	}
	return false
}

// CalculatePaymentSummary sums amounts and counts per payment status.
// No payment is excluded; each one lands in exactly one status bucket, so
// TotalPaid + TotalPending + TotalOverdue == TotalExpected.
func CalculatePaymentSummary(payments []types.RentPayment) types.PaymentSummary {
	var summary types.PaymentSummary
	for _, p := range payments {
		summary.TotalExpected += p.Amount
		switch p.Status {
		case types.PaymentPaid:
			summary.TotalPaid += p.Amount
			summary.PaidCount++
		case types.PaymentPending:
			summary.TotalPending += p.Amount
			summary.PendingCount++
		case types.PaymentOverdue:
			summary.TotalOverdue += p.Amount
			summary.OverdueCount++
		}
	}
	return summary
}

// MonthlyOverview groups payments by billing month and computes per-month
// collection figures. Months are returned in ascending order; the "YYYY-MM"
// tokens sort correctly as plain strings.
func MonthlyOverview(payments []types.RentPayment) []types.MonthlyPaymentOverview {
	byMonth := make(map[string][]types.RentPayment)
	for _, p := range payments {
		byMonth[p.Month] = append(byMonth[p.Month], p)
	}

	months := make([]string, 0, len(byMonth))
	for m := range byMonth {
		months = append(months, m)
	}
	sort.Strings(months)

	overviews := make([]types.MonthlyPaymentOverview, 0, len(months))
	for _, m := range months {
		var expected, collected int64
		for _, p := range byMonth[m] {
			expected += p.Amount
			if p.Status == types.PaymentPaid {
				collected += p.Amount
			}
		}
		rate := 0
		if expected > 0 {
			rate = int(math.Round(float64(collected) / float64(expected) * 100))
		}
		overviews = append(overviews, types.MonthlyPaymentOverview{
			Month:          m,
			TotalExpected:  expected,
			TotalCollected: collected,
			CollectionRate: rate,
			Payments:       byMonth[m],
		})
	}
	return overviews
}
