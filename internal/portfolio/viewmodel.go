package portfolio

import (
	"sort"
	"time"

	"github.com/hybel/portfolio/internal/types"
)

// loadingMessage is shown while the source fetch is in flight.
const loadingMessage = "Loading portfolio data..."

// BuildInput carries everything BuildViewModel depends on. The reference
// time is an explicit input so the builder stays deterministic under test.
type BuildInput struct {
	Properties []types.Property
	Payments   []types.RentPayment
	Filters    types.PropertyFilters
	Loading    bool
	Err        string // empty means no error
	Now        time.Time
}

// CalculateStatistics derives the dashboard header metrics from the raw
// collections. Attention counting annotates transiently; nothing is stored.
func CalculateStatistics(properties []types.Property, payments []types.RentPayment, ref time.Time) types.PortfolioStatistics {
	metrics := CalculateMetrics(properties)
	counts := CountByStatus(properties)

	attention := 0
	for _, p := range properties {
		if NeedsAttention(p, payments, ref) {
			attention++
		}
	}

	return types.PortfolioStatistics{
		TotalProperties:            metrics.TotalProperties,
		AvailableProperties:        counts.Available,
		RentedProperties:           counts.Rented,
		ReservedProperties:         counts.Reserved,
		OccupancyRate:              metrics.OccupancyRate,
		TotalMonthlyIncome:         metrics.MonthlyIncome,
		AverageRent:                CalculateAverageRent(properties),
		PropertiesNeedingAttention: attention,
	}
}

// AvailableCities returns the distinct city values across the annotated
// collection, lexicographically sorted.
func AvailableCities(annotated []types.PropertyWithStatus) []string {
	seen := make(map[string]struct{})
	cities := make([]string, 0)
	for _, p := range annotated {
		if _, ok := seen[p.City]; ok {
			continue
		}
		seen[p.City] = struct{}{}
		cities = append(cities, p.City)
	}
	sort.Strings(cities)
	return cities
}

// BuildViewModel assembles the complete portfolio snapshot. It is total and
// side-effect free: it never fails for well-formed inputs and its output is
// fully determined by the BuildInput, reference time included. Calling it
// twice with identical inputs yields deep-equal view models.
func BuildViewModel(in BuildInput) types.PortfolioViewModel {
	statistics := CalculateStatistics(in.Properties, in.Payments, in.Now)
	paymentSummary := CalculatePaymentSummary(in.Payments)

	annotated := AnnotateAll(in.Properties, in.Payments, in.Now)
	filtered := ApplyFilters(annotated, in.Filters)

	incomeBreakdown := types.IncomeBreakdown{
		ExpectedMonthly:    paymentSummary.TotalExpected,
		CollectedThisMonth: paymentSummary.TotalPaid,
		PendingThisMonth:   paymentSummary.TotalPending,
		OverdueAmount:      paymentSummary.TotalOverdue,
	}

	needingAttention := keep(annotated, func(p types.PropertyWithStatus) bool {
		return p.NeedsAttention
	})
	upcomingExpiries := keep(annotated, expiresWithinWindow)

	overduePayments := make([]types.RentPayment, 0)
	for _, p := range in.Payments {
		if IsOverdue(p) {
			overduePayments = append(overduePayments, p)
		}
	}

	payments := make([]types.RentPayment, len(in.Payments))
	copy(payments, in.Payments)

	var loadMsg string
	if in.Loading {
		loadMsg = loadingMessage
	}

	return types.PortfolioViewModel{
		Loading: types.LoadingState{
			IsLoading:      in.Loading,
			LoadingMessage: loadMsg,
		},
		Error: types.ErrorState{
			HasError:     in.Err != "",
			ErrorMessage: in.Err,
		},

		Properties:         annotated,
		FilteredProperties: filtered,
		Payments:           payments,

		Statistics:      statistics,
		PaymentSummary:  paymentSummary,
		IncomeBreakdown: incomeBreakdown,
		MonthlyOverview: MonthlyOverview(in.Payments),

		Filters: in.Filters,
		Sort:    DefaultSort(),

		HasProperties:    len(annotated) > 0,
		HasActiveFilters: HasActiveFilters(in.Filters),
		ShowEmptyState:   len(filtered) == 0,

		AvailableCities:            AvailableCities(annotated),
		PropertiesNeedingAttention: needingAttention,
		OverduePayments:            overduePayments,
		UpcomingLeaseExpiries:      upcomingExpiries,
		AttentionItems:             BuildAttentionItems(annotated),

		NeedsAttentionCount: len(needingAttention),
		OverduePaymentCount: len(overduePayments),
		ExpiringSoonCount:   len(upcomingExpiries),
	}
}

// BuildPropertyDetail assembles the single-property snapshot. The current
// payment is the latest by due date; history is ordered most recent first.
func BuildPropertyDetail(property *types.Property, payments []types.RentPayment, loading bool, errMsg string, ref time.Time) types.PropertyDetailViewModel {
	vm := types.PropertyDetailViewModel{
		Loading: types.LoadingState{
			IsLoading: loading,
		},
		Error: types.ErrorState{
			HasError:     errMsg != "",
			ErrorMessage: errMsg,
		},
		PaymentHistory:   []types.RentPayment{},
		AttentionReasons: []types.AttentionReason{},
	}
	if loading {
		vm.Loading.LoadingMessage = loadingMessage
	}
	if property == nil {
		return vm
	}

	history := make([]types.RentPayment, 0)
	for _, p := range payments {
		if p.PropertyID == property.ID {
			history = append(history, p)
		}
	}
	sort.SliceStable(history, func(i, j int) bool {
		return history[i].DueDate.After(history[j].DueDate)
	})

	vm.Property = property
	vm.HasProperty = true
	vm.HasTenant = property.Tenant != nil
	vm.PaymentHistory = history
	if len(history) > 0 {
		vm.CurrentPayment = &history[0]
	}
	vm.DaysUntilLeaseExpiry = DaysUntilExpiry(property.LeaseExpires, ref)

	// Unlike the dashboard's single-reason flag, the detail view lists every
	// condition that currently holds, in priority order.
	if HasOverduePayment(*property, payments) {
		vm.AttentionReasons = append(vm.AttentionReasons, types.ReasonOverdueRent)
	}
	if IsLeaseExpired(property.LeaseExpires, ref) {
		vm.AttentionReasons = append(vm.AttentionReasons, types.ReasonLeaseExpired)
	}
	if IsExpiringSoon(property.LeaseExpires, ref) {
		vm.AttentionReasons = append(vm.AttentionReasons, types.ReasonLeaseExpiringSoon)
	}
	vm.NeedsAttention = len(vm.AttentionReasons) > 0

	return vm
}
