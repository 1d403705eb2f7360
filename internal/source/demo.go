package source

import (
	"time"

	"github.com/hybel/portfolio/internal/types"
)

// Demo dataset served by the stub source and used to seed the sqlite source.
// Mirrors a small Norwegian rental portfolio with one overdue tenant.

func date(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic("source: bad demo date " + value)
	}
	return t
}

func datePtr(value string) *time.Time {
	t := date(value)
	return &t
}

var demoImages = []string{
	"https://picsum.photos/seed/apartment1/800/600",
	"https://picsum.photos/seed/apartment2/800/600",
	"https://picsum.photos/seed/apartment3/800/600",
}

// DemoData bundles the demo collections into a source payload.
func DemoData() types.PortfolioData {
	return types.PortfolioData{
		Properties: DemoProperties(),
		Payments:   DemoPayments(),
	}
}

// DemoProperties returns a fresh copy of the demo property collection.
func DemoProperties() []types.Property {
	created := date("2024-01-01")
	updated := date("2025-02-01")

	return []types.Property{
		{
			ID:          "prop-1",
			Address:     "Thereses gate 12",
			City:        "Oslo",
			PostalCode:  "0452",
			Type:        types.TypeFlat,
			Status:      types.StatusRented,
			MonthlyRent: 12500,
			Currency:    types.DefaultCurrency,
			Tenant: &types.Tenant{
				ID:    "tenant-1",
				Name:  "Anna M.",
				Email: "anna.m@example.com",
				Phone: "+47 123 45 678",
			},
			LeaseExpires: datePtr("2026-08-31"),
			Images:       demoImages,
			CreatedAt:    created,
			UpdatedAt:    updated,
		},
		{
			ID:          "prop-2",
			Address:     "Grünerløkka 45",
			City:        "Oslo",
			PostalCode:  "0552",
			Type:        types.TypeFlat,
			Status:      types.StatusRented,
			MonthlyRent: 14800,
			Currency:    types.DefaultCurrency,
			Tenant: &types.Tenant{
				ID:    "tenant-2",
				Name:  "Erik S.",
				Email: "erik.s@example.com",
				Phone: "+47 234 56 789",
			},
			LeaseExpires: datePtr("2025-04-15"),
			Images:       demoImages,
			CreatedAt:    created,
			UpdatedAt:    updated,
		},
		{
			ID:          "prop-3",
			Address:     "Nordnes gate 8",
			City:        "Bergen",
			PostalCode:  "5005",
			Type:        types.TypeFlat,
			Status:      types.StatusAvailable,
			MonthlyRent: 10200,
			Currency:    types.DefaultCurrency,
			Images:      demoImages,
			CreatedAt:   created,
			UpdatedAt:   updated,
		},
		{
			ID:          "prop-4",
			Address:     "Solsiden 22",
			City:        "Trondheim",
			PostalCode:  "7014",
			Type:        types.TypeHouse,
			Status:      types.StatusReserved,
			MonthlyRent: 16500,
			Currency:    types.DefaultCurrency,
			Tenant: &types.Tenant{
				ID:    "tenant-pending",
				Name:  "Pending",
				Email: "pending@example.com",
			},
			LeaseExpires: datePtr("2026-01-01"),
			Images:       demoImages,
			CreatedAt:    created,
			UpdatedAt:    updated,
		},
		{
			ID:          "prop-5",
			Address:     "Frognerveien 33",
			City:        "Oslo",
			PostalCode:  "0263",
			Type:        types.TypeFlat,
			Status:      types.StatusRented,
			MonthlyRent: 18200,
			Currency:    types.DefaultCurrency,
			Tenant: &types.Tenant{
				ID:    "tenant-3",
				Name:  "Sofie K.",
				Email: "sofie.k@example.com",
				Phone: "+47 345 67 890",
			},
			LeaseExpires: datePtr("2025-11-30"),
			Images:       demoImages,
			CreatedAt:    created,
			UpdatedAt:    updated,
		},
		{
			ID:          "prop-6",
			Address:     "Damsgårdsveien 61",
			City:        "Bergen",
			PostalCode:  "5058",
			Type:        types.TypeStudio,
			Status:      types.StatusRented,
			MonthlyRent: 8900,
			Currency:    types.DefaultCurrency,
			Tenant: &types.Tenant{
				ID:    "tenant-4",
				Name:  "Mads L.",
				Email: "mads.l@example.com",
				Phone: "+47 456 78 901",
			},
			LeaseExpires: datePtr("2025-09-01"),
			Images:       demoImages,
			CreatedAt:    created,
			UpdatedAt:    updated,
		},
	}
}

// DemoPayments returns a fresh copy of the demo payment collection for the
// February 2025 billing month.
func DemoPayments() []types.RentPayment {
	return []types.RentPayment{
		{
			ID:              "pay-1",
			PropertyID:      "prop-1",
			PropertyAddress: "Thereses gate 12",
			TenantID:        "tenant-1",
			TenantName:      "Anna M.",
			Amount:          12500,
			Currency:        types.DefaultCurrency,
			DueDate:         date("2025-02-01"),
			PaidDate:        datePtr("2025-02-01"),
			Status:          types.PaymentPaid,
			Month:           "2025-02",
		},
		{
			ID:              "pay-2",
			PropertyID:      "prop-2",
			PropertyAddress: "Grünerløkka 45",
			TenantID:        "tenant-2",
			TenantName:      "Erik S.",
			Amount:          14800,
			Currency:        types.DefaultCurrency,
			DueDate:         date("2025-02-01"),
			Status:          types.PaymentOverdue,
			Month:           "2025-02",
		},
		{
			ID:              "pay-3",
			PropertyID:      "prop-5",
			PropertyAddress: "Frognerveien 33",
			TenantID:        "tenant-3",
			TenantName:      "Sofie K.",
			Amount:          18200,
			Currency:        types.DefaultCurrency,
			DueDate:         date("2025-02-01"),
			PaidDate:        datePtr("2025-02-01"),
			Status:          types.PaymentPaid,
			Month:           "2025-02",
		},
	}
}
