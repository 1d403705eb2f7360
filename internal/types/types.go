// Package types provides the shared domain model for the landlord portfolio
// dashboard: properties, rent payments, filters, and the derived aggregate
// types consumed by the view-model pipeline.
package types

import (
	"time"
)

// DefaultCurrency is the fixed currency assumption for all monetary amounts.
const DefaultCurrency = "NOK"

// PropertyStatus is the occupancy status of a rental property.
type PropertyStatus string

const (
	StatusAvailable PropertyStatus = "available"
	StatusRented    PropertyStatus = "rented"
	StatusReserved  PropertyStatus = "reserved"
)

// PropertyType classifies the kind of rental unit.
type PropertyType string

const (
	TypeFlat   PropertyType = "flat"
	TypeHouse  PropertyType = "house"
	TypeStudio PropertyType = "studio"
)

// Tenant holds contact information for the current tenant of a property.
type Tenant struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// Property is an immutable rental property record. Derived facts live on
// PropertyWithStatus; a Property itself is never mutated in place.
type Property struct {
	ID           string         `json:"id"`
	Address      string         `json:"address"`
	City         string         `json:"city"`
	PostalCode   string         `json:"postal_code"`
	Type         PropertyType   `json:"type"`
	Status       PropertyStatus `json:"status"`
	MonthlyRent  int64          `json:"monthly_rent"`
	Currency     string         `json:"currency"`
	Tenant       *Tenant        `json:"tenant,omitempty"`
	LeaseExpires *time.Time     `json:"lease_expires,omitempty"`
	Images       []string       `json:"images,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// PaymentStatus is the settlement state of a rent payment. The status is
// authoritative input from the source; it is never derived from due dates
// at this layer.
type PaymentStatus string

const (
	PaymentPaid    PaymentStatus = "paid"
	PaymentPending PaymentStatus = "pending"
	PaymentOverdue PaymentStatus = "overdue"
)

// RentPayment is an immutable monthly rent payment record.
type RentPayment struct {
	ID              string        `json:"id"`
	PropertyID      string        `json:"property_id"`
	PropertyAddress string        `json:"property_address"`
	TenantID        string        `json:"tenant_id"`
	TenantName      string        `json:"tenant_name"`
	Amount          int64         `json:"amount"`
	Currency        string        `json:"currency"`
	DueDate         time.Time     `json:"due_date"`
	PaidDate        *time.Time    `json:"paid_date,omitempty"`
	Status          PaymentStatus `json:"status"`
	Month           string        `json:"month"` // billing month, "YYYY-MM"
}

// AttentionReason identifies the single highest-priority condition that
// flags a property for landlord review.
type AttentionReason string

const (
	ReasonOverdueRent       AttentionReason = "overdue_rent"
	ReasonLeaseExpiringSoon AttentionReason = "lease_expiring_soon"
	ReasonLeaseExpired      AttentionReason = "lease_expired"
)

// PropertyWithStatus is a Property enriched with derived attention fields.
// It is recomputed fresh on every pipeline run and never stored.
type PropertyWithStatus struct {
	Property

	NeedsAttention       bool             `json:"needs_attention"`
	AttentionReason      *AttentionReason `json:"attention_reason,omitempty"`
	DaysUntilLeaseExpiry *int             `json:"days_until_lease_expiry,omitempty"`
	HasOverduePayment    bool             `json:"has_overdue_payment"`
}

// PropertyFilters is the set of user-selected narrowing criteria. The zero
// value means "no filters active": an unset field never excludes anything.
type PropertyFilters struct {
	SearchTerm        string          `json:"search_term"`
	Status            *PropertyStatus `json:"status,omitempty"`
	Type              *PropertyType   `json:"type,omitempty"`
	City              *string         `json:"city,omitempty"`
	HasOverduePayment bool            `json:"has_overdue_payment"`
	LeaseExpiringSoon bool            `json:"lease_expiring_soon"` // within 60 days
	NeedsAttention    bool            `json:"needs_attention"`
}

// SortDirection orders a property sort ascending or descending.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// PropertySortField names a sortable column of the property table.
type PropertySortField string

const (
	SortByAddress     PropertySortField = "address"
	SortByRent        PropertySortField = "rent"
	SortByStatus      PropertySortField = "status"
	SortByLeaseExpiry PropertySortField = "leaseExpiry"
	SortByTenant      PropertySortField = "tenant"
)

// SortOptions pairs a sort field with a direction.
type SortOptions struct {
	Field     PropertySortField `json:"field"`
	Direction SortDirection     `json:"direction"`
}

// PortfolioStatistics holds the key derived metrics for the dashboard header.
type PortfolioStatistics struct {
	TotalProperties            int   `json:"total_properties"`
	AvailableProperties        int   `json:"available_properties"`
	RentedProperties           int   `json:"rented_properties"`
	ReservedProperties         int   `json:"reserved_properties"`
	OccupancyRate              int   `json:"occupancy_rate"` // percentage, 0-100
	TotalMonthlyIncome         int64 `json:"total_monthly_income"`
	AverageRent                int64 `json:"average_rent"`
	PropertiesNeedingAttention int   `json:"properties_needing_attention"`
}

// PaymentSummary aggregates rent payments by status. Every payment counts
// toward exactly one status bucket; TotalExpected covers all of them.
type PaymentSummary struct {
	TotalExpected int64 `json:"total_expected"`
	TotalPaid     int64 `json:"total_paid"`
	TotalPending  int64 `json:"total_pending"`
	TotalOverdue  int64 `json:"total_overdue"`
	PaidCount     int   `json:"paid_count"`
	PendingCount  int   `json:"pending_count"`
	OverdueCount  int   `json:"overdue_count"`
}

// MonthlyPaymentOverview aggregates one billing month of payments.
type MonthlyPaymentOverview struct {
	Month          string        `json:"month"`
	TotalExpected  int64         `json:"total_expected"`
	TotalCollected int64         `json:"total_collected"`
	CollectionRate int           `json:"collection_rate"` // percentage
	Payments       []RentPayment `json:"payments"`
}

// IncomeBreakdown is a presentation-oriented restatement of PaymentSummary.
type IncomeBreakdown struct {
	ExpectedMonthly    int64 `json:"expected_monthly"`
	CollectedThisMonth int64 `json:"collected_this_month"`
	PendingThisMonth   int64 `json:"pending_this_month"`
	OverdueAmount      int64 `json:"overdue_amount"`
}

// PropertyDistribution counts properties by type, city and status.
type PropertyDistribution struct {
	ByType   map[PropertyType]int   `json:"by_type"`
	ByCity   map[string]int         `json:"by_city"`
	ByStatus map[PropertyStatus]int `json:"by_status"`
}

// AttentionSeverity ranks how urgently an attention item needs review.
type AttentionSeverity string

const (
	SeverityHigh   AttentionSeverity = "high"
	SeverityMedium AttentionSeverity = "medium"
	SeverityLow    AttentionSeverity = "low"
)

// AttentionItem is a single actionable entry in the landlord's review list.
type AttentionItem struct {
	PropertyID      string            `json:"property_id"`
	PropertyAddress string            `json:"property_address"`
	Reason          AttentionReason   `json:"reason"`
	Severity        AttentionSeverity `json:"severity"`
	Message         string            `json:"message"`
	ActionLabel     string            `json:"action_label"`
}

// LoadingState describes whether the dashboard is waiting on the source.
type LoadingState struct {
	IsLoading      bool   `json:"is_loading"`
	LoadingMessage string `json:"loading_message,omitempty"`
}

// ErrorState surfaces an upstream data-source failure to the presentation layer.
type ErrorState struct {
	HasError     bool   `json:"has_error"`
	ErrorMessage string `json:"error_message,omitempty"`
}

// PortfolioViewModel is the complete derived snapshot consumed by the
// presentation layer. Every field is a pure function of the raw collections,
// the filters, the loading/error flags, and the reference time at the instant
// of construction.
type PortfolioViewModel struct {
	Loading LoadingState `json:"loading"`
	Error   ErrorState   `json:"error"`

	Properties         []PropertyWithStatus `json:"properties"`
	FilteredProperties []PropertyWithStatus `json:"filtered_properties"`
	Payments           []RentPayment        `json:"payments"`

	Statistics      PortfolioStatistics      `json:"statistics"`
	PaymentSummary  PaymentSummary           `json:"payment_summary"`
	IncomeBreakdown IncomeBreakdown          `json:"income_breakdown"`
	MonthlyOverview []MonthlyPaymentOverview `json:"monthly_overview"`

	Filters PropertyFilters `json:"filters"`
	Sort    SortOptions     `json:"sort"`

	HasProperties    bool `json:"has_properties"`
	HasActiveFilters bool `json:"has_active_filters"`
	ShowEmptyState   bool `json:"show_empty_state"`

	AvailableCities            []string             `json:"available_cities"`
	PropertiesNeedingAttention []PropertyWithStatus `json:"properties_needing_attention"`
	OverduePayments            []RentPayment        `json:"overdue_payments"`
	UpcomingLeaseExpiries      []PropertyWithStatus `json:"upcoming_lease_expiries"`
	AttentionItems             []AttentionItem      `json:"attention_items"`

	NeedsAttentionCount int `json:"needs_attention_count"`
	OverduePaymentCount int `json:"overdue_payment_count"`
	ExpiringSoonCount   int `json:"expiring_soon_count"`
}

// PropertyDetailViewModel is the derived snapshot for a single property page.
type PropertyDetailViewModel struct {
	Loading LoadingState `json:"loading"`
	Error   ErrorState   `json:"error"`

	Property       *Property     `json:"property,omitempty"`
	CurrentPayment *RentPayment  `json:"current_payment,omitempty"`
	PaymentHistory []RentPayment `json:"payment_history"`

	HasProperty          bool              `json:"has_property"`
	HasTenant            bool              `json:"has_tenant"`
	DaysUntilLeaseExpiry *int              `json:"days_until_lease_expiry,omitempty"`
	NeedsAttention       bool              `json:"needs_attention"`
	AttentionReasons     []AttentionReason `json:"attention_reasons"`
}

// PortfolioData is the payload a data source resolves with on success.
type PortfolioData struct {
	Properties []Property    `json:"properties"`
	Payments   []RentPayment `json:"payments"`
}
