package portfolio

import (
	"fmt"
	"time"

	"github.com/hybel/portfolio/internal/types"
)

// attentionRule is one row of the ordered attention decision table.
// Rules are evaluated top to bottom; the first match wins, so the slice
// order IS the priority contract: overdue rent > expired lease > expiring
// soon.
type attentionRule struct {
	reason   types.AttentionReason
	severity types.AttentionSeverity
	matches  func(hasOverdue, expired, expiringSoon bool) bool
}

var attentionRules = []attentionRule{
	{
		reason:   types.ReasonOverdueRent,
		severity: types.SeverityHigh,
		matches:  func(hasOverdue, _, _ bool) bool { return hasOverdue },
	},
	{
		reason:   types.ReasonLeaseExpired,
		severity: types.SeverityHigh,
		matches:  func(_, expired, _ bool) bool { return expired },
	},
	{
		reason:   types.ReasonLeaseExpiringSoon,
		severity: types.SeverityMedium,
		matches:  func(_, _, expiringSoon bool) bool { return expiringSoon },
	},
}

// decideAttention returns the highest-priority matching reason, or nil.
func decideAttention(hasOverdue, expired, expiringSoon bool) *types.AttentionReason {
	for _, rule := range attentionRules {
		if rule.matches(hasOverdue, expired, expiringSoon) {
			reason := rule.reason
			return &reason
		}
	}
	return nil
}

// NeedsAttention reports whether a property should be flagged for landlord
// review: it has an overdue payment, an expired lease, or a lease expiring
// within 60 days of ref.
func NeedsAttention(property types.Property, payments []types.RentPayment, ref time.Time) bool {
	return HasOverduePayment(property, payments) ||
		IsLeaseExpired(property.LeaseExpires, ref) ||
		IsExpiringSoon(property.LeaseExpires, ref)
}

// AnnotateProperty produces a PropertyWithStatus carrying the derived
// attention fields. The source property is copied, never mutated.
func AnnotateProperty(property types.Property, payments []types.RentPayment, ref time.Time) types.PropertyWithStatus {
	hasOverdue := HasOverduePayment(property, payments)
	expired := IsLeaseExpired(property.LeaseExpires, ref)
	expiringSoon := IsExpiringSoon(property.LeaseExpires, ref)
	reason := decideAttention(hasOverdue, expired, expiringSoon)

	return types.PropertyWithStatus{
		Property:             property,
		NeedsAttention:       reason != nil,
		AttentionReason:      reason,
		DaysUntilLeaseExpiry: DaysUntilExpiry(property.LeaseExpires, ref),
		HasOverduePayment:    hasOverdue,
	}
}

// AnnotateAll annotates every property in order.
func AnnotateAll(properties []types.Property, payments []types.RentPayment, ref time.Time) []types.PropertyWithStatus {
	annotated := make([]types.PropertyWithStatus, 0, len(properties))
	for _, p := range properties {
		annotated = append(annotated, AnnotateProperty(p, payments, ref))
	}
	return annotated
}

// BuildAttentionItems turns flagged annotated properties into actionable
// review-list entries, preserving property order.
func BuildAttentionItems(annotated []types.PropertyWithStatus) []types.AttentionItem {
	items := make([]types.AttentionItem, 0)
	for _, p := range annotated {
		if p.AttentionReason == nil {
			continue
		}
		items = append(items, types.AttentionItem{
			PropertyID:      p.ID,
			PropertyAddress: p.Address,
			Reason:          *p.AttentionReason,
			Severity:        severityFor(*p.AttentionReason),
			Message:         attentionMessage(p),
			ActionLabel:     actionLabel(*p.AttentionReason),
		})
	}
	return items
}

func severityFor(reason types.AttentionReason) types.AttentionSeverity {
	for _, rule := range attentionRules {
		if rule.reason == reason {
			return rule.severity
		}
	}
	return types.SeverityLow
}

func attentionMessage(p types.PropertyWithStatus) string {
	switch {
	case p.AttentionReason == nil:
		return ""
	case *p.AttentionReason == types.ReasonOverdueRent:
		return fmt.Sprintf("%s has an overdue rent payment", p.Address)
	case *p.AttentionReason == types.ReasonLeaseExpired:
		return fmt.Sprintf("The lease for %s has expired", p.Address)
	default:
		if p.DaysUntilLeaseExpiry != nil {
			return fmt.Sprintf("The lease for %s expires in %d days", p.Address, *p.DaysUntilLeaseExpiry)
		}
		return fmt.Sprintf("The lease for %s expires soon", p.Address)
	}
}

func actionLabel(reason types.AttentionReason) string {
	switch reason {
	case types.ReasonOverdueRent:
		return "Review payment"
	case types.ReasonLeaseExpired:
		return "Renew or relist"
	default:
		return "Contact tenant"
	}
}
