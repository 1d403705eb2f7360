// Package portfolio implements the pure view-model derivation pipeline for
// the landlord dashboard: temporal lease classification, metric and payment
// aggregation, attention annotation, filtering, and the top-level view-model
// builder. Every function in this package is deterministic: given the same
// inputs (including the reference time) it produces the same output.
package portfolio

import (
	"math"
	"time"
)

// expiringSoonWindow is how far ahead a lease expiry counts as "expiring soon".
const expiringSoonWindow = 60 * 24 * time.Hour

// DaysUntilExpiry returns the number of days until the lease expires,
// rounded up, relative to ref. Negative when the lease is already expired.
// Returns nil when the property has no lease expiry date.
func DaysUntilExpiry(leaseExpires *time.Time, ref time.Time) *int {
	if leaseExpires == nil {
		return nil
	}
	days := int(math.Ceil(leaseExpires.Sub(ref).Hours() / 24))
	return &days
}

// IsExpiringSoon reports whether the lease expires strictly in the future
// and within the 60-day window. A lease expiring exactly at ref is neither
// expiring soon nor expired. It sits in a zero-day gap, and that boundary
// is load-bearing for attention-flag continuity.
func IsExpiringSoon(leaseExpires *time.Time, ref time.Time) bool {
	if leaseExpires == nil {
		return false
	}
	cutoff := ref.Add(expiringSoonWindow)
	return leaseExpires.After(ref) && !leaseExpires.After(cutoff)
}

// IsLeaseExpired reports whether the lease expiry is strictly in the past.
func IsLeaseExpired(leaseExpires *time.Time, ref time.Time) bool {
	days := DaysUntilExpiry(leaseExpires, ref)
	return days != nil && *days < 0
}
