package portfolio

import (
	"math"

	"github.com/hybel/portfolio/internal/types"
)

// Metrics holds the occupancy and income figures derived from the property
// collection alone.
type Metrics struct {
	TotalProperties int
	OccupancyRate   int // percentage, 0-100
	MonthlyIncome   int64
}

// StatusCounts partitions the property collection by occupancy status.
// The three counts always sum to the total property count.
type StatusCounts struct {
	Available int
	Rented    int
	Reserved  int
}

// CalculateMetrics derives occupancy rate and monthly income. Only rented
// properties contribute income; an empty portfolio yields zero occupancy
// rather than a division by zero.
func CalculateMetrics(properties []types.Property) Metrics {
	total := len(properties)

	rented := 0
	var income int64
	for _, p := range properties {
		if p.Status == types.StatusRented {
			rented++
			income += p.MonthlyRent
		}
	}

	rate := 0
	if total > 0 {
		rate = int(math.Round(float64(rented) / float64(total) * 100))
	}

	return Metrics{
		TotalProperties: total,
		OccupancyRate:   rate,
		MonthlyIncome:   income,
	}
}

// CalculateAverageRent returns the mean rent over rented properties,
// rounded to the nearest whole amount. Zero when nothing is rented.
func CalculateAverageRent(properties []types.Property) int64 {
	var total int64
	count := 0
	for _, p := range properties {
		if p.Status == types.StatusRented {
			total += p.MonthlyRent
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return int64(math.Round(float64(total) / float64(count)))
}

// CountByStatus partitions properties into the three occupancy statuses.
func CountByStatus(properties []types.Property) StatusCounts {
	var counts StatusCounts
	for _, p := range properties {
		switch p.Status {
		case types.StatusAvailable:
			counts.Available++
		case types.StatusRented:
			counts.Rented++
		case types.StatusReserved:
			counts.Reserved++
		}
	}
	return counts
}

// Distribution counts properties by type, city and status for the
// dashboard's breakdown widgets.
func Distribution(properties []types.Property) types.PropertyDistribution {
	dist := types.PropertyDistribution{
		ByType:   make(map[types.PropertyType]int),
		ByCity:   make(map[string]int),
		ByStatus: make(map[types.PropertyStatus]int),
	}
	for _, p := range properties {
		dist.ByType[p.Type]++
		dist.ByCity[p.City]++
		dist.ByStatus[p.Status]++
	}
	return dist
}
