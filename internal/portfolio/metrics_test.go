package portfolio

import (
	"testing"

	"github.com/hybel/portfolio/internal/types"
)

func makeProperty(id, city string, ptype types.PropertyType, status types.PropertyStatus, rent int64) types.Property {
	return types.Property{
		ID:          id,
		Address:     id + " street",
		City:        city,
		PostalCode:  "0001",
		Type:        ptype,
		Status:      status,
		MonthlyRent: rent,
		Currency:    types.DefaultCurrency,
	}
}

func TestCalculateMetrics_Empty(t *testing.T) {
	m := CalculateMetrics(nil)
	if m.OccupancyRate != 0 {
		t.Errorf("occupancy = %d, want 0", m.OccupancyRate)
	}
	if m.MonthlyIncome != 0 {
		t.Errorf("income = %d, want 0", m.MonthlyIncome)
	}
	if m.TotalProperties != 0 {
		t.Errorf("total = %d, want 0", m.TotalProperties)
	}
}

func TestCalculateMetrics_OnlyRentedEarn(t *testing.T) {
	properties := []types.Property{
		makeProperty("p1", "Oslo", types.TypeFlat, types.StatusRented, 10000),
		makeProperty("p2", "Oslo", types.TypeFlat, types.StatusAvailable, 9000),
		makeProperty("p3", "Bergen", types.TypeHouse, types.StatusReserved, 15000),
	}

	m := CalculateMetrics(properties)
	if m.MonthlyIncome != 10000 {
		t.Errorf("income = %d, want 10000", m.MonthlyIncome)
	}
	if m.OccupancyRate != 33 {
		t.Errorf("occupancy = %d, want 33", m.OccupancyRate)
	}
}

func TestCalculateMetrics_RoundsOccupancy(t *testing.T) {
	properties := []types.Property{
		makeProperty("p1", "Oslo", types.TypeFlat, types.StatusRented, 10000),
		makeProperty("p2", "Oslo", types.TypeFlat, types.StatusRented, 10000),
		makeProperty("p3", "Oslo", types.TypeFlat, types.StatusAvailable, 10000),
	}
	// 2/3 = 66.67 rounds to 67.
	if m := CalculateMetrics(properties); m.OccupancyRate != 67 {
		t.Errorf("occupancy = %d, want 67", m.OccupancyRate)
	}
}

func TestCalculateAverageRent(t *testing.T) {
	properties := []types.Property{
		makeProperty("p1", "Oslo", types.TypeFlat, types.StatusRented, 10000),
		makeProperty("p2", "Oslo", types.TypeFlat, types.StatusRented, 10001),
		makeProperty("p3", "Oslo", types.TypeFlat, types.StatusAvailable, 99999),
	}
	// (10000+10001)/2 = 10000.5 rounds to 10001; available is excluded.
	if avg := CalculateAverageRent(properties); avg != 10001 {
		t.Errorf("average = %d, want 10001", avg)
	}
}

func TestCalculateAverageRent_NoRented(t *testing.T) {
	properties := []types.Property{
		makeProperty("p1", "Oslo", types.TypeFlat, types.StatusAvailable, 10000),
	}
	if avg := CalculateAverageRent(properties); avg != 0 {
		t.Errorf("average = %d, want 0", avg)
	}
}

func TestCountByStatus_SumsToTotal(t *testing.T) {
	properties := []types.Property{
		makeProperty("p1", "Oslo", types.TypeFlat, types.StatusRented, 1),
		makeProperty("p2", "Oslo", types.TypeFlat, types.StatusRented, 1),
		makeProperty("p3", "Oslo", types.TypeFlat, types.StatusAvailable, 1),
		makeProperty("p4", "Oslo", types.TypeFlat, types.StatusReserved, 1),
	}
	counts := CountByStatus(properties)
	if counts.Rented != 2 || counts.Available != 1 || counts.Reserved != 1 {
		t.Errorf("counts = %+v, want 2/1/1", counts)
	}
	if counts.Rented+counts.Available+counts.Reserved != len(properties) {
		t.Error("status counts should sum to total property count")
	}
}

func TestDistribution(t *testing.T) {
	properties := []types.Property{
		makeProperty("p1", "Oslo", types.TypeFlat, types.StatusRented, 1),
		makeProperty("p2", "Oslo", types.TypeStudio, types.StatusAvailable, 1),
		makeProperty("p3", "Bergen", types.TypeFlat, types.StatusRented, 1),
	}
	dist := Distribution(properties)
	if dist.ByCity["Oslo"] != 2 || dist.ByCity["Bergen"] != 1 {
		t.Errorf("by city = %v", dist.ByCity)
	}
	if dist.ByType[types.TypeFlat] != 2 {
		t.Errorf("by type = %v", dist.ByType)
	}
	if dist.ByStatus[types.StatusRented] != 2 {
		t.Errorf("by status = %v", dist.ByStatus)
	}
}
