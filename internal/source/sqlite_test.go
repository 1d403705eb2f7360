package source

import (
	"context"
	"errors"
	"testing"

	_ "modernc.org/sqlite"
)

func sqliteFixture(t *testing.T) *SQLiteSource {
	t.Helper()
	ctx := context.Background()

	db, err := Open(ctx, "file::memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	src := NewSQLiteSource(db)
	if err := src.CreateSchema(ctx); err != nil {
		t.Fatalf("schema: %v", err)
	}
	if err := src.Seed(ctx, DemoData()); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return src
}

func TestSQLiteSource_RoundTrip(t *testing.T) {
	src := sqliteFixture(t)
	ctx := context.Background()

	data, err := src.LoadPortfolioData(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	demo := DemoData()
	if len(data.Properties) != len(demo.Properties) {
		t.Fatalf("got %d properties, want %d", len(data.Properties), len(demo.Properties))
	}
	if len(data.Payments) != len(demo.Payments) {
		t.Fatalf("got %d payments, want %d", len(data.Payments), len(demo.Payments))
	}

	byID := make(map[string]int)
	for i, p := range data.Properties {
		byID[p.ID] = i
	}
	p1 := data.Properties[byID["prop-1"]]
	if p1.Address != "Thereses gate 12" || p1.City != "Oslo" {
		t.Errorf("prop-1 = %s, %s", p1.Address, p1.City)
	}
	if p1.Tenant == nil || p1.Tenant.Name != "Anna M." {
		t.Errorf("prop-1 tenant = %+v", p1.Tenant)
	}
	if p1.LeaseExpires == nil {
		t.Error("prop-1 lease expiry lost in round trip")
	}
	if len(p1.Images) == 0 {
		t.Error("prop-1 images lost in round trip")
	}

	p3 := data.Properties[byID["prop-3"]]
	if p3.Tenant != nil {
		t.Error("vacant property should have no tenant")
	}
	if p3.LeaseExpires != nil {
		t.Error("vacant property should have no lease expiry")
	}
}

func TestSQLiteSource_SeedIsIdempotent(t *testing.T) {
	src := sqliteFixture(t)
	ctx := context.Background()

	if err := src.Seed(ctx, DemoData()); err != nil {
		t.Fatalf("second seed: %v", err)
	}

	data, err := src.LoadPortfolioData(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(data.Properties) != len(DemoProperties()) {
		t.Errorf("got %d properties after reseed, want %d", len(data.Properties), len(DemoProperties()))
	}
}

func TestSQLiteSource_GetPropertyByID(t *testing.T) {
	src := sqliteFixture(t)
	ctx := context.Background()

	p, err := src.GetPropertyByID(ctx, "prop-6")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if p.City != "Bergen" {
		t.Errorf("city = %q, want Bergen", p.City)
	}

	if _, err := src.GetPropertyByID(ctx, "no-such-id"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}

	if _, err := src.GetPropertyByID(ctx, SentinelServerErrorID); !errors.Is(err, ErrServer) {
		t.Errorf("err = %v, want ErrServer", err)
	}
}

func TestSQLiteSource_PaymentStatusSurvives(t *testing.T) {
	src := sqliteFixture(t)

	data, err := src.LoadPortfolioData(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	overdue := 0
	for _, p := range data.Payments {
		if p.Status == "overdue" {
			overdue++
			if p.PaidDate != nil {
				t.Error("overdue demo payment should have no paid date")
			}
		}
	}
	if overdue != 1 {
		t.Errorf("got %d overdue payments, want 1", overdue)
	}
}
