package source

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hybel/portfolio/internal/types"
)

// SQLiteSource implements DataSource over a sqlite database. It serves the
// same contract as the stub; the schema is created and seeded at startup so
// demos survive restarts.
type SQLiteSource struct {
	db *sql.DB
}

// NewSQLiteSource wraps an open sqlite database.
func NewSQLiteSource(db *sql.DB) *SQLiteSource {
	return &SQLiteSource{db: db}
}

// CreateSchema creates the properties and rent_payments tables.
func (s *SQLiteSource) CreateSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS properties (
			id            TEXT PRIMARY KEY,
			address       TEXT NOT NULL,
			city          TEXT NOT NULL,
			postal_code   TEXT NOT NULL,
			type          TEXT NOT NULL,
			status        TEXT NOT NULL,
			monthly_rent  INTEGER NOT NULL,
			currency      TEXT NOT NULL,
			tenant_id     TEXT,
			tenant_name   TEXT,
			tenant_email  TEXT,
			tenant_phone  TEXT,
			lease_expires TIMESTAMP,
			images        TEXT NOT NULL DEFAULT '[]',
			created_at    TIMESTAMP NOT NULL,
			updated_at    TIMESTAMP NOT NULL
		);

		CREATE TABLE IF NOT EXISTS rent_payments (
			id               TEXT PRIMARY KEY,
			property_id      TEXT NOT NULL REFERENCES properties(id),
			property_address TEXT NOT NULL,
			tenant_id        TEXT NOT NULL,
			tenant_name      TEXT NOT NULL,
			amount           INTEGER NOT NULL,
			currency         TEXT NOT NULL,
			due_date         TIMESTAMP NOT NULL,
			paid_date        TIMESTAMP,
			status           TEXT NOT NULL,
			month            TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_payments_property
			ON rent_payments (property_id, due_date DESC);
	`)
	return err
}

// Seed inserts the given dataset, replacing rows with matching ids. Safe to
// run on every startup.
func (s *SQLiteSource) Seed(ctx context.Context, data types.PortfolioData) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer tx.Rollback()

	for _, p := range data.Properties {
		images, err := json.Marshal(p.Images)
		if err != nil {
			return fmt.Errorf("marshal images for %s: %w", p.ID, err)
		}
		var tenantID, tenantName, tenantEmail, tenantPhone sql.NullString
		if p.Tenant != nil {
			tenantID = sql.NullString{String: p.Tenant.ID, Valid: true}
			tenantName = sql.NullString{String: p.Tenant.Name, Valid: true}
			tenantEmail = sql.NullString{String: p.Tenant.Email, Valid: p.Tenant.Email != ""}
			tenantPhone = sql.NullString{String: p.Tenant.Phone, Valid: p.Tenant.Phone != ""}
		}
		var leaseExpires sql.NullTime
		if p.LeaseExpires != nil {
			leaseExpires = sql.NullTime{Time: *p.LeaseExpires, Valid: true}
		}

		_, err = tx.ExecContext(ctx, `
			INSERT OR REPLACE INTO properties (
				id, address, city, postal_code, type, status, monthly_rent,
				currency, tenant_id, tenant_name, tenant_email, tenant_phone,
				lease_expires, images, created_at, updated_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			p.ID, p.Address, p.City, p.PostalCode, string(p.Type), string(p.Status),
			p.MonthlyRent, p.Currency, tenantID, tenantName, tenantEmail, tenantPhone,
			leaseExpires, string(images), p.CreatedAt, p.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("seed property %s: %w", p.ID, err)
		}
	}

	for _, p := range data.Payments {
		var paidDate sql.NullTime
		if p.PaidDate != nil {
			paidDate = sql.NullTime{Time: *p.PaidDate, Valid: true}
		}
		_, err = tx.ExecContext(ctx, `
			INSERT OR REPLACE INTO rent_payments (
				id, property_id, property_address, tenant_id, tenant_name,
				amount, currency, due_date, paid_date, status, month
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			p.ID, p.PropertyID, p.PropertyAddress, p.TenantID, p.TenantName,
			p.Amount, p.Currency, p.DueDate, paidDate, string(p.Status), p.Month,
		)
		if err != nil {
			return fmt.Errorf("seed payment %s: %w", p.ID, err)
		}
	}

	return tx.Commit()
}

// LoadPortfolioData reads the full dataset.
func (s *SQLiteSource) LoadPortfolioData(ctx context.Context) (types.PortfolioData, error) {
	properties, err := s.loadProperties(ctx)
	if err != nil {
		return types.PortfolioData{}, err
	}
	payments, err := s.loadPayments(ctx)
	if err != nil {
		return types.PortfolioData{}, err
	}
	return types.PortfolioData{Properties: properties, Payments: payments}, nil
}

// GetPropertyByID returns one property, ErrServer for the sentinel id, or
// ErrNotFound.
func (s *SQLiteSource) GetPropertyByID(ctx context.Context, id string) (*types.Property, error) {
	if id == SentinelServerErrorID {
		return nil, ErrServer
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, address, city, postal_code, type, status, monthly_rent,
		       currency, tenant_id, tenant_name, tenant_email, tenant_phone,
		       lease_expires, images, created_at, updated_at
		FROM properties WHERE id = ?`, id)

	p, err := scanProperty(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query property %s: %w", id, err)
	}
	return &p, nil
}

func (s *SQLiteSource) loadProperties(ctx context.Context) ([]types.Property, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, address, city, postal_code, type, status, monthly_rent,
		       currency, tenant_id, tenant_name, tenant_email, tenant_phone,
		       lease_expires, images, created_at, updated_at
		FROM properties ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query properties: %w", err)
	}
	defer rows.Close()

	var properties []types.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("scan property: %w", err)
		}
		properties = append(properties, p)
	}
	return properties, rows.Err()
}

func (s *SQLiteSource) loadPayments(ctx context.Context) ([]types.RentPayment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, property_id, property_address, tenant_id, tenant_name,
		       amount, currency, due_date, paid_date, status, month
		FROM rent_payments ORDER BY due_date, id`)
	if err != nil {
		return nil, fmt.Errorf("query payments: %w", err)
	}
	defer rows.Close()

	var payments []types.RentPayment
	for rows.Next() {
		var p types.RentPayment
		var paidDate sql.NullTime
		var status string
		if err := rows.Scan(
			&p.ID, &p.PropertyID, &p.PropertyAddress, &p.TenantID, &p.TenantName,
			&p.Amount, &p.Currency, &p.DueDate, &paidDate, &status, &p.Month,
		); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		if paidDate.Valid {
			t := paidDate.Time
			p.PaidDate = &t
		}
		p.Status = types.PaymentStatus(status)
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanProperty(row rowScanner) (types.Property, error) {
	var p types.Property
	var propType, status, images string
	var tenantID, tenantName, tenantEmail, tenantPhone sql.NullString
	var leaseExpires sql.NullTime

	err := row.Scan(
		&p.ID, &p.Address, &p.City, &p.PostalCode, &propType, &status,
		&p.MonthlyRent, &p.Currency, &tenantID, &tenantName, &tenantEmail,
		&tenantPhone, &leaseExpires, &images, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return types.Property{}, err
	}

	p.Type = types.PropertyType(propType)
	p.Status = types.PropertyStatus(status)
	if tenantID.Valid {
		p.Tenant = &types.Tenant{
			ID:    tenantID.String,
			Name:  tenantName.String,
			Email: tenantEmail.String,
			Phone: tenantPhone.String,
		}
	}
	if leaseExpires.Valid {
		t := leaseExpires.Time
		p.LeaseExpires = &t
	}
	if err := json.Unmarshal([]byte(images), &p.Images); err != nil {
		return types.Property{}, fmt.Errorf("decode images for %s: %w", p.ID, err)
	}
	return p, nil
}

// Open opens a sqlite database at path with settings suitable for the
// single-writer dashboard workload.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetConnMaxIdleTime(time.Minute)

	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return db, nil
}
