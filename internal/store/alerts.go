package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"talentmatch/matching-service/internal/model"
)

// AlertStore persists alert subscriptions. Alerts are deactivated, never
// deleted, so counters and timestamps stay auditable.
type AlertStore struct {
	pool *pgxpool.Pool
}

// NewAlertStore returns a configured AlertStore.
func NewAlertStore(pool *pgxpool.Pool) *AlertStore {
	return &AlertStore{pool: pool}
}

const alertColumns = `id, talent_id, name, skills, rate_min, mobility, locations,
	frequency, active, last_notified_at, sent_count, created_at, updated_at`

// Create inserts a new alert and fills the DB-generated fields.
func (s *AlertStore) Create(ctx context.Context, a *model.Alert) error {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO alerts (talent_id, name, skills, rate_min, mobility, locations, frequency, active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, sent_count, created_at, updated_at`,
		a.TalentID, a.Name, a.Skills, a.RateMin, mobilityParam(a.Mobility),
		a.Locations, string(a.Frequency), a.Active,
	).Scan(&a.ID, &a.SentCount, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create alert: %w", err)
	}
	return nil
}

// Update replaces the criteria of an alert, validating ownership.
func (s *AlertStore) Update(ctx context.Context, a *model.Alert) error {
	err := s.pool.QueryRow(ctx,
		`UPDATE alerts
		 SET name = $1, skills = $2, rate_min = $3, mobility = $4,
		     locations = $5, frequency = $6, updated_at = NOW()
		 WHERE id = $7 AND talent_id = $8
		 RETURNING updated_at`,
		a.Name, a.Skills, a.RateMin, mobilityParam(a.Mobility),
		a.Locations, string(a.Frequency), a.ID, a.TalentID,
	).Scan(&a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrAlertNotFound
		}
		return fmt.Errorf("update alert: %w", err)
	}
	return nil
}

// Get loads one alert by ID, validating ownership.
func (s *AlertStore) Get(ctx context.Context, talentID, alertID string) (*model.Alert, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+alertColumns+` FROM alerts WHERE id = $1 AND talent_id = $2`,
		alertID, talentID,
	)
	a, err := scanAlert(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAlertNotFound
		}
		return nil, fmt.Errorf("get alert: %w", err)
	}
	return a, nil
}

// ListByTalent returns all alerts of a talent, newest first.
func (s *AlertStore) ListByTalent(ctx context.Context, talentID string) ([]model.Alert, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+alertColumns+` FROM alerts WHERE talent_id = $1 ORDER BY created_at DESC`,
		talentID,
	)
	if err != nil {
		return nil, fmt.Errorf("listByTalent query: %w", err)
	}
	return collectAlerts(rows)
}

// ListActiveByFrequency returns the active alerts dispatched at the given
// frequency.
func (s *AlertStore) ListActiveByFrequency(ctx context.Context, freq model.Frequency) ([]model.Alert, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+alertColumns+` FROM alerts WHERE active = true AND frequency = $1`,
		string(freq),
	)
	if err != nil {
		return nil, fmt.Errorf("listActiveByFrequency query: %w", err)
	}
	return collectAlerts(rows)
}

// Deactivate switches an alert off, validating ownership.
func (s *AlertStore) Deactivate(ctx context.Context, talentID, alertID string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE alerts SET active = false, updated_at = NOW()
		 WHERE id = $1 AND talent_id = $2`,
		alertID, talentID,
	)
	if err != nil {
		return fmt.Errorf("deactivate alert: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrAlertNotFound
	}
	return nil
}

// RecordDispatch adds sent notifications to the counter and stamps the
// last-notified timestamp.
func (s *AlertStore) RecordDispatch(ctx context.Context, alertID string, sent int, at time.Time) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE alerts
		 SET sent_count = sent_count + $1, last_notified_at = $2, updated_at = NOW()
		 WHERE id = $3`,
		sent, at, alertID,
	)
	if err != nil {
		return fmt.Errorf("recordDispatch: %w", err)
	}
	return nil
}

func collectAlerts(rows pgx.Rows) ([]model.Alert, error) {
	defer rows.Close()
	alerts := make([]model.Alert, 0)
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, fmt.Errorf("alert scan: %w", err)
		}
		alerts = append(alerts, *a)
	}
	return alerts, rows.Err()
}

func scanAlert(row rowScanner) (*model.Alert, error) {
	var (
		a         model.Alert
		mobility  *string
		frequency string
	)
	err := row.Scan(
		&a.ID, &a.TalentID, &a.Name, &a.Skills, &a.RateMin, &mobility,
		&a.Locations, &frequency, &a.Active, &a.LastNotifiedAt,
		&a.SentCount, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if mobility != nil {
		m := model.Mobility(*mobility)
		a.Mobility = &m
	}
	a.Frequency = model.Frequency(frequency)
	return &a, nil
}

func mobilityParam(m *model.Mobility) *string {
	if m == nil {
		return nil
	}
	s := string(*m)
	return &s
}
