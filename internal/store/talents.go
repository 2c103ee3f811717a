package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"talentmatch/matching-service/internal/model"
)

// TalentStore reads talent profiles, calendars and prior applications.
// Profiles are owned by the gateway's profile-edit flows; this store is
// read-only.
type TalentStore struct {
	pool *pgxpool.Pool
}

// NewTalentStore returns a configured TalentStore.
func NewTalentStore(pool *pgxpool.Pool) *TalentStore {
	return &TalentStore{pool: pool}
}

// GetProfile loads one talent profile by ID.
func (s *TalentStore) GetProfile(ctx context.Context, talentID string) (*model.TalentProfile, error) {
	var (
		p            model.TalentProfile
		availability string
		mobility     string
	)
	err := s.pool.QueryRow(ctx,
		`SELECT id, skills, experience_years, daily_rate, availability, mobility, location
		 FROM talent_profiles
		 WHERE id = $1`,
		talentID,
	).Scan(&p.ID, &p.Skills, &p.ExperienceYears, &p.DailyRate, &availability, &mobility, &p.Location)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTalentNotFound
		}
		return nil, fmt.Errorf("getProfile query: %w", err)
	}
	p.Availability = model.Availability(availability)
	p.Mobility = model.Mobility(mobility)
	return &p, nil
}

// ListCalendar returns all calendar entries of a talent, oldest first.
func (s *TalentStore) ListCalendar(ctx context.Context, talentID string) ([]model.CalendarEntry, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, talent_id, entry_date, entry_type
		 FROM calendar_entries
		 WHERE talent_id = $1
		 ORDER BY entry_date`,
		talentID,
	)
	if err != nil {
		return nil, fmt.Errorf("listCalendar query: %w", err)
	}
	defer rows.Close()

	entries := make([]model.CalendarEntry, 0)
	for rows.Next() {
		var (
			e         model.CalendarEntry
			entryType string
		)
		if err := rows.Scan(&e.ID, &e.TalentID, &e.Date, &entryType); err != nil {
			return nil, fmt.Errorf("listCalendar scan: %w", err)
		}
		e.Type = model.EntryType(entryType)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ListAppliedOfferIDs returns the IDs of all offers the talent has already
// applied to.
func (s *TalentStore) ListAppliedOfferIDs(ctx context.Context, talentID string) ([]string, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT offer_id FROM candidatures WHERE talent_id = $1`,
		talentID,
	)
	if err != nil {
		return nil, fmt.Errorf("listAppliedOfferIDs query: %w", err)
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("listAppliedOfferIDs scan: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
