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

// OfferStore reads published offers. Lifecycle transitions belong to the
// gateway's publication flows.
type OfferStore struct {
	pool *pgxpool.Pool
}

// NewOfferStore returns a configured OfferStore.
func NewOfferStore(pool *pgxpool.Pool) *OfferStore {
	return &OfferStore{pool: pool}
}

const offerColumns = `id, slug, title, required_skills, desired_skills,
	min_experience, rate_min, rate_max, mobility, location,
	start_date, end_date, status, published_at`

// GetPublished resolves an offer by internal ID or public slug. Drafts and
// closed offers are misses.
func (s *OfferStore) GetPublished(ctx context.Context, ref string) (*model.Offer, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+offerColumns+`
		 FROM offers
		 WHERE (id::text = $1 OR slug = $1) AND status = 'PUBLISHED'`,
		ref,
	)
	offer, err := scanOffer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOfferNotFound
		}
		return nil, fmt.Errorf("getPublished query: %w", err)
	}
	return offer, nil
}

// ListPublished returns all published offers, newest first.
func (s *OfferStore) ListPublished(ctx context.Context) ([]model.Offer, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+offerColumns+`
		 FROM offers
		 WHERE status = 'PUBLISHED'
		 ORDER BY published_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("listPublished query: %w", err)
	}
	return collectOffers(rows)
}

// ListPublishedBetween returns offers published in the half-open window
// [since, until), newest first. The half-open bound keeps consecutive
// periodic windows non-overlapping.
func (s *OfferStore) ListPublishedBetween(ctx context.Context, since, until time.Time) ([]model.Offer, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+offerColumns+`
		 FROM offers
		 WHERE status = 'PUBLISHED'
		   AND published_at >= $1 AND published_at < $2
		 ORDER BY published_at DESC`,
		since, until,
	)
	if err != nil {
		return nil, fmt.Errorf("listPublishedBetween query: %w", err)
	}
	return collectOffers(rows)
}

func collectOffers(rows pgx.Rows) ([]model.Offer, error) {
	defer rows.Close()
	offers := make([]model.Offer, 0)
	for rows.Next() {
		offer, err := scanOffer(rows)
		if err != nil {
			return nil, fmt.Errorf("offer scan: %w", err)
		}
		offers = append(offers, *offer)
	}
	return offers, rows.Err()
}

func scanOffer(row rowScanner) (*model.Offer, error) {
	var (
		o        model.Offer
		mobility string
		status   string
	)
	err := row.Scan(
		&o.ID, &o.Slug, &o.Title, &o.RequiredSkills, &o.DesiredSkills,
		&o.MinExperience, &o.RateMin, &o.RateMax, &mobility, &o.Location,
		&o.StartDate, &o.EndDate, &status, &o.PublishedAt,
	)
	if err != nil {
		return nil, err
	}
	o.Mobility = model.Mobility(mobility)
	o.Status = model.OfferStatus(status)
	return &o, nil
}
