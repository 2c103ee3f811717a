package alert

import (
	"context"
	"fmt"
	"strings"
	"time"

	"talentmatch/matching-service/internal/model"
)

// Input is the subscription shape accepted at the boundary, both for saved
// alerts and for ad-hoc previews. Field names follow the gateway contract.
type Input struct {
	Name      string   `json:"name"`
	Skills    []string `json:"skills"`
	TJMMin    *int     `json:"tjmMin"`
	Mobilite  *string  `json:"mobilite"`
	Lieux     []string `json:"lieux"`
	Frequence string   `json:"frequence"`
}

// ValidationError wraps a user-facing validation message.
type ValidationError struct{ Msg string }

func (e *ValidationError) Error() string { return e.Msg }

// Store is the subscription storage consumed by the Service.
type Store interface {
	Create(ctx context.Context, a *model.Alert) error
	Update(ctx context.Context, a *model.Alert) error
	Get(ctx context.Context, talentID, alertID string) (*model.Alert, error)
	ListByTalent(ctx context.Context, talentID string) ([]model.Alert, error)
	Deactivate(ctx context.Context, talentID, alertID string) error
}

// OfferLister provides the currently published offers for previews.
type OfferLister interface {
	ListPublished(ctx context.Context) ([]model.Offer, error)
}

// Service implements the subscription surface: create, update, list,
// deactivate and ad-hoc preview. All inputs are validated here, so the
// matcher itself can assume well-typed values.
type Service struct {
	store  Store
	offers OfferLister
}

// NewService returns a configured Service.
func NewService(store Store, offers OfferLister) *Service {
	return &Service{store: store, offers: offers}
}

// Create validates the input and saves a new active alert for the talent.
func (s *Service) Create(ctx context.Context, talentID string, in Input) (*model.Alert, error) {
	a, err := buildAlert(in)
	if err != nil {
		return nil, err
	}
	a.TalentID = talentID
	a.Active = true

	if err := s.store.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("create alert: %w", err)
	}
	return a, nil
}

// Update replaces the criteria of an existing alert owned by the talent.
// Past notifications are untouched: editing never retroactively deduplicates.
func (s *Service) Update(ctx context.Context, talentID, alertID string, in Input) (*model.Alert, error) {
	current, err := s.store.Get(ctx, talentID, alertID)
	if err != nil {
		return nil, err
	}

	updated, err := buildAlert(in)
	if err != nil {
		return nil, err
	}
	current.Name = updated.Name
	current.Skills = updated.Skills
	current.RateMin = updated.RateMin
	current.Mobility = updated.Mobility
	current.Locations = updated.Locations
	current.Frequency = updated.Frequency
	current.UpdatedAt = time.Now()

	if err := s.store.Update(ctx, current); err != nil {
		return nil, fmt.Errorf("update alert: %w", err)
	}
	return current, nil
}

// List returns all alerts of the talent, active and inactive.
func (s *Service) List(ctx context.Context, talentID string) ([]model.Alert, error) {
	alerts, err := s.store.ListByTalent(ctx, talentID)
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}
	return alerts, nil
}

// Deactivate switches an alert off. The row is kept for audit history.
func (s *Service) Deactivate(ctx context.Context, talentID, alertID string) error {
	return s.store.Deactivate(ctx, talentID, alertID)
}

// Preview counts the currently published offers an unsaved alert would
// match. It runs the exact matcher used by the dispatchers, so the count is
// consistent with what an equivalent saved alert would later produce.
func (s *Service) Preview(ctx context.Context, in Input) (int, error) {
	a, err := buildAlert(in)
	if err != nil {
		return 0, err
	}

	offers, err := s.offers.ListPublished(ctx)
	if err != nil {
		return 0, fmt.Errorf("list published offers: %w", err)
	}

	count := 0
	for _, offer := range offers {
		if Matches(offer, *a) {
			count++
		}
	}
	return count, nil
}

// buildAlert validates the boundary input and converts it to a model.Alert.
func buildAlert(in Input) (*model.Alert, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, &ValidationError{Msg: "alert name is required"}
	}

	freq, err := model.ParseFrequency(in.Frequence)
	if err != nil {
		return nil, &ValidationError{Msg: err.Error()}
	}

	if in.TJMMin != nil && *in.TJMMin < 0 {
		return nil, &ValidationError{Msg: "tjmMin must be positive"}
	}

	var mobility *model.Mobility
	if in.Mobilite != nil && strings.TrimSpace(*in.Mobilite) != "" {
		m, err := model.ParseMobility(*in.Mobilite)
		if err != nil {
			return nil, &ValidationError{Msg: err.Error()}
		}
		mobility = &m
	}

	return &model.Alert{
		Name:      name,
		Skills:    cleanList(in.Skills),
		RateMin:   in.TJMMin,
		Mobility:  mobility,
		Locations: cleanList(in.Lieux),
		Frequency: freq,
	}, nil
}

// cleanList trims entries and drops empties, keeping order.
func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if t := strings.TrimSpace(s); t != "" {
			out = append(out, t)
		}
	}
	return out
}
