package matching

import (
	"context"
	"fmt"
	"sort"

	"talentmatch/matching-service/internal/model"
)

// TalentRepo provides the talent-side inputs of a score computation.
type TalentRepo interface {
	GetProfile(ctx context.Context, talentID string) (*model.TalentProfile, error)
	ListCalendar(ctx context.Context, talentID string) ([]model.CalendarEntry, error)
	ListAppliedOfferIDs(ctx context.Context, talentID string) ([]string, error)
}

// OfferRepo provides published offers. GetPublished resolves by internal ID
// or public slug and must return store.ErrOfferNotFound for unpublished or
// unknown offers.
type OfferRepo interface {
	GetPublished(ctx context.Context, ref string) (*model.Offer, error)
	ListPublished(ctx context.Context) ([]model.Offer, error)
}

// Service orchestrates score computations: it fetches the inputs and
// delegates all arithmetic to the pure Evaluate function.
type Service struct {
	talents TalentRepo
	offers  OfferRepo
}

// NewService returns a configured Service.
func NewService(talents TalentRepo, offers OfferRepo) *Service {
	return &Service{talents: talents, offers: offers}
}

// Match computes the MatchResult for the given talent against one published
// offer, resolved by ID or slug.
func (s *Service) Match(ctx context.Context, talentID, offerRef string) (*model.MatchResult, error) {
	offer, err := s.offers.GetPublished(ctx, offerRef)
	if err != nil {
		return nil, err
	}

	profile, err := s.talents.GetProfile(ctx, talentID)
	if err != nil {
		return nil, err
	}

	calendar, err := s.talents.ListCalendar(ctx, talentID)
	if err != nil {
		return nil, fmt.Errorf("list calendar: %w", err)
	}

	applied, err := s.appliedSet(ctx, talentID)
	if err != nil {
		return nil, err
	}

	result := Evaluate(*profile, *offer, calendar, applied[offer.ID])
	return &result, nil
}

// SuggestedOffer is one entry of the ranked published-offer list.
type SuggestedOffer struct {
	OfferID        string `json:"offerId"`
	Slug           string `json:"slug"`
	Title          string `json:"title"`
	Score          int    `json:"score"`
	Recommendation string `json:"recommendation"`
	CanApply       bool   `json:"canApply"`
	AlreadyApplied bool   `json:"alreadyApplied"`
}

// Suggestions scores every published offer for the talent and returns them
// ranked best-first. limit <= 0 means no limit.
func (s *Service) Suggestions(ctx context.Context, talentID string, limit int) ([]SuggestedOffer, error) {
	profile, err := s.talents.GetProfile(ctx, talentID)
	if err != nil {
		return nil, err
	}

	calendar, err := s.talents.ListCalendar(ctx, talentID)
	if err != nil {
		return nil, fmt.Errorf("list calendar: %w", err)
	}

	applied, err := s.appliedSet(ctx, talentID)
	if err != nil {
		return nil, err
	}

	offers, err := s.offers.ListPublished(ctx)
	if err != nil {
		return nil, fmt.Errorf("list published offers: %w", err)
	}

	suggestions := make([]SuggestedOffer, 0, len(offers))
	for _, offer := range offers {
		result := Evaluate(*profile, offer, calendar, applied[offer.ID])
		suggestions = append(suggestions, SuggestedOffer{
			OfferID:        offer.ID,
			Slug:           offer.Slug,
			Title:          offer.Title,
			Score:          result.Score,
			Recommendation: result.Recommendation,
			CanApply:       result.CanApply,
			AlreadyApplied: result.AlreadyApplied,
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Score > suggestions[j].Score
	})
	if limit > 0 && len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}
	return suggestions, nil
}

func (s *Service) appliedSet(ctx context.Context, talentID string) (map[string]bool, error) {
	ids, err := s.talents.ListAppliedOfferIDs(ctx, talentID)
	if err != nil {
		return nil, fmt.Errorf("list applied offers: %w", err)
	}
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}
