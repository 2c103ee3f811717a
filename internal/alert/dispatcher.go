package alert

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"time"

	"talentmatch/matching-service/internal/model"
)

// Lookback windows of the periodic dispatch paths.
const (
	dailyLookback  = 24 * time.Hour
	weeklyLookback = 7 * 24 * time.Hour
)

// AlertRepo is the subscription storage consumed by the dispatcher.
type AlertRepo interface {
	ListActiveByFrequency(ctx context.Context, freq model.Frequency) ([]model.Alert, error)
	// RecordDispatch adds sent to the alert's counter and stamps its
	// last-notified timestamp.
	RecordDispatch(ctx context.Context, alertID string, sent int, at time.Time) error
}

// OfferSource provides published offers to match against.
type OfferSource interface {
	GetPublished(ctx context.Context, ref string) (*model.Offer, error)
	// ListPublishedBetween returns offers published in the half-open window
	// [since, until).
	ListPublishedBetween(ctx context.Context, since, until time.Time) ([]model.Offer, error)
}

// Sink durably stores a notification for later delivery. Create reports
// whether a row was actually created: for offer notifications the sink is
// idempotent per (recipient, link), so a replayed publish event yields
// created=false instead of a duplicate.
type Sink interface {
	Create(ctx context.Context, n model.Notification) (created bool, err error)
}

// Dispatcher runs the instant and periodic alert notification paths.
// Sink failures are logged and swallowed per recipient so one talent's
// failure never aborts the rest of a batch.
type Dispatcher struct {
	alerts AlertRepo
	offers OfferSource
	sink   Sink
}

// NewDispatcher returns a configured Dispatcher.
func NewDispatcher(alerts AlertRepo, offers OfferSource, sink Sink) *Dispatcher {
	return &Dispatcher{alerts: alerts, offers: offers, sink: sink}
}

// DispatchInstant notifies every active instant alert matching the freshly
// published offer. Safe to invoke more than once for the same offer: the
// sink's idempotent create absorbs replays.
func (d *Dispatcher) DispatchInstant(ctx context.Context, offerRef string) error {
	offer, err := d.offers.GetPublished(ctx, offerRef)
	if err != nil {
		return err
	}

	alerts, err := d.alerts.ListActiveByFrequency(ctx, model.FrequencyInstant)
	if err != nil {
		return fmt.Errorf("list instant alerts: %w", err)
	}

	var sent, skipped int
	for _, a := range alerts {
		if !Matches(*offer, a) {
			continue
		}

		created, err := d.sink.Create(ctx, model.Notification{
			RecipientID: a.TalentID,
			Type:        model.NotificationAlertOffer,
			Title:       "Nouvelle offre : " + offer.Title,
			Message:     fmt.Sprintf("L'offre « %s » correspond à votre alerte « %s ».", offer.Title, a.Name),
			Link:        "/offres/" + offer.Slug,
		})
		if err != nil {
			slog.Warn("notification create failed", "alertId", a.ID, "offerId", offer.ID, "err", err)
			continue
		}
		if !created {
			skipped++
			continue
		}

		if err := d.alerts.RecordDispatch(ctx, a.ID, 1, time.Now()); err != nil {
			slog.Warn("record dispatch failed", "alertId", a.ID, "err", err)
		}
		sent++
	}

	log.Printf("[dispatch] Instant dispatch for offer %s done — alerts=%d sent=%d deduplicated=%d",
		offer.ID, len(alerts), sent, skipped)
	return nil
}

// DispatchPeriodic runs one daily or weekly batch ending at now. Each alert
// with at least one offer published in the lookback window receives a single
// aggregate notification. Callers are expected to serialize overlapping runs.
func (d *Dispatcher) DispatchPeriodic(ctx context.Context, freq model.Frequency, now time.Time) error {
	var lookback time.Duration
	switch freq {
	case model.FrequencyDaily:
		lookback = dailyLookback
	case model.FrequencyWeekly:
		lookback = weeklyLookback
	default:
		return &ValidationError{Msg: fmt.Sprintf("frequency %s has no periodic dispatch", freq)}
	}

	since := now.Add(-lookback)
	offers, err := d.offers.ListPublishedBetween(ctx, since, now)
	if err != nil {
		return fmt.Errorf("list offers published since %s: %w", since.Format(time.RFC3339), err)
	}
	if len(offers) == 0 {
		log.Printf("[dispatch] %s dispatch: no offers published in window — nothing to do", freq)
		return nil
	}

	alerts, err := d.alerts.ListActiveByFrequency(ctx, freq)
	if err != nil {
		return fmt.Errorf("list %s alerts: %w", freq, err)
	}

	var notified int
	for _, a := range alerts {
		count := 0
		for _, offer := range offers {
			if Matches(offer, a) {
				count++
			}
		}
		if count == 0 {
			continue
		}

		if _, err := d.sink.Create(ctx, model.Notification{
			RecipientID: a.TalentID,
			Type:        model.NotificationAlertDigest,
			Title:       fmt.Sprintf("Votre alerte « %s »", a.Name),
			Message:     digestMessage(count, a.Name),
			Link:        "/offres?alerte=" + a.ID,
		}); err != nil {
			slog.Warn("digest create failed", "alertId", a.ID, "err", err)
			continue
		}

		if err := d.alerts.RecordDispatch(ctx, a.ID, count, now); err != nil {
			slog.Warn("record dispatch failed", "alertId", a.ID, "err", err)
		}
		notified++
	}

	log.Printf("[dispatch] %s dispatch done — offers=%d alerts=%d notified=%d",
		freq, len(offers), len(alerts), notified)
	return nil
}

func digestMessage(count int, name string) string {
	if count == 1 {
		return fmt.Sprintf("1 nouvelle offre correspond à votre alerte « %s ».", name)
	}
	return fmt.Sprintf("%d nouvelles offres correspondent à votre alerte « %s ».", count, name)
}
