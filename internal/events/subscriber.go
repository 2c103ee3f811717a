// Package events consumes the gateway's Redis events. The only subscription
// today is EVENT_OFFER_PUBLISHED, which triggers the instant alert dispatch.
package events

import (
	"context"
	"encoding/json"
	"log"

	"github.com/redis/go-redis/v9"
)

// EventOfferPublished is published by the gateway right after an offer's
// status transitions to PUBLISHED.
const EventOfferPublished = "EVENT_OFFER_PUBLISHED"

// offerPublishedEvent mirrors the gateway's event payload.
type offerPublishedEvent struct {
	Type    string `json:"type"`
	OfferID string `json:"offerId"`
}

// InstantDispatcher is the downstream action of an offer-published event.
type InstantDispatcher interface {
	DispatchInstant(ctx context.Context, offerRef string) error
}

// Subscriber listens for offer-published events and runs the instant
// dispatch for each. Dispatch errors are logged, never fatal: a missed event
// is caught by the next periodic batch or a hook replay.
type Subscriber struct {
	rdb        *redis.Client
	dispatcher InstantDispatcher
}

// NewSubscriber returns a configured Subscriber.
func NewSubscriber(rdb *redis.Client, dispatcher InstantDispatcher) *Subscriber {
	return &Subscriber{rdb: rdb, dispatcher: dispatcher}
}

// Run blocks consuming events until ctx is cancelled.
func (s *Subscriber) Run(ctx context.Context) {
	sub := s.rdb.Subscribe(ctx, EventOfferPublished)
	defer sub.Close()

	log.Printf("[events] Subscribed to %s", EventOfferPublished)

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			log.Println("[events] Subscriber stopped")
			return
		case msg, ok := <-ch:
			if !ok {
				log.Println("[events] Subscription channel closed")
				return
			}
			s.handle(ctx, msg.Payload)
		}
	}
}

func (s *Subscriber) handle(ctx context.Context, payload string) {
	var event offerPublishedEvent
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		log.Printf("[events] Malformed %s payload: %v", EventOfferPublished, err)
		return
	}
	if event.OfferID == "" {
		log.Printf("[events] %s event without offerId — ignored", EventOfferPublished)
		return
	}

	if err := s.dispatcher.DispatchInstant(ctx, event.OfferID); err != nil {
		log.Printf("[events] Instant dispatch for offer %s failed: %v", event.OfferID, err)
	}
}
