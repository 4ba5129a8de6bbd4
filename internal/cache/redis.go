package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const retryDelay = time.Second

// Event is published on the revalidation channel.
type Event struct {
	Origin string   `json:"origin"`
	Paths  []string `json:"paths,omitempty"`
	All    bool     `json:"all,omitempty"`
}

// Broadcaster revalidates the local cache and tells the other instances to do the same.
type Broadcaster struct {
	local   *Cache
	client  redis.UniversalClient
	channel string
	id      string
}

// NewBroadcaster wraps local with a redis pub/sub fan-out on channel.
func NewBroadcaster(local *Cache, client redis.UniversalClient, channel string) *Broadcaster {
	return &Broadcaster{
		local:   local,
		client:  client,
		channel: channel,
		id:      uuid.NewString(),
	}
}

// ID returns the instance id attached to published events.
func (b *Broadcaster) ID() string {
	return b.id
}

func (b *Broadcaster) publish(ev Event) {
	ev.Origin = b.id

	payload, err := json.Marshal(ev)
	if err != nil {
		log.Error().Err(err).Msg("failed to encode revalidation event")

		return
	}

	if err = b.client.Publish(context.Background(), b.channel, string(payload)).Err(); err != nil {
		log.Error().Err(err).Str("channel", b.channel).Msg("failed to publish revalidation event")
	}
}

// Revalidate drops the paths locally and publishes them.
func (b *Broadcaster) Revalidate(paths ...string) []string {
	targets := b.local.Revalidate(paths...)
	b.publish(Event{Paths: targets})

	return targets
}

// PurgeAll empties the local cache and publishes a purge.
func (b *Broadcaster) PurgeAll() {
	b.local.PurgeAll()
	b.publish(Event{All: true})
}

// apply handles a received payload. Own events are ignored.
func (b *Broadcaster) apply(payload string) {
	var ev Event
	if err := json.Unmarshal([]byte(payload), &ev); err != nil {
		log.Warn().Err(err).Msg("ignoring malformed revalidation event")

		return
	}

	if ev.Origin == b.id {
		return
	}

	if ev.All {
		b.local.PurgeAll()
	} else {
		b.local.Revalidate(ev.Paths...)
	}

	log.Debug().Str("origin", ev.Origin).Strs("paths", ev.Paths).Bool("all", ev.All).Msg("applied remote revalidation")
}

// handleReceive is split from the subscribe loop so tests can inject messages.
func (b *Broadcaster) handleReceive(ctx context.Context, receive func(context.Context) (any, error)) error {
	msg, err := receive(ctx)
	if err != nil {
		if strings.Contains(err.Error(), "use of closed network connection") {
			return redis.ErrClosed
		}

		return err
	}

	if m, ok := msg.(*redis.Message); ok {
		b.apply(m.Payload)
	}

	return nil
}

// Listen applies events of other instances until ctx is done.
func (b *Broadcaster) Listen(ctx context.Context) error {
	pubsub := b.client.Subscribe(ctx, b.channel)
	defer pubsub.Close()

	for {
		err := b.handleReceive(ctx, pubsub.Receive)

		switch {
		case err == nil:
			continue
		case ctx.Err() != nil:
			return nil
		case errors.Is(err, redis.ErrClosed):
			return err
		default:
			log.Error().Err(err).Msg("error while receiving revalidation events")
			time.Sleep(retryDelay)
		}
	}
}
