package service

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/totegamma/journal-playground"
)

const journalChannel = "journal:events"

// SignalService fans journal events out through redis pub/sub so every
// node can feed its own realtime subscribers.
type SignalService struct {
	rdb *redis.Client
}

func NewSignalService(redisClient *redis.Client) *SignalService {
	return &SignalService{
		rdb: redisClient,
	}
}

func (s *SignalService) Publish(ctx context.Context, event journal.Event) error {
	jsonstr, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.rdb.Publish(ctx, journalChannel, jsonstr).Err()
}

// Realtime forwards journal events into output until ctx is done.
func (s *SignalService) Realtime(ctx context.Context, output chan<- journal.Event) {
	pubsub := s.rdb.Subscribe(ctx, journalChannel)
	defer pubsub.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-pubsub.Channel():
			if !ok {
				return
			}

			var event journal.Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				slog.ErrorContext(
					ctx, "Error decoding journal event",
					slog.String("error", err.Error()),
					slog.String("module", "signal"),
				)
				continue
			}

			select {
			case <-ctx.Done():
				return
			case output <- event:
			}
		}
	}
}
