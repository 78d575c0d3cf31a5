package journal

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/monopolybot/backend/internal/game/engine"
)

// maxEntries caps the per-session journal so an abandoned session
// cannot grow a Redis list unbounded.
const maxEntries = 512

// Journal is a write-only, append-only record of processed commands,
// kept in a Redis list per session. It is observability only: the
// engine never reads it back into live state.
type Journal struct {
	client *redis.Client
	logger *zap.SugaredLogger
}

// New creates a journal backed by the given Redis client.
func New(client *redis.Client, logger *zap.SugaredLogger) *Journal {
	return &Journal{
		client: client,
		logger: logger,
	}
}

func key(sessionID string) string {
	return fmt.Sprintf("session:%s:journal", sessionID)
}

// HandleEvent appends one engine event to the session's journal. It
// implements engine.Sink; failures are logged and dropped so a Redis
// outage never stalls gameplay.
func (j *Journal) HandleEvent(event engine.Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		j.logger.Errorf("Failed to marshal journal event: %v", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	pipe := j.client.TxPipeline()
	pipe.RPush(ctx, key(event.SessionID), payload)
	pipe.LTrim(ctx, key(event.SessionID), -maxEntries, -1)
	if _, err := pipe.Exec(ctx); err != nil {
		j.logger.Warnw("Failed to append journal entry",
			"sessionId", event.SessionID, "command", event.Command, "error", err)
	}
}

// Recent returns up to n most recent events for a session, oldest first.
func (j *Journal) Recent(ctx context.Context, sessionID string, n int64) ([]engine.Event, error) {
	entries, err := j.client.LRange(ctx, key(sessionID), -n, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read journal: %w", err)
	}

	events := make([]engine.Event, 0, len(entries))
	for _, entry := range entries {
		var event engine.Event
		if err := json.Unmarshal([]byte(entry), &event); err != nil {
			return nil, fmt.Errorf("failed to unmarshal journal entry: %w", err)
		}
		events = append(events, event)
	}
	return events, nil
}

// Clear removes a session's journal.
func (j *Journal) Clear(ctx context.Context, sessionID string) error {
	return j.client.Del(ctx, key(sessionID)).Err()
}
