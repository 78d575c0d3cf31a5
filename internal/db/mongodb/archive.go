package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/monopolybot/backend/internal/game/engine"
	"github.com/monopolybot/backend/internal/game/models"
)

// GameArchive is the persisted summary of one finished session.
type GameArchive struct {
	SessionID string           `bson:"sessionId"`
	WinnerID  string           `bson:"winnerId"`
	Winner    string           `bson:"winner"`
	TurnCount int              `bson:"turnCount"`
	Players   []ArchivedPlayer `bson:"players"`
	StartedAt time.Time        `bson:"startedAt"`
	EndedAt   time.Time        `bson:"endedAt"`
}

// ArchivedPlayer is one player's final standing.
type ArchivedPlayer struct {
	ID         string   `bson:"playerId"`
	Name       string   `bson:"displayName"`
	Cash       int      `bson:"cash"`
	Status     string   `bson:"status"`
	Properties []string `bson:"properties"`
}

// ArchiveStore writes finished games to MongoDB. It is write-only
// observability: live sessions never read archives back.
type ArchiveStore struct {
	coll   *mongo.Collection
	logger *zap.SugaredLogger
}

// NewArchiveStore creates an archive store on the given collection.
func NewArchiveStore(client *mongo.Client, database, collection string, logger *zap.SugaredLogger) *ArchiveStore {
	return &ArchiveStore{
		coll:   client.Database(database).Collection(collection),
		logger: logger,
	}
}

// Save inserts one archive document.
func (s *ArchiveStore) Save(ctx context.Context, archive GameArchive) error {
	if _, err := s.coll.InsertOne(ctx, archive); err != nil {
		return fmt.Errorf("failed to store game archive: %w", err)
	}
	return nil
}

// HandleEvent implements engine.Sink: once a session ends, its final
// standings are archived. Failures are logged and dropped so a MongoDB
// outage never stalls gameplay.
func (s *ArchiveStore) HandleEvent(event engine.Event) {
	if event.Phase != string(models.PhaseEnded) || event.Final == nil {
		return
	}

	archive := GameArchive{
		SessionID: event.SessionID,
		WinnerID:  event.WinnerID,
		TurnCount: event.Final.TurnCount,
		StartedAt: event.Final.CreatedAt,
		EndedAt:   event.Timestamp,
	}
	for _, p := range event.Final.Players {
		if p.ID == event.WinnerID {
			archive.Winner = p.Name
		}
		archive.Players = append(archive.Players, ArchivedPlayer{
			ID:         p.ID,
			Name:       p.Name,
			Cash:       p.Cash,
			Status:     p.Status,
			Properties: p.Properties,
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.Save(ctx, archive); err != nil {
		s.logger.Errorf("Failed to archive finished game %s: %v", event.SessionID, err)
		return
	}
	s.logger.Infow("Archived finished game", "sessionId", event.SessionID, "winnerId", event.WinnerID)
}
