package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/Dosada05/swiss-tournament/models"
	"github.com/Dosada05/swiss-tournament/realtime"
	"github.com/Dosada05/swiss-tournament/storage"
	"golang.org/x/sync/errgroup"
)

type RoundPublisher interface {
	Publish(ctx context.Context, round *models.Round) error
}

type roundPublisher struct {
	store       storage.ObjectStore
	broadcaster EventBroadcaster
	logger      *slog.Logger
	now         func() time.Time
}

// NewRoundPublisher archives rounds to store and announces them through
// broadcaster. Either may be nil.
func NewRoundPublisher(store storage.ObjectStore, broadcaster EventBroadcaster, logger *slog.Logger) RoundPublisher {
	return &roundPublisher{
		store:       store,
		broadcaster: broadcaster,
		logger:      logger,
		now:         time.Now,
	}
}

func (p *roundPublisher) Publish(ctx context.Context, round *models.Round) error {
	g, gCtx := errgroup.WithContext(ctx)

	if p.store != nil {
		g.Go(func() error {
			return p.archive(gCtx, round)
		})
	}
	if p.broadcaster != nil {
		g.Go(func() error {
			if err := p.broadcaster.Broadcast(realtime.EventRoundPaired, round); err != nil {
				return fmt.Errorf("broadcast round %d: %w", round.Number, err)
			}
			return nil
		})
	}

	return g.Wait()
}

func (p *roundPublisher) archive(ctx context.Context, round *models.Round) error {
	body, err := json.MarshalIndent(round, "", "\t")
	if err != nil {
		return fmt.Errorf("marshal round %d: %w", round.Number, err)
	}

	key := fmt.Sprintf("rounds/round-%03d-%d.json", round.Number, p.now().Unix())
	result, err := p.store.Put(ctx, key, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("archive round %d: %w", round.Number, err)
	}

	p.logger.Info("round archived",
		slog.Int("round", round.Number),
		slog.String("key", result.Key),
		slog.String("url", result.Location),
	)
	return nil
}
