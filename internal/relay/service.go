package relay

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tuanvumaihuynh/inventory-ledger/internal/config"
	"github.com/tuanvumaihuynh/inventory-ledger/internal/log"
	"github.com/tuanvumaihuynh/inventory-ledger/internal/repository"
	"github.com/tuanvumaihuynh/inventory-ledger/internal/storage/db"
	"github.com/tuanvumaihuynh/inventory-ledger/internal/storage/mq"
	"github.com/tuanvumaihuynh/inventory-ledger/pkg/outbox"
	"github.com/tuanvumaihuynh/inventory-ledger/pkg/ptr"
)

// Service publishes ledger events written to the outbox table.
type Service struct {
	cfg           config.Relay
	logger        *slog.Logger
	db            db.DB
	outboxMsgRepo repository.OutboxMsgRepository
	mqProducer    mq.Producer

	stopChan chan struct{}
}

func NewService(
	cfg config.Relay,
	logger *slog.Logger,
	db db.DB,
	outboxMsgRepo repository.OutboxMsgRepository,
	mqProducer mq.Producer,
) *Service {
	return &Service{
		cfg:           cfg,
		logger:        logger.With(slog.String("service", "relay")),
		db:            db,
		outboxMsgRepo: outboxMsgRepo,
		mqProducer:    mqProducer,
		stopChan:      make(chan struct{}),
	}
}

type CleanupFunc func()

func (s *Service) Run(ctx context.Context) CleanupFunc {
	ctx, cancel := context.WithCancel(ctx)

	stoppedChan := make(chan struct{})
	go func() {
		defer close(stoppedChan)
		s.run(ctx)
	}()

	return func() {
		close(s.stopChan)
		select {
		case <-stoppedChan:
		case <-time.After(5 * time.Second):
			cancel()
		}
	}
}

func (s *Service) run(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopChan:
			return
		case <-ticker.C:
			if _, err := s.relayBatch(ctx); err != nil {
				s.logger.ErrorContext(ctx, "error relaying outbox msgs", slog.Any("error", err))
			}
		}
	}
}

// relayBatch produces one batch of unprocessed messages and marks each of them
// processed, recording the produce error for the ones that failed.
func (s *Service) relayBatch(ctx context.Context) (int, error) {
	var relayed int
	err := s.db.WithTx(ctx, func(db db.DB) error {
		outboxMsgs, err := s.outboxMsgRepo.
			WithDB(db).
			ListUnprocessedOutboxMsgs(ctx, repository.ListUnprocessedOutboxMsgsParams{
				//nolint:gosec
				BatchSize: int32(s.cfg.BatchSize),
			})
		if err != nil {
			return fmt.Errorf("list unprocessed outbox msgs: %w", err)
		}

		if len(outboxMsgs) == 0 {
			return nil
		}

		s.logger.DebugContext(ctx, "relaying outbox msgs", slog.Int("count", len(outboxMsgs)))

		items := make([]repository.BulkUpdateOutboxMsgsItem, len(outboxMsgs))
		var g errgroup.Group
		g.SetLimit(s.concurrency())
		for i, msg := range outboxMsgs {
			g.Go(func() error {
				items[i] = repository.BulkUpdateOutboxMsgsItem{ID: msg.ID}
				// Produce under the trace of the request that wrote the message.
				ctx := outbox.ExtractContextFromHeaders(ctx, msg.Headers)
				ctx = log.ContextWithAttrs(ctx,
					slog.String("outbox_msg_id", msg.ID.String()),
					slog.String("topic", msg.Topic),
				)

				if err := s.mqProducer.Produce(ctx, mq.ProduceMsg{
					Topic:        msg.Topic,
					Headers:      msg.Headers,
					Payload:      msg.Payload,
					PartitionKey: msg.PartitionKey,
				}); err != nil {
					s.logger.ErrorContext(ctx, "error producing message", slog.Any("error", err))
					items[i].Error = ptr.New(err.Error())
				}
				return nil
			})
		}
		//nolint:errcheck
		g.Wait()

		if err := s.outboxMsgRepo.
			WithDB(db).
			BulkUpdateOutboxMsgs(ctx, repository.BulkUpdateOutboxMsgsParams{
				Items: items,
			}); err != nil {
			return fmt.Errorf("bulk update outbox msgs: %w", err)
		}

		relayed = len(items)
		return nil
	})

	return relayed, err
}

// concurrency caps in-flight produces per batch. Zero means unbounded.
func (s *Service) concurrency() int {
	if s.cfg.Concurrency == 0 {
		return -1
	}
	return int(s.cfg.Concurrency)
}
