package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"billbook/internal/core"
	"billbook/internal/log"
	"billbook/internal/ports"

	"github.com/google/uuid"
)

// BillService validates and persists bill writes, enforcing that a bill
// only references an existing category of the same type, then publishes a
// change event.
type BillService struct {
	reader     ports.BillReader
	writer     ports.BillWriter
	categories ports.CategoryStore
	seeder     Seeder
	events     ports.EventPublisher
	logger     *log.StructuredLogger

	newID func() string
	now   func() time.Time
}

// NewBillService wires a BillService. seeder and events may be nil.
func NewBillService(reader ports.BillReader, writer ports.BillWriter, categories ports.CategoryStore, seeder Seeder, events ports.EventPublisher) *BillService {
	return &BillService{
		reader:     reader,
		writer:     writer,
		categories: categories,
		seeder:     seeder,
		events:     events,
		logger:     log.NewStructuredLogger(log.FromContext(context.Background()).WithComponent(log.ComponentBill)),
		newID:      uuid.NewString,
		now:        time.Now,
	}
}

// Get returns one bill or core.ErrBillNotFound.
func (s *BillService) Get(ctx context.Context, id string) (core.Bill, error) {
	b, err := s.reader.GetBill(ctx, id)
	if err != nil {
		if errors.Is(err, core.ErrBillNotFound) {
			return core.Bill{}, err
		}
		return core.Bill{}, fmt.Errorf("get bill: %w", err)
	}
	return b, nil
}

// Create validates in, checks its category and stores it under a new id.
func (s *BillService) Create(ctx context.Context, in core.BillInput) (core.Bill, error) {
	draft, err := in.Validate()
	if err != nil {
		return core.Bill{}, err
	}
	if err := s.checkCategory(ctx, draft); err != nil {
		return core.Bill{}, err
	}

	b := draft.Bill(s.newID())
	if err := s.writer.CreateBill(ctx, b); err != nil {
		return core.Bill{}, fmt.Errorf("create bill: %w", err)
	}

	s.logger.LogBillWritten(ctx, log.OpCreate, b)
	s.publish(ctx, core.BillCreated, b)
	return b, nil
}

// Update replaces every field of bill id. The bill must exist.
func (s *BillService) Update(ctx context.Context, id string, in core.BillInput) (core.Bill, error) {
	draft, err := in.Validate()
	if err != nil {
		return core.Bill{}, err
	}
	if _, err := s.Get(ctx, id); err != nil {
		return core.Bill{}, err
	}
	if err := s.checkCategory(ctx, draft); err != nil {
		return core.Bill{}, err
	}

	b := draft.Bill(id)
	if err := s.writer.UpdateBill(ctx, b); err != nil {
		if errors.Is(err, core.ErrBillNotFound) {
			return core.Bill{}, err
		}
		return core.Bill{}, fmt.Errorf("update bill: %w", err)
	}

	s.logger.LogBillWritten(ctx, log.OpUpdate, b)
	s.publish(ctx, core.BillUpdated, b)
	return b, nil
}

// Delete removes bill id and returns it.
func (s *BillService) Delete(ctx context.Context, id string) (core.Bill, error) {
	b, err := s.writer.DeleteBill(ctx, id)
	if err != nil {
		if errors.Is(err, core.ErrBillNotFound) {
			return core.Bill{}, err
		}
		return core.Bill{}, fmt.Errorf("delete bill: %w", err)
	}

	s.logger.LogBillWritten(ctx, log.OpDelete, b)
	s.publish(ctx, core.BillDeleted, b)
	return b, nil
}

func (s *BillService) checkCategory(ctx context.Context, draft core.BillDraft) error {
	if draft.CategoryID == nil {
		return nil
	}
	if s.seeder != nil {
		if err := s.seeder.EnsureCategories(ctx); err != nil {
			return fmt.Errorf("seed categories: %w", err)
		}
	}
	c, err := s.categories.GetCategory(ctx, *draft.CategoryID)
	if err != nil {
		if core.IsBizError(err) {
			return err
		}
		return fmt.Errorf("get category: %w", err)
	}
	return draft.CheckCategory(c)
}

// publish is best effort: the write already succeeded.
func (s *BillService) publish(ctx context.Context, op core.BillOp, b core.Bill) {
	if s.events == nil {
		return
	}
	ev := core.NewBillEvent(op, b, s.now())
	if err := s.events.PublishBillEvent(ctx, ev); err != nil {
		slog.ErrorContext(ctx, "Failed to publish bill event",
			log.FieldComponent, log.ComponentAMQP,
			log.FieldBillID, b.ID,
			log.FieldOperation, string(op),
			log.FieldError, err)
	}
}
