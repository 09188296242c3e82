package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"pharmadelivery/internal/core/domain/model/presence"
	"pharmadelivery/internal/core/ports"
	"pharmadelivery/internal/pkg/errs"
)

// UpdateDriverPresenceCommandHandler handles driver status reports.
// The first report from a driver creates the presence record. A location
// ping is additionally published to live subscribers after the commit;
// broadcast failures are logged and swallowed.
//
// Example:
//
//	handler := NewUpdateDriverPresenceCommandHandler(uowFactory, broadcaster, logger)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("presence update failed: %w", err)
//	}
type UpdateDriverPresenceCommandHandler struct {
	uowFactory  PresenceUoWFactory
	broadcaster ports.LocationBroadcaster
	logger      *slog.Logger
}

// NewUpdateDriverPresenceCommandHandler creates a handler for driver
// presence reports.
func NewUpdateDriverPresenceCommandHandler(
	uowFactory PresenceUoWFactory,
	broadcaster ports.LocationBroadcaster,
	logger *slog.Logger,
) UpdateDriverPresenceCommandHandler {
	return UpdateDriverPresenceCommandHandler{
		uowFactory:  uowFactory,
		broadcaster: broadcaster,
		logger:      logger,
	}
}

// Handle processes the presence report. Going offline drops the held
// order; the order itself is untouched and stays with its driver
// reference until an admin intervenes.
func (h UpdateDriverPresenceCommandHandler) Handle(ctx context.Context, cmd UpdateDriverPresenceCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	now := time.Now()
	presenceRepo := uow.PresenceRepository()

	record, err := presenceRepo.Get(ctx, cmd.DriverID())
	created := false
	if errors.Is(err, errs.ErrObjectNotFound) {
		record, err = presence.NewPresence(cmd.DriverID(), now)
		created = true
	}
	if err != nil {
		return err
	}

	if err = record.SetStatus(cmd.Status(), now); err != nil {
		return err
	}
	if cmd.Location() != nil {
		if err = record.UpdateLocation(*cmd.Location(), now); err != nil {
			return err
		}
	}

	if created {
		err = presenceRepo.Add(ctx, record)
	} else {
		err = presenceRepo.Update(ctx, record)
	}
	if err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if cmd.Location() != nil {
		if err = h.broadcaster.Broadcast(ctx, cmd.DriverID(), *cmd.Location()); err != nil {
			h.logger.Warn("location broadcast failed",
				"driver_id", cmd.DriverID().String(), "error", err)
		}
	}

	return nil
}
