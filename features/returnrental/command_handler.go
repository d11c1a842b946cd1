package returnrental

import (
	"context"
	"errors"
	"time"

	"github.com/AntonStoeckl/rental-return-events/rentalstore"
	"github.com/AntonStoeckl/rental-return-events/shell/keyedlock"
	"github.com/AntonStoeckl/rental-return-events/shell/retry"
)

// ErrNilRecordStore is returned when a CommandHandler is constructed without a store.
var ErrNilRecordStore = errors.New("record store is nil")

// RecordStore defines the store operations needed by the CommandHandler.
type RecordStore interface {
	GetAsset(ctx context.Context, assetID string) (rentalstore.Asset, bool, error)
	ListRentalsForUser(ctx context.Context, userID string) (rentalstore.Rentals, error)
	UpdateRentalStatus(
		ctx context.Context,
		rentalID string,
		status rentalstore.RentalStatus,
		returnedAt time.Time,
		returnedAtLocationID string,
	) error
	GetRental(ctx context.Context, rentalID string) (rentalstore.Rental, bool, error)
}

// CommandHandler orchestrates handling a return event: decode -> resolve -> finalize -> respond.
// It is safe for concurrent use, resolve and finalize run as one critical section per user.
type CommandHandler struct {
	store            RecordStore
	userLocks        *keyedlock.KeyedLock
	resolveRetry     []retry.Option
	logger           rentalstore.Logger
	contextualLogger rentalstore.ContextualLogger
	tracingCollector rentalstore.TracingCollector
	metricsCollector rentalstore.MetricsCollector
}

// NewCommandHandler creates a new CommandHandler with the provided RecordStore dependency.
func NewCommandHandler(store RecordStore, options ...Option) (CommandHandler, error) {
	if store == nil {
		return CommandHandler{}, ErrNilRecordStore
	}

	h := CommandHandler{
		store:        store,
		userLocks:    keyedlock.New(),
		resolveRetry: []retry.Option{retry.WithMaxAttempts(1)},
	}

	for _, option := range options {
		if err := option(&h); err != nil {
			return CommandHandler{}, err
		}
	}

	return h, nil
}

// Handle processes one raw return event and always returns a Response.
//
// Invalid events and unresolvable returns yield a FAILED response and a nil error.
// Store failures yield a FAILED response together with the underlying error,
// so callers can tell an unavailable store from a business outcome.
func (h CommandHandler) Handle(ctx context.Context, raw RawEvent) (Response, error) {
	start := time.Now()
	ctx, span := h.startSpan(ctx)

	event, err := DecodeReturnEvent(raw)
	if err != nil {
		h.logWarn(ctx, logMsgInvalidEvent, logAttrError, err.Error())
		h.finish(ctx, span, outcomeFailed, reasonInvalidEvent, start)

		return FailureResponse(MessageInvalidReturnEvent), nil
	}

	if span != nil {
		span.AddAttribute(logAttrUserID, event.UserID)
		span.AddAttribute(logAttrAssetID, event.AssetID)
		span.AddAttribute(logAttrLocationID, event.LocationID)
	}

	unlock, err := h.userLocks.Lock(ctx, event.UserID)
	if err != nil {
		return h.storeFailure(ctx, span, start, err)
	}
	defer unlock()

	var rental rentalstore.Rental
	var found bool

	err = retry.Do(ctx, func(ctx context.Context) error {
		var resolveErr error
		rental, found, resolveErr = h.resolve(ctx, event)
		return resolveErr
	}, h.resolveRetry...)
	if err != nil {
		return h.storeFailure(ctx, span, start, err)
	}

	if !found {
		h.logWarn(ctx, logMsgNoEligibleRental, logAttrUserID, event.UserID, logAttrAssetID, event.AssetID)
		h.finish(ctx, span, outcomeFailed, reasonNoEligibleRental, start)

		return FailureResponse(NoActiveRentalsMessage(event.UserID)), nil
	}

	completed, err := h.finalize(ctx, rental, event)
	if err != nil {
		return h.storeFailure(ctx, span, start, err)
	}

	if span != nil {
		span.AddAttribute(logAttrRentalID, completed.ID)
	}

	h.logInfo(ctx, logMsgRentalCompleted,
		logAttrRentalID, completed.ID,
		logAttrUserID, event.UserID,
		logAttrDurationMS, toMilliseconds(time.Since(start)),
	)
	h.finish(ctx, span, outcomeSuccess, "", start)

	return SuccessResponse(completed), nil
}

func (h CommandHandler) storeFailure(ctx context.Context, span rentalstore.SpanContext, start time.Time, err error) (Response, error) {
	h.logError(ctx, logMsgStoreFailure, logAttrError, err.Error())
	h.finish(ctx, span, outcomeFor(err), reasonStoreFailure, start)

	return FailureResponse(MessageProcessingError), err
}
