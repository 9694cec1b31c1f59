package usecase

import (
	"context"
	"fmt"
	"time"

	"tourism-booking/internal/cache"
	"tourism-booking/internal/data/entity"
	"tourism-booking/internal/data/repository"
	"tourism-booking/internal/dto/request"
	"tourism-booking/internal/dto/response"
	"tourism-booking/internal/notify"
	"tourism-booking/internal/queue"
	"tourism-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type EventService interface {
	Create(ctx context.Context, partnerID string, req *request.CreateEventRequest) (*response.EventResponse, error)
	GetByID(ctx context.Context, id string) (*response.EventResponse, error)
	ListUpcoming(ctx context.Context, req *request.PaginatedRequest) ([]response.EventResponse, error)
	ListByPartner(ctx context.Context, partnerID string) ([]response.EventResponse, error)
	Delete(ctx context.Context, id string) error

	BookEvent(ctx context.Context, userID string, req *request.CreateEventBookingRequest) (*response.EventBookingResponse, error)
	CancelEventBooking(ctx context.Context, userID, bookingID string) error
	GetUserEventBookings(ctx context.Context, userID string) ([]response.EventBookingResponse, error)
}

type eventService struct {
	repo     *repository.Repository
	cache    *cache.QueryCache
	notifier notify.Notifier
	events   queue.Publisher
	log      *zap.Logger
}

func NewEventService(
	repo *repository.Repository,
	queryCache *cache.QueryCache,
	notifier notify.Notifier,
	events queue.Publisher,
	log *zap.Logger,
) EventService {
	return &eventService{
		repo:     repo,
		cache:    queryCache,
		notifier: notifier,
		events:   events,
		log:      log.With(zap.String("service", "event")),
	}
}

func (s *eventService) Create(ctx context.Context, partnerID string, req *request.CreateEventRequest) (*response.EventResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.notifier.Error(ctx, notify.MsgListingSaveFailed)
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	partnerUUID, err := uuid.Parse(partnerID)
	if err != nil {
		return nil, fmt.Errorf("invalid partner ID format %s: %w", partnerID, err)
	}

	startsAt, err := time.Parse(time.RFC3339, req.StartsAt)
	if err != nil {
		return nil, fmt.Errorf("invalid starts_at %s: %w", req.StartsAt, err)
	}
	endsAt, err := time.Parse(time.RFC3339, req.EndsAt)
	if err != nil {
		return nil, fmt.Errorf("invalid ends_at %s: %w", req.EndsAt, err)
	}
	if !endsAt.After(startsAt) {
		return nil, fmt.Errorf("event must end after it starts")
	}

	now := time.Now()
	event := &entity.Event{
		Base:           entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		PartnerID:      partnerUUID,
		Title:          req.Title,
		Description:    req.Description,
		Venue:          req.Venue,
		StartsAt:       startsAt,
		EndsAt:         endsAt,
		TicketPrice:    req.TicketPrice,
		TotalSpots:     req.TotalSpots,
		AvailableSpots: req.TotalSpots,
		MediaRefs:      req.MediaRefs,
		IsAvailable:    true,
	}

	if err := s.repo.Event.Create(ctx, event); err != nil {
		s.notifier.Error(ctx, notify.MsgListingSaveFailed)
		return nil, fmt.Errorf("create event: %w", err)
	}

	s.cache.Invalidate("events")
	s.notifier.Success(ctx, notify.MsgListingSaved)

	resp := response.EventToResponse(event)
	return &resp, nil
}

func (s *eventService) GetByID(ctx context.Context, id string) (*response.EventResponse, error) {
	eventID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid event ID format %s: %w", id, err)
	}

	event, err := s.repo.Event.FindByID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("find event: %w", err)
	}
	if event == nil {
		return nil, fmt.Errorf("event %s not found", id)
	}

	resp := response.EventToResponse(event)
	return &resp, nil
}

func (s *eventService) ListUpcoming(ctx context.Context, req *request.PaginatedRequest) ([]response.EventResponse, error) {
	key := cache.Key("events", fmt.Sprintf("page-%d-%d", req.Limit(), req.Offset()))
	if cached, ok := s.cache.Get(key); ok {
		if resp, ok := cached.([]response.EventResponse); ok {
			return resp, nil
		}
	}

	list, err := s.repo.Event.FindUpcoming(ctx, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("find upcoming events: %w", err)
	}

	resp := response.EventsToResponse(list)
	s.cache.Set(key, resp)

	return resp, nil
}

func (s *eventService) ListByPartner(ctx context.Context, partnerID string) ([]response.EventResponse, error) {
	partnerUUID, err := uuid.Parse(partnerID)
	if err != nil {
		return nil, fmt.Errorf("invalid partner ID format %s: %w", partnerID, err)
	}

	list, err := s.repo.Event.FindByPartnerID(ctx, partnerUUID)
	if err != nil {
		return nil, fmt.Errorf("find partner events: %w", err)
	}

	return response.EventsToResponse(list), nil
}

func (s *eventService) Delete(ctx context.Context, id string) error {
	eventID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid event ID format %s: %w", id, err)
	}

	if err := s.repo.Event.Delete(ctx, eventID); err != nil {
		s.notifier.Error(ctx, notify.MsgListingDeleteFail)
		return fmt.Errorf("delete event: %w", err)
	}

	s.cache.Invalidate("events")
	s.notifier.Success(ctx, notify.MsgListingDeleted)
	return nil
}

// BookEvent reserves spots first, then records the booking. If the booking
// row fails the spots are restored, so the count never leaks.
func (s *eventService) BookEvent(ctx context.Context, userID string, req *request.CreateEventBookingRequest) (*response.EventBookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.notifier.Error(ctx, notify.MsgBookingCreateFailed)
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	eventID, err := uuid.Parse(req.EventID)
	if err != nil {
		return nil, fmt.Errorf("invalid event ID format %s: %w", req.EventID, err)
	}

	event, err := s.repo.Event.FindByID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("find event: %w", err)
	}
	if event == nil || !event.IsAvailable {
		s.notifier.Error(ctx, notify.MsgBookingCreateFailed)
		return nil, fmt.Errorf("event %s is not available", req.EventID)
	}
	if event.StartsAt.Before(time.Now()) {
		s.notifier.Error(ctx, notify.MsgBookingCreateFailed)
		return nil, fmt.Errorf("event %s has already started", req.EventID)
	}

	if err := s.repo.Event.ReserveSpots(ctx, eventID, req.Spots); err != nil {
		s.notifier.Error(ctx, notify.MsgBookingCreateFailed)
		return nil, err
	}

	now := time.Now()
	booking := &entity.EventBooking{
		Base:       entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		EventID:    eventID,
		UserID:     userUUID,
		Spots:      req.Spots,
		TotalPrice: event.TicketPrice * float64(req.Spots),
		Status:     entity.BookingStatusConfirmed,
	}

	if err := s.repo.Event.CreateBooking(ctx, booking); err != nil {
		if restoreErr := s.repo.Event.RestoreSpots(ctx, eventID, req.Spots); restoreErr != nil {
			s.log.Error("Failed to restore spots after booking failure",
				zap.Error(restoreErr),
				zap.String("event_id", req.EventID))
		}
		s.notifier.Error(ctx, notify.MsgBookingCreateFailed)
		return nil, fmt.Errorf("create event booking: %w", err)
	}

	s.cache.Invalidate("events")
	s.notifier.Success(ctx, notify.MsgBookingCreated)

	s.publishEventBooking(ctx, queue.QueueBookingCreated, booking)

	s.log.Info("Event booked",
		zap.String("event_id", req.EventID),
		zap.String("user_id", userID),
		zap.Int("spots", req.Spots))

	resp := response.EventBookingToResponse(booking)
	return &resp, nil
}

func (s *eventService) CancelEventBooking(ctx context.Context, userID, bookingID string) error {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return fmt.Errorf("invalid booking ID format %s: %w", bookingID, err)
	}

	booking, err := s.repo.Event.FindBookingByID(ctx, id)
	if err != nil {
		return fmt.Errorf("find event booking: %w", err)
	}
	if booking == nil {
		return fmt.Errorf("event booking %s not found", bookingID)
	}
	if booking.UserID.String() != userID {
		return fmt.Errorf("event booking %s does not belong to user %s", bookingID, userID)
	}

	if !entity.CanTransition(booking.Status, entity.BookingStatusCancelled) {
		s.notifier.Error(ctx, notify.MsgBookingCancelFail)
		return fmt.Errorf("cannot cancel event booking in status %s", booking.Status)
	}

	if err := s.repo.Event.UpdateBookingStatus(ctx, id, entity.BookingStatusCancelled); err != nil {
		s.notifier.Error(ctx, notify.MsgBookingCancelFail)
		return fmt.Errorf("cancel event booking: %w", err)
	}

	if err := s.repo.Event.RestoreSpots(ctx, booking.EventID, booking.Spots); err != nil {
		s.log.Error("Failed to restore spots after cancellation",
			zap.Error(err),
			zap.String("event_id", booking.EventID.String()))
	}

	s.cache.Invalidate("events")
	s.notifier.Success(ctx, notify.MsgBookingCancelled)

	booking.Status = entity.BookingStatusCancelled
	s.publishEventBooking(ctx, queue.QueueBookingCancelled, booking)

	return nil
}

func (s *eventService) publishEventBooking(ctx context.Context, queueName string, booking *entity.EventBooking) {
	event := queue.BookingEvent{
		BookingID:  booking.ID.String(),
		UserID:     booking.UserID.String(),
		ItemType:   string(entity.ItemEvent),
		ItemID:     booking.EventID.String(),
		Guests:     booking.Spots,
		TotalPrice: booking.TotalPrice,
		Status:     string(booking.Status),
		OccurredAt: time.Now().Format(time.RFC3339),
	}

	if err := s.events.Publish(ctx, queueName, event); err != nil {
		s.log.Warn("Failed to publish event booking",
			zap.Error(err),
			zap.String("queue", queueName),
			zap.String("booking_id", booking.ID.String()))
	}
}

func (s *eventService) GetUserEventBookings(ctx context.Context, userID string) ([]response.EventBookingResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	bookings, err := s.repo.Event.FindBookingsByUserID(ctx, userUUID)
	if err != nil {
		return nil, fmt.Errorf("find event bookings: %w", err)
	}

	out := make([]response.EventBookingResponse, 0, len(bookings))
	for _, booking := range bookings {
		out = append(out, response.EventBookingToResponse(booking))
	}
	return out, nil
}
