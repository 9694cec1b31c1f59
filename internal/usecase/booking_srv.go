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
	"tourism-booking/pkg/apperr"
	"tourism-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	CreateBooking(ctx context.Context, userID string, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	GetUserBookings(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	GetBookingByID(ctx context.Context, bookingID string) (*response.BookingResponse, error)
	GetBookingByReference(ctx context.Context, userID, code string) (*response.BookingResponse, error)
	GetItemBookings(ctx context.Context, userID, itemType, itemID string) ([]response.BookingResponse, error)
	ConfirmBooking(ctx context.Context, bookingID string) error
	CancelBooking(ctx context.Context, userID, bookingID string) error
}

type bookingService struct {
	repo     *repository.Repository
	cache    *cache.QueryCache
	notifier notify.Notifier
	events   queue.Publisher
	log      *zap.Logger
}

func NewBookingService(
	repo *repository.Repository,
	queryCache *cache.QueryCache,
	notifier notify.Notifier,
	events queue.Publisher,
	log *zap.Logger,
) BookingService {
	return &bookingService{
		repo:     repo,
		cache:    queryCache,
		notifier: notifier,
		events:   events,
		log:      log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, userID string, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		s.notifier.Error(ctx, notify.MsgBookingCreateFailed)
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	itemID, err := uuid.Parse(req.ItemID)
	if err != nil {
		return nil, fmt.Errorf("invalid item ID format %s: %w", req.ItemID, err)
	}

	itemType := entity.ItemType(req.ItemType)
	if !entity.ValidItemType(itemType) {
		return nil, fmt.Errorf("unknown item type %s", req.ItemType)
	}

	checkIn, err := time.Parse("2006-01-02", req.CheckIn)
	if err != nil {
		return nil, fmt.Errorf("invalid check-in date %s: %w", req.CheckIn, err)
	}
	checkOut, err := time.Parse("2006-01-02", req.CheckOut)
	if err != nil {
		return nil, fmt.Errorf("invalid check-out date %s: %w", req.CheckOut, err)
	}
	if !checkOut.After(checkIn) {
		return nil, fmt.Errorf("check-out must be after check-in")
	}

	if err := s.checkItemBookable(ctx, itemType, itemID); err != nil {
		s.notifier.Error(ctx, notify.MsgBookingCreateFailed)
		return nil, err
	}

	referenceCode := req.ReferenceCode
	if referenceCode == "" {
		referenceCode = utils.GenerateReferenceCode()
	}

	now := time.Now()
	booking := &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		ReferenceCode: referenceCode,
		UserID:        userUUID,
		ItemType:      itemType,
		ItemID:        itemID,
		CheckIn:       checkIn,
		CheckOut:      checkOut,
		Guests:        req.Guests,
		TotalPrice:    req.TotalPrice,
		Status:        entity.BookingStatusPending,
	}

	if err := s.repo.Booking.Create(ctx, booking); err != nil {
		// A retried create carrying the same client code trips the unique
		// constraint; answer with the booking the first attempt made.
		if req.ReferenceCode != "" && apperr.Classify(err) == apperr.KindDuplicate {
			existing, findErr := s.repo.Booking.FindByReferenceCode(ctx, req.ReferenceCode)
			if findErr == nil && existing != nil && existing.UserID == userUUID {
				s.log.Info("Booking create replayed",
					zap.String("reference_code", req.ReferenceCode),
					zap.String("user_id", userID))
				resp := response.BookingToResponse(existing)
				return &resp, nil
			}
		}
		s.notifier.Error(ctx, notify.MsgBookingCreateFailed)
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.invalidateBookingCaches(userUUID)
	s.notifier.Success(ctx, notify.MsgBookingCreated)

	s.publishEvent(ctx, queue.QueueBookingCreated, booking)

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("reference_code", booking.ReferenceCode),
		zap.String("user_id", userID))

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) GetUserBookings(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	key := cache.Key("bookings", userID, fmt.Sprintf("page-%d-%d", req.Limit(), req.Offset()))
	if cached, ok := s.cache.Get(key); ok {
		if resp, ok := cached.(*response.PaginatedResponse[response.BookingResponse]); ok {
			return resp, nil
		}
	}

	bookings, err := s.repo.Booking.FindByUserID(ctx, userUUID, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("find bookings: %w", err)
	}

	total, err := s.repo.Booking.CountByUserID(ctx, userUUID)
	if err != nil {
		return nil, fmt.Errorf("count bookings: %w", err)
	}

	resp := response.NewPaginatedResponse(response.BookingsToResponse(bookings), req.Page, req.PerPage, total)
	s.cache.Set(key, resp)

	return resp, nil
}

func (s *bookingService) GetBookingByID(ctx context.Context, bookingID string) (*response.BookingResponse, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID format %s: %w", bookingID, err)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find booking: %w", err)
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %s not found", bookingID)
	}

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

// GetBookingByReference looks a booking up by the code printed on the
// voucher. Only the owner sees the result.
func (s *bookingService) GetBookingByReference(ctx context.Context, userID, code string) (*response.BookingResponse, error) {
	booking, err := s.repo.Booking.FindByReferenceCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("find booking by reference: %w", err)
	}
	if booking == nil || booking.UserID.String() != userID {
		return nil, fmt.Errorf("booking %s not found", code)
	}

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

// GetItemBookings lists the bookings on one of the caller's listings.
func (s *bookingService) GetItemBookings(ctx context.Context, userID, itemType, itemID string) ([]response.BookingResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	itemUUID, err := uuid.Parse(itemID)
	if err != nil {
		return nil, fmt.Errorf("invalid item ID format %s: %w", itemID, err)
	}

	typed := entity.ItemType(itemType)
	if !entity.ValidItemType(typed) {
		return nil, fmt.Errorf("unknown item type %s", itemType)
	}

	partner, err := s.repo.Partner.FindByUserID(ctx, userUUID)
	if err != nil {
		return nil, fmt.Errorf("find partner: %w", err)
	}
	if partner == nil {
		return nil, fmt.Errorf("user %s is not a partner", userID)
	}

	owned, err := s.itemOwnedBy(ctx, partner.ID, typed, itemUUID)
	if err != nil {
		return nil, err
	}
	if !owned {
		return nil, fmt.Errorf("item %s does not belong to partner %s", itemID, partner.ID)
	}

	bookings, err := s.repo.Booking.FindByItem(ctx, typed, itemUUID)
	if err != nil {
		return nil, fmt.Errorf("find item bookings: %w", err)
	}

	return response.BookingsToResponse(bookings), nil
}

func (s *bookingService) itemOwnedBy(ctx context.Context, partnerID uuid.UUID, itemType entity.ItemType, itemID uuid.UUID) (bool, error) {
	var owner uuid.UUID

	switch itemType {
	case entity.ItemAccommodation:
		item, err := s.repo.Accommodation.FindByID(ctx, itemID)
		if err != nil || item == nil {
			return false, err
		}
		owner = item.PartnerID
	case entity.ItemTour:
		item, err := s.repo.Tour.FindByID(ctx, itemID)
		if err != nil || item == nil {
			return false, err
		}
		owner = item.PartnerID
	case entity.ItemEvent:
		item, err := s.repo.Event.FindByID(ctx, itemID)
		if err != nil || item == nil {
			return false, err
		}
		owner = item.PartnerID
	case entity.ItemVehicle:
		item, err := s.repo.Vehicle.FindByID(ctx, itemID)
		if err != nil || item == nil {
			return false, err
		}
		owner = item.PartnerID
	case entity.ItemProduct:
		item, err := s.repo.Product.FindByID(ctx, itemID)
		if err != nil || item == nil {
			return false, err
		}
		owner = item.PartnerID
	default:
		return false, nil
	}

	return owner == partnerID, nil
}

func (s *bookingService) ConfirmBooking(ctx context.Context, bookingID string) error {
	booking, err := s.loadBooking(ctx, bookingID)
	if err == nil {
		err = s.transition(ctx, booking, entity.BookingStatusConfirmed)
	}
	if err != nil {
		s.notifier.Error(ctx, notify.MsgBookingConfirmFail)
		return err
	}

	s.notifier.Success(ctx, notify.MsgBookingConfirmed)
	s.publishEvent(ctx, queue.QueueBookingConfirmed, booking)
	return nil
}

func (s *bookingService) CancelBooking(ctx context.Context, userID, bookingID string) error {
	booking, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		s.notifier.Error(ctx, notify.MsgBookingCancelFail)
		return err
	}
	if booking.UserID.String() != userID {
		s.notifier.Error(ctx, notify.MsgBookingCancelFail)
		return fmt.Errorf("booking %s does not belong to user %s", bookingID, userID)
	}

	if err := s.transition(ctx, booking, entity.BookingStatusCancelled); err != nil {
		s.notifier.Error(ctx, notify.MsgBookingCancelFail)
		return err
	}

	s.notifier.Success(ctx, notify.MsgBookingCancelled)
	s.publishEvent(ctx, queue.QueueBookingCancelled, booking)
	return nil
}

func (s *bookingService) loadBooking(ctx context.Context, bookingID string) (*entity.Booking, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID format %s: %w", bookingID, err)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find booking: %w", err)
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %s not found", bookingID)
	}
	return booking, nil
}

// transition validates the lifecycle change before touching the database,
// then refreshes the caches that list this booking.
func (s *bookingService) transition(ctx context.Context, booking *entity.Booking, to entity.BookingStatus) error {
	if err := booking.TransitionTo(to); err != nil {
		return err
	}

	if err := s.repo.Booking.UpdateStatus(ctx, booking.ID, to); err != nil {
		return fmt.Errorf("update booking status: %w", err)
	}

	s.invalidateBookingCaches(booking.UserID)

	s.log.Info("Booking status changed",
		zap.String("booking_id", booking.ID.String()),
		zap.String("status", string(to)))

	return nil
}

func (s *bookingService) invalidateBookingCaches(userID uuid.UUID) {
	s.cache.Invalidate("bookings", cache.Key("bookings", userID.String()))
}

func (s *bookingService) checkItemBookable(ctx context.Context, itemType entity.ItemType, itemID uuid.UUID) error {
	switch itemType {
	case entity.ItemAccommodation:
		item, err := s.repo.Accommodation.FindByID(ctx, itemID)
		if err != nil {
			return fmt.Errorf("check accommodation: %w", err)
		}
		if item == nil || !item.IsAvailable {
			return fmt.Errorf("accommodation %s is not available", itemID.String())
		}
	case entity.ItemTour:
		item, err := s.repo.Tour.FindByID(ctx, itemID)
		if err != nil {
			return fmt.Errorf("check tour: %w", err)
		}
		if item == nil || !item.IsAvailable {
			return fmt.Errorf("tour %s is not available", itemID.String())
		}
	case entity.ItemEvent:
		item, err := s.repo.Event.FindByID(ctx, itemID)
		if err != nil {
			return fmt.Errorf("check event: %w", err)
		}
		if item == nil || !item.IsAvailable {
			return fmt.Errorf("event %s is not available", itemID.String())
		}
	case entity.ItemVehicle:
		item, err := s.repo.Vehicle.FindByID(ctx, itemID)
		if err != nil {
			return fmt.Errorf("check vehicle: %w", err)
		}
		if item == nil || !item.IsAvailable {
			return fmt.Errorf("vehicle %s is not available", itemID.String())
		}
	case entity.ItemProduct:
		item, err := s.repo.Product.FindByID(ctx, itemID)
		if err != nil {
			return fmt.Errorf("check product: %w", err)
		}
		if item == nil || !item.IsAvailable {
			return fmt.Errorf("product %s is not available", itemID.String())
		}
	}
	return nil
}

// publishEvent is best effort: a broker outage must never fail the booking.
func (s *bookingService) publishEvent(ctx context.Context, queueName string, booking *entity.Booking) {
	event := queue.BookingEvent{
		BookingID:     booking.ID.String(),
		ReferenceCode: booking.ReferenceCode,
		UserID:        booking.UserID.String(),
		ItemType:      string(booking.ItemType),
		ItemID:        booking.ItemID.String(),
		CheckIn:       booking.CheckIn.Format("2006-01-02"),
		CheckOut:      booking.CheckOut.Format("2006-01-02"),
		Guests:        booking.Guests,
		TotalPrice:    booking.TotalPrice,
		Status:        string(booking.Status),
		OccurredAt:    time.Now().Format(time.RFC3339),
	}

	if err := s.events.Publish(ctx, queueName, event); err != nil {
		s.log.Warn("Failed to publish booking event",
			zap.Error(err),
			zap.String("queue", queueName),
			zap.String("booking_id", booking.ID.String()))
	}
}
