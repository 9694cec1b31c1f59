package usecase

import (
	"context"
	"fmt"
	"time"

	"tourism-booking/internal/data/entity"
	"tourism-booking/internal/data/repository"
	"tourism-booking/internal/dto/request"
	"tourism-booking/internal/dto/response"
	"tourism-booking/internal/notify"
	"tourism-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// seatingWindow is the minimum spacing between two reservations on the same
// table.
const seatingWindow = 2 * time.Hour

type RestaurantService interface {
	Create(ctx context.Context, partnerID string, req *request.CreateRestaurantRequest) (*response.RestaurantResponse, error)
	GetByID(ctx context.Context, id string) (*response.RestaurantResponse, error)
	ListActive(ctx context.Context, req *request.PaginatedRequest) ([]response.RestaurantResponse, error)
	Delete(ctx context.Context, id string) error

	AddTable(ctx context.Context, restaurantID string, req *request.CreateTableRequest) (*response.TableResponse, error)
	ListTables(ctx context.Context, restaurantID string) ([]response.TableResponse, error)

	Reserve(ctx context.Context, userID string, req *request.CreateReservationRequest) (*response.ReservationResponse, error)
	CancelReservation(ctx context.Context, userID, reservationID string) error
	GetUserReservations(ctx context.Context, userID string) ([]response.ReservationResponse, error)
}

type restaurantService struct {
	repo     *repository.Repository
	notifier notify.Notifier
	log      *zap.Logger
}

func NewRestaurantService(repo *repository.Repository, notifier notify.Notifier, log *zap.Logger) RestaurantService {
	return &restaurantService{
		repo:     repo,
		notifier: notifier,
		log:      log.With(zap.String("service", "restaurant")),
	}
}

func (s *restaurantService) Create(ctx context.Context, partnerID string, req *request.CreateRestaurantRequest) (*response.RestaurantResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.notifier.Error(ctx, notify.MsgListingSaveFailed)
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	partnerUUID, err := uuid.Parse(partnerID)
	if err != nil {
		return nil, fmt.Errorf("invalid partner ID format %s: %w", partnerID, err)
	}

	now := time.Now()
	restaurant := &entity.Restaurant{
		Base:        entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		PartnerID:   partnerUUID,
		Name:        req.Name,
		Description: req.Description,
		Location:    req.Location,
		Cuisine:     req.Cuisine,
		MediaRefs:   req.MediaRefs,
		IsActive:    true,
	}

	if err := s.repo.Restaurant.Create(ctx, restaurant); err != nil {
		s.notifier.Error(ctx, notify.MsgListingSaveFailed)
		return nil, fmt.Errorf("create restaurant: %w", err)
	}

	s.notifier.Success(ctx, notify.MsgListingSaved)

	resp := response.RestaurantToResponse(restaurant)
	return &resp, nil
}

func (s *restaurantService) GetByID(ctx context.Context, id string) (*response.RestaurantResponse, error) {
	restaurantID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid restaurant ID format %s: %w", id, err)
	}

	restaurant, err := s.repo.Restaurant.FindByID(ctx, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("find restaurant: %w", err)
	}
	if restaurant == nil {
		return nil, fmt.Errorf("restaurant %s not found", id)
	}

	resp := response.RestaurantToResponse(restaurant)
	return &resp, nil
}

func (s *restaurantService) ListActive(ctx context.Context, req *request.PaginatedRequest) ([]response.RestaurantResponse, error) {
	list, err := s.repo.Restaurant.FindActive(ctx, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("find restaurants: %w", err)
	}

	return response.RestaurantsToResponse(list), nil
}

func (s *restaurantService) Delete(ctx context.Context, id string) error {
	restaurantID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid restaurant ID format %s: %w", id, err)
	}

	if err := s.repo.Restaurant.Delete(ctx, restaurantID); err != nil {
		s.notifier.Error(ctx, notify.MsgListingDeleteFail)
		return fmt.Errorf("delete restaurant: %w", err)
	}

	s.notifier.Success(ctx, notify.MsgListingDeleted)
	return nil
}

func (s *restaurantService) AddTable(ctx context.Context, restaurantID string, req *request.CreateTableRequest) (*response.TableResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	restUUID, err := uuid.Parse(restaurantID)
	if err != nil {
		return nil, fmt.Errorf("invalid restaurant ID format %s: %w", restaurantID, err)
	}

	restaurant, err := s.repo.Restaurant.FindByID(ctx, restUUID)
	if err != nil {
		return nil, fmt.Errorf("find restaurant: %w", err)
	}
	if restaurant == nil {
		return nil, fmt.Errorf("restaurant %s not found", restaurantID)
	}

	table := &entity.RestaurantTable{
		BaseSimple:   entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		RestaurantID: restUUID,
		Label:        req.Label,
		Seats:        req.Seats,
	}

	if err := s.repo.Restaurant.CreateTable(ctx, table); err != nil {
		return nil, fmt.Errorf("create table: %w", err)
	}

	resp := response.TableToResponse(table)
	return &resp, nil
}

func (s *restaurantService) ListTables(ctx context.Context, restaurantID string) ([]response.TableResponse, error) {
	restUUID, err := uuid.Parse(restaurantID)
	if err != nil {
		return nil, fmt.Errorf("invalid restaurant ID format %s: %w", restaurantID, err)
	}

	tables, err := s.repo.Restaurant.FindTablesByRestaurant(ctx, restUUID)
	if err != nil {
		return nil, fmt.Errorf("find tables: %w", err)
	}

	return response.TablesToResponse(tables), nil
}

func (s *restaurantService) Reserve(ctx context.Context, userID string, req *request.CreateReservationRequest) (*response.ReservationResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.notifier.Error(ctx, notify.MsgReservationCreateFail)
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	tableID, err := uuid.Parse(req.TableID)
	if err != nil {
		return nil, fmt.Errorf("invalid table ID format %s: %w", req.TableID, err)
	}

	reservedAt, err := time.Parse(time.RFC3339, req.ReservedAt)
	if err != nil {
		return nil, fmt.Errorf("invalid reserved_at %s: %w", req.ReservedAt, err)
	}
	if reservedAt.Before(time.Now()) {
		return nil, fmt.Errorf("cannot reserve a table in the past")
	}

	table, err := s.repo.Restaurant.FindTableByID(ctx, tableID)
	if err != nil {
		return nil, fmt.Errorf("find table: %w", err)
	}
	if table == nil {
		s.notifier.Error(ctx, notify.MsgReservationCreateFail)
		return nil, fmt.Errorf("table %s not found", req.TableID)
	}
	if req.Guests > table.Seats {
		s.notifier.Error(ctx, notify.MsgReservationCreateFail)
		return nil, fmt.Errorf("table %s seats %d, requested %d", table.Label, table.Seats, req.Guests)
	}

	// A table holds one party per seating window.
	existing, err := s.repo.Restaurant.FindReservationsByTable(ctx, tableID)
	if err != nil {
		return nil, fmt.Errorf("check table availability: %w", err)
	}
	for _, other := range existing {
		gap := other.ReservedAt.Sub(reservedAt)
		if gap < 0 {
			gap = -gap
		}
		if gap < seatingWindow {
			s.notifier.Error(ctx, notify.MsgReservationCreateFail)
			return nil, fmt.Errorf("table %s is already reserved around %s", table.Label, other.ReservedAt.Format(time.RFC3339))
		}
	}

	now := time.Now()
	reservation := &entity.TableReservation{
		Base:       entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		TableID:    tableID,
		UserID:     userUUID,
		ReservedAt: reservedAt,
		Guests:     req.Guests,
		Status:     entity.BookingStatusPending,
	}

	if err := s.repo.Restaurant.CreateReservation(ctx, reservation); err != nil {
		s.notifier.Error(ctx, notify.MsgReservationCreateFail)
		return nil, fmt.Errorf("create reservation: %w", err)
	}

	s.notifier.Success(ctx, notify.MsgReservationCreated)

	s.log.Info("Table reserved",
		zap.String("table_id", req.TableID),
		zap.String("user_id", userID),
		zap.Time("reserved_at", reservedAt))

	resp := response.ReservationToResponse(reservation)
	return &resp, nil
}

func (s *restaurantService) CancelReservation(ctx context.Context, userID, reservationID string) error {
	id, err := uuid.Parse(reservationID)
	if err != nil {
		return fmt.Errorf("invalid reservation ID format %s: %w", reservationID, err)
	}

	reservation, err := s.repo.Restaurant.FindReservationByID(ctx, id)
	if err != nil {
		return fmt.Errorf("find reservation: %w", err)
	}
	if reservation == nil {
		return fmt.Errorf("reservation %s not found", reservationID)
	}
	if reservation.UserID.String() != userID {
		return fmt.Errorf("reservation %s does not belong to user %s", reservationID, userID)
	}

	if !entity.CanTransition(reservation.Status, entity.BookingStatusCancelled) {
		s.notifier.Error(ctx, notify.MsgBookingCancelFail)
		return fmt.Errorf("cannot cancel reservation in status %s", reservation.Status)
	}

	if err := s.repo.Restaurant.UpdateReservationStatus(ctx, id, entity.BookingStatusCancelled); err != nil {
		s.notifier.Error(ctx, notify.MsgBookingCancelFail)
		return fmt.Errorf("cancel reservation: %w", err)
	}

	s.notifier.Success(ctx, notify.MsgBookingCancelled)
	return nil
}

func (s *restaurantService) GetUserReservations(ctx context.Context, userID string) ([]response.ReservationResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	reservations, err := s.repo.Restaurant.FindReservationsByUserID(ctx, userUUID)
	if err != nil {
		return nil, fmt.Errorf("find reservations: %w", err)
	}

	return response.ReservationsToResponse(reservations), nil
}
