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
	"tourism-booking/internal/mutation"
	"tourism-booking/internal/notify"
	"tourism-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AccommodationService interface {
	Create(ctx context.Context, partnerID string, req *request.CreateAccommodationRequest) (*response.AccommodationResponse, error)
	GetByID(ctx context.Context, id string) (*response.AccommodationResponse, error)
	ListAvailable(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.AccommodationResponse], error)
	ListFeatured(ctx context.Context) ([]response.AccommodationResponse, error)
	ListByPartner(ctx context.Context, partnerID string) ([]response.AccommodationResponse, error)
	Update(ctx context.Context, id string, req *request.UpdateAccommodationRequest) (*response.AccommodationResponse, error)
	SetFeatured(ctx context.Context, id string, featured bool) error
	SetAvailability(ctx context.Context, id string, available bool) error
	Delete(ctx context.Context, id string) error
}

type accommodationService struct {
	repo     *repository.Repository
	cache    *cache.QueryCache
	debounce *mutation.Debouncer
	notifier notify.Notifier
	log      *zap.Logger
}

func NewAccommodationService(
	repo *repository.Repository,
	queryCache *cache.QueryCache,
	debounce *mutation.Debouncer,
	notifier notify.Notifier,
	log *zap.Logger,
) AccommodationService {
	return &accommodationService{
		repo:     repo,
		cache:    queryCache,
		debounce: debounce,
		notifier: notifier,
		log:      log.With(zap.String("service", "accommodation")),
	}
}

func (s *accommodationService) Create(ctx context.Context, partnerID string, req *request.CreateAccommodationRequest) (*response.AccommodationResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.notifier.Error(ctx, notify.MsgListingSaveFailed)
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	partnerUUID, err := uuid.Parse(partnerID)
	if err != nil {
		return nil, fmt.Errorf("invalid partner ID format %s: %w", partnerID, err)
	}

	now := time.Now()
	acc := &entity.Accommodation{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		PartnerID:     partnerUUID,
		Title:         req.Title,
		Description:   req.Description,
		Location:      req.Location,
		PricePerNight: req.PricePerNight,
		MaxGuests:     req.MaxGuests,
		Bedrooms:      req.Bedrooms,
		MediaRefs:     req.MediaRefs,
		IsAvailable:   true,
	}

	if err := s.repo.Accommodation.Create(ctx, acc); err != nil {
		s.notifier.Error(ctx, notify.MsgListingSaveFailed)
		return nil, fmt.Errorf("create accommodation: %w", err)
	}

	s.cache.Invalidate("accommodations")
	s.notifier.Success(ctx, notify.MsgListingSaved)

	s.log.Info("Accommodation created",
		zap.String("accommodation_id", acc.ID.String()),
		zap.String("partner_id", partnerID))

	resp := response.AccommodationToResponse(acc)
	return &resp, nil
}

func (s *accommodationService) GetByID(ctx context.Context, id string) (*response.AccommodationResponse, error) {
	accID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid accommodation ID format %s: %w", id, err)
	}

	acc, err := s.repo.Accommodation.FindByID(ctx, accID)
	if err != nil {
		return nil, fmt.Errorf("find accommodation: %w", err)
	}
	if acc == nil {
		return nil, fmt.Errorf("accommodation %s not found", id)
	}

	resp := response.AccommodationToResponse(acc)
	return &resp, nil
}

func (s *accommodationService) ListAvailable(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.AccommodationResponse], error) {
	key := cache.Key("accommodations", fmt.Sprintf("page-%d-%d", req.Limit(), req.Offset()))
	if cached, ok := s.cache.Get(key); ok {
		if resp, ok := cached.(*response.PaginatedResponse[response.AccommodationResponse]); ok {
			return resp, nil
		}
	}

	list, err := s.repo.Accommodation.FindAvailable(ctx, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("find accommodations: %w", err)
	}

	total, err := s.repo.Accommodation.CountAvailable(ctx)
	if err != nil {
		return nil, fmt.Errorf("count accommodations: %w", err)
	}

	resp := response.NewPaginatedResponse(response.AccommodationsToResponse(list), req.Page, req.PerPage, total)
	s.cache.Set(key, resp)

	return resp, nil
}

func (s *accommodationService) ListFeatured(ctx context.Context) ([]response.AccommodationResponse, error) {
	key := cache.Key("accommodations", "featured")
	if cached, ok := s.cache.Get(key); ok {
		if resp, ok := cached.([]response.AccommodationResponse); ok {
			return resp, nil
		}
	}

	list, err := s.repo.Accommodation.FindFeatured(ctx)
	if err != nil {
		return nil, fmt.Errorf("find featured accommodations: %w", err)
	}

	resp := response.AccommodationsToResponse(list)
	s.cache.Set(key, resp)

	return resp, nil
}

func (s *accommodationService) ListByPartner(ctx context.Context, partnerID string) ([]response.AccommodationResponse, error) {
	partnerUUID, err := uuid.Parse(partnerID)
	if err != nil {
		return nil, fmt.Errorf("invalid partner ID format %s: %w", partnerID, err)
	}

	list, err := s.repo.Accommodation.FindByPartnerID(ctx, partnerUUID)
	if err != nil {
		return nil, fmt.Errorf("find partner accommodations: %w", err)
	}

	return response.AccommodationsToResponse(list), nil
}

func (s *accommodationService) Update(ctx context.Context, id string, req *request.UpdateAccommodationRequest) (*response.AccommodationResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.notifier.Error(ctx, notify.MsgListingSaveFailed)
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	accID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid accommodation ID format %s: %w", id, err)
	}

	acc, err := s.repo.Accommodation.FindByID(ctx, accID)
	if err != nil {
		return nil, fmt.Errorf("find accommodation: %w", err)
	}
	if acc == nil {
		return nil, fmt.Errorf("accommodation %s not found", id)
	}

	acc.Title = req.Title
	acc.Description = req.Description
	acc.Location = req.Location
	acc.PricePerNight = req.PricePerNight
	acc.MaxGuests = req.MaxGuests
	acc.Bedrooms = req.Bedrooms
	acc.MediaRefs = req.MediaRefs
	acc.UpdatedAt = time.Now()

	if err := s.repo.Accommodation.Update(ctx, acc); err != nil {
		s.notifier.Error(ctx, notify.MsgListingSaveFailed)
		return nil, fmt.Errorf("update accommodation: %w", err)
	}

	s.cache.Invalidate("accommodations")
	s.notifier.Success(ctx, notify.MsgListingSaved)

	resp := response.AccommodationToResponse(acc)
	return &resp, nil
}

// SetFeatured invalidates both the general listing cache and the featured
// list, since a featured flag changes what either query returns.
func (s *accommodationService) SetFeatured(ctx context.Context, id string, featured bool) error {
	accID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid accommodation ID format %s: %w", id, err)
	}

	key := cache.Key("accommodation", id, "featured")
	err = s.debounce.Do(ctx, key, func(ctx context.Context) error {
		if err := s.repo.Accommodation.SetFeatured(ctx, accID, featured); err != nil {
			return fmt.Errorf("set featured: %w", err)
		}
		s.cache.Invalidate("accommodations", cache.Key("accommodations", "featured"))
		return nil
	})
	if err != nil {
		s.notifier.Error(ctx, notify.MsgListingSaveFailed)
		return err
	}

	s.notifier.Success(ctx, notify.MsgListingSaved)
	return nil
}

// SetAvailability coalesces rapid toggles on the same listing: only the
// last value written within the window reaches the database.
func (s *accommodationService) SetAvailability(ctx context.Context, id string, available bool) error {
	accID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid accommodation ID format %s: %w", id, err)
	}

	key := cache.Key("accommodation", id, "availability")
	err = s.debounce.Do(ctx, key, func(ctx context.Context) error {
		if err := s.repo.Accommodation.SetAvailability(ctx, accID, available); err != nil {
			return fmt.Errorf("set availability: %w", err)
		}
		s.cache.Invalidate("accommodations")
		return nil
	})
	if err != nil {
		s.notifier.Error(ctx, notify.MsgListingSaveFailed)
		return err
	}

	s.notifier.Success(ctx, notify.MsgListingSaved)
	return nil
}

func (s *accommodationService) Delete(ctx context.Context, id string) error {
	accID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid accommodation ID format %s: %w", id, err)
	}

	if err := s.repo.Accommodation.Delete(ctx, accID); err != nil {
		s.notifier.Error(ctx, notify.MsgListingDeleteFail)
		return fmt.Errorf("delete accommodation: %w", err)
	}

	s.cache.Invalidate("accommodations")
	s.notifier.Success(ctx, notify.MsgListingDeleted)

	return nil
}
