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
	"tourism-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CatalogService groups the simpler listing types: tours, vehicles and
// local products.
type CatalogService interface {
	CreateTour(ctx context.Context, partnerID string, req *request.CreateTourRequest) (*response.TourResponse, error)
	GetTour(ctx context.Context, id string) (*response.TourResponse, error)
	ListTours(ctx context.Context, req *request.PaginatedRequest) ([]response.TourResponse, error)
	DeleteTour(ctx context.Context, id string) error

	CreateVehicle(ctx context.Context, partnerID string, req *request.CreateVehicleRequest) (*response.VehicleResponse, error)
	GetVehicle(ctx context.Context, id string) (*response.VehicleResponse, error)
	ListVehicles(ctx context.Context, req *request.PaginatedRequest) ([]response.VehicleResponse, error)
	DeleteVehicle(ctx context.Context, id string) error

	CreateProduct(ctx context.Context, partnerID string, req *request.CreateProductRequest) (*response.ProductResponse, error)
	GetProduct(ctx context.Context, id string) (*response.ProductResponse, error)
	ListProducts(ctx context.Context, req *request.PaginatedRequest) ([]response.ProductResponse, error)
	AdjustStock(ctx context.Context, id string, delta int) error
	DeleteProduct(ctx context.Context, id string) error
}

type catalogService struct {
	repo     *repository.Repository
	cache    *cache.QueryCache
	notifier notify.Notifier
	log      *zap.Logger
}

func NewCatalogService(
	repo *repository.Repository,
	queryCache *cache.QueryCache,
	notifier notify.Notifier,
	log *zap.Logger,
) CatalogService {
	return &catalogService{
		repo:     repo,
		cache:    queryCache,
		notifier: notifier,
		log:      log.With(zap.String("service", "catalog")),
	}
}

func (s *catalogService) CreateTour(ctx context.Context, partnerID string, req *request.CreateTourRequest) (*response.TourResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.notifier.Error(ctx, notify.MsgListingSaveFailed)
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	partnerUUID, err := uuid.Parse(partnerID)
	if err != nil {
		return nil, fmt.Errorf("invalid partner ID format %s: %w", partnerID, err)
	}

	now := time.Now()
	tour := &entity.Tour{
		Base:          entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		PartnerID:     partnerUUID,
		Title:         req.Title,
		Description:   req.Description,
		Location:      req.Location,
		PricePerSeat:  req.PricePerSeat,
		DurationHours: req.DurationHours,
		MaxGroupSize:  req.MaxGroupSize,
		MediaRefs:     req.MediaRefs,
		IsAvailable:   true,
	}

	if err := s.repo.Tour.Create(ctx, tour); err != nil {
		s.notifier.Error(ctx, notify.MsgListingSaveFailed)
		return nil, fmt.Errorf("create tour: %w", err)
	}

	s.cache.Invalidate("tours")
	s.notifier.Success(ctx, notify.MsgListingSaved)

	resp := response.TourToResponse(tour)
	return &resp, nil
}

func (s *catalogService) GetTour(ctx context.Context, id string) (*response.TourResponse, error) {
	tourID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid tour ID format %s: %w", id, err)
	}

	tour, err := s.repo.Tour.FindByID(ctx, tourID)
	if err != nil {
		return nil, fmt.Errorf("find tour: %w", err)
	}
	if tour == nil {
		return nil, fmt.Errorf("tour %s not found", id)
	}

	resp := response.TourToResponse(tour)
	return &resp, nil
}

func (s *catalogService) ListTours(ctx context.Context, req *request.PaginatedRequest) ([]response.TourResponse, error) {
	key := cache.Key("tours", fmt.Sprintf("page-%d-%d", req.Limit(), req.Offset()))
	if cached, ok := s.cache.Get(key); ok {
		if resp, ok := cached.([]response.TourResponse); ok {
			return resp, nil
		}
	}

	list, err := s.repo.Tour.FindAvailable(ctx, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("find tours: %w", err)
	}

	resp := response.ToursToResponse(list)
	s.cache.Set(key, resp)

	return resp, nil
}

func (s *catalogService) DeleteTour(ctx context.Context, id string) error {
	tourID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid tour ID format %s: %w", id, err)
	}

	if err := s.repo.Tour.Delete(ctx, tourID); err != nil {
		s.notifier.Error(ctx, notify.MsgListingDeleteFail)
		return fmt.Errorf("delete tour: %w", err)
	}

	s.cache.Invalidate("tours")
	s.notifier.Success(ctx, notify.MsgListingDeleted)
	return nil
}

func (s *catalogService) CreateVehicle(ctx context.Context, partnerID string, req *request.CreateVehicleRequest) (*response.VehicleResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.notifier.Error(ctx, notify.MsgListingSaveFailed)
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	partnerUUID, err := uuid.Parse(partnerID)
	if err != nil {
		return nil, fmt.Errorf("invalid partner ID format %s: %w", partnerID, err)
	}

	now := time.Now()
	vehicle := &entity.Vehicle{
		Base:        entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		PartnerID:   partnerUUID,
		Name:        req.Name,
		Category:    entity.VehicleCategory(req.Category),
		Seats:       req.Seats,
		PricePerDay: req.PricePerDay,
		MediaRefs:   req.MediaRefs,
		IsAvailable: true,
	}

	if err := s.repo.Vehicle.Create(ctx, vehicle); err != nil {
		s.notifier.Error(ctx, notify.MsgListingSaveFailed)
		return nil, fmt.Errorf("create vehicle: %w", err)
	}

	s.cache.Invalidate("vehicles")
	s.notifier.Success(ctx, notify.MsgListingSaved)

	resp := response.VehicleToResponse(vehicle)
	return &resp, nil
}

func (s *catalogService) GetVehicle(ctx context.Context, id string) (*response.VehicleResponse, error) {
	vehicleID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid vehicle ID format %s: %w", id, err)
	}

	vehicle, err := s.repo.Vehicle.FindByID(ctx, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("find vehicle: %w", err)
	}
	if vehicle == nil {
		return nil, fmt.Errorf("vehicle %s not found", id)
	}

	resp := response.VehicleToResponse(vehicle)
	return &resp, nil
}

func (s *catalogService) ListVehicles(ctx context.Context, req *request.PaginatedRequest) ([]response.VehicleResponse, error) {
	key := cache.Key("vehicles", fmt.Sprintf("page-%d-%d", req.Limit(), req.Offset()))
	if cached, ok := s.cache.Get(key); ok {
		if resp, ok := cached.([]response.VehicleResponse); ok {
			return resp, nil
		}
	}

	list, err := s.repo.Vehicle.FindAvailable(ctx, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("find vehicles: %w", err)
	}

	resp := response.VehiclesToResponse(list)
	s.cache.Set(key, resp)

	return resp, nil
}

func (s *catalogService) DeleteVehicle(ctx context.Context, id string) error {
	vehicleID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid vehicle ID format %s: %w", id, err)
	}

	if err := s.repo.Vehicle.Delete(ctx, vehicleID); err != nil {
		s.notifier.Error(ctx, notify.MsgListingDeleteFail)
		return fmt.Errorf("delete vehicle: %w", err)
	}

	s.cache.Invalidate("vehicles")
	s.notifier.Success(ctx, notify.MsgListingDeleted)
	return nil
}

func (s *catalogService) CreateProduct(ctx context.Context, partnerID string, req *request.CreateProductRequest) (*response.ProductResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.notifier.Error(ctx, notify.MsgListingSaveFailed)
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	partnerUUID, err := uuid.Parse(partnerID)
	if err != nil {
		return nil, fmt.Errorf("invalid partner ID format %s: %w", partnerID, err)
	}

	now := time.Now()
	product := &entity.Product{
		Base:        entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		PartnerID:   partnerUUID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		MediaRefs:   req.MediaRefs,
		IsAvailable: true,
	}

	if err := s.repo.Product.Create(ctx, product); err != nil {
		s.notifier.Error(ctx, notify.MsgListingSaveFailed)
		return nil, fmt.Errorf("create product: %w", err)
	}

	s.cache.Invalidate("products")
	s.notifier.Success(ctx, notify.MsgListingSaved)

	resp := response.ProductToResponse(product)
	return &resp, nil
}

func (s *catalogService) GetProduct(ctx context.Context, id string) (*response.ProductResponse, error) {
	productID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid product ID format %s: %w", id, err)
	}

	product, err := s.repo.Product.FindByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("find product: %w", err)
	}
	if product == nil {
		return nil, fmt.Errorf("product %s not found", id)
	}

	resp := response.ProductToResponse(product)
	return &resp, nil
}

func (s *catalogService) ListProducts(ctx context.Context, req *request.PaginatedRequest) ([]response.ProductResponse, error) {
	key := cache.Key("products", fmt.Sprintf("page-%d-%d", req.Limit(), req.Offset()))
	if cached, ok := s.cache.Get(key); ok {
		if resp, ok := cached.([]response.ProductResponse); ok {
			return resp, nil
		}
	}

	list, err := s.repo.Product.FindAvailable(ctx, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}

	resp := response.ProductsToResponse(list)
	s.cache.Set(key, resp)

	return resp, nil
}

func (s *catalogService) AdjustStock(ctx context.Context, id string, delta int) error {
	productID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid product ID format %s: %w", id, err)
	}

	if err := s.repo.Product.AdjustStock(ctx, productID, delta); err != nil {
		return fmt.Errorf("adjust stock: %w", err)
	}

	s.cache.Invalidate("products")
	return nil
}

func (s *catalogService) DeleteProduct(ctx context.Context, id string) error {
	productID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid product ID format %s: %w", id, err)
	}

	if err := s.repo.Product.Delete(ctx, productID); err != nil {
		s.notifier.Error(ctx, notify.MsgListingDeleteFail)
		return fmt.Errorf("delete product: %w", err)
	}

	s.cache.Invalidate("products")
	s.notifier.Success(ctx, notify.MsgListingDeleted)
	return nil
}
