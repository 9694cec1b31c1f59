package usecase

import (
	"context"
	"fmt"
	"time"

	"tourism-booking/internal/authz"
	"tourism-booking/internal/data/entity"
	"tourism-booking/internal/data/repository"
	"tourism-booking/internal/dto/request"
	"tourism-booking/internal/dto/response"
	"tourism-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PartnerService interface {
	BecomePartner(ctx context.Context, userID string, req *request.BecomePartnerRequest) (*response.PartnerResponse, error)
	GetByUserID(ctx context.Context, userID string) (*response.PartnerResponse, error)
	Verify(ctx context.Context, partnerID string) error
	SetActive(ctx context.Context, partnerID string, active bool) error
}

type partnerService struct {
	repo     *repository.Repository
	resolver *authz.Resolver
	log      *zap.Logger
}

func NewPartnerService(repo *repository.Repository, resolver *authz.Resolver, log *zap.Logger) PartnerService {
	return &partnerService{
		repo:     repo,
		resolver: resolver,
		log:      log.With(zap.String("service", "partner")),
	}
}

// BecomePartner creates the business profile and ADDS the partner grant.
// The customer grant stays; a partner can still book as a customer.
func (s *partnerService) BecomePartner(ctx context.Context, userID string, req *request.BecomePartnerRequest) (*response.PartnerResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	existing, err := s.repo.Partner.FindByUserID(ctx, userUUID)
	if err != nil {
		return nil, fmt.Errorf("check existing partner: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("user %s is already a partner", userID)
	}

	businessType := entity.BusinessType(req.BusinessType)
	if !entity.ValidBusinessType(businessType) {
		return nil, fmt.Errorf("unknown business type %s", req.BusinessType)
	}

	now := time.Now()
	partner := &entity.Partner{
		Base:         entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		UserID:       userUUID,
		BusinessName: req.BusinessName,
		BusinessType: businessType,
		Description:  req.Description,
		IsActive:     true,
	}

	if err := s.repo.Partner.Create(ctx, partner); err != nil {
		return nil, fmt.Errorf("create partner: %w", err)
	}

	grant := &entity.RoleGrant{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: now},
		UserID:     userUUID,
		Role:       string(authz.RolePartner),
	}
	if err := s.repo.Role.Grant(ctx, grant); err != nil {
		return nil, fmt.Errorf("grant partner role: %w", err)
	}

	// Cached roles are stale the moment the grant lands.
	s.resolver.Invalidate(userUUID)

	s.log.Info("Partner created",
		zap.String("partner_id", partner.ID.String()),
		zap.String("user_id", userID),
		zap.String("business_type", req.BusinessType))

	resp := response.PartnerToResponse(partner)
	return &resp, nil
}

func (s *partnerService) GetByUserID(ctx context.Context, userID string) (*response.PartnerResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	partner, err := s.repo.Partner.FindByUserID(ctx, userUUID)
	if err != nil {
		return nil, fmt.Errorf("find partner: %w", err)
	}
	if partner == nil {
		return nil, fmt.Errorf("no partner profile for user %s", userID)
	}

	resp := response.PartnerToResponse(partner)
	return &resp, nil
}

func (s *partnerService) Verify(ctx context.Context, partnerID string) error {
	id, err := uuid.Parse(partnerID)
	if err != nil {
		return fmt.Errorf("invalid partner ID format %s: %w", partnerID, err)
	}

	if err := s.repo.Partner.SetVerified(ctx, id, true); err != nil {
		return fmt.Errorf("verify partner: %w", err)
	}

	s.log.Info("Partner verified", zap.String("partner_id", partnerID))
	return nil
}

func (s *partnerService) SetActive(ctx context.Context, partnerID string, active bool) error {
	id, err := uuid.Parse(partnerID)
	if err != nil {
		return fmt.Errorf("invalid partner ID format %s: %w", partnerID, err)
	}

	if err := s.repo.Partner.SetActive(ctx, id, active); err != nil {
		return fmt.Errorf("set partner active: %w", err)
	}

	return nil
}
