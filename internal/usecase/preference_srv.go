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

type PreferenceService interface {
	Save(ctx context.Context, userID string, req *request.SavePreferencesRequest) (*response.PreferenceResponse, error)
	Get(ctx context.Context, userID string) (*response.PreferenceResponse, error)
}

type preferenceService struct {
	repo     *repository.Repository
	notifier notify.Notifier
	log      *zap.Logger
}

func NewPreferenceService(repo *repository.Repository, notifier notify.Notifier, log *zap.Logger) PreferenceService {
	return &preferenceService{
		repo:     repo,
		notifier: notifier,
		log:      log.With(zap.String("service", "preference")),
	}
}

func (s *preferenceService) Save(ctx context.Context, userID string, req *request.SavePreferencesRequest) (*response.PreferenceResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.notifier.Error(ctx, notify.MsgPreferencesSaveFail)
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	now := time.Now()
	pref := &entity.TravelPreference{
		BaseNoDelete:  entity.BaseNoDelete{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		UserID:        userUUID,
		PreferredType: entity.ItemType(req.PreferredType),
		BudgetPerDay:  req.BudgetPerDay,
		GroupSize:     req.GroupSize,
		Interests:     req.Interests,
	}

	if err := s.repo.Preference.Upsert(ctx, pref); err != nil {
		s.notifier.Error(ctx, notify.MsgPreferencesSaveFail)
		return nil, fmt.Errorf("save preferences: %w", err)
	}

	s.notifier.Success(ctx, notify.MsgPreferencesSaved)

	resp := response.PreferenceToResponse(pref)
	return &resp, nil
}

func (s *preferenceService) Get(ctx context.Context, userID string) (*response.PreferenceResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	pref, err := s.repo.Preference.FindByUserID(ctx, userUUID)
	if err != nil {
		return nil, fmt.Errorf("find preferences: %w", err)
	}
	if pref == nil {
		return nil, nil
	}

	resp := response.PreferenceToResponse(pref)
	return &resp, nil
}
