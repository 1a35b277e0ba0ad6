package service

import (
	"context"
	"errors"
	"sync"

	cabinserrors "refugio/internal/cabins/errors"
	"refugio/internal/cabins/repository"
	"refugio/pkg/config"
	apperrors "refugio/pkg/errors"
	"refugio/pkg/model"
)

type CabinService interface {
	GetByID(ctx context.Context, id string) (*model.Cabin, error)
	GetAll(ctx context.Context, activeOnly bool, limit int, offset int64) ([]*model.Cabin, int64, error)
}

type cabinService struct {
	repo repository.CabinRepository
	cfg  *config.Config
}

func NewCabinService(repo repository.CabinRepository, cfg *config.Config) CabinService {
	return &cabinService{
		repo: repo,
		cfg:  cfg,
	}
}

func (s *cabinService) GetByID(ctx context.Context, id string) (*model.Cabin, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Cabin ID cannot be empty")
	}

	cabin, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, cabinserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Cabin", id)
		}
		if errors.Is(err, cabinserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid cabin ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve cabin", err)
	}

	return cabin, nil
}

func (s *cabinService) GetAll(ctx context.Context, activeOnly bool, limit int, offset int64) ([]*model.Cabin, int64, error) {
	var count int64
	var cabins []*model.Cabin
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx, activeOnly)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count cabins", "error", errCount)
			errCount = apperrors.Internal("Failed to count cabins", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		cabins, errFind = s.repo.FindAll(ctx, activeOnly, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list cabins", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve cabins", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return cabins, count, nil
}
