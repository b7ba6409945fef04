package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Khursands/Online-Pharmacy/internal/cache"
	"github.com/Khursands/Online-Pharmacy/internal/model"
	"github.com/Khursands/Online-Pharmacy/internal/repository"
)

const reviewListLimit = 50

// ReviewService 药品评价
type ReviewService interface {
	List(ctx context.Context, medicineID string) ([]*model.Review, error)
	Create(ctx context.Context, userID, medicineID string, rating int, comment string) (*model.Review, error)
}

type reviewService struct {
	reviews     repository.ReviewRepository
	medicines   repository.MedicineRepository
	invalidator *CacheInvalidator
}

func NewReviewService(reviews repository.ReviewRepository, medicines repository.MedicineRepository, invalidator *CacheInvalidator) ReviewService {
	return &reviewService{reviews: reviews, medicines: medicines, invalidator: invalidator}
}

func (s *reviewService) List(ctx context.Context, medicineID string) ([]*model.Review, error) {
	list, err := s.reviews.ListByMedicine(ctx, medicineID, reviewListLimit)
	if list == nil && err == nil {
		list = []*model.Review{}
	}
	return list, err
}

func (s *reviewService) Create(ctx context.Context, userID, medicineID string, rating int, comment string) (*model.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", ErrInvalidInput)
	}
	if _, err := s.medicines.GetActive(ctx, medicineID); err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("medicine %w", ErrNotFound)
		}
		return nil, err
	}
	exists, err := s.reviews.Exists(ctx, userID, medicineID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyReviewed
	}

	r := &model.Review{
		ID:         uuid.New().String(),
		UserID:     userID,
		MedicineID: medicineID,
		Rating:     rating,
		Comment:    strings.TrimSpace(comment),
	}
	if err := s.reviews.Create(ctx, r); err != nil {
		switch {
		case errors.Is(err, gorm.ErrDuplicatedKey):
			return nil, ErrAlreadyReviewed
		case errors.Is(err, repository.ErrMedicineUnavailable):
			return nil, fmt.Errorf("medicine %w", ErrNotFound)
		}
		return nil, err
	}
	s.invalidator.Enqueue(cache.MedicineKey(medicineID), cache.FeaturedKey)
	return r, nil
}
