package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Khursands/Online-Pharmacy/internal/model"
	"github.com/Khursands/Online-Pharmacy/internal/repository"
)

const maxAddQuantity = 10

// CartView 购物车视图
type CartView struct {
	Items       []model.CartLine `json:"items"`
	TotalAmount float64          `json:"totalAmount"`
	TotalItems  int              `json:"totalItems"`
}

// CartService 购物车；加购只校验库存，不预占
type CartService interface {
	Get(ctx context.Context, userID string) (*CartView, error)
	Add(ctx context.Context, userID, medicineID string, quantity int) (*model.CartItem, error)
	Update(ctx context.Context, userID, itemID string, quantity int) error
	Remove(ctx context.Context, userID, itemID string) error
	Clear(ctx context.Context, userID string) error
}

type cartService struct {
	carts repository.CartRepository
}

func NewCartService(carts repository.CartRepository) CartService {
	return &cartService{carts: carts}
}

func (s *cartService) Get(ctx context.Context, userID string) (*CartView, error) {
	lines, err := s.carts.ListLines(ctx, userID)
	if err != nil {
		return nil, err
	}
	if lines == nil {
		lines = []model.CartLine{}
	}
	total, items := cartTotals(lines)
	return &CartView{Items: lines, TotalAmount: total, TotalItems: items}, nil
}

func (s *cartService) Add(ctx context.Context, userID, medicineID string, quantity int) (*model.CartItem, error) {
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 1 || quantity > maxAddQuantity {
		return nil, fmt.Errorf("%w: quantity must be between 1 and %d", ErrInvalidInput, maxAddQuantity)
	}
	item, err := s.carts.Add(ctx, userID, medicineID, quantity)
	if err != nil {
		return nil, mapCartErr(err)
	}
	return item, nil
}

func (s *cartService) Update(ctx context.Context, userID, itemID string, quantity int) error {
	if quantity < 1 {
		return fmt.Errorf("%w: quantity must be greater than 0", ErrInvalidInput)
	}
	return mapCartErr(s.carts.UpdateQuantity(ctx, userID, itemID, quantity))
}

func (s *cartService) Remove(ctx context.Context, userID, itemID string) error {
	return mapCartErr(s.carts.Delete(ctx, userID, itemID))
}

func (s *cartService) Clear(ctx context.Context, userID string) error {
	return s.carts.Clear(ctx, userID)
}

func mapCartErr(err error) error {
	var se *repository.StockError
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrMedicineUnavailable):
		return fmt.Errorf("medicine %w", ErrNotFound)
	case errors.As(err, &se):
		return fmt.Errorf("%w for requested quantity", ErrInsufficientStock)
	case isNotFound(err):
		return fmt.Errorf("cart item %w", ErrNotFound)
	default:
		return err
	}
}
