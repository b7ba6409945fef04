package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Khursands/Online-Pharmacy/internal/cache"
	"github.com/Khursands/Online-Pharmacy/internal/events"
	"github.com/Khursands/Online-Pharmacy/internal/model"
	"github.com/Khursands/Online-Pharmacy/internal/repository"
	"github.com/Khursands/Online-Pharmacy/pkg/logger"
)

type PlaceOrderInput struct {
	ShippingAddress   string
	PaymentMethod     model.PaymentMethod
	PrescriptionImage string
	Notes             string
}

type PlaceOrderResult struct {
	OrderID     string  `json:"orderId"`
	TotalAmount float64 `json:"totalAmount"`
}

type OrderList struct {
	Orders     []*model.Order `json:"orders"`
	Pagination Pagination     `json:"pagination"`
}

// OrderService 下单与订单查询
type OrderService interface {
	Place(ctx context.Context, userID string, in PlaceOrderInput) (*PlaceOrderResult, error)
	List(ctx context.Context, userID string, page, limit int) (*OrderList, error)
	Get(ctx context.Context, userID, orderID string) (*model.Order, error)
}

type orderService struct {
	orders      repository.OrderRepository
	publisher   events.Publisher
	invalidator *CacheInvalidator
}

func NewOrderService(orders repository.OrderRepository, publisher events.Publisher, invalidator *CacheInvalidator) OrderService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &orderService{orders: orders, publisher: publisher, invalidator: invalidator}
}

func (s *orderService) Place(ctx context.Context, userID string, in PlaceOrderInput) (*PlaceOrderResult, error) {
	if in.PaymentMethod == "" {
		in.PaymentMethod = model.PaymentCOD
	}
	order, err := s.orders.PlaceFromCart(ctx, userID, func(lines []model.CartLine) (*model.Order, error) {
		return buildOrder(userID, lines, in)
	})
	if err != nil {
		var se *repository.StockError
		if errors.As(err, &se) {
			return nil, fmt.Errorf("%w for %s", ErrInsufficientStock, se.Name)
		}
		return nil, err
	}

	s.afterPlaced(ctx, order)
	return &PlaceOrderResult{OrderID: order.ID, TotalAmount: order.TotalAmount}, nil
}

// buildOrder 校验购物车快照并生成订单；价格取快照中的当前价
func buildOrder(userID string, lines []model.CartLine, in PlaceOrderInput) (*model.Order, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	// 先校验库存再校验处方；扣减时在行锁下再复核一次
	needsRx := false
	for _, l := range lines {
		if !l.InStock || l.StockQuantity < l.Quantity {
			return nil, fmt.Errorf("%w for %s", ErrInsufficientStock, l.Name)
		}
		needsRx = needsRx || l.Prescription
	}
	if needsRx && strings.TrimSpace(in.PrescriptionImage) == "" {
		return nil, ErrPrescriptionRequired
	}

	total, _ := cartTotals(lines)
	order := &model.Order{
		ID:                uuid.New().String(),
		UserID:            userID,
		Status:            model.OrderStatusPending,
		TotalAmount:       total,
		ShippingAddress:   strings.TrimSpace(in.ShippingAddress),
		PaymentMethod:     in.PaymentMethod,
		PaymentStatus:     model.PaymentStatusPending,
		PrescriptionImage: strings.TrimSpace(in.PrescriptionImage),
		Notes:             in.Notes,
		Items:             make([]model.OrderItem, len(lines)),
	}
	for i, l := range lines {
		order.Items[i] = model.OrderItem{MedicineID: l.MedicineID, Quantity: l.Quantity, Price: l.Price, Name: l.Name}
	}
	return order, nil
}

// afterPlaced 事务提交后的旁路动作，失败只记日志
func (s *orderService) afterPlaced(ctx context.Context, order *model.Order) {
	keys := make([]string, 0, len(order.Items)+1)
	items := make([]events.OrderPlacedItem, len(order.Items))
	for i, it := range order.Items {
		keys = append(keys, cache.MedicineKey(it.MedicineID))
		items[i] = events.OrderPlacedItem{MedicineID: it.MedicineID, Quantity: it.Quantity, Price: it.Price}
	}
	s.invalidator.Enqueue(append(keys, cache.FeaturedKey)...)

	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 3*time.Second)
	defer cancel()
	err := s.publisher.PublishOrderPlaced(pubCtx, events.OrderPlaced{
		EventID:     uuid.New().String(),
		OrderID:     order.ID,
		UserID:      order.UserID,
		TotalAmount: order.TotalAmount,
		Items:       items,
		PlacedAt:    time.Now().UTC(),
	})
	if err != nil {
		logger.Warn("order placed event not published", zap.String("order_id", order.ID), zap.Error(err))
	}
}

func (s *orderService) List(ctx context.Context, userID string, page, limit int) (*OrderList, error) {
	page, size, offset := normalizePage(page, limit, defaultOrderPageSize)
	orders, total, err := s.orders.ListByUser(ctx, userID, offset, size)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []*model.Order{}
	}
	return &OrderList{Orders: orders, Pagination: newPagination(page, size, total)}, nil
}

func (s *orderService) Get(ctx context.Context, userID, orderID string) (*model.Order, error) {
	o, err := s.orders.GetByID(ctx, userID, orderID)
	if isNotFound(err) {
		return nil, fmt.Errorf("order %w", ErrNotFound)
	}
	return o, err
}
