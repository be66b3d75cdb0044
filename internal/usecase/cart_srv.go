package usecase

import (
	"context"
	"fmt"
	"time"

	"service-booking/internal/data/entity"
	"service-booking/internal/data/repository"
	"service-booking/internal/dto/request"
	"service-booking/internal/dto/response"
	"service-booking/internal/pricing"
	"service-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CartService is the single owner of cart mutations. Catalog flows add and
// remove items; checkout reads and clears through the same repositories.
type CartService interface {
	GetCart(ctx context.Context, userID uuid.UUID) (*response.CartResponse, error)
	AddItem(ctx context.Context, userID uuid.UUID, req *request.AddCartItemRequest) (*response.CartItemResponse, error)
	RemoveItem(ctx context.Context, userID uuid.UUID, itemID string) error
	ClearCart(ctx context.Context, userID uuid.UUID) error

	SetDirectBooking(ctx context.Context, userID uuid.UUID, req *request.DirectBookingRequest) (*response.DirectBookingResponse, error)
	GetDirectBooking(ctx context.Context, userID uuid.UUID) (*response.DirectBookingResponse, error)
	ClearDirectBooking(ctx context.Context, userID uuid.UUID) error
}

type cartService struct {
	repo *repository.Repository
	calc *pricing.Calculator
	log  *zap.Logger
}

func NewCartService(repo *repository.Repository, config utils.BookingConfig, log *zap.Logger) CartService {
	return &cartService{
		repo: repo,
		calc: pricing.NewCalculator(pricing.Charges{
			PlatformFee:    config.PlatformFee,
			TaxBasisPoints: config.TaxBasisPoints,
		}),
		log: log.With(zap.String("service", "cart")),
	}
}

func (s *cartService) GetCart(ctx context.Context, userID uuid.UUID) (*response.CartResponse, error) {
	items, err := s.repo.Cart.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}

	lineItems := make([]entity.LineItem, len(items))
	resp := &response.CartResponse{Items: make([]response.CartItemResponse, len(items))}
	for i, item := range items {
		lineItems[i] = item.LineItem()
		resp.Items[i] = response.CartItemToResponse(item)
	}

	breakdown, err := s.calc.Compute(lineItems, entity.SourceCart)
	if err != nil {
		return nil, fmt.Errorf("price cart: %w", err)
	}
	resp.Breakdown = pricing.BookingCostPolicy{}.Apply(breakdown, entity.PaymentOptionFull)

	return resp, nil
}

func (s *cartService) AddItem(ctx context.Context, userID uuid.UUID, req *request.AddCartItemRequest) (*response.CartItemResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Add cart item validation failed", zap.Any("errors", errs))
		return nil, invalid("item", utils.FormatValidationErrors(errs))
	}

	item := &entity.CartItem{
		BaseSimple: entity.BaseSimple{
			ID:        utils.GenerateUUID(),
			CreatedAt: time.Now(),
		},
		UserID:         userID,
		ServiceID:      req.ServiceID,
		ServiceName:    req.ServiceName,
		PackageName:    req.PackageName,
		UnitPrice:      req.UnitPrice,
		Quantity:       req.Quantity,
		BookingCost:    req.BookingCost,
		InspectionCost: req.InspectionCost,
	}

	if err := s.repo.Cart.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("add cart item: %w", err)
	}

	s.log.Info("Cart item added",
		zap.String("user_id", userID.String()),
		zap.String("service_id", item.ServiceID),
		zap.Int("quantity", item.Quantity),
	)

	resp := response.CartItemToResponse(item)
	return &resp, nil
}

func (s *cartService) RemoveItem(ctx context.Context, userID uuid.UUID, itemID string) error {
	id, err := utils.ParseUUID(itemID)
	if err != nil {
		return invalid("id", "invalid cart item ID")
	}

	deleted, err := s.repo.Cart.Delete(ctx, userID, id)
	if err != nil {
		return fmt.Errorf("remove cart item: %w", err)
	}
	if !deleted {
		return fmt.Errorf("cart item %s: %w", itemID, ErrNotFound)
	}

	return nil
}

func (s *cartService) ClearCart(ctx context.Context, userID uuid.UUID) error {
	if err := s.repo.Cart.ClearByUserID(ctx, userID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}

// SetDirectBooking records a "Book Now" selection, replacing any earlier one.
func (s *cartService) SetDirectBooking(ctx context.Context, userID uuid.UUID, req *request.DirectBookingRequest) (*response.DirectBookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Direct booking validation failed", zap.Any("errors", errs))
		return nil, invalid("items", utils.FormatValidationErrors(errs))
	}

	items := make([]entity.LineItem, len(req.Items))
	for i, it := range req.Items {
		id := it.ID
		if id == "" {
			id = utils.GenerateUUID().String()
		}
		qty := it.Quantity
		if qty == 0 {
			qty = 1
		}
		items[i] = entity.LineItem{
			ID:             id,
			ServiceID:      it.ServiceID,
			ServiceName:    it.ServiceName,
			PackageName:    it.PackageName,
			UnitPrice:      it.UnitPrice,
			Quantity:       qty,
			BookingCost:    it.BookingCost,
			InspectionCost: it.InspectionCost,
		}
	}

	if err := s.repo.DirectBooking.Save(ctx, userID, items); err != nil {
		return nil, fmt.Errorf("set direct booking: %w", err)
	}

	s.log.Info("Direct booking stored",
		zap.String("user_id", userID.String()),
		zap.Int("items", len(items)),
	)

	return s.directResponse(items)
}

func (s *cartService) GetDirectBooking(ctx context.Context, userID uuid.UUID) (*response.DirectBookingResponse, error) {
	items, err := s.repo.DirectBooking.Find(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get direct booking: %w", err)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("direct booking: %w", ErrNotFound)
	}

	return s.directResponse(items)
}

func (s *cartService) ClearDirectBooking(ctx context.Context, userID uuid.UUID) error {
	if err := s.repo.DirectBooking.Clear(ctx, userID); err != nil {
		return fmt.Errorf("clear direct booking: %w", err)
	}
	return nil
}

func (s *cartService) directResponse(items []entity.LineItem) (*response.DirectBookingResponse, error) {
	breakdown, err := s.calc.Compute(items, entity.SourceDirect)
	if err != nil {
		return nil, invalid("items", err.Error())
	}

	return &response.DirectBookingResponse{
		Items:     items,
		Breakdown: pricing.BookingCostPolicy{}.Apply(breakdown, entity.PaymentOptionFull),
	}, nil
}
