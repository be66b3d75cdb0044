package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"service-booking/internal/backend"
	"service-booking/internal/data/entity"
	"service-booking/internal/data/repository"
	"service-booking/internal/dto/request"
	"service-booking/internal/dto/response"
	"service-booking/internal/pricing"
	"service-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BookingBackend is the part of the backend client the checkout depends on.
type BookingBackend interface {
	BookService(ctx context.Context, token string, req *entity.BookingRequest) (*backend.BookingResult, error)
	InitiatePayment(ctx context.Context, token, path string, req *entity.BookingRequest) (*backend.PaymentInitiation, error)
	ProfessionalServiceAddons(ctx context.Context, token string, serviceIDs []string, providerID string) ([]backend.Addon, error)
}

// CheckoutService drives a checkout from the user's selection to a booking.
//
// Submit never returns an error for outcomes the user can act on: validation
// failures, backend rejections and outages come back as a response in the
// collecting state. Errors are reserved for ErrSubmitInProgress and
// infrastructure failures.
type CheckoutService interface {
	Summary(ctx context.Context, ownerID uuid.UUID, domain, option string) (*response.CheckoutSummaryResponse, error)
	Submit(ctx context.Context, ownerID uuid.UUID, token string, req *request.CheckoutRequest) (*response.CheckoutResponse, error)
	Resume(ctx context.Context, ownerID uuid.UUID, req *request.ResumeRequest) (*response.ResumeResponse, error)
	Addresses(ctx context.Context, ownerID uuid.UUID) ([]*entity.Address, error)
}

type checkoutService struct {
	repo         *repository.Repository
	backend      BookingBackend
	profiles     Profiles
	calc         *pricing.Calculator
	returns      *ReturnURLs
	gatewayURL   string
	sourceOfLead string
	clock        Clock
	log          *zap.Logger
}

func NewCheckoutService(repo *repository.Repository, backend BookingBackend, profiles Profiles, config *utils.Config, clock Clock, log *zap.Logger) CheckoutService {
	return &checkoutService{
		repo:     repo,
		backend:  backend,
		profiles: profiles,
		calc: pricing.NewCalculator(pricing.Charges{
			PlatformFee:    config.Booking.PlatformFee,
			TaxBasisPoints: config.Booking.TaxBasisPoints,
		}),
		returns:      NewReturnURLs(config.App.BaseURL, config.Gateway.ReturnPath, config.Gateway.RefKey, config.Booking.PendingBookingTTL),
		gatewayURL:   strings.TrimRight(config.Gateway.BaseURL, "/"),
		sourceOfLead: config.Booking.SourceOfLead,
		clock:        clock,
		log:          log.With(zap.String("service", "checkout")),
	}
}

func (s *checkoutService) Summary(ctx context.Context, ownerID uuid.UUID, domain, option string) (*response.CheckoutSummaryResponse, error) {
	profile, err := s.profiles.lookup(domain)
	if err != nil {
		return nil, err
	}

	paymentOption, err := parsePaymentOption(option)
	if err != nil {
		return nil, err
	}

	items, mode, err := s.loadItems(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	breakdown, err := s.calc.Compute(items, mode)
	if err != nil {
		return nil, invalid("items", msgInvalidItems)
	}

	return &response.CheckoutSummaryResponse{
		Domain:    profile.Domain,
		Mode:      mode,
		Items:     items,
		Breakdown: profile.Policy.Apply(breakdown, paymentOption),
	}, nil
}

func (s *checkoutService) Submit(ctx context.Context, ownerID uuid.UUID, token string, req *request.CheckoutRequest) (*response.CheckoutResponse, error) {
	acquired, err := s.repo.SubmitLock.Acquire(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("acquire submit lock: %w", err)
	}
	if !acquired {
		s.log.Warn("Rejected concurrent checkout submit", zap.String("owner_id", ownerID.String()))
		return nil, ErrSubmitInProgress
	}
	defer func() {
		if err := s.repo.SubmitLock.Release(context.WithoutCancel(ctx), ownerID); err != nil {
			s.log.Error("Failed to release submit lock", zap.Error(err), zap.String("owner_id", ownerID.String()))
		}
	}()

	c := s.newCheckout(ownerID, token, req)

	c.enter(entity.CheckoutValidating)
	if err := c.validate(ctx); err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			return c.fail(entity.FailureValidation, verr.Field, verr.Message), nil
		}
		return nil, err
	}

	if c.profile.SupportsAddons {
		c.enter(entity.CheckoutAddonCheck)
		resp, err := c.addonCheck(ctx)
		if resp != nil || err != nil {
			return resp, err
		}
	}

	c.enter(entity.CheckoutSubmitting)
	// Once a request may have reached the backend it runs to completion.
	return c.submit(context.WithoutCancel(ctx))
}

func (s *checkoutService) Resume(ctx context.Context, ownerID uuid.UUID, req *request.ResumeRequest) (*response.ResumeResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, invalid("status", utils.FormatValidationErrors(errs))
	}

	c := s.newCheckout(ownerID, "", &request.CheckoutRequest{})
	c.state = entity.CheckoutResuming

	pending, err := s.repo.PendingBooking.Load(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("resume checkout: %w", err)
	}

	log := s.log.With(
		zap.String("owner_id", ownerID.String()),
		zap.String("status", req.Status),
	)

	if pending != nil {
		c.mode = pending.Source
	}

	if req.Status != "success" {
		c.enter(entity.CheckoutFailure)
		c.discardDirect(ctx)
		log.Info("Gateway reported payment failure", zap.Bool("pending", pending != nil))
		return &response.ResumeResponse{
			State:   c.state,
			Reason:  entity.ResumePaymentFailed,
			Message: msgResumeFailed,
			Booking: pending,
		}, nil
	}

	if pending == nil || (req.Ref != "" && !s.returns.Verify(req.Ref, pending.OrderID)) {
		c.enter(entity.CheckoutFailure)
		c.discardDirect(ctx)
		log.Warn("Could not match gateway return to a pending booking", zap.Bool("pending", pending != nil))
		return &response.ResumeResponse{
			State:   c.state,
			Reason:  entity.ResumeUnconfirmed,
			Message: msgResumeUnconfirmed,
		}, nil
	}

	if c.mode == "" {
		c.mode = entity.SourceCart
	}
	c.enter(entity.CheckoutSuccess)
	c.cleanup(ctx)

	log.Info("Online booking confirmed",
		zap.String("order_id", pending.OrderID),
		zap.String("booking_id", pending.BookingID),
	)

	return &response.ResumeResponse{
		State:   c.state,
		Message: msgResumeConfirmed,
		Booking: pending,
	}, nil
}

// Addresses lists the service addresses the user can pick from.
func (s *checkoutService) Addresses(ctx context.Context, ownerID uuid.UUID) ([]*entity.Address, error) {
	addresses, err := s.repo.Address.FindByUserID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list addresses: %w", err)
	}
	if addresses == nil {
		addresses = []*entity.Address{}
	}
	return addresses, nil
}

// loadItems resolves the checkout items: a pending direct list wins over the cart.
func (s *checkoutService) loadItems(ctx context.Context, ownerID uuid.UUID) ([]entity.LineItem, entity.SourceMode, error) {
	direct, err := s.repo.DirectBooking.Find(ctx, ownerID)
	if err != nil {
		return nil, "", fmt.Errorf("load direct booking: %w", err)
	}
	if len(direct) > 0 {
		return direct, entity.SourceDirect, nil
	}

	cart, err := s.repo.Cart.FindByUserID(ctx, ownerID)
	if err != nil {
		return nil, "", fmt.Errorf("load cart: %w", err)
	}

	items := make([]entity.LineItem, len(cart))
	for i, item := range cart {
		items[i] = item.LineItem()
	}
	return items, entity.SourceCart, nil
}

func parsePaymentOption(raw string) (entity.PaymentOption, error) {
	switch option := entity.PaymentOption(raw); option {
	case "":
		return entity.PaymentOptionFull, nil
	case entity.PaymentOptionFull, entity.PaymentOptionAdvance:
		return option, nil
	default:
		return "", invalid("payment_option", "Must be one of: full, advance")
	}
}

func (s *checkoutService) gatewayRedirect(accessKey string) string {
	return s.gatewayURL + "/pay/" + url.PathEscape(accessKey)
}
