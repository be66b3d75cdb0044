package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"service-booking/internal/availability"
	"service-booking/internal/backend"
	"service-booking/internal/data/entity"
	"service-booking/internal/dto/request"
	"service-booking/internal/dto/response"
	"service-booking/internal/pricing"
	"service-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var transitions = map[entity.CheckoutState][]entity.CheckoutState{
	entity.CheckoutCollecting: {entity.CheckoutValidating},
	entity.CheckoutValidating: {entity.CheckoutCollecting, entity.CheckoutAddonCheck, entity.CheckoutSubmitting},
	entity.CheckoutAddonCheck: {entity.CheckoutCollecting, entity.CheckoutSubmitting},
	entity.CheckoutSubmitting: {entity.CheckoutCollecting, entity.CheckoutGatewayRedirect, entity.CheckoutConfirmed},
	entity.CheckoutResuming:   {entity.CheckoutSuccess, entity.CheckoutFailure},
}

// submitFunc sends a built BookingRequest for one payment method.
type submitFunc func(c *checkout, ctx context.Context, req *entity.BookingRequest) (*response.CheckoutResponse, error)

var submitters = map[entity.PaymentMethod]submitFunc{
	entity.PaymentCOD:    (*checkout).bookNow,
	entity.PaymentWallet: (*checkout).bookNow,
	entity.PaymentOnline: (*checkout).initiateOnline,
}

// Validator field names as reported to the client.
var requestFields = map[string]string{
	"Domain":        "domain",
	"AddressID":     "address",
	"BookedDate":    "date",
	"BookedTime":    "time",
	"PaymentMethod": "payment_method",
	"PaymentOption": "payment_option",
	"Note":          "note",
	"ProviderID":    "provider_id",
	"SelectedIDs":   "addons",
}

// checkout is one submit attempt. It lives for a single request; everything
// that must outlive it goes through the repositories.
type checkout struct {
	s     *checkoutService
	owner uuid.UUID
	token string
	req   *request.CheckoutRequest
	log   *zap.Logger

	state entity.CheckoutState
	trail []entity.CheckoutState

	profile   DomainProfile
	method    entity.PaymentMethod
	option    entity.PaymentOption
	mode      entity.SourceMode
	items     []entity.LineItem
	address   *entity.Address
	breakdown *pricing.Breakdown
}

func (s *checkoutService) newCheckout(ownerID uuid.UUID, token string, req *request.CheckoutRequest) *checkout {
	return &checkout{
		s:     s,
		owner: ownerID,
		token: token,
		req:   req,
		log:   s.log.With(zap.String("owner_id", ownerID.String())),
		state: entity.CheckoutCollecting,
		trail: []entity.CheckoutState{entity.CheckoutCollecting},
	}
}

func (c *checkout) enter(next entity.CheckoutState) {
	allowed := false
	for _, st := range transitions[c.state] {
		if st == next {
			allowed = true
			break
		}
	}
	if !allowed {
		c.log.DPanic("Illegal checkout transition",
			zap.String("from", string(c.state)),
			zap.String("to", string(next)),
		)
	}

	c.state = next
	c.trail = append(c.trail, next)
}

func (c *checkout) validate(ctx context.Context) error {
	req := c.req

	profile, err := c.s.profiles.lookup(req.Domain)
	if err != nil {
		return err
	}
	c.profile = profile

	switch {
	case req.AddressID == "":
		return invalid("address", msgSelectAddress)
	case req.BookedDate == "":
		return invalid("date", msgSelectDate)
	case req.BookedTime == "":
		return invalid("time", msgSelectTime)
	case req.PaymentMethod == "":
		return invalid("payment_method", msgSelectPayment)
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return fieldError(errs)
	}

	if c.method, err = entity.ParsePaymentMethod(req.PaymentMethod); err != nil {
		return invalid("payment_method", msgSelectPayment)
	}
	if c.option, err = parsePaymentOption(req.PaymentOption); err != nil {
		return err
	}

	if !availability.IsBookable(req.BookedDate, req.BookedTime, c.s.clock(), profile.Window, profile.HorizonDays) {
		c.log.Info("Selected slot is no longer bookable",
			zap.String("date", req.BookedDate),
			zap.String("time", req.BookedTime),
		)
		return invalid("time", msgSlotUnavailable)
	}

	if c.items, c.mode, err = c.s.loadItems(ctx, c.owner); err != nil {
		return err
	}
	if len(c.items) == 0 {
		return invalid("items", msgEmptyItems)
	}

	addressID, err := uuid.Parse(req.AddressID)
	if err != nil {
		return invalid("address", msgAddressNotFound)
	}
	c.address, err = c.s.repo.Address.FindByIDForUser(ctx, addressID, c.owner)
	if err != nil {
		return fmt.Errorf("find address: %w", err)
	}
	if c.address == nil {
		return invalid("address", msgAddressNotFound)
	}

	return c.price()
}

func (c *checkout) price() error {
	b, err := c.s.calc.Compute(c.items, c.mode)
	if err != nil {
		c.log.Warn("Could not price checkout items", zap.Error(err), zap.String("mode", string(c.mode)))
		return invalid("items", msgInvalidItems)
	}

	b = c.profile.Policy.Apply(b, c.option)
	c.breakdown = &b
	return nil
}

// addonCheck returns a non-nil response when the checkout must stop here,
// either to prompt for add-ons or because the selection is invalid.
func (c *checkout) addonCheck(ctx context.Context) (*response.CheckoutResponse, error) {
	decision := c.req.Addons
	if decision != nil && decision.Skip {
		return nil, nil
	}
	if c.req.ProviderID == "" {
		c.log.Debug("No provider selected, skipping add-on lookup")
		return nil, nil
	}

	offered, err := c.s.backend.ProfessionalServiceAddons(ctx, c.token, c.serviceIDs(), c.req.ProviderID)
	if err != nil {
		c.log.Warn("Add-on lookup failed, continuing without add-ons", zap.Error(err))
		return nil, nil
	}
	if len(offered) == 0 {
		return nil, nil
	}

	if decision == nil {
		resp := c.response()
		resp.Message = msgAddonPrompt
		resp.Addons = make([]entity.LineItem, len(offered))
		for i, a := range offered {
			resp.Addons[i] = addonLineItem(a)
		}
		return resp, nil
	}

	byID := make(map[string]backend.Addon, len(offered))
	for _, a := range offered {
		byID[a.ID] = a
	}
	for _, id := range decision.SelectedIDs {
		a, ok := byID[id]
		if !ok {
			return c.fail(entity.FailureValidation, "addons", msgAddonUnavailable), nil
		}
		c.items = append(c.items, addonLineItem(a))
	}

	if len(decision.SelectedIDs) > 0 {
		if err := c.price(); err != nil {
			var verr *ValidationError
			if errors.As(err, &verr) {
				return c.fail(entity.FailureValidation, verr.Field, verr.Message), nil
			}
			return nil, err
		}
	}
	return nil, nil
}

func (c *checkout) serviceIDs() []string {
	seen := make(map[string]struct{}, len(c.items))
	ids := make([]string, 0, len(c.items))
	for _, it := range c.items {
		if _, ok := seen[it.ServiceID]; ok || it.IsAddon {
			continue
		}
		seen[it.ServiceID] = struct{}{}
		ids = append(ids, it.ServiceID)
	}
	return ids
}

func (c *checkout) submit(ctx context.Context) (*response.CheckoutResponse, error) {
	send, ok := submitters[c.method]
	if !ok {
		return c.fail(entity.FailureValidation, "payment_method", msgSelectPayment), nil
	}

	req := &entity.BookingRequest{
		ServiceAddressID: c.address.ID.String(),
		BookedDate:       c.req.BookedDate,
		BookedTime:       c.req.BookedTime,
		PaymentMethod:    c.method,
		SourceOfLead:     c.s.sourceOfLead,
		PreferenceNote:   c.req.Note,
		OrderID:          utils.GenerateOrderID(),
		Items:            c.items,
		Amount:           c.breakdown.PayableNow,
	}
	if c.mode == entity.SourceCart {
		req.PaymentOption = c.option
	}

	c.log.Info("Submitting booking",
		zap.String("order_id", req.OrderID),
		zap.String("domain", string(c.profile.Domain)),
		zap.String("mode", string(c.mode)),
		zap.String("payment_method", string(c.method)),
		zap.Int64("amount", req.Amount),
	)

	resp, err := send(c, ctx, req)
	if err == nil && resp.State == entity.CheckoutCollecting {
		c.discardDirect(ctx)
	}
	return resp, err
}

func (c *checkout) bookNow(ctx context.Context, req *entity.BookingRequest) (*response.CheckoutResponse, error) {
	result, err := c.s.backend.BookService(ctx, c.token, req)
	if err != nil {
		return c.backendFailure(err, req.OrderID), nil
	}

	c.enter(entity.CheckoutConfirmed)
	c.cleanup(ctx)

	c.log.Info("Booking confirmed",
		zap.String("order_id", req.OrderID),
		zap.String("booking_id", result.BookingID),
	)

	resp := c.response()
	resp.OrderID = req.OrderID
	resp.Booking = result.Raw
	resp.Message = result.Message
	if resp.Message == "" {
		resp.Message = msgBookingConfirmed
	}
	return resp, nil
}

func (c *checkout) initiateOnline(ctx context.Context, req *entity.BookingRequest) (*response.CheckoutResponse, error) {
	var err error
	if req.SuccessURL, req.FailureURL, err = c.s.returns.Build(req.OrderID); err != nil {
		return nil, err
	}

	init, err := c.s.backend.InitiatePayment(ctx, c.token, c.profile.OnlineEndpoint, req)
	if err != nil {
		return c.backendFailure(err, req.OrderID), nil
	}

	pending := &entity.PendingBooking{
		BookedDate: req.BookedDate,
		BookedTime: req.BookedTime,
		Address:    *c.address,
		OrderID:    req.OrderID,
		Source:     c.mode,
		Domain:     c.profile.Domain,
		BookingID:  init.BookingID,
	}
	// The redirect is only handed out once the record is stored.
	if err := c.s.repo.PendingBooking.Save(ctx, c.owner, pending); err != nil {
		c.log.Error("Payment initiated but pending booking was not stored",
			zap.Error(err),
			zap.String("order_id", req.OrderID),
		)
		return c.fail(entity.FailureUnavailable, "", msgServiceDown), nil
	}

	c.enter(entity.CheckoutGatewayRedirect)

	c.log.Info("Redirecting to payment gateway",
		zap.String("order_id", req.OrderID),
		zap.String("booking_id", init.BookingID),
	)

	resp := c.response()
	resp.OrderID = req.OrderID
	resp.RedirectURL = c.s.gatewayRedirect(init.AccessKey)
	resp.Message = msgRedirecting
	return resp, nil
}

func (c *checkout) backendFailure(err error, orderID string) *response.CheckoutResponse {
	var rejected *backend.RejectedError
	if errors.As(err, &rejected) {
		c.log.Warn("Backend rejected booking",
			zap.String("order_id", orderID),
			zap.String("endpoint", rejected.Endpoint),
			zap.String("backend_message", rejected.Message),
		)
		msg := rejected.Message
		if msg == "" {
			msg = msgBookingFailed
		}
		return c.fail(entity.FailureRejected, "", msg)
	}

	c.log.Error("Booking request failed", zap.Error(err), zap.String("order_id", orderID))
	return c.fail(entity.FailureUnavailable, "", msgServiceDown)
}

// cleanup runs after a confirmed booking. The cart is only cleared when it was
// the source of the items; a direct list is always discarded.
func (c *checkout) cleanup(ctx context.Context) {
	if c.mode == entity.SourceCart {
		if err := c.s.repo.Cart.ClearByUserID(ctx, c.owner); err != nil {
			c.log.Error("Failed to clear cart after booking", zap.Error(err))
		}
	}
	if err := c.s.repo.DirectBooking.Clear(ctx, c.owner); err != nil {
		c.log.Error("Failed to clear direct booking after booking", zap.Error(err))
	}
}

// discardDirect drops a direct list once an attempt with it has ended without
// a booking, so the cart is the item source again.
func (c *checkout) discardDirect(ctx context.Context) {
	if c.mode != entity.SourceDirect {
		return
	}
	if err := c.s.repo.DirectBooking.Clear(ctx, c.owner); err != nil {
		c.log.Error("Failed to discard direct booking after failed attempt", zap.Error(err))
	}
}

func (c *checkout) fail(kind entity.FailureKind, field, message string) *response.CheckoutResponse {
	c.enter(entity.CheckoutCollecting)

	resp := c.response()
	resp.Failure = kind
	resp.Field = field
	resp.Message = message
	return resp
}

func (c *checkout) response() *response.CheckoutResponse {
	return &response.CheckoutResponse{
		State:     c.state,
		Domain:    c.profile.Domain,
		Mode:      c.mode,
		Items:     c.items,
		Breakdown: c.breakdown,
		Selection: *c.req,
	}
}

func addonLineItem(a backend.Addon) entity.LineItem {
	return entity.LineItem{
		ID:             a.ID,
		ServiceID:      a.ServiceID,
		ServiceName:    a.Name,
		UnitPrice:      a.Price,
		Quantity:       1,
		BookingCost:    a.BookingCost,
		InspectionCost: a.InspectionCost,
		IsAddon:        true,
	}
}

// fieldError reports the first invalid field, in a stable order.
func fieldError(errs map[string]string) *ValidationError {
	fields := make([]string, 0, len(errs))
	for f := range errs {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	name, ok := requestFields[fields[0]]
	if !ok {
		name = fields[0]
	}
	return invalid(name, errs[fields[0]])
}
