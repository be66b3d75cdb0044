package usecase

import (
	"context"
	"net/url"
	"sync"
	"testing"
	"time"

	"service-booking/internal/backend"
	"service-booking/internal/data/entity"
	"service-booking/internal/data/repository"
	"service-booking/pkg/database"
	"service-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeBackend struct {
	mu sync.Mutex

	bookResult *backend.BookingResult
	bookErr    error
	payResult  *backend.PaymentInitiation
	payErr     error
	addons     []backend.Addon
	addonErr   error

	booked    []*entity.BookingRequest
	initiated []*entity.BookingRequest
	payPaths  []string
	lookups   int
	tokens    []string
}

func (f *fakeBackend) BookService(_ context.Context, token string, req *entity.BookingRequest) (*backend.BookingResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.booked = append(f.booked, req)
	f.tokens = append(f.tokens, token)
	if f.bookErr != nil {
		return nil, f.bookErr
	}
	if f.bookResult != nil {
		return f.bookResult, nil
	}
	return &backend.BookingResult{BookingID: "bk-1", Raw: []byte(`{"success":true,"bookingId":"bk-1"}`)}, nil
}

func (f *fakeBackend) InitiatePayment(_ context.Context, token, path string, req *entity.BookingRequest) (*backend.PaymentInitiation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.initiated = append(f.initiated, req)
	f.payPaths = append(f.payPaths, path)
	f.tokens = append(f.tokens, token)
	if f.payErr != nil {
		return nil, f.payErr
	}
	if f.payResult != nil {
		return f.payResult, nil
	}
	return &backend.PaymentInitiation{AccessKey: "abc123"}, nil
}

func (f *fakeBackend) ProfessionalServiceAddons(_ context.Context, _ string, _ []string, _ string) ([]backend.Addon, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lookups++
	return f.addons, f.addonErr
}

func (f *fakeBackend) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.booked) + len(f.initiated) + f.lookups
}

type fakeAddressRepo struct {
	addresses map[uuid.UUID]*entity.Address
}

func (r *fakeAddressRepo) FindByIDForUser(_ context.Context, id, userID uuid.UUID) (*entity.Address, error) {
	a, ok := r.addresses[id]
	if !ok || a.UserID != userID {
		return nil, nil
	}
	return a, nil
}

func (r *fakeAddressRepo) FindByUserID(_ context.Context, userID uuid.UUID) ([]*entity.Address, error) {
	var out []*entity.Address
	for _, a := range r.addresses {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeCartRepo struct {
	mu      sync.Mutex
	items   map[uuid.UUID][]*entity.CartItem
	cleared int
}

func (r *fakeCartRepo) FindByUserID(_ context.Context, userID uuid.UUID) ([]*entity.CartItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*entity.CartItem(nil), r.items[userID]...), nil
}

func (r *fakeCartRepo) Create(_ context.Context, item *entity.CartItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[item.UserID] = append(r.items[item.UserID], item)
	return nil
}

func (r *fakeCartRepo) Delete(_ context.Context, userID, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, it := range r.items[userID] {
		if it.ID == id {
			r.items[userID] = append(r.items[userID][:i], r.items[userID][i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeCartRepo) ClearByUserID(_ context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, userID)
	r.cleared++
	return nil
}

func (r *fakeCartRepo) count(userID uuid.UUID) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items[userID])
}

// 2026-10-17 10:00 UTC; window 09-21, buffer 3, 2h slots.
var testNow = time.Date(2026, 10, 17, 10, 0, 0, 0, time.UTC)

const testRefKey = "0123456789abcdef0123456789abcdef"

func testConfig() *utils.Config {
	return &utils.Config{
		App: utils.AppConfig{BaseURL: "https://app.example.com", Timezone: "UTC"},
		Gateway: utils.GatewayConfig{
			BaseURL:    "https://pay.example.com/",
			ReturnPath: "/checkout/return",
			RefKey:     testRefKey,
		},
		Booking: utils.BookingConfig{
			ServiceStartHour:  9,
			ServiceEndHour:    21,
			BufferHours:       3,
			SlotHours:         2,
			HorizonDays:       7,
			PlatformFee:       50,
			TaxBasisPoints:    1800,
			AdvancePercent:    25,
			SourceOfLead:      "website",
			DirectBookingTTL:  time.Hour,
			PendingBookingTTL: time.Hour,
			SubmitLockTTL:     time.Minute,
		},
	}
}

type harness struct {
	svc       *Service
	checkout  *checkoutService
	backend   *fakeBackend
	cart      *fakeCartRepo
	repo      *repository.Repository
	owner     uuid.UUID
	addressID uuid.UUID
	now       time.Time
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	config := testConfig()
	kv := database.NewMemoryKV()
	owner := uuid.New()
	addressID := uuid.New()

	addr := &entity.Address{Line1: "12 MG Road", City: "Pune", UserID: owner}
	addr.ID = addressID

	h := &harness{
		backend:   &fakeBackend{},
		cart:      &fakeCartRepo{items: map[uuid.UUID][]*entity.CartItem{}},
		owner:     owner,
		addressID: addressID,
		now:       testNow,
	}

	log := zap.NewNop()
	h.repo = &repository.Repository{
		Address:        &fakeAddressRepo{addresses: map[uuid.UUID]*entity.Address{addressID: addr}},
		Cart:           h.cart,
		PendingBooking: repository.NewPendingBookingRepository(kv, config.Booking.PendingBookingTTL, log),
		DirectBooking:  repository.NewDirectBookingRepository(kv, config.Booking.DirectBookingTTL, log),
		SubmitLock:     repository.NewSubmitLockRepository(kv, config.Booking.SubmitLockTTL, log),
	}

	clock := func() time.Time { return h.now }
	profiles := NewProfiles(config.Booking)
	h.checkout = NewCheckoutService(h.repo, h.backend, profiles, config, clock, log).(*checkoutService)
	h.svc = &Service{
		Availability: NewAvailabilityService(profiles, clock, log),
		Cart:         NewCartService(h.repo, config.Booking, log),
		Checkout:     h.checkout,
	}
	return h
}

func (h *harness) addCartItem(t *testing.T, unitPrice int64, qty int) {
	t.Helper()
	require.NoError(t, h.cart.Create(context.Background(), &entity.CartItem{
		BaseSimple:  entity.BaseSimple{ID: uuid.New(), CreatedAt: testNow},
		UserID:      h.owner,
		ServiceID:   "svc-clean",
		ServiceName: "Deep cleaning",
		UnitPrice:   unitPrice,
		Quantity:    qty,
	}))
}

func (h *harness) setDirect(t *testing.T, items ...entity.LineItem) {
	t.Helper()
	require.NoError(t, h.repo.DirectBooking.Save(context.Background(), h.owner, items))
}

func queryParam(t *testing.T, raw, key string) string {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u.Query().Get(key)
}
