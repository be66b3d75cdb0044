package wire

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
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
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type sessions map[string]uuid.UUID

func (s sessions) FindValidSession(_ context.Context, token string) (*entity.Session, error) {
	userID, ok := s[token]
	if !ok {
		return nil, nil
	}
	return &entity.Session{UserID: userID, ExpiresAt: time.Now().Add(time.Hour)}, nil
}

type addresses struct{ addr *entity.Address }

func (a addresses) FindByIDForUser(_ context.Context, id, userID uuid.UUID) (*entity.Address, error) {
	if a.addr.ID != id || a.addr.UserID != userID {
		return nil, nil
	}
	return a.addr, nil
}

func (a addresses) FindByUserID(context.Context, uuid.UUID) ([]*entity.Address, error) {
	return []*entity.Address{a.addr}, nil
}

type carts struct {
	mu    sync.Mutex
	items []*entity.CartItem
}

func (c *carts) FindByUserID(_ context.Context, userID uuid.UUID) ([]*entity.CartItem, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []*entity.CartItem
	for _, it := range c.items {
		if it.UserID == userID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (c *carts) Create(_ context.Context, item *entity.CartItem) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, item)
	return nil
}

func (c *carts) Delete(context.Context, uuid.UUID, uuid.UUID) (bool, error) { return false, nil }

func (c *carts) ClearByUserID(context.Context, uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
	return nil
}

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type testApp struct {
	t       *testing.T
	server  *httptest.Server
	token   string
	address uuid.UUID
}

func newTestApp(t *testing.T, backendHandler http.HandlerFunc) *testApp {
	t.Helper()

	be := httptest.NewServer(backendHandler)
	t.Cleanup(be.Close)

	config := &utils.Config{
		App:     utils.AppConfig{BaseURL: "https://app.example.com", Timezone: "UTC"},
		Gateway: utils.GatewayConfig{BaseURL: "https://pay.example.com", ReturnPath: "/checkout/return", RefKey: "0123456789abcdef0123456789abcdef"},
		Booking: utils.BookingConfig{
			ServiceStartHour: 9, ServiceEndHour: 21, BufferHours: 3, SlotHours: 2, HorizonDays: 7,
			PlatformFee: 50, TaxBasisPoints: 1800, AdvancePercent: 25, SourceOfLead: "website",
			DirectBookingTTL: time.Hour, PendingBookingTTL: time.Hour, SubmitLockTTL: time.Minute,
		},
		RateLimit: utils.RateLimitConfig{PerMinute: 600, Burst: 50},
	}

	log := zap.NewNop()
	kv := database.NewMemoryKV()
	userID := uuid.New()
	token := uuid.NewString()
	addr := &entity.Address{UserID: userID, Line1: "12 MG Road", City: "Pune"}
	addr.ID = uuid.New()

	repo := &repository.Repository{
		Session:        sessions{token: userID},
		Address:        addresses{addr: addr},
		Cart:           &carts{},
		PendingBooking: repository.NewPendingBookingRepository(kv, time.Hour, log),
		DirectBooking:  repository.NewDirectBookingRepository(kv, time.Hour, log),
		SubmitLock:     repository.NewSubmitLockRepository(kv, time.Minute, log),
	}

	app := Wiring(repo, backend.New(be.URL, 5*time.Second, log), config, log,
		HealthCheck{Name: "kv", Ping: kv.Ping})
	srv := httptest.NewServer(app.Router)
	t.Cleanup(srv.Close)

	return &testApp{t: t, server: srv, token: token, address: addr.ID}
}

func (a *testApp) do(method, path string, body any, auth bool) (int, envelope) {
	a.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, a.server.URL+path, reader)
	require.NoError(a.t, err)
	req.Header.Set("Content-Type", "application/json")
	if auth {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}

	res, err := http.DefaultClient.Do(req)
	require.NoError(a.t, err)
	defer res.Body.Close()

	var env envelope
	require.NoError(a.t, json.NewDecoder(res.Body).Decode(&env))
	return res.StatusCode, env
}

func tomorrow() string {
	return time.Now().UTC().AddDate(0, 0, 1).Format("2006-01-02")
}

func TestDirectOnlineCheckoutEndToEnd(t *testing.T) {
	var initiated map[string]any
	app := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, backend.PathApplianceInitiatePayment, r.URL.Path)
		assert.True(t, len(r.Header.Get("Authorization")) > len("Bearer "))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&initiated))
		w.Write([]byte(`{"success":true,"access_key":"abc123","bookingId":"bk-7"}`))
	})

	status, _ := app.do(http.MethodPost, "/api/direct-booking", map[string]any{
		"items": []map[string]any{{"service_id": "svc-fridge", "service_name": "Fridge repair", "booking_cost": 500, "inspection_cost": 200}},
	}, true)
	require.Equal(t, http.StatusCreated, status)

	status, env := app.do(http.MethodGet, "/api/checkout/summary?domain=appliance-repairs", nil, true)
	require.Equal(t, http.StatusOK, status)
	var summary struct {
		Mode      string `json:"mode"`
		Breakdown struct {
			PayableNow    int64 `json:"payableNow"`
			PayableOnSite int64 `json:"payableOnSite"`
		} `json:"breakdown"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &summary))
	assert.Equal(t, "direct", summary.Mode)
	assert.Equal(t, int64(500), summary.Breakdown.PayableNow)
	assert.Equal(t, int64(200), summary.Breakdown.PayableOnSite)

	status, env = app.do(http.MethodPost, "/api/checkout", map[string]any{
		"domain":         "appliance-repairs",
		"address_id":     app.address.String(),
		"booked_date":    tomorrow(),
		"booked_time":    "11:00",
		"payment_method": "ONLINE",
	}, true)
	require.Equal(t, http.StatusOK, status, env.Message)

	var submitted struct {
		State       string `json:"state"`
		RedirectURL string `json:"redirect_url"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &submitted))
	assert.Equal(t, "gateway_redirect", submitted.State)
	assert.Equal(t, "https://pay.example.com/pay/abc123", submitted.RedirectURL)
	assert.EqualValues(t, 500, initiated["amount"])

	surl, err := url.Parse(initiated["surl"].(string))
	require.NoError(t, err)
	assert.Equal(t, "/checkout/return", surl.Path)
	ref := surl.Query().Get("ref")

	q := url.Values{"status": {"success"}, "ref": {ref}}
	status, env = app.do(http.MethodGet, "/api/checkout/resume?"+q.Encode(), nil, true)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, env.Status)
	assert.Contains(t, string(env.Data), `"state":"success"`)

	status, env = app.do(http.MethodGet, "/api/checkout/resume?"+q.Encode(), nil, true)
	require.Equal(t, http.StatusOK, status)
	assert.False(t, env.Status)
	assert.Contains(t, string(env.Data), `"reason":"unconfirmed"`)
}

func TestCheckoutStatusCodes(t *testing.T) {
	app := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false,"message":"Provider unavailable"}`))
	})

	status, _ := app.do(http.MethodPost, "/api/cart/items", map[string]any{
		"service_id": "svc-clean", "service_name": "Deep cleaning", "unit_price": 1000, "quantity": 1,
	}, true)
	require.Equal(t, http.StatusCreated, status)

	status, env := app.do(http.MethodPost, "/api/checkout", map[string]any{
		"address_id":     app.address.String(),
		"booked_date":    tomorrow(),
		"payment_method": "COD",
	}, true)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, string(env.Data), `"field":"time"`)

	status, env = app.do(http.MethodPost, "/api/checkout", map[string]any{
		"address_id":     app.address.String(),
		"booked_date":    tomorrow(),
		"booked_time":    "13:00",
		"payment_method": "COD",
	}, true)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "Provider unavailable", env.Message)
	assert.Contains(t, string(env.Data), `"booked_time":"13:00"`)

	status, _ = app.do(http.MethodGet, "/api/cart", nil, true)
	assert.Equal(t, http.StatusOK, status)

	status, _ = app.do(http.MethodPost, "/api/checkout", map[string]any{}, false)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestPublicRoutes(t *testing.T) {
	app := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {})

	status, env := app.do(http.MethodGet, "/api/availability/dates?domain=professional-services", nil, false)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(env.Data), `"domain":"professional-services"`)

	status, _ = app.do(http.MethodGet, "/api/availability/times?date="+tomorrow(), nil, false)
	assert.Equal(t, http.StatusOK, status)

	status, _ = app.do(http.MethodGet, "/api/availability/times", nil, false)
	assert.Equal(t, http.StatusBadRequest, status)

	status, env = app.do(http.MethodGet, "/ready", nil, false)
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, env.Status)
}
