package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"service-booking/internal/data/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL+"/", 2*time.Second, zap.NewNop())
}

func TestBookServiceSendsBearerAndBody(t *testing.T) {
	var got entity.BookingRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, PathBookService, r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"success":true,"bookingId":"B-1","message":"booked","slot":"x"}`))
	})

	res, err := client.BookService(context.Background(), "tok", &entity.BookingRequest{
		ServiceAddressID: "addr",
		BookedDate:       "2026-10-18",
		BookedTime:       "09:00",
		PaymentMethod:    entity.PaymentCOD,
		SourceOfLead:     "website",
	})
	require.NoError(t, err)
	assert.Equal(t, "B-1", res.BookingID)
	assert.Contains(t, string(res.Raw), `"slot":"x"`)
	assert.Equal(t, "2026-10-18", got.BookedDate)
	assert.Equal(t, entity.PaymentCOD, got.PaymentMethod)
}

func TestBookServiceRejected(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false,"message":"Slot is full"}`))
	})

	_, err := client.BookService(context.Background(), "tok", &entity.BookingRequest{})

	var rejected *RejectedError
	require.True(t, errors.As(err, &rejected))
	assert.Equal(t, "Slot is full", rejected.Message)
	assert.False(t, errors.Is(err, ErrTransport))
}

func TestServerErrorWithoutBodyIsTransport(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>bad gateway</html>"))
	})

	_, err := client.BookService(context.Background(), "tok", &entity.BookingRequest{})
	assert.True(t, errors.Is(err, ErrTransport))
}

func TestUnreachableBackendIsTransport(t *testing.T) {
	client := New("http://127.0.0.1:1", 200*time.Millisecond, zap.NewNop())

	_, err := client.BookService(context.Background(), "tok", &entity.BookingRequest{})
	assert.True(t, errors.Is(err, ErrTransport))
}

func TestInitiatePayment(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, PathApplianceInitiatePayment, r.URL.Path)
		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "https://app/return?status=success", body["surl"])
		w.Write([]byte(`{"success":true,"access_key":"abc123","bookingId":"B-2"}`))
	})

	res, err := client.InitiatePayment(context.Background(), "tok", PathApplianceInitiatePayment, &entity.BookingRequest{
		PaymentMethod: entity.PaymentOnline,
		SuccessURL:    "https://app/return?status=success",
		FailureURL:    "https://app/return?status=failure",
	})
	require.NoError(t, err)
	assert.Equal(t, "abc123", res.AccessKey)
	assert.Equal(t, "B-2", res.BookingID)
}

func TestInitiatePaymentWithoutAccessKeyIsRejected(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true}`))
	})

	_, err := client.InitiatePayment(context.Background(), "tok", PathInitiatePayment, &entity.BookingRequest{})
	var rejected *RejectedError
	assert.True(t, errors.As(err, &rejected))
}

func TestProfessionalServiceAddons(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, PathProfessionalAddons, r.URL.Path)
		var body struct {
			ServiceIDs             []string `json:"serviceIds"`
			ProfessionalProviderID string   `json:"professionalProviderId"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, []string{"s1", "s2"}, body.ServiceIDs)
		assert.Equal(t, "p1", body.ProfessionalProviderID)
		w.Write([]byte(`{"success":true,"data":[{"addons":[{"_id":"a1","name":"Deep clean","price":300}]},{"addons":[{"_id":"a2","name":"Polish","price":150}]}]}`))
	})

	addons, err := client.ProfessionalServiceAddons(context.Background(), "tok", []string{"s1", "s2"}, "p1")
	require.NoError(t, err)
	require.Len(t, addons, 2)
	assert.Equal(t, "a1", addons[0].ID)
	assert.Equal(t, int64(150), addons[1].Price)
}

func TestProfessionalServiceAddonsEmpty(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"data":[]}`))
	})

	addons, err := client.ProfessionalServiceAddons(context.Background(), "tok", []string{"s1"}, "p1")
	require.NoError(t, err)
	assert.Empty(t, addons)
}
