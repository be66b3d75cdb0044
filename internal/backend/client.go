// Package backend is the client of the booking backend. The backend is opaque:
// only the request and response bodies of its endpoints are relied upon.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"service-booking/internal/data/entity"

	"go.uber.org/zap"
)

const (
	PathBookService              = "/provider-flow/BookService"
	PathInitiatePayment          = "/service-cart/initiate-payment"
	PathApplianceInitiatePayment = "/applience-repairs-website/initiate-service-booking-payment"
	PathProfessionalAddons       = "/professional-services-flow/public/professional-service-addons"

	maxBodyBytes = 1 << 20
)

// ErrTransport wraps failures where no usable answer came back from the backend.
var ErrTransport = errors.New("backend unreachable")

// RejectedError is a well-formed answer with success=false.
type RejectedError struct {
	Endpoint   string
	StatusCode int
	Message    string
}

func (e *RejectedError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend rejected %s (status=%d)", e.Endpoint, e.StatusCode)
	}
	return fmt.Sprintf("backend rejected %s: %s", e.Endpoint, e.Message)
}

type envelope struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	AccessKey string          `json:"access_key"`
	BookingID string          `json:"bookingId"`
	Data      json.RawMessage `json:"data"`
}

// BookingResult is the answer of the synchronous booking endpoint. Raw keeps
// the full body so callers can surface fields this client does not model.
type BookingResult struct {
	BookingID string
	Message   string
	Raw       json.RawMessage
}

// PaymentInitiation is the gateway handoff returned by the online endpoints.
type PaymentInitiation struct {
	AccessKey string
	BookingID string
}

type Addon struct {
	ID             string `json:"_id"`
	ServiceID      string `json:"serviceId"`
	Name           string `json:"name"`
	Price          int64  `json:"price"`
	BookingCost    int64  `json:"bookingCost"`
	InspectionCost int64  `json:"inspectionCost"`
}

type addonGroup struct {
	Addons []Addon `json:"addons"`
}

type Client struct {
	hc      *http.Client
	baseURL string
	log     *zap.Logger
}

func New(baseURL string, timeout time.Duration, log *zap.Logger) *Client {
	return &Client{
		hc:      &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
		log:     log.With(zap.String("client", "backend")),
	}
}

// BookService books a COD or wallet order.
func (c *Client) BookService(ctx context.Context, token string, req *entity.BookingRequest) (*BookingResult, error) {
	env, raw, err := c.post(ctx, token, PathBookService, req)
	if err != nil {
		return nil, err
	}

	return &BookingResult{
		BookingID: env.BookingID,
		Message:   env.Message,
		Raw:       raw,
	}, nil
}

// InitiatePayment starts an online payment on the given initiation endpoint.
func (c *Client) InitiatePayment(ctx context.Context, token, path string, req *entity.BookingRequest) (*PaymentInitiation, error) {
	env, _, err := c.post(ctx, token, path, req)
	if err != nil {
		return nil, err
	}

	if env.AccessKey == "" {
		return nil, &RejectedError{Endpoint: path, StatusCode: http.StatusOK, Message: env.Message}
	}

	return &PaymentInitiation{
		AccessKey: env.AccessKey,
		BookingID: env.BookingID,
	}, nil
}

// ProfessionalServiceAddons lists the add-ons a provider offers for the services.
func (c *Client) ProfessionalServiceAddons(ctx context.Context, token string, serviceIDs []string, providerID string) ([]Addon, error) {
	body := struct {
		ServiceIDs             []string `json:"serviceIds"`
		ProfessionalProviderID string   `json:"professionalProviderId"`
	}{
		ServiceIDs:             serviceIDs,
		ProfessionalProviderID: providerID,
	}

	env, _, err := c.post(ctx, token, PathProfessionalAddons, body)
	if err != nil {
		return nil, err
	}

	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil, nil
	}

	var groups []addonGroup
	if err := json.Unmarshal(env.Data, &groups); err != nil {
		return nil, fmt.Errorf("%w: decode add-ons: %v", ErrTransport, err)
	}

	var addons []Addon
	for _, g := range groups {
		addons = append(addons, g.Addons...)
	}
	return addons, nil
}

func (c *Client) post(ctx context.Context, token, path string, body any) (*envelope, json.RawMessage, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal %s request: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, nil, fmt.Errorf("build %s request: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	res, err := c.hc.Do(req)
	if err != nil {
		c.log.Error("Backend request failed",
			zap.Error(err),
			zap.String("endpoint", path),
			zap.Duration("duration", time.Since(start)),
		)
		return nil, nil, fmt.Errorf("%w: %s: %v", ErrTransport, path, err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(res.Body, maxBodyBytes))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: read %s response: %v", ErrTransport, path, err)
	}

	c.log.Debug("Backend response",
		zap.String("endpoint", path),
		zap.Int("status", res.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		if res.StatusCode >= http.StatusBadRequest && res.StatusCode < http.StatusInternalServerError {
			return nil, nil, &RejectedError{Endpoint: path, StatusCode: res.StatusCode}
		}
		c.log.Error("Backend returned unreadable body",
			zap.Error(err),
			zap.String("endpoint", path),
			zap.Int("status", res.StatusCode),
		)
		return nil, nil, fmt.Errorf("%w: decode %s response (status=%d): %v", ErrTransport, path, res.StatusCode, err)
	}

	if !env.Success || res.StatusCode >= http.StatusBadRequest {
		return nil, nil, &RejectedError{Endpoint: path, StatusCode: res.StatusCode, Message: env.Message}
	}

	return &env, raw, nil
}
