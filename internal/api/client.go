package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"medoffice-agenda/internal/models"
)

// Client talks to the office management backend. It is the only component
// that knows about HTTP; everything above it works with domain values.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *zap.Logger
}

// Option configures optional client behavior.
type Option func(*Client)

// WithToken attaches a bearer token to every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithTimeout overrides the default request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates a backend client rooted at baseURL.
func NewClient(baseURL string, logger *zap.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// do issues a request and decodes the standard envelope into out.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var payload *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		payload = bytes.NewReader(encoded)
	} else {
		payload = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, payload)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("request failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return fmt.Errorf("%s %s: %w", method, path, err)
	}

	if err := decodeResponse(resp, out); err != nil {
		if !errors.Is(err, ErrNotFound) {
			c.logger.Debug("request rejected", zap.String("method", method), zap.String("path", path), zap.Error(err))
		}
		return err
	}
	return nil
}

// ListRange fetches the appointments for an inclusive date range.
func (c *Client) ListRange(ctx context.Context, from, to models.Date) ([]models.Appointment, error) {
	query := url.Values{}
	query.Set("dateFrom", from.String())
	query.Set("dateTo", to.String())

	var appointments []models.Appointment
	if err := c.do(ctx, http.MethodGet, "/appointments", query, nil, &appointments); err != nil {
		return nil, fmt.Errorf("list appointments %s..%s: %w", from, to, err)
	}
	return appointments, nil
}

// ListAll fetches every appointment known to the backend. Used when a
// recurring series has to be reconciled beyond the visible week.
func (c *Client) ListAll(ctx context.Context) ([]models.Appointment, error) {
	var appointments []models.Appointment
	if err := c.do(ctx, http.MethodGet, "/appointments", nil, nil, &appointments); err != nil {
		return nil, fmt.Errorf("list all appointments: %w", err)
	}
	return appointments, nil
}

// ListByDate fetches the appointments for exactly one date.
func (c *Client) ListByDate(ctx context.Context, date models.Date) ([]models.Appointment, error) {
	var appointments []models.Appointment
	if err := c.do(ctx, http.MethodGet, "/appointments/date/"+date.String(), nil, nil, &appointments); err != nil {
		return nil, fmt.Errorf("list appointments on %s: %w", date, err)
	}
	return appointments, nil
}

// Get fetches a single appointment. A missing appointment is a soft
// failure: the result is nil with no error.
func (c *Client) Get(ctx context.Context, id int64) (*models.Appointment, error) {
	var appointment models.Appointment
	err := c.do(ctx, http.MethodGet, "/appointments/"+strconv.FormatInt(id, 10), nil, nil, &appointment)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get appointment %d: %w", id, err)
	}
	return &appointment, nil
}

// Create persists a new appointment; the backend assigns the id and
// defaults the status to planned.
func (c *Client) Create(ctx context.Context, appointment models.Appointment) (*models.Appointment, error) {
	var created models.Appointment
	if err := c.do(ctx, http.MethodPost, "/appointments", nil, appointment, &created); err != nil {
		return nil, fmt.Errorf("create appointment: %w", err)
	}
	return &created, nil
}

// Update replaces an appointment record.
func (c *Client) Update(ctx context.Context, appointment models.Appointment) (*models.Appointment, error) {
	var updated models.Appointment
	path := "/appointments/" + strconv.FormatInt(appointment.ID, 10)
	if err := c.do(ctx, http.MethodPut, path, nil, appointment, &updated); err != nil {
		return nil, fmt.Errorf("update appointment %d: %w", appointment.ID, err)
	}
	return &updated, nil
}

// UpdateStatus applies a status transition (confirm/cancel/complete).
func (c *Client) UpdateStatus(ctx context.Context, id int64, action models.StatusAction) error {
	path := "/appointments/" + strconv.FormatInt(id, 10) + "/status/" + string(action)
	if err := c.do(ctx, http.MethodPut, path, nil, nil, nil); err != nil {
		return fmt.Errorf("%s appointment %d: %w", action, id, err)
	}
	return nil
}

// Reschedule moves an appointment to a new date and start time. The
// backend adjusts the status and clears the prior slot.
func (c *Client) Reschedule(ctx context.Context, id int64, date models.Date, start models.ClockTime) error {
	query := url.Values{}
	query.Set("date", date.String())
	query.Set("time", start.String())
	path := "/appointments/" + strconv.FormatInt(id, 10) + "/reschedule"
	if err := c.do(ctx, http.MethodPut, path, query, nil, nil); err != nil {
		return fmt.Errorf("reschedule appointment %d: %w", id, err)
	}
	return nil
}

// Delete removes an appointment.
func (c *Client) Delete(ctx context.Context, id int64) error {
	if err := c.do(ctx, http.MethodDelete, "/appointments/"+strconv.FormatInt(id, 10), nil, nil, nil); err != nil {
		return fmt.Errorf("delete appointment %d: %w", id, err)
	}
	return nil
}

// GetPatient fetches a patient record. A missing patient is a soft
// failure: the result is nil with no error.
func (c *Client) GetPatient(ctx context.Context, id int64) (*models.Patient, error) {
	var patient models.Patient
	err := c.do(ctx, http.MethodGet, "/patients/"+strconv.FormatInt(id, 10), nil, nil, &patient)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get patient %d: %w", id, err)
	}
	return &patient, nil
}

// UpdatePatient replaces a patient record.
func (c *Client) UpdatePatient(ctx context.Context, patient models.Patient) error {
	path := "/patients/" + strconv.FormatInt(patient.ID, 10)
	if err := c.do(ctx, http.MethodPut, path, nil, patient, nil); err != nil {
		return fmt.Errorf("update patient %d: %w", patient.ID, err)
	}
	return nil
}
