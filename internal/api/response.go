package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// responseData mirrors the backend's standard response envelope.
type responseData struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// decodeResponse reads a backend response, maps error statuses to package
// errors and, on success, unmarshals the envelope's data field into out.
// A nil out discards the body.
func decodeResponse(resp *http.Response, out any) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}

	var envelope responseData
	if len(body) > 0 {
		// A non-envelope body is tolerated; the raw payload is then the data.
		if err := json.Unmarshal(body, &envelope); err != nil || envelope.Status == 0 {
			envelope = responseData{Status: resp.StatusCode, Data: body}
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Code: resp.StatusCode, Message: envelope.Error}
	}

	if out == nil || len(envelope.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("decode response data: %w", err)
	}
	return nil
}
