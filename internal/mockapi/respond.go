package mockapi

import (
	"encoding/json"
	"fmt"
	"net/http"
)

const contentTypeJSON = "application/json; charset=utf-8"

// RespondJSON to an HTTP request, setting the status code and body if any.
func RespondJSON(w http.ResponseWriter, r *http.Request, statusCode int, data any) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}

	return respondRaw(w, r, statusCode, nil, jsonData)
}

// respondFixture writes a canned response.
func respondFixture(w http.ResponseWriter, r *http.Request, f Fixture) error {
	payload, err := f.Payload()
	if err != nil {
		return fmt.Errorf("fixture payload: %w", err)
	}

	return respondRaw(w, r, f.Status, f.Headers, payload)
}

func respondRaw(w http.ResponseWriter, r *http.Request, statusCode int, headers map[string]string, payload []byte) error {
	setStatusCode(r.Context(), statusCode)

	w.Header().Set("Content-Type", contentTypeJSON)
	for k, v := range headers {
		w.Header().Set(k, v)
	}

	if statusCode == http.StatusNoContent {
		w.WriteHeader(statusCode)
		return nil
	}

	w.WriteHeader(statusCode)

	if _, err := w.Write(payload); err != nil {
		return err
	}

	return nil
}
