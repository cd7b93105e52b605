package search_test

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/adamwoolhether/partslogic/search"
)

type errReader struct{}

func (errReader) Read([]byte) (int, error) { return 0, errors.New("boom") }

func httpResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": {"application/json"}, "X-Trace": {"a", "b"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestNewResponse(t *testing.T) {
	testCases := map[string]struct {
		status  int
		body    string
		opts    []search.ResponseOption
		expBody any
		success bool
	}{
		"pingOK": {
			status:  http.StatusOK,
			body:    `"OK"`,
			expBody: "OK",
			success: true,
		},
		"object": {
			status:  http.StatusOK,
			body:    `{"status":"API Online","uptime":"123211","environment":"live"}`,
			expBody: map[string]any{"status": "API Online", "uptime": "123211", "environment": "live"},
			success: true,
		},
		"array": {
			status:  http.StatusOK,
			body:    `[1, 2]`,
			expBody: []any{1.0, 2.0},
			success: true,
		},
		"jsonNumber": {
			status:  http.StatusOK,
			body:    `{"id": 12345678901234567}`,
			opts:    []search.ResponseOption{search.WithJSONNumber()},
			expBody: map[string]any{"id": json.Number("12345678901234567")},
			success: true,
		},
		"null": {
			status:  http.StatusOK,
			body:    `null`,
			success: true,
		},
		"malformed": {
			status:  http.StatusOK,
			body:    `{"status":`,
			success: true,
		},
		"trailingData": {
			status: http.StatusOK,
			body:   `"OK" "again"`,
			// Not a single document.
			success: true,
		},
		"trailingDelimiter": {
			status:  http.StatusOK,
			body:    `{}]`,
			success: true,
		},
		"trailingBrace": {
			status:  http.StatusOK,
			body:    `[1]}`,
			success: true,
		},
		"trailingWhitespace": {
			status:  http.StatusOK,
			body:    "[1]\n",
			expBody: []any{1.0},
			success: true,
		},
		"empty": {
			status:  http.StatusNoContent,
			body:    ``,
			success: false,
		},
		"notFound": {
			status:  http.StatusNotFound,
			body:    `{"error":"missing"}`,
			expBody: map[string]any{"error": "missing"},
			success: false,
		},
		"customSuccess": {
			status:  http.StatusCreated,
			body:    `{}`,
			opts:    []search.ResponseOption{search.WithSuccessCode(http.StatusCreated)},
			expBody: map[string]any{},
			success: true,
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			resp, err := search.NewResponse(httpResponse(tc.status, tc.body), tc.opts...)
			if err != nil {
				t.Fatalf("expected no error, got: %v", err)
			}

			if diff := cmp.Diff(tc.expBody, resp.Body()); diff != "" {
				t.Errorf("body mismatch (-want +got):\n%s", diff)
			}
			if resp.StatusCode() != tc.status {
				t.Errorf("expected status %d, got %d", tc.status, resp.StatusCode())
			}
			if resp.IsSuccess() != tc.success {
				t.Errorf("expected success %v, got %v", tc.success, resp.IsSuccess())
			}
			if diff := cmp.Diff([]string{"a", "b"}, resp.Header().Values("X-Trace")); diff != "" {
				t.Errorf("headers mismatch (-want +got):\n%s", diff)
			}
			if string(resp.Raw()) != tc.body {
				t.Errorf("expected raw %q, got %q", tc.body, resp.Raw())
			}
		})
	}
}

func TestNewResponse_ReadError(t *testing.T) {
	_, err := search.NewResponse(&http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(errReader{}),
	})
	if err == nil {
		t.Fatal("expected read error")
	}
}

func TestResponse_Decode(t *testing.T) {
	resp, err := search.NewResponse(httpResponse(http.StatusOK,
		`{"status":"API Online","uptime":"123211","environment":"live"}`))
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	var got search.HealthStatus
	if err := resp.Decode(&got); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	exp := search.HealthStatus{Status: "API Online", Uptime: "123211", Environment: "live"}
	if diff := cmp.Diff(exp, got); diff != "" {
		t.Errorf("health mismatch (-want +got):\n%s", diff)
	}

	bad, err := search.NewResponse(httpResponse(http.StatusOK, `not json`))
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if err := bad.Decode(&got); err == nil {
		t.Error("expected decode error for malformed body")
	}

	trailing, err := search.NewResponse(httpResponse(http.StatusOK, `{}]`))
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if err := trailing.Decode(&got); err == nil {
		t.Error("expected decode error for trailing delimiter")
	}
}
