//go:build integration

package e2e_test

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"testing"

	"github.com/adamwoolhether/partslogic"
	"github.com/adamwoolhether/partslogic/client"
	"github.com/adamwoolhether/partslogic/internal/mockapi"
	"github.com/adamwoolhether/partslogic/internal/server"
	"github.com/adamwoolhether/partslogic/search"
)

const testKey = "e2e-key"

// -------------------------------------------------------------------------
// Helpers
// -------------------------------------------------------------------------

// newTestAPI serves the mock API on a loopback listener until the test ends.
func newTestAPI(t *testing.T) (*mockapi.Server, string) {
	t.Helper()

	log := slog.New(slog.DiscardHandler)
	api := mockapi.New(mockapi.WithAPIKey(testKey), mockapi.WithLogger(log))
	srv := server.New(api, server.WithLogger(log))

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listening: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	t.Cleanup(func() {
		cancel()
		if err := <-done; err != nil {
			t.Errorf("serve: %v", err)
		}
	})

	return api, "http://" + ln.Addr().String()
}

func newPartsLogic(t *testing.T, endpoint, key string) *partslogic.PartsLogic {
	t.Helper()

	pl, err := partslogic.New(
		client.WithEndpoint(endpoint),
		client.WithAPIKey(key),
		client.WithLogger(slog.New(slog.DiscardHandler)),
	)
	if err != nil {
		t.Fatalf("building partslogic: %v", err)
	}

	return pl
}

// -------------------------------------------------------------------------
// Tests
// -------------------------------------------------------------------------

func TestE2E_Ping(t *testing.T) {
	_, endpoint := newTestAPI(t)
	pl := newPartsLogic(t, endpoint, testKey)

	ok, err := pl.Ping(context.Background())
	if err != nil {
		t.Fatalf("ping: %v", err)
	}
	if !ok {
		t.Error("ping = false, want true")
	}
}

func TestE2E_HealthCheck(t *testing.T) {
	_, endpoint := newTestAPI(t)
	pl := newPartsLogic(t, endpoint, testKey)

	resp, err := pl.HealthCheck().Get(context.Background(), search.NewQuery())
	if err != nil {
		t.Fatalf("health check: %v", err)
	}

	var got search.HealthStatus
	if err := resp.Decode(&got); err != nil {
		t.Fatalf("decoding: %v", err)
	}

	if got.Status != "API Online" {
		t.Errorf("status = %q, want %q", got.Status, "API Online")
	}
}

func TestE2E_FitmentFlow(t *testing.T) {
	api, endpoint := newTestAPI(t)
	pl := newPartsLogic(t, endpoint, testKey)
	ctx := context.Background()

	resp, err := pl.FitmentLabels().Get(ctx, search.NewQuery().Set("groupId", 1))
	if err != nil {
		t.Fatalf("labels: %v", err)
	}

	var labels []search.FitmentLabel
	if err := resp.Decode(&labels); err != nil {
		t.Fatalf("decoding labels: %v", err)
	}
	if len(labels) != 3 {
		t.Fatalf("labels = %d, want 3", len(labels))
	}

	resp, err = pl.FitmentLabels().GetValues(ctx, labels[0].Name, search.NewQuery().Set("groupId", 1))
	if err != nil {
		t.Fatalf("values: %v", err)
	}

	var values []search.FitmentValue
	if err := resp.Decode(&values); err != nil {
		t.Fatalf("decoding values: %v", err)
	}
	if len(values) != 1 || values[0].Value != "2024" {
		t.Fatalf("values = %+v, want a single 2024", values)
	}

	q := search.NewQuery().Set("groupId", 1).Set(labels[0].Name, values[0].Value)
	resp, err = pl.FitmentCheck().Get(ctx, q)
	if err != nil {
		t.Fatalf("check: %v", err)
	}

	var check struct {
		Fits bool `json:"fits"`
	}
	if err := resp.Decode(&check); err != nil {
		t.Fatalf("decoding check: %v", err)
	}
	if !check.Fits {
		t.Error("fits = false, want true")
	}

	wantPaths := []string{"/fitment/labels", "/fitment/labels/Year", "/fitment/check"}
	reqs := api.Requests()
	if len(reqs) != len(wantPaths) {
		t.Fatalf("requests = %d, want %d", len(reqs), len(wantPaths))
	}
	for i, want := range wantPaths {
		if reqs[i].Path != want {
			t.Errorf("request %d path = %q, want %q", i, reqs[i].Path, want)
		}
	}
	if reqs[2].RawQuery != "groupId=1&Year=2024" {
		t.Errorf("check query = %q, want %q", reqs[2].RawQuery, "groupId=1&Year=2024")
	}
}

func TestE2E_ProductFacets(t *testing.T) {
	api, endpoint := newTestAPI(t)
	pl := newPartsLogic(t, endpoint, testKey)

	q := search.NewQuery().
		Set("page", 1).
		Set("Drive", []string{"2wd", "4wd"})

	resp, err := pl.Products().Get(context.Background(), q)
	if err != nil {
		t.Fatalf("products: %v", err)
	}

	var got struct {
		Total int `json:"total"`
	}
	if err := resp.Decode(&got); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if got.Total != 1115 {
		t.Errorf("total = %d, want %d", got.Total, 1115)
	}

	reqs := api.Requests()
	if len(reqs) != 1 {
		t.Fatalf("requests = %d, want 1", len(reqs))
	}
	if want := "page=1&Drive=2wd&Drive=4wd"; reqs[0].RawQuery != want {
		t.Errorf("query = %q, want %q", reqs[0].RawQuery, want)
	}
}

func TestE2E_InvalidQueryNeverSent(t *testing.T) {
	api, endpoint := newTestAPI(t)
	pl := newPartsLogic(t, endpoint, testKey)

	_, err := pl.FitmentLabels().Get(context.Background(), search.NewQuery().Set("group", 1))

	var invalid *search.InvalidArgumentsError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidArgumentsError, got %T: %v", err, err)
	}
	if len(invalid.Errors) != 2 {
		t.Errorf("reasons = %v, want 2", invalid.Errors)
	}

	if n := len(api.Requests()); n != 0 {
		t.Errorf("requests = %d, want 0", n)
	}
}

func TestE2E_AuthFailure(t *testing.T) {
	_, endpoint := newTestAPI(t)
	pl := newPartsLogic(t, endpoint, "wrong-key")

	resp, err := pl.Brands().Get(context.Background(), search.NewQuery())
	if err != nil {
		t.Fatalf("brands: %v", err)
	}
	if resp.IsSuccess() {
		t.Fatalf("status = %d, want failure", resp.StatusCode())
	}

	req, err := pl.Client().Request(context.Background(), &url.URL{Path: search.PathBrands}, http.MethodGet)
	if err != nil {
		t.Fatalf("creating request: %v", err)
	}

	err = pl.Client().Do(req, http.StatusOK)

	var statusErr *client.UnexpectedStatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected UnexpectedStatusError, got %T: %v", err, err)
	}
	if statusErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", statusErr.StatusCode, http.StatusUnauthorized)
	}
	if !errors.Is(err, client.ErrAuthFailure) {
		t.Errorf("expected ErrAuthFailure in %v", err)
	}
}

func TestE2E_RequestIDs(t *testing.T) {
	api, endpoint := newTestAPI(t)
	pl := newPartsLogic(t, endpoint, testKey)

	for range 2 {
		if _, err := pl.Categories().Get(context.Background(), search.NewQuery()); err != nil {
			t.Fatalf("categories: %v", err)
		}
	}

	reqs := api.Requests()
	if len(reqs) != 2 {
		t.Fatalf("requests = %d, want 2", len(reqs))
	}

	first := reqs[0].Header.Get(client.RequestIDHeader)
	second := reqs[1].Header.Get(client.RequestIDHeader)
	if first == "" || second == "" {
		t.Fatalf("missing request ids: %q, %q", first, second)
	}
	if first == second {
		t.Errorf("request ids repeat: %q", first)
	}
}
