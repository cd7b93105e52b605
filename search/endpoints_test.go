package search_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/adamwoolhether/partslogic/search"
)

func TestEndpoints_Paths(t *testing.T) {
	testCases := map[string]struct {
		ep       search.Endpoint
		path     string
		declared []string
	}{
		"healthcheck":   {ep: search.NewHealthCheck(), path: "healthcheck"},
		"brands":        {ep: search.NewBrands(), path: "brands"},
		"categories":    {ep: search.NewCategories(), path: "categories"},
		"products":      {ep: search.NewProducts(), path: "products", declared: []string{"page", "limit", "q"}},
		"fitmentCheck":  {ep: search.NewFitmentCheck(), path: "fitment/check", declared: []string{"groupId"}},
		"fitmentLabels": {ep: search.NewFitmentLabels(), path: "fitment/labels", declared: []string{"groupId"}},
		"fitmentValues": {ep: search.NewFitmentValues("year"), path: "fitment/labels", declared: []string{"groupId", "parents"}},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			if tc.ep.Path() != tc.path {
				t.Errorf("expected path %q, got %q", tc.path, tc.ep.Path())
			}

			params := tc.ep.(interface{ Parameters() []string }).Parameters()
			if diff := cmp.Diff(tc.declared, params); diff != "" {
				t.Errorf("declared parameters mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEndpoints_NoArguments(t *testing.T) {
	for name, spec := range map[string]*search.Spec{
		"healthcheck": search.NewHealthCheck(),
		"brands":      search.NewBrands(),
		"categories":  search.NewCategories(),
	} {
		t.Run(name, func(t *testing.T) {
			if err := spec.Validate(search.NewQuery()); err != nil {
				t.Errorf("expected empty query to validate, got: %v", err)
			}

			err := spec.Validate(search.NewQuery().Set("unknown", 1))

			var invalid *search.InvalidArgumentsError
			if !errors.As(err, &invalid) {
				t.Fatalf("expected *InvalidArgumentsError, got: %v", err)
			}
			if len(invalid.Errors) != 1 {
				t.Errorf("expected exactly one error, got %v", invalid.Errors)
			}
		})
	}
}

func TestProducts_UnvalidatedFacets(t *testing.T) {
	var seen []*http.Request
	products := search.NewProducts(search.WithTransport(staticTransport(http.StatusOK, `{"products":[]}`, &seen)))

	q := search.NewQuery().
		Set("Drive", []string{"2wd", "4wd"}).
		Set("page", 1).
		Set("limit", 1)

	if err := products.Validate(q); err != nil {
		t.Fatalf("expected facets to be accepted, got: %v", err)
	}

	// Required page is advisory only.
	if err := products.Validate(search.NewQuery()); err != nil {
		t.Errorf("expected empty query to be accepted, got: %v", err)
	}

	resp, err := products.Get(t.Context(), q)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if !resp.IsSuccess() {
		t.Errorf("expected success, got %d", resp.StatusCode())
	}

	if len(seen) != 1 {
		t.Fatalf("expected 1 request, got %d", len(seen))
	}
	if exp := "products?Drive=2wd&Drive=4wd&page=1&limit=1"; seen[0].URL.String() != exp {
		t.Errorf("expected url %q, got %q", exp, seen[0].URL.String())
	}
}

func TestFitmentValues_URI(t *testing.T) {
	testCases := map[string]struct {
		query *search.Query
		exp   string
	}{
		"noQuery":                 {query: search.NewQuery(), exp: ""},
		"oneParameter":            {query: search.NewQuery().Set("test", "foo"), exp: "test=foo"},
		"oneParameterEncoded":     {query: search.NewQuery().Set("test", "with space"), exp: "test=with+space"},
		"twoParameters":           {query: search.NewQuery().Set("test", 1).Set("foo", 2), exp: "test=1&foo=2"},
		"duplicateParametersBad":  {query: search.NewQuery().Set("test", 1).Set("test", 2), exp: "test=2"},
		"duplicateParametersGood": {query: search.NewQuery().Set("test", []int{1, 2}), exp: "test=1&test=2"},
		"nestedList":              {query: search.NewQuery().Set("test", []any{1, []int{2, 3}}), exp: "test=1&test=2&test=3"},
		"escapedName":             {query: search.NewQuery().Set("a b", "c&d"), exp: "a+b=c%26d"},
	}

	values := search.NewFitmentValues("year")

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			if got := search.FlattenQuery(tc.query); got != tc.exp {
				t.Errorf("FlattenQuery = %q, want %q", got, tc.exp)
			}

			u, err := values.URI(tc.query)
			if err != nil {
				t.Fatalf("expected no error, got: %v", err)
			}

			expURI := "fitment/labels/year"
			if tc.exp != "" {
				expURI += "?" + tc.exp
			}
			if u.String() != expURI {
				t.Errorf("expected uri %q, got %q", expURI, u.String())
			}
		})
	}
}

func TestFitmentValues_EscapedName(t *testing.T) {
	testCases := map[string]struct {
		name string
		exp  string
	}{
		"slash":    {name: "a/b", exp: "fitment/labels/a%2Fb?groupId=1"},
		"space":    {name: "a b", exp: "fitment/labels/a%20b?groupId=1"},
		"question": {name: "c?", exp: "fitment/labels/c%3F?groupId=1"},
		"mixed":    {name: "a b/c?", exp: "fitment/labels/a%20b%2Fc%3F?groupId=1"},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			u, err := search.NewFitmentValues(tc.name).URI(search.NewQuery().Set("groupId", 1))
			if err != nil {
				t.Fatalf("expected no error, got: %v", err)
			}

			if u.String() != tc.exp {
				t.Errorf("expected uri %q, got %q", tc.exp, u.String())
			}
			if want := "fitment/labels/" + tc.name; u.Path != want {
				t.Errorf("expected path %q, got %q", want, u.Path)
			}
		})
	}
}

func TestFitmentValues_StandardSchemeForDeclared(t *testing.T) {
	values := search.NewFitmentValues("year")

	if err := values.Validate(search.NewQuery().Set("groupId", 1)); err != nil {
		t.Fatalf("expected groupId to validate, got: %v", err)
	}

	u, err := values.URI(search.NewQuery().Set("groupId", 1))
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if exp := "fitment/labels/year?groupId=1"; u.String() != exp {
		t.Errorf("expected uri %q, got %q", exp, u.String())
	}
}

func TestFitmentLabels_MissingGroupID(t *testing.T) {
	labels := search.NewFitmentLabels(search.WithTransport(staticTransport(http.StatusOK, `[]`, nil)))

	_, err := labels.Get(t.Context(), search.NewQuery())

	var invalid *search.InvalidArgumentsError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected *InvalidArgumentsError, got: %v", err)
	}
	if diff := cmp.Diff([]string{"groupId is required"}, invalid.Errors); diff != "" {
		t.Errorf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestFitmentLabels_GetValues(t *testing.T) {
	body := `[{"id":"649f6e79b6e15308f92b1484","groupId":"1","label":"Model","value":"F-150","priority":"997"}]`

	var seen []*http.Request
	labels := search.NewFitmentLabels(search.WithTransport(staticTransport(http.StatusOK, body, &seen)))

	resp, err := labels.GetValues(t.Context(), "model", search.NewQuery().Set("groupId", 1).Set("parents", []string{"2024"}))
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if len(seen) != 1 {
		t.Fatalf("expected 1 request, got %d", len(seen))
	}
	if exp := "fitment/labels/model?groupId=1&parents=2024"; seen[0].URL.String() != exp {
		t.Errorf("expected url %q, got %q", exp, seen[0].URL.String())
	}

	var got []search.FitmentValue
	if err := resp.Decode(&got); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	exp := []search.FitmentValue{{
		ID:       "649f6e79b6e15308f92b1484",
		GroupID:  "1",
		Label:    "Model",
		Value:    "F-150",
		Priority: "997",
	}}
	if diff := cmp.Diff(exp, got); diff != "" {
		t.Errorf("values mismatch (-want +got):\n%s", diff)
	}

	_, err = labels.GetValues(t.Context(), "model", search.NewQuery().Set("bogus", 1).Set("groupId", 1))
	if !errors.Is(err, search.ErrInvalidArguments) {
		t.Errorf("expected ErrInvalidArguments, got: %v", err)
	}
}
