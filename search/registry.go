package search

import (
	"slices"
	"sync"

	"github.com/sahilm/fuzzy"
)

// Registered endpoint names.
const (
	NameHealthCheck   = "healthcheck"
	NameBrands        = "brands"
	NameCategories    = "categories"
	NameProducts      = "products"
	NameFitmentCheck  = "fitment.check"
	NameFitmentLabels = "fitment.labels"
)

// maxSuggestions caps the names offered for an unknown endpoint.
const maxSuggestions = 3

var constructors = map[string]func(...SpecOption) Endpoint{
	NameHealthCheck:   func(o ...SpecOption) Endpoint { return NewHealthCheck(o...) },
	NameBrands:        func(o ...SpecOption) Endpoint { return NewBrands(o...) },
	NameCategories:    func(o ...SpecOption) Endpoint { return NewCategories(o...) },
	NameProducts:      func(o ...SpecOption) Endpoint { return NewProducts(o...) },
	NameFitmentCheck:  func(o ...SpecOption) Endpoint { return NewFitmentCheck(o...) },
	NameFitmentLabels: func(o ...SpecOption) Endpoint { return NewFitmentLabels(o...) },
}

// EndpointNames returns every registered endpoint name, sorted.
func EndpointNames() []string {
	names := make([]string, 0, len(constructors))
	for name := range constructors {
		names = append(names, name)
	}
	slices.Sort(names)

	return names
}

// API is the registry of search endpoints for one client. Endpoints are
// built on first use and reused afterwards.
type API struct {
	optFns []SpecOption

	mu        sync.Mutex
	endpoints map[string]Endpoint
}

// NewAPI returns a registry whose endpoints send through t. optFns are
// applied to every endpoint.
func NewAPI(t Transport, optFns ...SpecOption) *API {
	return &API{
		optFns:    slices.Concat([]SpecOption{WithTransport(t)}, optFns),
		endpoints: make(map[string]Endpoint),
	}
}

// Endpoint returns the endpoint registered under name.
func (a *API) Endpoint(name string) (Endpoint, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if ep, ok := a.endpoints[name]; ok {
		return ep, nil
	}

	ctor, ok := constructors[name]
	if !ok {
		return nil, &UnknownEndpointError{Name: name, Suggestions: suggest(name)}
	}

	ep := ctor(a.optFns...)
	a.endpoints[name] = ep

	return ep, nil
}

// HealthCheck returns the health check endpoint.
func (a *API) HealthCheck() *Spec {
	return a.mustSpec(NameHealthCheck)
}

// Brands returns the brand listing endpoint.
func (a *API) Brands() *Spec {
	return a.mustSpec(NameBrands)
}

// Categories returns the category listing endpoint.
func (a *API) Categories() *Spec {
	return a.mustSpec(NameCategories)
}

// Products returns the product search endpoint.
func (a *API) Products() *Spec {
	return a.mustSpec(NameProducts)
}

// FitmentCheck returns the fitment check endpoint.
func (a *API) FitmentCheck() *Spec {
	return a.mustSpec(NameFitmentCheck)
}

// FitmentLabels returns the fitment labels endpoint.
func (a *API) FitmentLabels() *FitmentLabels {
	ep, _ := a.Endpoint(NameFitmentLabels)
	return ep.(*FitmentLabels)
}

// mustSpec is only called with registered names.
func (a *API) mustSpec(name string) *Spec {
	ep, err := a.Endpoint(name)
	if err != nil {
		panic(err)
	}

	return ep.(*Spec)
}

func suggest(name string) []string {
	matches := fuzzy.Find(name, EndpointNames())
	if len(matches) > maxSuggestions {
		matches = matches[:maxSuggestions]
	}

	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.Str)
	}

	return out
}
