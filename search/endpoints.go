package search

import (
	"context"
	"slices"
)

// Endpoint paths, relative to the API endpoint.
const (
	PathHealthCheck   = "healthcheck"
	PathBrands        = "brands"
	PathCategories    = "categories"
	PathProducts      = "products"
	PathFitmentCheck  = "fitment/check"
	PathFitmentLabels = "fitment/labels"
)

// Endpoint is a named API resource that answers GET queries.
type Endpoint interface {
	Path() string
	Get(ctx context.Context, q *Query) (*Response, error)
}

// Compile-time interface checks.
var (
	_ Endpoint = (*Spec)(nil)
	_ Endpoint = (*FitmentLabels)(nil)
)

// build prepends the endpoint's own configuration so caller options
// apply on top of it.
func build(path string, base []SpecOption, optFns []SpecOption) *Spec {
	return NewSpec(path, slices.Concat(base, optFns)...)
}

// NewHealthCheck returns the API health endpoint. It takes no arguments.
func NewHealthCheck(optFns ...SpecOption) *Spec {
	return build(PathHealthCheck, nil, optFns)
}

// NewBrands returns the brand listing endpoint. It takes no arguments.
func NewBrands(optFns ...SpecOption) *Spec {
	return build(PathBrands, nil, optFns)
}

// NewCategories returns the category listing endpoint. It takes no
// arguments.
func NewCategories(optFns ...SpecOption) *Spec {
	return build(PathCategories, nil, optFns)
}

// NewProducts returns the product search endpoint. Besides page, limit
// and q it accepts any facet filter, e.g. Drive=[2wd, 4wd], so queries
// are not validated and every list element becomes its own pair.
func NewProducts(optFns ...SpecOption) *Spec {
	base := []SpecOption{
		WithRequired("page"),
		WithOptional("limit", "q"),
		WithValidation(PermissiveValidation),
		WithEncoding(FlattenEncoding("")),
	}

	return build(PathProducts, base, optFns)
}

// NewFitmentCheck returns the fitment check endpoint. Fitment selections
// are keyed by label names, e.g. Year or Make, which vary per group, so
// queries are not validated.
func NewFitmentCheck(optFns ...SpecOption) *Spec {
	base := []SpecOption{
		WithRequired("groupId"),
		WithValidation(PermissiveValidation),
		WithEncoding(FlattenEncoding("")),
	}

	return build(PathFitmentCheck, base, optFns)
}

// NewFitmentValues returns the endpoint listing the values of a single
// fitment label, e.g. every Year, at fitment/labels/<fitmentName>.
func NewFitmentValues(fitmentName string, optFns ...SpecOption) *Spec {
	base := []SpecOption{
		WithRequired("groupId"),
		WithOptional("parents"),
		WithEncoding(FlattenEncoding(fitmentName)),
	}

	return build(PathFitmentLabels, base, optFns)
}

// FitmentLabels lists the fitment labels of a group and gives access to
// the values of each label.
type FitmentLabels struct {
	*Spec
	optFns []SpecOption
}

// NewFitmentLabels returns the fitment label endpoint.
func NewFitmentLabels(optFns ...SpecOption) *FitmentLabels {
	base := []SpecOption{
		WithRequired("groupId"),
	}

	return &FitmentLabels{
		Spec:   build(PathFitmentLabels, base, optFns),
		optFns: slices.Clone(optFns),
	}
}

// GetValues fetches the values of the label fitmentName. Each call uses a
// fresh values endpoint sharing this endpoint's options.
func (l *FitmentLabels) GetValues(ctx context.Context, fitmentName string, q *Query) (*Response, error) {
	return NewFitmentValues(fitmentName, l.optFns...).Get(ctx, q)
}
