// Package search builds, validates and decodes requests against the
// PartsLogic search API.
//
// # Endpoints
//
// Every endpoint is a [Spec]: a relative path, a set of declared
// [Parameter] values, a validation policy and a query encoding. The
// endpoint constructors ([NewBrands], [NewProducts], [NewFitmentLabels],
// ...) only differ in how they configure those pieces:
//
//	spec := search.NewFitmentLabels(search.WithTransport(c))
//	resp, err := spec.Get(ctx, search.NewQuery().Set("groupId", 1))
//
// # Queries
//
// A [Query] is an ordered set of named arguments. Values are scalars or
// lists of scalars:
//
//	q := search.NewQuery().
//		Set("page", 1).
//		Set("Drive", []string{"2wd", "4wd"})
//
// # Validation
//
// [StrictValidation] rejects undeclared names and missing required
// parameters with an [*InvalidArgumentsError] listing every reason.
// [PermissiveValidation] accepts anything; product search uses it so
// callers may pass arbitrary facet filters.
//
// # Registry
//
// [API] hands out one endpoint instance per name:
//
//	api := search.NewAPI(c)
//	ep, err := api.Endpoint("fitment.labels")
package search
