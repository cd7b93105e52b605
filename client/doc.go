// Package client is the HTTP transport for the PartsLogic API, built
// on [net/http].
//
// # Building a Client
//
// Use [Build] to create a [Client] with functional options:
//
//	c, err := client.Build(
//		client.WithAPIKey(key),
//		client.WithTimeout(10 * time.Second),
//		client.WithUserAgent("myapp/1.0"),
//	)
//
// Requests with a relative URL are resolved against the endpoint,
// [DefaultEndpoint] unless [WithEndpoint] says otherwise.
//
// # Sending Requests
//
// [Client.Send] returns the raw response whatever its status and is what
// the search package uses as its transport. [Client.Do] checks the status
// and decodes into a destination:
//
//	req, err := client.Request(ctx, &url.URL{Path: "brands"}, http.MethodGet)
//	err = c.Do(req, http.StatusOK, client.WithDestination(&brands))
//
// [Client.SendAndDecode] is the lenient form: a failed status is logged
// and yields a nil body.
//
// # Observability
//
// Each request is spanned with the tracer from [WithTracer], carries an
// X-Request-Id header, and is counted on the registry from [WithMetrics].
package client
