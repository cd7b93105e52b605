package cmd

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"github.com/adamwoolhether/partslogic/client"
)

// rawCmd sends a GET to any API path, skipping query validation.
func rawCmd(a *app) *cobra.Command {
	var (
		fields  []string
		headers []string
	)

	cmd := &cobra.Command{
		Use:   "raw <path>",
		Short: "GET any API path without query validation",
		Long: `Send a GET to any path relative to the API endpoint.

Queries are not validated and numbers in the response keep their exact
value. Any status other than 200 is an error.`,
		Example: `  plsearch raw fitment/labels -f groupId=1
  plsearch raw products -f page=1 -f Drive=2wd -f Drive=4wd --jq .total
  plsearch raw brands -H "Accept-Language: de"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := parseFields(fields)
			if err != nil {
				return err
			}

			header, err := parseHeaders(headers)
			if err != nil {
				return err
			}

			pl, err := a.newAPI()
			if err != nil {
				return err
			}
			c := pl.Client()

			path := &url.URL{Path: strings.TrimPrefix(args[0], "/")}
			req, err := c.Request(cmd.Context(), path, http.MethodGet,
				client.WithQueryStrings(query),
				client.WithHeaders(header),
			)
			if err != nil {
				return err
			}

			var body any
			if err := c.Do(req, http.StatusOK, client.WithDestination(&body), client.WithJSONNumb()); err != nil {
				return err
			}

			return a.printValue(body)
		},
	}
	cmd.Flags().StringArrayVarP(&fields, "field", "f", nil, "query parameter as name=value (repeatable, repeated names repeat)")
	cmd.Flags().StringArrayVarP(&headers, "header", "H", nil, `request header as "Name: value" (repeatable)`)

	return cmd
}

// parseFields turns name=value pairs into query values, keeping every
// occurrence of a repeated name.
func parseFields(pairs []string) (url.Values, error) {
	values := make(url.Values, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("field %q must be name=value", pair)
		}
		values.Add(name, value)
	}

	return values, nil
}

func parseHeaders(lines []string) (http.Header, error) {
	header := make(http.Header, len(lines))
	for _, line := range lines {
		name, value, ok := strings.Cut(line, ":")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("header %q must be \"Name: value\"", line)
		}
		header.Add(name, strings.TrimSpace(value))
	}

	return header, nil
}
