package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adamwoolhether/partslogic/search"
)

func pingCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the API answers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pl, err := a.newAPI()
			if err != nil {
				return err
			}

			ok, err := pl.Ping(cmd.Context())
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("ping %s: unexpected answer", pl.Client().Endpoint())
			}

			_, err = fmt.Fprintln(a.out, "OK")
			return err
		},
	}
}

func endpointsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "endpoints",
		Short: "List the endpoints usable with get",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			api := search.NewAPI(nil)

			if a.tableOutput() {
				tw := newTabWriter(a.out)
				tw.writef("NAME\tPATH\n")
				for _, name := range search.EndpointNames() {
					ep, err := api.Endpoint(name)
					if err != nil {
						return err
					}
					tw.writef("%s\t%s\n", name, ep.Path())
				}
				return tw.finish()
			}

			return a.printValue(search.EndpointNames())
		},
	}
}

// getCmd issues a request to any registered endpoint by name.
func getCmd(a *app) *cobra.Command {
	var params []string

	cmd := &cobra.Command{
		Use:   "get <endpoint>",
		Short: "Query an endpoint by name",
		Example: `  plsearch get brands
  plsearch get fitment.labels --param groupId=1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pl, err := a.newAPI()
			if err != nil {
				return err
			}

			ep, err := pl.Endpoint(args[0])
			if err != nil {
				return err
			}

			return a.get(cmd, ep, params)
		},
	}
	cmd.Flags().StringArrayVar(&params, "param", nil, "query parameter as name=value (repeatable)")

	return cmd
}

// simpleCmd builds a command for an endpoint without dedicated flags.
func simpleCmd(a *app, use, short, name string) *cobra.Command {
	var params []string

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pl, err := a.newAPI()
			if err != nil {
				return err
			}

			ep, err := pl.Endpoint(name)
			if err != nil {
				return err
			}

			return a.get(cmd, ep, params)
		},
	}
	cmd.Flags().StringArrayVar(&params, "param", nil, "query parameter as name=value (repeatable)")

	return cmd
}

func healthCheckCmd(a *app) *cobra.Command {
	return simpleCmd(a, "healthcheck", "Show API health", search.NameHealthCheck)
}

func brandsCmd(a *app) *cobra.Command {
	return simpleCmd(a, "brands", "List brands", search.NameBrands)
}

func categoriesCmd(a *app) *cobra.Command {
	return simpleCmd(a, "categories", "List categories", search.NameCategories)
}

func productsCmd(a *app) *cobra.Command {
	var (
		page   int
		limit  int
		text   string
		facets []string
	)

	cmd := &cobra.Command{
		Use:   "products",
		Short: "Search products",
		Example: `  plsearch products --q "oil filter" --limit 5
  plsearch products --facet Drive=2wd,4wd --jq '.results[].sku'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pl, err := a.newAPI()
			if err != nil {
				return err
			}

			q := search.NewQuery().Set("page", page)
			if cmd.Flags().Changed("limit") {
				q.Set("limit", limit)
			}
			if text != "" {
				q.Set("q", text)
			}
			if err := parseParams(q, facets); err != nil {
				return err
			}

			resp, err := pl.Products().Get(cmd.Context(), q)
			if err != nil {
				return err
			}

			return a.printResponse(resp)
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "result page")
	cmd.Flags().IntVar(&limit, "limit", 0, "results per page")
	cmd.Flags().StringVar(&text, "q", "", "free text search")
	cmd.Flags().StringArrayVar(&facets, "facet", nil, "facet filter as Name=v1,v2 (repeatable)")

	return cmd
}

func (a *app) get(cmd *cobra.Command, ep search.Endpoint, params []string) error {
	q := search.NewQuery()
	if err := parseParams(q, params); err != nil {
		return err
	}

	resp, err := ep.Get(cmd.Context(), q)
	if err != nil {
		return err
	}

	return a.printResponse(resp)
}
