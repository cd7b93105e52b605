package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/adamwoolhether/partslogic/search"
)

func fitmentCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fitment",
		Short: "Vehicle fitment lookups",
	}

	cmd.AddCommand(
		fitmentLabelsCmd(a),
		fitmentValuesCmd(a),
		fitmentCheckCmd(a),
	)

	return cmd
}

// maxValueLookups caps concurrent value requests of labels --with-values.
const maxValueLookups = 4

func fitmentLabelsCmd(a *app) *cobra.Command {
	var (
		groupID    string
		withValues bool
	)

	cmd := &cobra.Command{
		Use:   "labels",
		Short: "List fitment labels of a group",
		Example: `  plsearch fitment labels --group-id 1
  plsearch fitment labels --group-id 1 --with-values --jq '.Year[].value'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pl, err := a.newAPI()
			if err != nil {
				return err
			}

			resp, err := pl.FitmentLabels().Get(cmd.Context(), groupQuery(groupID))
			if err != nil {
				return err
			}

			if !resp.IsSuccess() || (!withValues && !a.tableOutput()) {
				return a.printResponse(resp)
			}

			var labels []search.FitmentLabel
			if err := resp.Decode(&labels); err != nil {
				return err
			}

			if !withValues {
				return a.printLabels(labels)
			}

			values, err := labelValues(cmd.Context(), pl.FitmentLabels(), labels, groupID)
			if err != nil {
				return err
			}

			if a.tableOutput() {
				var all []search.FitmentValue
				for _, l := range labels {
					all = append(all, values[l.Name]...)
				}
				return a.printValues(all)
			}

			return a.printValue(values)
		},
	}
	cmd.Flags().StringVar(&groupID, "group-id", "", "fitment group id")
	cmd.Flags().BoolVar(&withValues, "with-values", false, "also fetch the values of every label")

	return cmd
}

// labelValues fetches the values of every label concurrently, keyed by
// label name.
func labelValues(ctx context.Context, ep *search.FitmentLabels, labels []search.FitmentLabel, groupID string) (map[string][]search.FitmentValue, error) {
	results := make([][]search.FitmentValue, len(labels))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxValueLookups)

	for i, label := range labels {
		g.Go(func() error {
			resp, err := ep.GetValues(ctx, label.Name, groupQuery(groupID))
			if err != nil {
				return fmt.Errorf("values of %s: %w", label.Name, err)
			}
			if !resp.IsSuccess() {
				return fmt.Errorf("values of %s: API returned %d", label.Name, resp.StatusCode())
			}

			return resp.Decode(&results[i])
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	values := make(map[string][]search.FitmentValue, len(labels))
	for i, label := range labels {
		values[label.Name] = results[i]
	}

	return values, nil
}

func fitmentValuesCmd(a *app) *cobra.Command {
	var (
		groupID string
		parents []string
	)

	cmd := &cobra.Command{
		Use:     "values <label>",
		Short:   "List values of a fitment label",
		Example: `  plsearch fitment values model --group-id 1 --parents Year=2024 --parents Make=Chevrolet`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pl, err := a.newAPI()
			if err != nil {
				return err
			}

			q := groupQuery(groupID)
			if len(parents) > 0 {
				q.Set("parents", parents)
			}

			resp, err := pl.FitmentLabels().GetValues(cmd.Context(), args[0], q)
			if err != nil {
				return err
			}

			if a.tableOutput() && resp.IsSuccess() {
				var values []search.FitmentValue
				if err := resp.Decode(&values); err != nil {
					return err
				}
				return a.printValues(values)
			}

			return a.printResponse(resp)
		},
	}
	cmd.Flags().StringVar(&groupID, "group-id", "", "fitment group id")
	cmd.Flags().StringArrayVar(&parents, "parents", nil, "parent selection (repeatable)")

	return cmd
}

func fitmentCheckCmd(a *app) *cobra.Command {
	var (
		groupID    string
		selections []string
	)

	cmd := &cobra.Command{
		Use:     "check",
		Short:   "Check a fitment selection",
		Example: `  plsearch fitment check --group-id 1 --set Year=2024 --set Make=Chevrolet`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pl, err := a.newAPI()
			if err != nil {
				return err
			}

			q := groupQuery(groupID)
			if err := parseParams(q, selections); err != nil {
				return err
			}

			resp, err := pl.FitmentCheck().Get(cmd.Context(), q)
			if err != nil {
				return err
			}

			return a.printResponse(resp)
		},
	}
	cmd.Flags().StringVar(&groupID, "group-id", "", "fitment group id")
	cmd.Flags().StringArrayVar(&selections, "set", nil, "label selection as Label=value (repeatable)")

	return cmd
}

// groupQuery leaves groupId out when empty so validation reports it.
func groupQuery(groupID string) *search.Query {
	q := search.NewQuery()
	if groupID != "" {
		q.Set("groupId", groupID)
	}

	return q
}
