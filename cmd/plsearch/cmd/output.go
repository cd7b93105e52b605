package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/adamwoolhether/partslogic/internal/filter"
	"github.com/adamwoolhether/partslogic/search"
)

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

func (a *app) tableOutput() bool {
	return a.output == "table"
}

// printResponse writes a successful response body as JSON.
func (a *app) printResponse(resp *search.Response) error {
	if !resp.IsSuccess() {
		return fmt.Errorf("API returned %d: %s", resp.StatusCode(), bytes.TrimSpace(resp.Raw()))
	}

	return a.printValue(resp.Body())
}

// printValue writes v as indented JSON. With a jq expression, typed
// values are converted to plain JSON values first so it can run over them.
func (a *app) printValue(v any) error {
	if a.jq == "" {
		out, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding output: %w", err)
		}

		_, err = fmt.Fprintln(a.out, string(out))
		return err
	}

	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}

	var data any
	if err := json.Unmarshal(b, &data); err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}

	out, err := filter.ApplyToJSON(data, a.jq)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(a.out, string(out))
	return err
}

func (a *app) printLabels(labels []search.FitmentLabel) error {
	tw := newTabWriter(a.out)
	tw.writef("ID\tGROUP\tNAME\tPRIORITY\n")
	for _, l := range labels {
		tw.writef("%s\t%s\t%s\t%s\n", l.ID, l.GroupID, l.Name, l.Priority)
	}
	return tw.finish()
}

func (a *app) printValues(values []search.FitmentValue) error {
	tw := newTabWriter(a.out)
	tw.writef("ID\tGROUP\tLABEL\tVALUE\tPRIORITY\n")
	for _, v := range values {
		tw.writef("%s\t%s\t%s\t%s\t%s\n", v.ID, v.GroupID, v.Label, v.Value, v.Priority)
	}
	return tw.finish()
}

// parseParams adds name=value pairs to q. Comma separated values and
// repeated names become lists.
func parseParams(q *search.Query, pairs []string) error {
	var names []string
	values := make(map[string][]string)

	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok || name == "" {
			return fmt.Errorf("parameter %q must be name=value", pair)
		}
		if _, seen := values[name]; !seen {
			names = append(names, name)
		}
		values[name] = append(values[name], strings.Split(value, ",")...)
	}

	for _, name := range names {
		if vals := values[name]; len(vals) == 1 {
			q.Set(name, vals[0])
		} else {
			q.Set(name, vals)
		}
	}

	return nil
}
