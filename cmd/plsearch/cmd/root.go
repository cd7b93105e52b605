// Package cmd implements the plsearch CLI commands.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/adamwoolhether/partslogic"
	"github.com/adamwoolhether/partslogic/client"
	"github.com/adamwoolhether/partslogic/config"
	"github.com/adamwoolhether/partslogic/search"
)

// flagProperties maps persistent flags to config properties.
var flagProperties = map[string]string{
	"api-key":  config.APIKey,
	"endpoint": config.APIEndpoint,
	"debug":    config.EnableDebug,
	"timeout":  config.Timeout,
	"mock":     config.UseMockResponses,
}

// app carries per-execution state so commands never share globals.
type app struct {
	v       *viper.Viper
	cfgFile string
	envFile string
	jq      string
	output  string
	out     io.Writer
	errOut  io.Writer
}

// Execute runs plsearch with args.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	root := NewRootCmd(stdout, stderr)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if err != nil {
		printError(stderr, err)
	}

	return err
}

// NewRootCmd builds the command tree writing to stdout and stderr.
func NewRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{
		v:      viper.New(),
		out:    stdout,
		errOut: stderr,
	}

	root := &cobra.Command{
		Use:   "plsearch",
		Short: "CLI client for the PartsLogic product search API",
		Long: "plsearch queries the PartsLogic API: brands, categories, products\n" +
			"and vehicle fitment. Settings come from flags, PARTSLOGIC_* variables,\n" +
			"a .env file and an optional config file, in that order of precedence.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.initConfig()
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	defaults := config.Default()
	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (yaml, json or toml)")
	flags.StringVar(&a.envFile, "env-file", config.DefaultEnvFile, "dotenv file to load")
	flags.String("api-key", "", "PartsLogic API key")
	flags.String("endpoint", defaults.APIEndpoint, "API base URL")
	flags.Duration("timeout", defaults.Timeout, "request timeout")
	flags.Bool("debug", false, "log requests at debug level")
	flags.Bool("mock", false, "answer from built-in canned responses")
	flags.StringVar(&a.jq, "jq", "", "jq expression applied to the response")
	flags.StringVarP(&a.output, "output", "o", "json", "output format (json, table)")

	for flag, property := range flagProperties {
		cobra.CheckErr(a.v.BindPFlag(property, flags.Lookup(flag)))
	}

	root.AddCommand(
		pingCmd(a),
		endpointsCmd(a),
		getCmd(a),
		rawCmd(a),
		healthCheckCmd(a),
		brandsCmd(a),
		categoriesCmd(a),
		productsCmd(a),
		fitmentCmd(a),
	)

	return root
}

func (a *app) initConfig() error {
	if err := config.LoadEnvFiles(a.envFile); err != nil {
		return err
	}

	for _, property := range config.Properties() {
		if err := a.v.BindEnv(property, config.EnvName(property)); err != nil {
			return fmt.Errorf("binding env for %s: %w", property, err)
		}
	}

	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
		if err := a.v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file: %w", err)
		}
	}

	return nil
}

// loadConfig resolves the effective configuration.
func (a *app) loadConfig() (config.Config, error) {
	cfg := config.Default()
	for _, property := range config.Properties() {
		if !a.v.IsSet(property) {
			continue
		}
		if err := cfg.Set(property, a.v.GetString(property)); err != nil {
			return config.Config{}, err
		}
	}

	return cfg, nil
}

func (a *app) newAPI() (*partslogic.PartsLogic, error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return nil, err
	}

	logger := slog.New(slog.NewTextHandler(a.errOut, &slog.HandlerOptions{Level: slog.LevelWarn}))
	if cfg.EnableDebug {
		logger = slog.New(slog.NewTextHandler(a.errOut, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	return partslogic.NewFromConfig(cfg, client.WithLogger(logger))
}

func printError(w io.Writer, err error) {
	var invalid *search.InvalidArgumentsError
	if errors.As(err, &invalid) {
		fmt.Fprintln(w, "invalid arguments:")
		for _, reason := range invalid.Errors {
			fmt.Fprintf(w, "  %s\n", reason)
		}
		return
	}

	var fields config.FieldErrors
	if errors.As(err, &fields) {
		fmt.Fprintln(w, "invalid configuration:")
		for _, f := range fields {
			fmt.Fprintf(w, "  %s: %s\n", f.Field, f.Err)
		}
		return
	}

	fmt.Fprintf(w, "Error: %s\n", strings.TrimSpace(err.Error()))
}
