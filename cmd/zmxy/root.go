package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/philiph/zmxy"
)

// errBusinessFailure marks a call the provider answered with success=false.
// The result has already been printed.
var errBusinessFailure = errors.New("provider reported a business failure")

// exitBusinessFailure is the exit status for errBusinessFailure.
const exitBusinessFailure = 1

// app carries state shared by the subcommands.
type app struct {
	configPath string
	logLevel   string
	logFile    string

	logger *zap.Logger
	client *zmxy.Client

	// newClient is replaced in tests.
	newClient func(zmxy.Options) (*zmxy.Client, error)
}

// run executes the command line and returns the process exit status.
// Failures are written to stderr as a single JSON line.
func run(args []string, stdout, stderr io.Writer) int {
	a := &app{newClient: zmxy.New}
	root := a.rootCmd(stdout, stderr)
	root.SetArgs(args)

	err := root.Execute()
	if a.logger != nil {
		a.logger.Sync()
	}
	if err == nil {
		return 0
	}
	if errors.Is(err, errBusinessFailure) {
		return exitBusinessFailure
	}

	code := zmxy.CodeOf(err)
	out := map[string]string{"error": err.Error()}
	if code != "" {
		out["code"] = code.String()
		out["title"] = code.Title()
	}
	json.NewEncoder(stderr).Encode(out)

	if code == "" {
		return 1
	}
	return code.ExitCode()
}

func (a *app) rootCmd(stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "zmxy",
		Short:         "Call the Zhima credit open API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !needsClient(cmd) {
				return nil
			}
			return a.setup(stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	cmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "zmxy.yaml", "path to the YAML config file")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&a.logFile, "log-file", "", "write logs to a rotating file instead of stderr")

	cmd.AddCommand(
		a.authorizeURLCmd(),
		a.openIDCmd(),
		a.ivsCmd(),
		a.watchlistCmd(),
		a.scoreCmd(),
		a.certCmd(),
	)
	return cmd
}

// needsClient reports whether cmd talks to the provider. Help and shell
// completion run without a config.
func needsClient(cmd *cobra.Command) bool {
	if cmd.Name() == "help" {
		return false
	}
	for c := cmd; c != nil; c = c.Parent() {
		if c.Name() == "completion" {
			return false
		}
	}
	return true
}

// setup loads the config, builds the logger and the client.
func (a *app) setup(stderr io.Writer) error {
	cfg, err := LoadConfig(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if a.logFile != "" {
		cfg.Log.File = a.logFile
	}

	logger, err := newLogger(cfg.Log, stderr)
	if err != nil {
		return zmxy.ConfigError(fmt.Sprintf("invalid log level %q", cfg.Log.Level))
	}
	a.logger = logger

	opts, err := cfg.ClientOptions()
	if err != nil {
		return err
	}
	opts.Logger = logger
	a.client, err = a.newClient(opts)
	if err != nil {
		return err
	}
	logger.Debug("client ready",
		zap.String("app_id", cfg.AppID),
		zap.String("endpoint", cfg.Endpoint),
		zap.String("sign_type", cfg.SignType))
	return nil
}

// printJSON writes v to the command's stdout.
func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
