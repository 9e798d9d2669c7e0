package main

import (
	"fmt"
	"os"
	"strings"

	"declarative_elements/application/binding"
	"declarative_elements/infrastructure/config"
	"declarative_elements/presentation/terminal"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	backendFlag  string
	logLevelFlag string
	urlFlag      string
	allFlag      bool
)

var rootCmd = &cobra.Command{
	Use:   "declarative-elements",
	Short: "Explore a page through declared element bindings.",
	RunE:  runREPL,
}

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Starts the interactive element explorer.",
	RunE:  runREPL,
}

var findCmd = &cobra.Command{
	Use:   "find <kind> <value>",
	Short: "Loads a page and prints the elements matching one selector.",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runFind,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&backendFlag, "backend", "", "browser backend: selenium, playwright or html (overrides BROWSER_BACKEND)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "log level (overrides LOG_LEVEL)")

	findCmd.Flags().StringVar(&urlFlag, "url", "", "page to load (defaults to START_URL)")
	findCmd.Flags().BoolVar(&allFlag, "all", false, "print all matches instead of the first")

	rootCmd.AddCommand(replCmd, findCmd)
}

// setup - loads configuration, applies flag overrides and builds the logger
func setup() (*config.Config, *logrus.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if backendFlag != "" {
		cfg.Backend = strings.ToLower(backendFlag)
	}
	if logLevelFlag != "" {
		if cfg.LogLevel, err = logrus.ParseLevel(logLevelFlag); err != nil {
			return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	logger := cfg.NewLogger()
	binding.SetLogger(logger)
	return cfg, logger, nil
}

func runREPL(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}

	session, waiter, err := terminal.OpenSession(cfg, logger)
	if err != nil {
		return err
	}
	term := terminal.NewTerminalInterface(session, waiter, logger, os.Stdin, os.Stdout)
	defer term.Close()

	if cfg.StartURL != "" {
		if err := term.Execute(cmd.Context(), "open "+cfg.StartURL); err != nil {
			logger.Warnf("Failed to open start page: %v", err)
		}
	}
	return term.Run(cmd.Context())
}

func runFind(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	pageURL := urlFlag
	if pageURL == "" {
		pageURL = cfg.StartURL
	}
	if pageURL == "" {
		return fmt.Errorf("no page to load: pass --url or set START_URL")
	}

	session, waiter, err := terminal.OpenSession(cfg, logger)
	if err != nil {
		return err
	}
	term := terminal.NewTerminalInterface(session, waiter, logger, strings.NewReader(""), os.Stdout)
	defer term.Close()

	if err := term.Execute(cmd.Context(), "open "+pageURL); err != nil {
		return err
	}
	verb := "wait"
	if allFlag {
		verb = "findall"
	}
	return term.Execute(cmd.Context(), strings.Join(append([]string{verb}, args...), " "))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
