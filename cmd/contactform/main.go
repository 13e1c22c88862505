package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-contactform/internal/config"
	"github.com/goliatone/go-contactform/internal/logging"
	"github.com/goliatone/go-contactform/internal/tui"
	"github.com/goliatone/go-contactform/pkg/contact"
	"github.com/goliatone/go-contactform/pkg/jsonplaceholder"
)

type app struct {
	configPath string
	baseURL    string
	verbose    bool

	cfg    config.Config
	logger *zap.Logger
	out    io.Writer
	prompt tui.PromptDriver
}

func main() {
	if err := newRootCmd(&app{out: os.Stdout}).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	if a.out == nil {
		a.out = os.Stdout
	}

	root := &cobra.Command{
		Use:   "contactform",
		Short: "Contact page backed by the JSONPlaceholder API",
		Long: `contactform serves a contact page that lists users and recent posts from
JSONPlaceholder and turns contact submissions into new posts.

It can also print the remote data or submit a contact message from the terminal.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			if a.baseURL != "" {
				cfg.API.BaseURL = a.baseURL
				cfg = cfg.Normalize()
			}
			a.cfg = cfg

			logger, err := logging.New(cfg.Log.Level, a.verbose)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.SetOut(a.out)

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "path to a YAML config file")
	root.PersistentFlags().StringVar(&a.baseURL, "base-url", "", "JSONPlaceholder base URL (overrides config)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newServeCmd(a), newUsersCmd(a), newSubmitCmd(a))
	return root
}

func (a *app) client() *jsonplaceholder.Client {
	opts := append(a.cfg.ClientOptions(), jsonplaceholder.WithLogger(a.logger))
	return jsonplaceholder.New(opts...)
}

func (a *app) controller() *contact.Controller {
	opts := append(a.cfg.ControllerOptions(), contact.WithLogger(a.logger))
	return contact.New(a.client(), opts...)
}
