package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"navedit-cli/internal/api"
	"navedit-cli/internal/format"
	"navedit-cli/internal/model"
	"navedit-cli/internal/store"
	"navedit-cli/internal/tui"

	"github.com/spf13/cobra"
)

// version is overridable at build time via -ldflags.
var version = "dev"

type App struct {
	BaseURL    string
	Token      string
	Dir        string
	PrettyJSON bool
	Format     string

	cfg       store.Config
	cfgLoaded bool
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "navedit",
		Short:        "Storefront navigation menu editor (CLI + TUI)",
		Version:      version,
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive editor
  navedit

  # Scriptable commands
  navedit menu get --pretty
  navedit menu add --kind label --title "Shop by Category"
  navedit menu indent 4f7c...
  navedit menu save

  # Run a fixture API for offline work
  navedit serve --addr :7333
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.BaseURL, "api", envOr("NAVEDIT_API", ""), "Admin API base URL (overrides config)")
	cmd.PersistentFlags().StringVar(&app.Token, "token", envOr("NAVEDIT_TOKEN", ""), "API bearer token (overrides config)")
	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("NAVEDIT_DIR", ""), "Path to local state dir (advanced: used by fixtures/tests)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("NAVEDIT_FORMAT", "json"), "Output format (json)")

	cmd.AddCommand(newMenuCmd(app))
	cmd.AddCommand(newCategoriesCmd(app))
	cmd.AddCommand(newPagesCmd(app))
	cmd.AddCommand(newAttributesCmd(app))
	cmd.AddCommand(newPreviewCmd(app))
	cmd.AddCommand(newServeCmd(app))
	cmd.AddCommand(newConfigCmd(app))

	return cmd
}

func runTUI(app *App) error {
	cfg, err := app.config()
	if err != nil {
		return err
	}
	s, err := appStore(app)
	if err != nil {
		return err
	}
	return tui.Run(tui.Options{
		Client:          newAPIClient(app),
		Store:           s,
		MaxDepth:        cfg.EffectiveMaxDepth(),
		PreviewDebounce: time.Duration(cfg.PreviewDebounceMs) * time.Millisecond,
	})
}

func (app *App) config() (store.Config, error) {
	if app.cfgLoaded {
		return app.cfg, nil
	}
	cfg, err := store.LoadConfig()
	if err != nil {
		return store.Config{}, fmt.Errorf("load config: %w", err)
	}
	app.cfg = cfg
	app.cfgLoaded = true
	return cfg, nil
}

func (app *App) apiBaseURL() (string, error) {
	if app.BaseURL != "" {
		return app.BaseURL, nil
	}
	cfg, err := app.config()
	if err != nil {
		return "", err
	}
	if cfg.APIBaseURL != "" {
		return cfg.APIBaseURL, nil
	}
	return "", fmt.Errorf("no API base URL; pass --api, set NAVEDIT_API, or run `navedit config set --api <url>`")
}

func newAPIClient(app *App) *api.Client {
	base, err := app.apiBaseURL()
	if err != nil {
		// Commands that need the API validate the URL themselves; a client
		// with an empty base only ever produces request errors.
		base = ""
	}
	token := app.Token
	if token == "" {
		if cfg, err := app.config(); err == nil {
			token = cfg.APIToken
		}
	}
	if token != "" {
		return api.NewClient(base, api.WithToken(token))
	}
	return api.NewClient(base)
}

func appStore(app *App) (store.Store, error) {
	dir := app.Dir
	if dir == "" {
		d, err := store.DefaultDir()
		if err != nil {
			return store.Store{}, err
		}
		dir = d
	}
	return store.Store{Dir: dir}, nil
}

// loadTree returns the working tree: the local draft when one exists,
// otherwise the persisted menu from the API.
func loadTree(ctx context.Context, app *App) ([]model.NavigationItem, bool, error) {
	s, err := appStore(app)
	if err != nil {
		return nil, false, err
	}
	if tree, ok, err := s.LoadDraft(ctx); err != nil {
		return nil, false, err
	} else if ok {
		return tree, true, nil
	}
	if _, err := app.apiBaseURL(); err != nil {
		return nil, false, err
	}
	tree, err := newAPIClient(app).Navigation(ctx)
	if err != nil {
		return nil, false, err
	}
	return tree, false, nil
}

func saveDraft(ctx context.Context, app *App, tree []model.NavigationItem) error {
	s, err := appStore(app)
	if err != nil {
		return err
	}
	return s.SaveDraft(ctx, tree)
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
