package cli

import (
	"navedit-cli/internal/store"

	"github.com/spf13/cobra"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change editor settings",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the current config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.config()
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, cfg)
		},
	})

	var apiURL string
	var token string
	var maxDepth int
	set := &cobra.Command{
		Use:   "set",
		Short: "Update config fields",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.config()
			if err != nil {
				return writeErr(cmd, err)
			}
			if cmd.Flags().Changed("api") {
				cfg.APIBaseURL = apiURL
			}
			if cmd.Flags().Changed("token") {
				cfg.APIToken = token
			}
			if cmd.Flags().Changed("max-depth") {
				cfg.MaxDepth = maxDepth
			}
			if err := store.SaveConfig(cfg); err != nil {
				return writeErr(cmd, err)
			}
			app.cfg = cfg
			return writeOut(cmd, app, cfg)
		},
	}
	set.Flags().StringVar(&apiURL, "api", "", "Admin API base URL")
	set.Flags().StringVar(&token, "token", "", "API bearer token")
	set.Flags().IntVar(&maxDepth, "max-depth", 0, "Menu nesting limit (0 = default)")
	cmd.AddCommand(set)

	return cmd
}
