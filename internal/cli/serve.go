package cli

import (
	"net/http"
	"time"

	"navedit-cli/internal/api"
	"navedit-cli/internal/model"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

func newServeCmd(app *App) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a fixture admin API for offline work and demos",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			href := "/categories/phones"
			mock := api.NewMockServer([]model.NavigationItem{
				{ID: "seed-shop", Title: "Shop", SubMenu: []model.NavigationItem{
					{ID: "seed-phones", Title: "Phones", Href: &href},
				}},
			})

			srv := &http.Server{
				Addr:              addr,
				Handler:           mock.Handler(),
				ReadHeaderTimeout: 5 * time.Second,
			}
			log.Info("mock admin API listening", "addr", addr)
			log.Info("point the editor at it", "example", "navedit --api http://localhost"+addr)
			return srv.ListenAndServe()
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":7333", "Listen address")
	return cmd
}
