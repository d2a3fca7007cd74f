package cli

import (
	"net/url"
	"strings"

	"github.com/spf13/cobra"
)

func newCategoriesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List site categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := newAPIClient(app).Catalog(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"categories": cat.Categories})
		},
	}
}

func newPagesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "pages",
		Short: "List static pages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := newAPIClient(app).Catalog(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"pages": cat.Pages})
		},
	}
}

func newAttributesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "attributes [attribute-slug]",
		Short: "List filterable attributes, or one attribute's values",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := newAPIClient(app)
			if len(args) == 1 {
				vals, err := c.AttributeValues(cmd.Context(), args[0])
				if err != nil {
					return writeErr(cmd, err)
				}
				return writeOut(cmd, app, map[string]any{"attribute": args[0], "values": vals})
			}
			attrs, err := c.Attributes(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"attributes": attrs})
		},
	}
	return cmd
}

func newPreviewCmd(app *App) *cobra.Command {
	var filters []string
	cmd := &cobra.Command{
		Use:   "preview <category-slug>",
		Short: "Preview how many products a category+filter combination matches",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q := url.Values{}
			for _, f := range filters {
				attr, val, ok := strings.Cut(f, "=")
				if !ok {
					return writeErr(cmd, errGuard("preview", "bad --filter "+f+" (want attr=value)"))
				}
				q.Add(attr, val)
			}
			count, err := newAPIClient(app).PreviewCount(cmd.Context(), args[0], q)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"category": args[0], "count": count})
		},
	}
	cmd.Flags().StringSliceVar(&filters, "filter", nil, "Filter, attr=value (repeatable)")
	return cmd
}
