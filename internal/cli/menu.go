package cli

import (
	"errors"
	"fmt"
	"strings"

	"navedit-cli/internal/dialog"
	"navedit-cli/internal/model"
	"navedit-cli/internal/nav"

	"github.com/spf13/cobra"
)

func newMenuCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "menu",
		Short: "Inspect and edit the navigation menu",
	}
	cmd.AddCommand(newMenuGetCmd(app))
	cmd.AddCommand(newMenuSaveCmd(app))
	cmd.AddCommand(newMenuDiscardCmd(app))
	cmd.AddCommand(newMenuAddCmd(app))
	cmd.AddCommand(newMenuSetCmd(app))
	cmd.AddCommand(newMenuRemoveCmd(app))
	cmd.AddCommand(newMenuIndentCmd(app))
	cmd.AddCommand(newMenuOutdentCmd(app))
	cmd.AddCommand(newMenuMoveCmd(app))
	return cmd
}

type menuPayload struct {
	Source string                 `json:"source"` // draft|remote
	Items  []model.NavigationItem `json:"items"`
}

func menuOut(tree []model.NavigationItem, fromDraft bool) menuPayload {
	source := "remote"
	if fromDraft {
		source = "draft"
	}
	if tree == nil {
		tree = []model.NavigationItem{}
	}
	return menuPayload{Source: source, Items: tree}
}

func newMenuGetCmd(app *App) *cobra.Command {
	var remote bool
	cmd := &cobra.Command{
		Use:   "get",
		Short: "Print the working menu (local draft when present)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if remote {
				tree, err := newAPIClient(app).Navigation(ctx)
				if err != nil {
					return writeErr(cmd, err)
				}
				return writeOut(cmd, app, menuOut(tree, false))
			}
			tree, fromDraft, err := loadTree(ctx, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, menuOut(tree, fromDraft))
		},
	}
	cmd.Flags().BoolVar(&remote, "remote", false, "Bypass the local draft and fetch the persisted menu")
	return cmd
}

func newMenuSaveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "save",
		Short: "Persist the working menu upstream (whole tree) and clear the draft",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			tree, fromDraft, err := loadTree(ctx, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if !fromDraft {
				return writeErr(cmd, errors.New("nothing to save: no local draft"))
			}
			if err := newAPIClient(app).SaveNavigation(ctx, tree); err != nil {
				// Draft is kept so the user can retry.
				return writeErr(cmd, fmt.Errorf("save failed (draft kept): %w", err))
			}
			s, err := appStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.ClearDraft(ctx); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"saved": true, "nodes": nav.CountNodes(tree)})
		},
	}
}

func newMenuDiscardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "discard",
		Short: "Drop the local draft and go back to the persisted menu",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := appStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.ClearDraft(cmd.Context()); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"discarded": true})
		},
	}
}

func newMenuAddCmd(app *App) *cobra.Command {
	var kind string
	var target string
	var title string
	var href string
	var categories []string
	var pages []string
	var filters []string
	var label string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add menu items from a category, page, dynamic link, custom link, or label",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			tree, _, err := loadTree(ctx, app)
			if err != nil {
				return writeErr(cmd, err)
			}

			state, err := buildDialogState(cmd, app, dialog.Kind(kind), addInputs{
				title:      title,
				href:       href,
				categories: categories,
				pages:      pages,
				filters:    filters,
				label:      label,
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			items, err := state.Resolve()
			if err != nil {
				return writeErr(cmd, err)
			}

			targetPath := nav.Path{}
			if target != "" {
				path, index, ok := nav.FindByID(tree, target)
				if !ok {
					return writeErr(cmd, errNotFound("node", target))
				}
				cfg, err := app.config()
				if err != nil {
					return writeErr(cmd, err)
				}
				if !nav.CanAddChild(path, cfg.EffectiveMaxDepth()) {
					return writeErr(cmd, errGuard("add child", "maximum menu depth reached"))
				}
				targetPath = path.Child(index)
			}

			out, err := nav.AddItems(tree, targetPath, items)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := saveDraft(ctx, app, out); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, menuOut(out, true))
		},
	}

	cmd.Flags().StringVar(&kind, "kind", string(dialog.KindCustom), "Item source (category|page|dynamic|custom|label)")
	cmd.Flags().StringVar(&target, "target", "", "Parent node id (default: menu root)")
	cmd.Flags().StringVar(&title, "title", "", "Title for custom/label kinds")
	cmd.Flags().StringVar(&href, "href", "", "URL for the custom kind (blank makes a label node)")
	cmd.Flags().StringSliceVar(&categories, "category", nil, "Category slug (repeatable; dynamic kind uses the first)")
	cmd.Flags().StringSliceVar(&pages, "page", nil, "Page slug (repeatable)")
	cmd.Flags().StringSliceVar(&filters, "filter", nil, "Dynamic-link filter, attr=value (repeatable)")
	cmd.Flags().StringVar(&label, "label", "", "Label for the dynamic kind")
	return cmd
}

type addInputs struct {
	title      string
	href       string
	categories []string
	pages      []string
	filters    []string
	label      string
}

func buildDialogState(cmd *cobra.Command, app *App, kind dialog.Kind, in addInputs) (dialog.State, error) {
	state := dialog.State{Kind: kind}

	switch kind {
	case dialog.KindCustom:
		state.CustomTitle = in.title
		state.CustomURL = in.href

	case dialog.KindLabel:
		state.LabelTitle = in.title

	case dialog.KindCategory, dialog.KindDynamic:
		cat, err := newAPIClient(app).Catalog(cmd.Context())
		if err != nil {
			return dialog.State{}, err
		}
		selected, err := categoriesBySlug(cat.Categories, in.categories)
		if err != nil {
			return dialog.State{}, err
		}
		if kind == dialog.KindCategory {
			state.Categories = selected
			break
		}
		if len(selected) != 1 {
			return dialog.State{}, errors.New("dynamic kind needs exactly one --category")
		}
		state.DynamicCategory = &selected[0]
		state.DynamicLabel = in.label
		for _, f := range in.filters {
			attr, val, ok := strings.Cut(f, "=")
			if !ok {
				return dialog.State{}, fmt.Errorf("bad --filter %q (want attr=value)", f)
			}
			state.Filters = append(state.Filters, dialog.Filter{Attribute: attr, Value: val})
		}

	case dialog.KindPage:
		cat, err := newAPIClient(app).Catalog(cmd.Context())
		if err != nil {
			return dialog.State{}, err
		}
		for _, slug := range in.pages {
			found := false
			for _, p := range cat.Pages {
				if p.Slug == slug {
					state.Pages = append(state.Pages, p)
					found = true
					break
				}
			}
			if !found {
				return dialog.State{}, errNotFound("page", slug)
			}
		}

	default:
		return dialog.State{}, fmt.Errorf("unknown kind: %s", kind)
	}

	if !state.CanConfirm() {
		return dialog.State{}, errGuard("add", "selection incomplete for kind "+string(kind))
	}
	return state, nil
}

func categoriesBySlug(all []model.Category, slugs []string) ([]model.Category, error) {
	out := make([]model.Category, 0, len(slugs))
	for _, slug := range slugs {
		found := false
		for _, c := range all {
			if c.Slug == slug {
				out = append(out, c)
				found = true
				break
			}
		}
		if !found {
			return nil, errNotFound("category", slug)
		}
	}
	return out, nil
}

func newMenuSetCmd(app *App) *cobra.Command {
	var title string
	var href string
	var clearHref bool
	cmd := &cobra.Command{
		Use:   "set <node-id>",
		Short: "Update a node's title or link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			tree, _, err := loadTree(ctx, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			path, index, ok := nav.FindByID(tree, args[0])
			if !ok {
				return writeErr(cmd, errNotFound("node", args[0]))
			}

			patch := nav.Patch{ClearHref: clearHref}
			if cmd.Flags().Changed("title") {
				patch.Title = &title
			}
			if cmd.Flags().Changed("href") && !clearHref {
				patch.Href = &href
			}

			out, err := nav.UpdateItem(tree, path, index, patch)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := saveDraft(ctx, app, out); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, menuOut(out, true))
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&href, "href", "", "New link target")
	cmd.Flags().BoolVar(&clearHref, "clear-href", false, "Remove the link target (node becomes a label)")
	return cmd
}

func newMenuRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <node-id>",
		Short: "Delete a node and its subtree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			tree, _, err := loadTree(ctx, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			path, index, ok := nav.FindByID(tree, args[0])
			if !ok {
				return writeErr(cmd, errNotFound("node", args[0]))
			}
			out, err := nav.RemoveItem(tree, path, index)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := saveDraft(ctx, app, out); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, menuOut(out, true))
		},
	}
}

func newMenuIndentCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "indent <node-id>",
		Short: "Make a node a child of its previous sibling",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			tree, _, err := loadTree(ctx, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			path, index, ok := nav.FindByID(tree, args[0])
			if !ok {
				return writeErr(cmd, errNotFound("node", args[0]))
			}
			cfg, err := app.config()
			if err != nil {
				return writeErr(cmd, err)
			}
			if !nav.CanIndent(tree, path, index, cfg.EffectiveMaxDepth()) {
				if index == 0 {
					return writeErr(cmd, errGuard("indent", "node has no previous sibling"))
				}
				return writeErr(cmd, errGuard("indent", "maximum menu depth reached"))
			}
			out, err := nav.Indent(tree, path, index)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := saveDraft(ctx, app, out); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, menuOut(out, true))
		},
	}
}

func newMenuOutdentCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "outdent <node-id>",
		Short: "Promote a node to be a sibling of its parent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			tree, _, err := loadTree(ctx, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			path, index, ok := nav.FindByID(tree, args[0])
			if !ok {
				return writeErr(cmd, errNotFound("node", args[0]))
			}
			if !nav.CanOutdent(path) {
				return writeErr(cmd, errGuard("outdent", "node is already at the top level"))
			}
			out, err := nav.Outdent(tree, path, index)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := saveDraft(ctx, app, out); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, menuOut(out, true))
		},
	}
}

func newMenuMoveCmd(app *App) *cobra.Command {
	var to int
	cmd := &cobra.Command{
		Use:   "move <node-id>",
		Short: "Reorder a node among its siblings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			tree, _, err := loadTree(ctx, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			path, index, ok := nav.FindByID(tree, args[0])
			if !ok {
				return writeErr(cmd, errNotFound("node", args[0]))
			}
			out, err := nav.ReorderSiblings(tree, path, index, to)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := saveDraft(ctx, app, out); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, menuOut(out, true))
		},
	}
	cmd.Flags().IntVar(&to, "to", 0, "Destination index among the node's siblings")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}
