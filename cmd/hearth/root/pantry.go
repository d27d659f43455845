package root

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"hearth/internal/pantry"
	"hearth/internal/ui"
)

func newPantryCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "pantry",
		Aliases: []string{"p"},
		Short:   "Kitchen pantry inventory",
	}

	cmd.AddCommand(
		newPantryAddCmd(opts),
		newPantryListCmd(opts),
		newPantryUseCmd(opts),
		newPantryEditCmd(opts),
		newPantryDeleteCmd(opts),
		newPantryStatsCmd(opts),
		newPantryExportCmd(opts),
		newPantryImportCmd(opts),
		newPantryClearCmd(opts),
	)
	return cmd
}

const shortIDLen = 8

func shortID(id string) string {
	if len(id) > shortIDLen {
		return id[:shortIDLen]
	}
	return id
}

// findItem resolves an id or a unique id prefix. No match is not an error.
func findItem(ctx context.Context, svc *pantry.Service, ref string) (*pantry.Item, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, errors.New("id is required")
	}
	items, err := svc.Items(ctx)
	if err != nil {
		return nil, err
	}
	var match *pantry.Item
	for i := range items {
		if items[i].ID == ref {
			return &items[i], nil
		}
		if strings.HasPrefix(items[i].ID, ref) {
			if match != nil {
				return nil, fmt.Errorf("id %q is ambiguous", ref)
			}
			match = &items[i]
		}
	}
	return match, nil
}

func printItem(out io.Writer, it pantry.Item, today pantry.Date) {
	qty := fmt.Sprintf("%d", it.Quantity)
	if it.Unit != "" {
		qty += " " + it.Unit
	}
	cat, loc := it.Category.Label(), it.Location.Label()
	line := fmt.Sprintf("%s %s %s  %s %s  %s %s",
		ui.Muted.Render(shortID(it.ID)), ui.Key.Render(it.Name), qty,
		cat.Emoji, cat.Name, loc.Emoji, loc.Name)
	if it.Expiration != nil {
		if badge := ui.ExpiryText(it.Status(today).String()); badge != "" {
			line += "  " + badge + " " + it.Expiration.String()
		} else {
			line += "  " + ui.IconCalendar + " " + it.Expiration.String()
		}
	}
	fmt.Fprintln(out, line)
	if it.Notes != nil {
		fmt.Fprintf(out, "    %s %s\n", ui.IconNote, *it.Notes)
	}
}

// itemFlags are the editable fields shared by add and edit.
type itemFlags struct {
	name      string
	quantity  int
	unit      string
	category  string
	location  string
	expires   string
	noExpires bool
	notes     string
}

func (f *itemFlags) register(cmd *cobra.Command, withName bool) {
	fs := cmd.Flags()
	if withName {
		fs.StringVar(&f.name, "name", "", "Item name")
	}
	fs.IntVarP(&f.quantity, "qty", "q", 1, "Quantity (> 0)")
	fs.StringVarP(&f.unit, "unit", "u", "", "Unit (e.g. lbs, cans)")
	fs.StringVarP(&f.category, "category", "c", string(pantry.CategoryOther), "Category ("+joinEnum(pantry.Categories)+")")
	fs.StringVarP(&f.location, "location", "l", string(pantry.LocationPantry), "Location ("+joinEnum(pantry.Locations)+")")
	fs.StringVarP(&f.expires, "expires", "e", "", "Expiration date (YYYY-MM-DD)")
	fs.StringVar(&f.notes, "notes", "", "Notes")
}

// apply copies the flags the user set onto d. On add every flag counts.
func (f *itemFlags) apply(cmd *cobra.Command, d *pantry.Draft, all bool) error {
	set := func(name string) bool { return all || cmd.Flags().Changed(name) }

	if set("name") && f.name != "" {
		d.Name = f.name
	}
	if set("qty") {
		d.Quantity = f.quantity
	}
	if set("unit") {
		d.Unit = f.unit
	}
	if set("category") {
		c, err := pantry.ParseCategory(f.category)
		if err != nil {
			return err
		}
		d.Category = c
	}
	if set("location") {
		l, err := pantry.ParseLocation(f.location)
		if err != nil {
			return err
		}
		d.Location = l
	}
	if set("expires") && f.expires != "" {
		exp, err := pantry.ParseDate(f.expires)
		if err != nil {
			return err
		}
		d.Expiration = &exp
	}
	if f.noExpires {
		d.Expiration = nil
	}
	if set("notes") {
		d.Notes = f.notes
	}
	return nil
}

func joinEnum[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, "|")
}

func newPantryAddCmd(opts *rootOptions) *cobra.Command {
	var f itemFlags

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add an item",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 || strings.TrimSpace(args[0]) == "" {
				return errors.New("name is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx, cmd, opts)
			if err != nil {
				return err
			}
			defer cleanup()

			d := pantry.Draft{Name: args[0]}
			if err := f.apply(cmd, &d, true); err != nil {
				return err
			}
			it, err := a.pantry.Add(ctx, d)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconPlus+" Added"))
			printItem(cmd.OutOrStdout(), *it, a.pantry.Today())
			return nil
		},
	}

	f.register(cmd, false)
	return cmd
}

func newPantryListCmd(opts *rootOptions) *cobra.Command {
	var category, location, sortBy string
	var expiring, expired bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List items with optional filters and sorting",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := pantry.Filter{ExpiringSoon: expiring, Expired: expired}
			if category != pantry.Any {
				c, err := pantry.ParseCategory(category)
				if err != nil {
					return err
				}
				f.Category = c
			}
			if location != pantry.Any {
				l, err := pantry.ParseLocation(location)
				if err != nil {
					return err
				}
				f.Location = l
			}
			key, err := pantry.ParseSortKey(sortBy)
			if err != nil {
				return err
			}

			ctx := context.Background()
			a, cleanup, err := openApp(ctx, cmd, opts)
			if err != nil {
				return err
			}
			defer cleanup()

			items, err := a.pantry.Query(ctx, f, key)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconPantry, "Inventory"))
			if len(items) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("No items found. Add some with `hearth pantry add`."))
				return nil
			}
			today := a.pantry.Today()
			for _, it := range items {
				printItem(out, it, today)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", pantry.Any, "Only this category (all|"+joinEnum(pantry.Categories)+")")
	cmd.Flags().StringVarP(&location, "location", "l", pantry.Any, "Only this location (all|"+joinEnum(pantry.Locations)+")")
	cmd.Flags().BoolVar(&expiring, "expiring", false, "Only items expiring within 7 days")
	cmd.Flags().BoolVar(&expired, "expired", false, "Only expired items")
	cmd.Flags().StringVarP(&sortBy, "sort", "s", string(pantry.SortNameAsc), "Sort ("+joinEnum(pantry.SortKeys)+")")
	return cmd
}

func newPantryUseCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "use <id>",
		Short: "Use one unit of an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx, cmd, opts)
			if err != nil {
				return err
			}
			defer cleanup()

			it, err := findItem(ctx, a.pantry, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if it == nil {
				fmt.Fprintln(out, ui.Muted.Render("Nothing to use."))
				return nil
			}
			res, err := a.pantry.UseOne(ctx, it.ID, confirmer(cmd, opts))
			if err != nil {
				return err
			}
			switch {
			case res.Removed:
				fmt.Fprintln(out, ui.Good.Render(fmt.Sprintf("%s Used the last %s; removed from inventory.", ui.IconDone, it.Name)))
			case res.Found && res.Remaining < it.Quantity:
				fmt.Fprintln(out, ui.Good.Render(fmt.Sprintf("%s Used one %s, %d left.", ui.IconDone, it.Name, res.Remaining)))
			default:
				fmt.Fprintln(out, ui.Muted.Render("Kept "+it.Name+"."))
			}
			return nil
		},
	}

	return cmd
}

func newPantryEditCmd(opts *rootOptions) *cobra.Command {
	var f itemFlags

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit an item (it is replaced with a new id)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx, cmd, opts)
			if err != nil {
				return err
			}
			defer cleanup()

			it, err := findItem(ctx, a.pantry, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if it == nil {
				fmt.Fprintln(out, ui.Muted.Render("Nothing to edit."))
				return nil
			}
			d := pantry.DraftOf(*it)
			if err := f.apply(cmd, &d, false); err != nil {
				return err
			}
			updated, err := a.pantry.Replace(ctx, it.ID, d)
			if err != nil {
				return err
			}
			if updated == nil {
				fmt.Fprintln(out, ui.Muted.Render("Nothing to edit."))
				return nil
			}
			fmt.Fprintln(out, ui.Good.Render("✏️ Updated"))
			printItem(out, *updated, a.pantry.Today())
			return nil
		},
	}

	f.register(cmd, true)
	cmd.Flags().BoolVar(&f.noExpires, "no-expiry", false, "Remove the expiration date")
	return cmd
}

func newPantryDeleteCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete an item",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx, cmd, opts)
			if err != nil {
				return err
			}
			defer cleanup()

			it, err := findItem(ctx, a.pantry, args[0])
			if err != nil {
				return err
			}
			deleted := false
			if it != nil {
				deleted, err = a.pantry.Delete(ctx, it.ID, confirmer(cmd, opts))
				if err != nil {
					return err
				}
			}
			if deleted {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconTrash+" Deleted "+it.Name+"."))
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Nothing deleted."))
			}
			return nil
		},
	}

	return cmd
}

func newPantryStatsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show item, expiring-soon and expired counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx, cmd, opts)
			if err != nil {
				return err
			}
			defer cleanup()

			c, err := a.pantry.Counts(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconChart, "Pantry"))
			fmt.Fprintln(out, ui.LabelValue("Total items", c.Total))
			fmt.Fprintln(out, ui.LabelValue("Expiring soon", ui.Warn.Render(fmt.Sprint(c.ExpiringSoon))))
			fmt.Fprintln(out, ui.LabelValue("Expired", ui.Bad.Render(fmt.Sprint(c.Expired))))
			return nil
		},
	}

	return cmd
}

func newPantryClearCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete ALL inventory data (asks twice)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx, cmd, opts)
			if err != nil {
				return err
			}
			defer cleanup()

			cleared, err := a.pantry.ClearAll(ctx, confirmer(cmd, opts))
			if err != nil {
				return err
			}
			if cleared {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconBroom+" Inventory cleared."))
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Nothing cleared."))
			}
			return nil
		},
	}

	return cmd
}
