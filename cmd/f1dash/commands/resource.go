package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"f1dash/internal/api"
	"f1dash/internal/resource"

	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

// resourceCmd builds the command group for one screen. Read-only screens
// only get list.
func resourceCmd(app *appContext, name string) *cobra.Command {
	screen, ok := resource.Lookup(name)
	if !ok {
		panic("commands: unknown screen " + name)
	}

	cmd := &cobra.Command{
		Use:   screen.Name,
		Short: "Manage " + strings.ToLower(screen.Title),
	}
	cmd.AddCommand(listCmd(app, screen))
	if !screen.ReadOnly() {
		cmd.AddCommand(
			showCmd(app, screen),
			createCmd(app, screen),
			updateCmd(app, screen),
			deleteCmd(app, screen),
		)
	}
	return cmd
}

func listCmd(app *appContext, screen resource.Screen) *cobra.Command {
	var (
		params api.ListParams
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List " + strings.ToLower(screen.Title),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.client.GetList(cmd.Context(), screen.Resource, params)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, res.Records)
			}

			rows := make([][]string, len(res.Records))
			for i, r := range res.Records {
				rows[i] = screen.Row(r)
			}
			p := params.Normalize()
			start, _ := p.Range()
			fmt.Fprintln(out, renderTable(screen.Headers(), rows))
			fmt.Fprintf(out, "%s %d-%d of %d\n", screen.Title, min(start+1, res.Total), start+len(rows), res.Total)
			return nil
		},
	}
	f := cmd.Flags()
	f.IntVar(&params.Page, "page", 1, "page number, starting at 1")
	f.IntVar(&params.PerPage, "per-page", 10, "records per page")
	f.StringVar(&params.Sort, "sort", "id", "field to sort by")
	f.StringVar(&params.Order, "order", "ASC", "ASC or DESC")
	f.BoolVar(&asJSON, "json", false, "print raw JSON records")
	return cmd
}

func showCmd(app *appContext, screen resource.Screen) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "show ID",
		Short: "Show one record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := app.client.GetOne(cmd.Context(), screen.Resource, args[0])
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), rec)
			}
			writeRecord(cmd.OutOrStdout(), rec)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the raw JSON record")
	return cmd
}

func createCmd(app *appContext, screen resource.Screen) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a record from --field flags",
		Args:  cobra.NoArgs,
	}
	record := fieldFlags(cmd, screen)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		rec := record()
		if len(rec) == 0 {
			return fmt.Errorf("%s: no fields given", screen.Name)
		}

		created, err := app.client.Create(cmd.Context(), screen.Resource, rec)
		if err != nil {
			return err
		}
		app.logger.Info("record created", "resource", screen.Resource, "id", created.ID())
		fmt.Fprintf(cmd.OutOrStdout(), "Created %s #%s\n", screen.Name, created.ID())
		return nil
	}
	return cmd
}

func updateCmd(app *appContext, screen resource.Screen) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a record from --field flags",
		Args:  cobra.ExactArgs(1),
	}
	record := fieldFlags(cmd, screen)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		rec := record()
		if len(rec) == 0 {
			return fmt.Errorf("%s: no fields given", screen.Name)
		}

		updated, err := app.client.Update(cmd.Context(), screen.Resource, args[0], rec)
		if err != nil {
			return err
		}
		id := updated.ID()
		if id == "" {
			id = args[0]
		}
		app.logger.Info("record updated", "resource", screen.Resource, "id", id)
		fmt.Fprintf(cmd.OutOrStdout(), "Updated %s #%s\n", screen.Name, id)
		return nil
	}
	return cmd
}

// fieldFlags registers one string flag per input field and returns a func
// building the payload from the flags that were set.
func fieldFlags(cmd *cobra.Command, screen resource.Screen) func() api.Record {
	values := make(map[string]*string, len(screen.Inputs))
	for _, f := range screen.Inputs {
		values[f.Source] = cmd.Flags().String(flagName(f.Source), "", f.Label)
	}
	return func() api.Record {
		in := make(map[string]string, len(values))
		for source, v := range values {
			in[source] = *v
		}
		return screen.RecordFromInputs(in)
	}
}

func deleteCmd(app *appContext, screen resource.Screen) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete one record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.client.Delete(cmd.Context(), screen.Resource, args[0]); err != nil {
				return err
			}
			app.logger.Info("record deleted", "resource", screen.Resource, "id", args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s #%s\n", screen.Name, args[0])
			return nil
		},
	}
}

// flagName turns an API field like driver_ref into driver-ref.
func flagName(source string) string {
	return strings.ReplaceAll(source, "_", "-")
}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func renderTable(headers []string, rows [][]string) string {
	return ltable.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == ltable.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		String()
}

// writeRecord prints fields one per line, sorted by name.
func writeRecord(w io.Writer, rec api.Record) {
	keys := make([]string, 0, len(rec))
	width := 0
	for k := range rec {
		keys = append(keys, k)
		width = max(width, len(k))
	}
	slices.Sort(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "%-*s  %s\n", width, k, rec.Get(k))
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
