package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/baaaaaaaka/jsonview/internal/dataset"
	"github.com/baaaaaaaka/jsonview/internal/export"
	"github.com/baaaaaaaka/jsonview/internal/logging"
	"github.com/baaaaaaaka/jsonview/internal/view"
)

type exportOptions struct {
	format  string
	out     string
	filter  string
	sortCol string
	desc    bool
	columns string
}

func newExportCmd(root *rootOptions) *cobra.Command {
	opts := &exportOptions{}

	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Filter, sort and export a file without opening the viewer",
		Args:  exactFileArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, root, opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.format, "format", "csv", "Output format: csv or sqlite")
	cmd.Flags().StringVar(&opts.out, "out", "", "Output path (default: export name from config)")
	cmd.Flags().StringVar(&opts.filter, "filter", "", "Keep rows whose visible columns contain this text")
	cmd.Flags().StringVar(&opts.sortCol, "sort", "", "Sort by this column")
	cmd.Flags().BoolVar(&opts.desc, "desc", false, "Sort descending")
	cmd.Flags().StringVar(&opts.columns, "columns", "", "Comma separated visible columns, in order")
	return cmd
}

func runExport(cmd *cobra.Command, root *rootOptions, opts *exportOptions, path string) error {
	format, err := export.ParseFormat(opts.format)
	if err != nil {
		return err
	}
	_, cfg, err := root.settings(cmd)
	if err != nil {
		return err
	}
	ctx, closeLog, err := startLogging(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()
	log := logging.FromContext(ctx).WithName("export")

	out := opts.out
	if out == "" {
		out = cfg.CSVExportName
		if format == export.FormatSQLite {
			out = cfg.SQLiteExportName
		}
	}

	ds, err := dataset.Load(path)
	if err != nil {
		return err
	}
	state, err := headlessState(ds, opts)
	if err != nil {
		return err
	}

	rows := state.Displayed(ds.Rows())
	if err := export.Write(format, out, state.Columns, rows); err != nil {
		log.Error(err, "export failed", "format", string(format), "path", out)
		return err
	}
	log.Info("exported rows", "format", string(format), "path", out, "rows", len(rows))
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Exported %d rows to %s\n", len(rows), out)
	return nil
}

// headlessState builds the view state the viewer would reach after the
// same column, filter and sort choices.
func headlessState(ds *dataset.Dataset, opts *exportOptions) (*view.State, error) {
	state := view.New(ds.Columns())
	if opts.columns != "" {
		cols, err := parseColumns(opts.columns, ds.Columns())
		if err != nil {
			return nil, err
		}
		state.SetColumns(cols)
	}
	state.SetFilter(opts.filter)
	if opts.sortCol != "" {
		if !contains(state.Columns, opts.sortCol) {
			return nil, fmt.Errorf("sort column %q is not a visible column", opts.sortCol)
		}
		state.ApplySort(opts.sortCol, !opts.desc)
	}
	return state, nil
}

func parseColumns(list string, all []string) ([]string, error) {
	var out []string
	for _, part := range strings.Split(list, ",") {
		col := strings.TrimSpace(part)
		if col == "" {
			continue
		}
		if !contains(all, col) {
			return nil, fmt.Errorf("unknown column %q (have %s)", col, strings.Join(all, ", "))
		}
		if !contains(out, col) {
			out = append(out, col)
		}
	}
	return out, nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
