package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/baaaaaaaka/jsonview/internal/clipboard"
	"github.com/baaaaaaaka/jsonview/internal/dataset"
	"github.com/baaaaaaaka/jsonview/internal/logging"
	"github.com/baaaaaaaka/jsonview/internal/tui"
)

var (
	isTerminal = func(f *os.File) bool { return term.IsTerminal(int(f.Fd())) }
	runTUI     = tui.Run
	systemClip = clipboard.System
)

var errNotTerminal = errors.New("stdout is not a terminal; use `jsonview export` for non-interactive output")

func runViewer(cmd *cobra.Command, root *rootOptions, path string) error {
	_, cfg, err := root.settings(cmd)
	if err != nil {
		return err
	}

	ds, err := dataset.Load(path)
	if err != nil {
		return err
	}
	if !isTerminal(os.Stdout) {
		return errNotTerminal
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx, closeLog, err := startLogging(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()
	log := logging.FromContext(ctx).WithName("cli")
	log.Info("loaded dataset", "path", path, "rows", ds.Len(), "columns", len(ds.Columns()))

	copier, clipErr := systemClip()
	if clipErr != nil {
		log.Info("clipboard disabled", "reason", clipErr.Error())
	}

	err = runTUI(ctx, tui.Options{
		Dataset:          ds,
		MaxColumnWidth:   cfg.MaxColumnWidth,
		SQLiteExportName: cfg.SQLiteExportName,
		CSVExportName:    cfg.CSVExportName,
		Clipboard:        copier,
		ClipboardErr:     clipErr,
	})
	if errors.Is(err, context.Canceled) {
		log.Info("viewer stopped by signal")
		return nil
	}
	if err != nil {
		log.Error(err, "viewer failed")
	}
	return err
}
