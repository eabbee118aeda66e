package cli

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/baaaaaaaka/jsonview/internal/clipboard"
	"github.com/baaaaaaaka/jsonview/internal/config"
	"github.com/baaaaaaaka/jsonview/internal/dataset"
	"github.com/baaaaaaaka/jsonview/internal/tui"
)

const scenario = `[{"a":1,"b":"x"},{"a":2,"b":"y"},{"a":3,"b":"x"}]`

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func stubViewer(t *testing.T, terminal bool) *tui.Options {
	t.Helper()
	var got tui.Options
	prevTerm, prevRun, prevClip := isTerminal, runTUI, systemClip
	isTerminal = func(*os.File) bool { return terminal }
	runTUI = func(_ context.Context, opts tui.Options) error {
		got = opts
		return nil
	}
	systemClip = func() (clipboard.Copier, error) { return nil, clipboard.ErrUnavailable }
	t.Cleanup(func() { isTerminal, runTUI, systemClip = prevTerm, prevRun, prevClip })
	return &got
}

func TestRootRequiresExactlyOneFile(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	for _, args := range [][]string{
		{"--config", cfgPath},
		{"--config", cfgPath, "a.json", "b.json"},
	} {
		stdout, stderr, err := runCLI(t, args...)
		if err == nil {
			t.Fatalf("expected error for args %v", args)
		}
		if !strings.Contains(stdout+stderr, "Usage:") {
			t.Fatalf("expected usage for args %v, got %q", args, stdout+stderr)
		}
	}
}

func TestRootRefusesNonTerminal(t *testing.T) {
	stubViewer(t, false)
	dir := t.TempDir()
	input := writeFile(t, dir, "rows.json", scenario)

	_, _, err := runCLI(t, "--config", filepath.Join(dir, "config.yaml"), input)
	if !errors.Is(err, errNotTerminal) {
		t.Fatalf("expected errNotTerminal, got %v", err)
	}
}

func TestRootPassesSettingsToViewer(t *testing.T) {
	got := stubViewer(t, true)
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "config.yaml", "version: 1\nmax_column_width: 12\ncsv_export_name: out.csv\n")
	input := writeFile(t, dir, "rows.jsonl", "{\"a\":1}\n\n{\"a\":2}\n")

	if _, _, err := runCLI(t, "--config", cfgPath, input); err != nil {
		t.Fatalf("run: %v", err)
	}
	if got.Dataset == nil || got.Dataset.Len() != 2 {
		t.Fatalf("expected 2 rows passed to viewer, got %+v", got.Dataset)
	}
	if got.MaxColumnWidth != 12 || got.CSVExportName != "out.csv" || got.SQLiteExportName != config.DefaultSQLiteExportName {
		t.Fatalf("unexpected options %+v", got)
	}
	if got.Clipboard != nil || !errors.Is(got.ClipboardErr, clipboard.ErrUnavailable) {
		t.Fatalf("expected unavailable clipboard, got %v / %v", got.Clipboard, got.ClipboardErr)
	}

	if _, _, err := runCLI(t, "--config", cfgPath, "--max-col-width", "25", input); err != nil {
		t.Fatalf("run: %v", err)
	}
	if got.MaxColumnWidth != 25 {
		t.Fatalf("expected flag to override config, got %d", got.MaxColumnWidth)
	}
}

func TestRootRejectsBadSettings(t *testing.T) {
	stubViewer(t, true)
	dir := t.TempDir()
	input := writeFile(t, dir, "rows.json", scenario)
	cfgPath := filepath.Join(dir, "config.yaml")

	if _, _, err := runCLI(t, "--config", cfgPath, "--max-col-width", "2", input); err == nil {
		t.Fatalf("expected error for width 2")
	}
	if _, _, err := runCLI(t, "--config", cfgPath, "--log-level", "loud", input); err == nil {
		t.Fatalf("expected error for unknown log level")
	}
}

func TestRootWritesLogFile(t *testing.T) {
	stubViewer(t, true)
	dir := t.TempDir()
	input := writeFile(t, dir, "rows.json", scenario)
	logPath := filepath.Join(dir, "jsonview.log")

	if _, _, err := runCLI(t, "--config", filepath.Join(dir, "config.yaml"), "--log-file", logPath, input); err != nil {
		t.Fatalf("run: %v", err)
	}
	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), `"message":"loaded dataset"`) {
		t.Fatalf("expected dataset log line, got %q", data)
	}
}

func TestRootParseErrorIsFatal(t *testing.T) {
	stubViewer(t, true)
	dir := t.TempDir()
	input := writeFile(t, dir, "bad.jsonl", "{\"a\":1}\nnot json\n")

	_, _, err := runCLI(t, "--config", filepath.Join(dir, "config.yaml"), input)
	var perr *dataset.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if perr.Line != 2 {
		t.Fatalf("expected line 2, got %d", perr.Line)
	}
}

func TestExportCSVFilterAndSort(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "rows.json", scenario)
	out := filepath.Join(dir, "out.csv")

	stdout, _, err := runCLI(t, "--config", filepath.Join(dir, "config.yaml"),
		"export", input, "--out", out, "--filter", "x", "--sort", "a", "--desc")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.Contains(stdout, "Exported 2 rows to "+out) {
		t.Fatalf("unexpected output %q", stdout)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	want := [][]string{{"a", "b"}, {"3", "x"}, {"1", "x"}}
	if len(records) != len(want) {
		t.Fatalf("expected %v, got %v", want, records)
	}
	for i := range want {
		if strings.Join(records[i], ",") != strings.Join(want[i], ",") {
			t.Fatalf("row %d: expected %v, got %v", i, want[i], records[i])
		}
	}
}

func TestExportSQLiteWithColumns(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "rows.json", scenario)
	out := filepath.Join(dir, "out.db")

	stdout, _, err := runCLI(t, "--config", filepath.Join(dir, "config.yaml"),
		"export", input, "--format", "sqlite", "--out", out, "--columns", "b")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.Contains(stdout, "Exported 3 rows") {
		t.Fatalf("unexpected output %q", stdout)
	}
	if _, err := os.Stat(out); err != nil {
		t.Fatalf("expected sqlite file: %v", err)
	}
}

func TestExportRejectsBadArguments(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "rows.json", scenario)
	cfgPath := filepath.Join(dir, "config.yaml")
	out := filepath.Join(dir, "out.csv")

	cases := map[string][]string{
		"format":         {"export", input, "--format", "xml", "--out", out},
		"unknown column": {"export", input, "--columns", "a,zzz", "--out", out},
		"hidden sort":    {"export", input, "--columns", "b", "--sort", "a", "--out", out},
		"missing file":   {"export", filepath.Join(dir, "missing.json"), "--out", out},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			if _, _, err := runCLI(t, append([]string{"--config", cfgPath}, args...)...); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestHeadlessStateMatchesViewer(t *testing.T) {
	ds, err := dataset.Parse(strings.NewReader(scenario))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	state, err := headlessState(ds, &exportOptions{columns: " b , a,b", filter: "X", sortCol: "a"})
	if err != nil {
		t.Fatalf("headlessState: %v", err)
	}
	if strings.Join(state.Columns, ",") != "b,a" {
		t.Fatalf("expected b,a, got %v", state.Columns)
	}
	rows := state.Displayed(ds.Rows())
	if len(rows) != 2 || rows[0].Value("a") != "1" || rows[1].Value("a") != "3" {
		t.Fatalf("unexpected rows %v", rows)
	}
}

func TestConfigInitAndShow(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "nested", "config.yaml")

	stdout, _, err := runCLI(t, "--config", cfgPath, "config", "init")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(stdout, cfgPath) {
		t.Fatalf("expected path in output, got %q", stdout)
	}
	if _, _, err := runCLI(t, "--config", cfgPath, "config", "init"); err == nil {
		t.Fatalf("expected second init to fail without --force")
	}
	if _, _, err := runCLI(t, "--config", cfgPath, "config", "init", "--force"); err != nil {
		t.Fatalf("config init --force: %v", err)
	}

	stdout, _, err = runCLI(t, "--config", cfgPath, "--log-level", "debug", "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	for _, want := range []string{"max_column_width: 40", "log_level: debug", "csv_export_name: export.csv"} {
		if !strings.Contains(stdout, want) {
			t.Fatalf("expected %q in output, got %q", want, stdout)
		}
	}
}

func TestBuildVersion(t *testing.T) {
	prevVersion, prevCommit, prevDate := version, commit, date
	t.Cleanup(func() { version, commit, date = prevVersion, prevCommit, prevDate })

	version, commit, date = "v1.2.3", "abc123", "2026-01-02"
	if got := buildVersion(); got != "v1.2.3 (abc123) 2026-01-02" {
		t.Fatalf("unexpected version %q", got)
	}
	version, commit, date = "v1.2.3", "", ""
	if got := buildVersion(); got != "v1.2.3" {
		t.Fatalf("unexpected version %q", got)
	}
}
