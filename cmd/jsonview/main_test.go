package main

import (
	"os"
	"os/exec"
	"testing"
)

func TestMainVersionExitZero(t *testing.T) {
	if os.Getenv("JSONVIEW_HELPER") == "1" {
		os.Args = []string{"jsonview", "--version"}
		main()
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestMainVersionExitZero")
	cmd.Env = append(os.Environ(), "JSONVIEW_HELPER=1")
	if err := cmd.Run(); err != nil {
		t.Fatalf("expected exit 0, got error: %v", err)
	}
}

func TestMainInvalidArgsExitOne(t *testing.T) {
	cases := map[string][]string{
		"bad flag":   {"jsonview", "--not-a-flag"},
		"no file":    {"jsonview"},
		"extra file": {"jsonview", "a.json", "b.json"},
	}
	if name := os.Getenv("JSONVIEW_HELPER_INVALID"); name != "" {
		os.Args = cases[name]
		main()
		return
	}

	for name := range cases {
		t.Run(name, func(t *testing.T) {
			cmd := exec.Command(os.Args[0], "-test.run=TestMainInvalidArgsExitOne")
			cmd.Env = append(os.Environ(), "JSONVIEW_HELPER_INVALID="+name)
			err := cmd.Run()
			if err == nil {
				t.Fatalf("expected non-zero exit, got nil error")
			}
			exitErr, ok := err.(*exec.ExitError)
			if !ok {
				t.Fatalf("expected ExitError, got %T: %v", err, err)
			}
			if exitErr.ExitCode() != 1 {
				t.Fatalf("expected exit code 1, got %d", exitErr.ExitCode())
			}
		})
	}
}
