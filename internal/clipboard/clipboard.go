// Package clipboard exposes the system clipboard as an optional capability.
package clipboard

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
)

// Copier puts text on a clipboard.
type Copier interface {
	Copy(text string) error
}

// ErrUnavailable is reported when no clipboard utility exists.
var ErrUnavailable = errors.New("clipboard not available")

var (
	unsupported = func() bool { return clipboard.Unsupported }
	writeAll    = clipboard.WriteAll
)

type system struct{}

func (system) Copy(text string) error {
	if err := writeAll(text); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	return nil
}

// System returns the platform clipboard, or nil and ErrUnavailable when the
// platform has no clipboard utility (for example no xclip, xsel or
// wl-copy on Linux).
func System() (Copier, error) {
	if unsupported() {
		return nil, ErrUnavailable
	}
	return system{}, nil
}

// Func adapts a function to Copier.
type Func func(text string) error

func (f Func) Copy(text string) error { return f(text) }
