package api

import (
	"fmt"
	"strings"

	"github.com/iceforge/skadimon/internal/errors"
)

// Window is the lookback duration of the time-series query.
type Window string

const (
	Window15m Window = "15m"
	Window1h  Window = "1h"
	Window6h  Window = "6h"
	Window24h Window = "24h"
)

// DefaultWindow is selected until the user picks another one.
const DefaultWindow = Window1h

// Windows lists every window in selector order.
var Windows = []Window{Window15m, Window1h, Window6h, Window24h}

// ParseWindow parses a window name such as "15m" or "24h".
func ParseWindow(s string) (Window, error) {
	w := Window(strings.ToLower(strings.TrimSpace(s)))
	if w.Valid() {
		return w, nil
	}
	return "", errors.New(errors.ErrConfig,
		fmt.Sprintf("'%s' isn't a known time window", s),
		"Pick one of: 15m, 1h, 6h, 24h")
}

// Valid reports whether w is one of the four supported windows.
func (w Window) Valid() bool {
	for _, known := range Windows {
		if w == known {
			return true
		}
	}
	return false
}

// String returns the query-parameter form of the window.
func (w Window) String() string {
	return string(w)
}

// Label returns the selector label, e.g. "Last 1h".
func (w Window) Label() string {
	return "Last " + string(w)
}

// Next cycles to the following window, wrapping around.
func (w Window) Next() Window {
	for i, known := range Windows {
		if w == known {
			return Windows[(i+1)%len(Windows)]
		}
	}
	return DefaultWindow
}
