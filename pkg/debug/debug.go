// Package debug provides the development diagnostic channel.
//
// A Channel carries detail that is useful while developing or troubleshooting
// but would be noise in normal runs, for example paths that vanished before
// they could be examined. Components receive a *Channel explicitly; a nil
// channel or a disabled one prints nothing.
//
// Message format:
//
//	[DEBUG] message
//	[DEBUG] Label: value
package debug

import (
	"fmt"
	"io"
	"os"
)

// DefaultPrefix is prepended to every debug message.
const DefaultPrefix = "[DEBUG] "

// Channel writes prefixed debug lines when enabled.
type Channel struct {
	// Enabled gates all output.
	Enabled bool

	out    io.Writer
	prefix string
}

// New returns a channel writing to w. A nil writer means os.Stderr.
func New(w io.Writer, enabled bool) *Channel {
	if w == nil {
		w = os.Stderr
	}
	return &Channel{Enabled: enabled, out: w, prefix: DefaultPrefix}
}

// On reports whether messages sent to c are written anywhere.
func (c *Channel) On() bool {
	return c != nil && c.Enabled
}

// Printf prints a formatted debug message.
func (c *Channel) Printf(format string, args ...any) {
	if !c.On() {
		return
	}
	fmt.Fprintf(c.out, c.prefix+format+"\n", args...)
}

// DumpValue prints a value with a label.
func (c *Channel) DumpValue(label string, value any) {
	if !c.On() {
		return
	}
	fmt.Fprintf(c.out, "%s%s: %+v\n", c.prefix, label, value)
}
