// Package output renders CLI results for people (colored status lines and
// tables) or for scripts (indented JSON) on stdout.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
)

var (
	successColor = color.New(color.FgGreen)
	errorColor   = color.New(color.FgRed)
	warnColor    = color.New(color.FgYellow)
	infoColor    = color.New(color.FgCyan)
	headerColor  = color.New(color.Bold)
)

var (
	mu  sync.Mutex
	out io.Writer = os.Stdout
)

// SetWriter redirects all output. A nil writer restores os.Stdout.
func SetWriter(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if w == nil {
		w = os.Stdout
	}
	out = w
}

func writer() io.Writer {
	mu.Lock()
	defer mu.Unlock()
	return out
}

// JSON outputs data as JSON
func JSON(data interface{}) error {
	encoder := json.NewEncoder(writer())
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// Table outputs rows under a header, columns padded to the widest cell
func Table(headers []string, rows [][]string) {
	if len(headers) == 0 {
		return
	}
	w := writer()

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	line := func(cells []string) string {
		padded := make([]string, len(headers))
		for i := range headers {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			padded[i] = fmt.Sprintf("%-*s", widths[i], cell)
		}
		return strings.TrimRight(strings.Join(padded, "  "), " ")
	}

	_, _ = headerColor.Fprintln(w, line(headers))
	sep := make([]string, len(headers))
	for i, width := range widths {
		sep[i] = strings.Repeat("-", width)
	}
	_, _ = fmt.Fprintln(w, line(sep))
	for _, row := range rows {
		_, _ = fmt.Fprintln(w, line(row))
	}
}

// KeyValue prints aligned "key: value" pairs in the given order
func KeyValue(pairs [][2]string) {
	w := writer()
	width := 0
	for _, p := range pairs {
		if len(p[0]) > width {
			width = len(p[0])
		}
	}
	for _, p := range pairs {
		_, _ = fmt.Fprintf(w, "%-*s  %s\n", width+1, p[0]+":", p[1])
	}
}

// Section prints a bold heading
func Section(format string, args ...interface{}) {
	_, _ = headerColor.Fprintf(writer(), "== "+format+" ==\n", args...)
}

// Success prints a success message
func Success(format string, args ...interface{}) {
	_, _ = successColor.Fprintf(writer(), "✓ "+format+"\n", args...)
}

// Error prints an error message
func Error(format string, args ...interface{}) {
	_, _ = errorColor.Fprintf(writer(), "✗ "+format+"\n", args...)
}

// Warn prints a warning message
func Warn(format string, args ...interface{}) {
	_, _ = warnColor.Fprintf(writer(), "! "+format+"\n", args...)
}

// Info prints an info message
func Info(format string, args ...interface{}) {
	_, _ = infoColor.Fprintf(writer(), "→ "+format+"\n", args...)
}

// Print prints a plain message
func Print(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(writer(), format+"\n", args...)
}

// Prompt prints a message without a trailing newline
func Prompt(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(writer(), format, args...)
}
