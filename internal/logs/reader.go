// Package logs reads the tail of the web server's access and error logs.
//
// Failures never surface as errors: a missing or unreadable file becomes a
// single descriptive line in the result, so a page or command can always
// render something.
package logs

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	panelerrors "github.com/ksyq12/vhostpanel/internal/errors"
	"github.com/ksyq12/vhostpanel/internal/logger"
)

// DefaultLines is the tail length used when none is configured.
const DefaultLines = 50

// Kind selects one of the two log files.
type Kind string

const (
	Access Kind = "access"
	Error  Kind = "error"
)

// Kinds lists the log kinds in display order.
var Kinds = []Kind{Access, Error}

// ParseKind validates a log kind name.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case Access, Error:
		return Kind(s), nil
	default:
		return "", panelerrors.Validation(fmt.Sprintf("unknown log kind %q (want access or error)", s))
	}
}

// FileName returns the log file name for the kind.
func (k Kind) FileName() string {
	return string(k) + ".log"
}

// Reader reads log tails from a single directory.
type Reader struct {
	dir          string
	production   bool
	defaultLines int
}

// NewReader creates a reader over dir. Outside production a missing log is
// created with a placeholder line so the sandbox always has something to show.
func NewReader(dir string, production bool, defaultLines int) *Reader {
	if defaultLines <= 0 {
		defaultLines = DefaultLines
	}
	return &Reader{dir: dir, production: production, defaultLines: defaultLines}
}

// Path returns the file read for kind.
func (r *Reader) Path(kind Kind) string {
	return filepath.Join(r.dir, kind.FileName())
}

// DefaultLines returns the tail length used when Read gets maxLines <= 0.
func (r *Reader) DefaultLines() int {
	return r.defaultLines
}

// Read returns at most the last maxLines lines of the log, oldest first.
func (r *Reader) Read(kind Kind, maxLines int) []string {
	if maxLines <= 0 {
		maxLines = r.defaultLines
	}
	path := r.Path(kind)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if r.production {
			return []string{"Log file not found: " + path}
		}
		if err := r.synthesize(kind, path); err != nil {
			return []string{"Error reading log: " + err.Error()}
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return []string{"Error reading log: " + err.Error()}
	}
	defer f.Close()

	lines, err := tail(f, maxLines)
	if err != nil {
		logger.WarnFields("log read failed", logger.Fields{"path": path, "error": err.Error()})
		return []string{"Error reading log: " + err.Error()}
	}
	return lines
}

func (r *Reader) synthesize(kind Kind, path string) error {
	if err := os.MkdirAll(r.dir, 0755); err != nil {
		return err
	}
	logger.DebugFields("creating placeholder log", logger.Fields{"path": path})
	return os.WriteFile(path, []byte(fmt.Sprintf("[Info] This is a mock %s log.\n", kind)), 0644)
}

// tail keeps only the last n lines in a ring while streaming src. The ring
// grows with the lines actually read, so a huge n costs nothing up front.
// Invalid UTF-8 is dropped rather than failing the read.
func tail(src io.Reader, n int) ([]string, error) {
	var ring []string
	count := 0

	br := bufio.NewReader(src)
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			line = strings.ToValidUTF8(strings.TrimRight(line, "\r\n"), "")
			if len(ring) < n {
				ring = append(ring, line)
			} else {
				ring[count%n] = line
			}
			count++
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
	}

	if count <= n {
		return ring, nil
	}
	start := count % n
	out := make([]string, 0, n)
	out = append(out, ring[start:]...)
	return append(out, ring[:start]...), nil
}
