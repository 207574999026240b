package log

import (
	"bytes"
	"fmt"
	"io"
	"sync"
	"time"
)

// RawLogger receives the unprocessed output of external tools.
type RawLogger interface {
	Log(stream string, data []byte)
}

// rawLogger implements RawLogger with thread-safe log.
type rawLogger struct {
	w  io.Writer
	mu sync.Mutex
}

// NewRaw creates a new RawLogger. If writer is nil, returns a no-op logger.
func NewRaw(w io.Writer) RawLogger {
	return &rawLogger{w: w}
}

// Log writes one timestamped line per line of data, tagged with its stream
// ("stdout", "stderr").
func (r *rawLogger) Log(stream string, data []byte) {
	if len(data) == 0 {
		return
	}
	if r.w == nil {
		return
	}

	now := time.Now().Format("2006/01/02 15:04:05")
	var buf bytes.Buffer
	for _, line := range bytes.Split(bytes.TrimRight(data, "\r\n"), []byte("\n")) {
		fmt.Fprintf(&buf, "%s %s: %s\n", now, stream, bytes.TrimRight(line, "\r"))
	}

	r.mu.Lock()
	_, _ = r.w.Write(buf.Bytes())
	r.mu.Unlock()
}
