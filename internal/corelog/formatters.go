package corelog

import (
	"bufio"
	"fmt"
	"io"
	"sync"
	"time"
)

// Formatter renders one log line for pkg at level.
type Formatter interface {
	Format(pkg string, level LogLevel, msg string)
}

// PrettyFormatter writes "LEVEL HH:MM:SS pkg: msg" lines, buffered and
// mutex-guarded the way capnslog's StringFormatter wraps a bufio.Writer.
type PrettyFormatter struct {
	mu sync.Mutex
	w  *bufio.Writer
}

// NewPrettyFormatter returns a PrettyFormatter writing to w.
func NewPrettyFormatter(w io.Writer) *PrettyFormatter {
	return &PrettyFormatter{w: bufio.NewWriter(w)}
}

func (p *PrettyFormatter) Format(pkg string, level LogLevel, msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.w, "%s %s %s: %s\n", level.Char(), time.Now().Format("15:04:05"), pkg, msg)
	p.w.Flush()
}
