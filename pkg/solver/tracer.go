package solver

import (
	"fmt"
	"io"
	"time"
)

// Event describes one finished solve.
type Event struct {
	Strategy  string
	Status    Status
	Variables int
	Clauses   int
	Elapsed   time.Duration
}

type Tracer interface {
	Trace(e Event)
}

type DefaultTracer struct{}

func (DefaultTracer) Trace(_ Event) {
}

type LoggingTracer struct {
	Writer io.Writer
}

func (t LoggingTracer) Trace(e Event) {
	fmt.Fprintf(t.Writer, "---\nStrategy: %s\nStatus: %s\n", e.Strategy, e.Status)
	fmt.Fprintf(t.Writer, "Variables: %d\nClauses: %d\nElapsed: %s\n", e.Variables, e.Clauses, e.Elapsed)
}
