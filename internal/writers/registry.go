// internal/writers/registry.go
package writers

import (
	"fmt"
	"io"
	"sort"

	"razor/internal/score"
)

// resultArgs is the payload handed to a registered result writer.
type resultArgs struct {
	Header bool
	In     <-chan score.Result
}

// ResultWriters maps an output format to its handler.
// Formats register themselves in init() blocks (see result.go).
var ResultWriters = map[string]func(w io.Writer, payload resultArgs) error{}

// RegisterResult adds or replaces the writer for format (last wins).
func RegisterResult(format string, fn func(io.Writer, resultArgs) error) {
	ResultWriters[format] = fn
}

// Formats lists the registered format names, sorted.
func Formats() []string {
	out := make([]string, 0, len(ResultWriters))
	for f := range ResultWriters {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Known reports whether a writer is registered for format.
func Known(format string) bool {
	_, ok := ResultWriters[format]
	return ok
}

// WriteResults dispatches to the writer registered for format.
func WriteResults(format string, w io.Writer, payload resultArgs) error {
	fn, ok := ResultWriters[format]
	if !ok {
		for range payload.In {
		}
		return fmt.Errorf("unknown result format %q (no writer registered)", format)
	}
	return fn(w, payload)
}
