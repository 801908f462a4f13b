package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// ConsoleSink writes one plain line per record.
type ConsoleSink struct {
	out io.Writer
}

// NewConsoleSink returns a console sink writing to out, or to stdout when
// out is nil.
func NewConsoleSink(out io.Writer) *ConsoleSink {
	if out == nil {
		out = os.Stdout
	}
	return &ConsoleSink{out: out}
}

// Write emits the record as "LEVEL: message, callPath".
func (s *ConsoleSink) Write(rec *Record) error {
	_, err := fmt.Fprintf(s.out, "%s: %s, %s\n",
		strings.ToUpper(rec.Level.String()), rec.Message, rec.CallPath)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSinkWrite, err)
	}
	return nil
}
