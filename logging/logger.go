// Package logging implements a structured logging facade that annotates
// every record with the call path that produced it and fans records out to
// console, Elasticsearch and OpenObserve sinks.
package logging

import (
	"errors"
	"fmt"
	"time"
)

// Logger emits leveled records to the sinks selected by its mode. Mode and
// sinks are fixed at construction; there is no runtime reconfiguration.
//
// A Logger is safe for concurrent use to the extent its sinks are; the
// built-in sinks all are.
type Logger struct {
	mode     Mode
	sinks    []Sink
	resolver *Resolver
	location *time.Location
}

// New validates cfg and builds a Logger. Backend connections are not
// verified here; a bad endpoint or credential surfaces on the first emit.
func New(cfg Config) (*Logger, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown timezone %q", ErrConfiguration, cfg.Timezone)
	}

	resolver := NewResolver(
		append(append([]string{}, DefaultSkipFunctions...), cfg.SkipFunctions...),
		append(append([]string{}, DefaultSkipTypes...), cfg.SkipTypes...),
	)

	var sinks []Sink
	if cfg.Mode.usesConsole() {
		sinks = append(sinks, NewConsoleSink(cfg.ConsoleOut))
	}
	if cfg.Mode.usesElastic() {
		es, err := NewElasticsearchSink(cfg.URL, cfg.ElasticKey, cfg.Index)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
		}
		sinks = append(sinks, es)
	}
	if cfg.Mode.usesOpenObserve() {
		sinks = append(sinks, NewOpenObserveSink(cfg.URL, cfg.User, cfg.Password, cfg.Index))
	}
	sinks = append(sinks, cfg.ExtraSinks...)

	return &Logger{
		mode:     cfg.Mode,
		sinks:    sinks,
		resolver: resolver,
		location: location,
	}, nil
}

// Debug logs msg at debug level.
func (l *Logger) Debug(msg string) error {
	return l.log(LevelDebug, msg)
}

// Info logs msg at info level.
func (l *Logger) Info(msg string) error {
	return l.log(LevelInfo, msg)
}

// Warning logs msg at warning level.
func (l *Logger) Warning(msg string) error {
	return l.log(LevelWarning, msg)
}

// Error logs msg at error level.
func (l *Logger) Error(msg string) error {
	return l.log(LevelError, msg)
}

// log assembles a record and writes it to every active sink. All sinks are
// attempted even when an earlier one fails; failures are combined into the
// returned error.
func (l *Logger) log(level Level, msg string) error {
	rec := &Record{
		Message:   msg,
		Level:     level,
		CallPath:  l.resolver.Resolve(),
		Timestamp: time.Now().In(l.location),
	}

	var errs []error
	for _, sink := range l.sinks {
		if err := sink.Write(rec); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
