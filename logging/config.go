package logging

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-playground/validator/v10"
)

// Mode selects which sinks a Logger writes to. It is fixed at construction.
type Mode string

const (
	// ModeConsole writes formatted lines to the console only.
	ModeConsole Mode = "console"
	// ModeElastic indexes records into Elasticsearch only.
	ModeElastic Mode = "elastic"
	// ModeOpenObserve indexes records into OpenObserve only.
	ModeOpenObserve Mode = "openobserve"
	// ModeDualElastic writes to the console and to Elasticsearch.
	ModeDualElastic Mode = "dual-elastic"
	// ModeDualObserve writes to the console and to OpenObserve.
	ModeDualObserve Mode = "dual-observe"
)

func (m Mode) usesConsole() bool {
	return m == ModeConsole || m == ModeDualElastic || m == ModeDualObserve
}

func (m Mode) usesElastic() bool {
	return m == ModeElastic || m == ModeDualElastic
}

func (m Mode) usesOpenObserve() bool {
	return m == ModeOpenObserve || m == ModeDualObserve
}

const (
	// DefaultIndex is the target index/stream when none is configured.
	DefaultIndex = "logs"
	// DefaultTimezone is the civil timezone applied to record timestamps.
	DefaultTimezone = "Europe/Berlin"
)

// Config holds the construction parameters for a Logger.
type Config struct {
	// Mode is required and selects the active sinks.
	Mode Mode `validate:"required,oneof=console elastic openobserve dual-elastic dual-observe"`

	// URL of the Elasticsearch or OpenObserve instance. Required for any
	// backend mode.
	URL string `validate:"omitempty,url"`

	// ElasticKey is the API key for Elasticsearch; required for elastic modes.
	ElasticKey string

	// User and Password authenticate against OpenObserve; both are required
	// for openobserve modes.
	User     string
	Password string

	// Index is the target Elasticsearch index or OpenObserve stream.
	// Defaults to DefaultIndex.
	Index string

	// Timezone is the IANA name of the zone used for record timestamps.
	// Defaults to DefaultTimezone.
	Timezone string

	// SkipFunctions and SkipTypes extend the call-path resolver denylists for
	// the hosting environment. DefaultSkipFunctions and DefaultSkipTypes are
	// always applied.
	SkipFunctions []string
	SkipTypes     []string

	// ConsoleOut overrides the console destination. Defaults to stdout.
	ConsoleOut io.Writer `validate:"-"`

	// ExtraSinks receive every record in addition to the mode-implied sinks.
	ExtraSinks []Sink `validate:"-"`
}

var validate = validator.New()

// withDefaults returns a copy of the config with default values applied.
func (c Config) withDefaults() Config {
	if c.Index == "" {
		c.Index = DefaultIndex
	}
	if c.Timezone == "" {
		c.Timezone = DefaultTimezone
	}
	return c
}

// Validate checks the mode first, then the credential requirements the mode
// implies. All failures wrap ErrConfiguration.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			for _, fe := range fieldErrs {
				if fe.Field() == "Mode" {
					return fmt.Errorf("%w: mode must be one of console, elastic, openobserve, dual-elastic or dual-observe", ErrConfiguration)
				}
			}
		}
		return fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	if c.Mode.usesElastic() && (c.URL == "" || c.ElasticKey == "") {
		return fmt.Errorf("%w: elasticsearch modes require a url and an api key", ErrConfiguration)
	}
	if c.Mode.usesOpenObserve() && (c.URL == "" || c.User == "" || c.Password == "") {
		return fmt.Errorf("%w: openobserve modes require a url, a user and a password", ErrConfiguration)
	}
	return nil
}
