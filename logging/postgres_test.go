package logging

// Note: Full tests for PostgresSink require a running PostgreSQL instance.
// These should be run separately with appropriate environment setup.

var _ Sink = (*PostgresSink)(nil)
