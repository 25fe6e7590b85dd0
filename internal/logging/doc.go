// Package logging builds the slog loggers used across the pipeline.
//
// Two output formats are supported: a human-oriented console format (with
// ANSI level colors when stdout is a terminal) and machine-readable JSON.
// Helpers standardize attribute keys (component, item_id, stage, run_id) and
// derive per-item logger context from context.Context values stamped by the
// services package.
package logging
