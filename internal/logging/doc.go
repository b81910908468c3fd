// Package logging builds the slog loggers used across introcut.
//
// Two output formats are supported: a single-line console format with a
// component prefix and key=value attributes, and standard JSON. Output can be
// mirrored to a log file under the configured log directory. Components tag
// their loggers via WithComponent so console lines read
// "TIME LEVEL component: message key=value".
package logging
