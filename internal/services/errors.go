package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrExternalTool marks a failed or malformed external tool invocation.
	ErrExternalTool = errors.New("external tool error")
	// ErrParse marks structurally invalid input such as a bad SRT block.
	ErrParse = errors.New("parse error")
	// ErrConfiguration marks unusable settings detected at runtime.
	ErrConfiguration = errors.New("configuration error")
	// ErrTimeout marks an external call that exceeded its deadline.
	ErrTimeout = errors.New("timeout")
)

// Wrap builds an error message that includes extractor context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrExternalTool
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Recoverable reports whether an error should degrade to "no candidate"
// instead of aborting a detection run. Everything except configuration
// mistakes is recoverable at extractor granularity.
func Recoverable(err error) bool {
	if err == nil {
		return true
	}
	return !errors.Is(err, ErrConfiguration)
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
