// Package services defines shared utilities consumed by the evidence
// extractors and external tool wrappers.
//
// Key responsibilities:
//   - Structured error markers plus the Wrap helper so failures carry their
//     extractor and operation context.
//   - The Recoverable classifier that decides whether a failure degrades to
//     "no candidate" or aborts the run.
//   - Context helpers that stamp run identifiers and media paths for logging.
package services
