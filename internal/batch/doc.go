// Package batch runs intro detection across a directory tree with a bounded
// worker pool and single-instance locking.
package batch
