// Package history persists detection outcomes in a SQLite database so past
// runs can be reviewed and batch reruns can be audited.
package history
