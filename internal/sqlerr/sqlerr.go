// Package sqlerr handles database driver errors.
//
// It parses SQLSTATE codes from pgx and converts them into client-facing
// errs.HTTPError values (e.g. a unique violation becomes a 400 with a
// readable message) while keeping the driver error for logs.
package sqlerr
