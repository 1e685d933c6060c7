// Package sqlerr translates PostgreSQL driver errors into API errors.
//
// It parses SQLSTATE codes from pgx and converts them into user-friendly
// messages (e.g. a foreign key violation becomes a 400 "The referenced
// User does not exist").
package sqlerr
