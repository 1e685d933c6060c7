// Package validation binds and validates request payloads.
//
// DTOs implement Validatable, usually by calling Struct, which runs the
// shared validator with the portal's custom tags (personname, phone,
// strongpassword). Failures become a 400 errs.HTTPError listing each field.
// Free text is sanitized with SanitizeText before it is stored.
package validation
