// Package middleware holds the request pipeline: request ids, tracing,
// the request-scoped logger, metrics, access logs, JWT authentication and
// roles, rate limiting, file uploads and the global error handler.
package middleware
