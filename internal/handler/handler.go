// Package handler is the HTTP layer of the portal.
//
// Handlers bind and validate the request through Handle, read the
// authenticated actor and uploaded file from the context, and delegate to
// the service layer. They never touch SQL or email directly.
package handler
