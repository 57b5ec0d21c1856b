// Package server holds the HTTP server configuration and the mapping from
// store errors to HTTP responses.
//
// # Configuration
//
// The Config struct defines the HTTP port and the API key protecting every
// route except the Swagger UI.
//
// # Errors
//
// StatusFor translates *objectstore.Error values into status codes:
//
//	config error          400
//	not found             404
//	exists / not empty    409
//	access denied         403
//	other remote error    502
//	local i/o error       500
//
// Handlers call SendError so every feature reports failures the same way.
package server
