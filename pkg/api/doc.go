// Package api implements the HTTP server (Gin-based) for the contact-form
// backend: health checks, metrics exposition, CORS, request logging and
// controller registration.
package api
