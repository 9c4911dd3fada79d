// Package api handles incoming HTTP requests, routing, request validation,
// and response formatting. It adapts the conversation engine and the
// content and speech services to JSON over HTTP and maps their errors to
// status codes without leaking internal details.
package api
