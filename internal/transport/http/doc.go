// Package http contains the chi HTTP handlers: the dashboard read surface
// (one endpoint per aggregate view), the filter mutation surface including
// the select-label reverse channel, the dataset lifecycle endpoints, and
// health. Handlers decode, validate, call the service, and render; all
// errors flow through the central RFC 7807 handler.
package http
