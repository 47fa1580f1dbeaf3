// Package http exposes the dashboard aggregates, the insight report and
// the dataset upload surface over chi routers. Handlers depend on small
// service interfaces so tests can swap in fakes, and every failure path
// renders RFC 7807 problem documents through the shared error handler.
package http
