// Package devices implements the device inventory feature.
//
// It runs reconciliation passes against the router and presents the result:
// as a terminal report, as JSON, and over HTTP in serve mode.
//
// # Components
//
//   - Service: opens one router session per pass, wires the dhcp, arp and
//     (optionally) bridge sources into the reconcile engine and always closes
//     the session. Concurrent HTTP requests share one in-flight pass.
//   - Handler: HTTP endpoints backed by the service.
//   - Feature: registers the handler with the loader.
//   - RenderText / RenderJSON: report presentation.
//
// # HTTP Endpoints
//
//   - GET /devices            : full report (?conflicts=true keeps conflicting devices only)
//   - GET /devices/:mac       : merged view of one device
//
// # Error mapping
//
//	router.ErrConfiguration    -> 500
//	router.ErrConnection       -> 502
//	router.ErrQuery            -> 502
//	reconcile.ErrNoLeasesFound -> 404
package devices
