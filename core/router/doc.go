// Package router provides the session layer used to query a MikroTik RouterOS
// device over its management API.
//
// A Session is opened once per reconciliation pass and handed to every record
// source adapter (DHCP, ARP, bridge). Adapters never dial on their own; the
// caller that opened the session is responsible for closing it on every exit
// path.
//
// # Sessions
//
//   - Open dials the RouterOS API (plain on 8728, TLS on 8729) and logs in.
//   - StaticSession serves recorded rows from memory. It backs the offline
//     debug tool and the package tests of the adapters.
//
// # Errors
//
// Configuration problems are reported with ErrConfiguration before any
// connection attempt, dial and login failures with ErrConnection, and failed
// queries with ErrQuery. All of them are wrapped and should be matched with
// errors.Is.
//
// # Usage
//
//	session, err := router.Open(ctx, cfg.Router, logger)
//	if err != nil {
//	    return err
//	}
//	defer session.Close()
//
//	rows, err := session.Query(ctx, router.PathARP, router.Filter{"mac-address": mac})
package router
