// Package dhcp reads the DHCP server lease table (/ip/dhcp-server/lease).
//
// The Source is constructed with an already-open router.Session and never
// dials on its own. Query failures are logged and returned wrapped with
// router.ErrQuery so callers can tell "no rows" from "query failed".
//
// Rows are parsed at this boundary: booleans become *bool, the lease status
// becomes a Status value, and empty attributes are treated as absent.
//
// Source implements reconcile.LeaseSource.
package dhcp
