// Package arp reads the router's ARP table (/ip/arp).
//
// Source follows the same contract as the lease source: an injected session,
// failures returned wrapped with router.ErrQuery, wire strings parsed on the
// way in. ARPEntries implements reconcile.ARPSource and returns every row for
// a hardware address so the engine can apply its multiple-match policy.
package arp
