// Package reconcile merges independently sourced router records into one
// logical device per hardware address.
//
// Three sources report on a device: the DHCP server's lease table, the ARP
// table and (optionally) the bridge host table. None of them is complete on
// its own, and they can disagree. This package owns the rules for combining
// them.
//
// # Architecture
//
// 1. Device: an immutable value holding the fields reported by each source.
//    Every Apply call returns a new Device whose conflict state was recomputed
//    by EvaluateConflicts, so derived state can never go stale.
//
// 2. Engine: the reconciliation driver. DHCP leases are the anchor record set
//    because a lease always carries a hardware address. For every lease the
//    engine looks up the ARP (and bridge) entries for that address and feeds
//    them into the device.
//
// 3. Report: the projection of a finished Pass into merged views, with
//    per-device failures dropped and counted.
//
// # Precedence
//
// DHCP wins over ARP for the identity fields (address, hardware address);
// descriptive fields fall back to fixed placeholders ("N/A", "noDHCP",
// "noARP", "noBridge") when their source did not report.
//
// # Usage Example
//
//	engine := reconcile.NewEngine(reconcile.Sources{
//	    Leases: dhcp.NewSource(session, logger),
//	    ARP:    arp.NewSource(session, logger),
//	}, reconcile.Options{ARPPolicy: reconcile.ARPPolicyFirst}, logger)
//
//	pass, err := engine.Run(ctx)
//	if err != nil {
//	    return err
//	}
//	report := reconcile.BuildReport(pass, logger)
//
// # Adding a source
//
// Implement the matching source interface from adapter.go and convert the
// router rows into the typed field set at the adapter boundary. Wire strings
// such as "true"/"false" never reach this package.
package reconcile
