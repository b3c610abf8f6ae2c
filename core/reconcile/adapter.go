package reconcile

import "context"

// LeaseSource provides the anchor record set for a pass.
type LeaseSource interface {
	// Leases returns every lease row, or only bound leases when activeOnly is set.
	// Query failures are returned, never swallowed into an empty list.
	Leases(ctx context.Context, activeOnly bool) ([]DHCPFields, error)
}

// ARPSource looks up ARP entries by hardware address.
type ARPSource interface {
	// ARPEntries returns every ARP row for mac, in router order.
	// An empty result means the device has no ARP entry.
	ARPEntries(ctx context.Context, mac string) ([]ARPFields, error)
}

// BridgeSource looks up bridge host entries by hardware address.
type BridgeSource interface {
	// BridgeHosts returns every bridge host row for mac, in router order.
	BridgeHosts(ctx context.Context, mac string) ([]BridgeFields, error)
}

// Sources bundles the record sources used by one pass.
// Bridge is optional; a nil Bridge disables the bridge variant.
type Sources struct {
	Leases LeaseSource
	ARP    ARPSource
	Bridge BridgeSource
}
