package reconcile

import "errors"

var (
	// ErrNoLeasesFound fails a whole pass: the lease table came back empty.
	ErrNoLeasesFound = errors.New("no DHCP leases found in the network; this might indicate a DHCP server issue or network connectivity problem")
	// ErrMissingIdentity fails one device's projection: no address or no hardware
	// address could be resolved from any source.
	ErrMissingIdentity = errors.New("device has no resolvable identity")
	// ErrInvalidARPPolicy is returned for an unknown ARP policy name.
	ErrInvalidARPPolicy = errors.New("invalid ARP policy")
)
