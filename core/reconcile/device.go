package reconcile

import (
	"fmt"
	"sort"
	"strings"

	"device-inventory/core/utils"
)

// Device is one logical network device keyed by hardware address.
// Values are immutable: every Apply method returns a new Device with its
// conflict state recomputed.
type Device struct {
	id         string
	dhcp       DHCPFields
	arp        ARPFields
	bridge     BridgeFields
	candidates []ARPFields
	conflicts  ConflictState
}

// NewDevice creates an empty device identified by a hardware address.
func NewDevice(id string) Device {
	return Device{id: id}
}

// ID returns the hardware address the device was first observed with.
func (d Device) ID() string { return d.id }

// DHCP returns the merged lease fields.
func (d Device) DHCP() DHCPFields { return d.dhcp }

// ARP returns the merged ARP fields.
func (d Device) ARP() ARPFields { return d.arp }

// Bridge returns the merged bridge host fields.
func (d Device) Bridge() BridgeFields { return d.bridge }

// Candidates returns the extra ARP rows that share the hardware address.
func (d Device) Candidates() []ARPFields {
	out := make([]ARPFields, len(d.candidates))
	copy(out, d.candidates)
	return out
}

// HasConflict reports whether DHCP and ARP disagree.
func (d Device) HasConflict() bool { return d.conflicts.HasConflict() }

// Conflicts returns the derived conflict state.
func (d Device) Conflicts() ConflictState { return d.conflicts }

// ApplyDHCP merges lease fields into a copy of d.
func (d Device) ApplyDHCP(in DHCPFields) Device {
	d.dhcp = d.dhcp.Merge(in)
	return d.recompute()
}

// ApplyARP merges ARP fields into a copy of d.
func (d Device) ApplyARP(in ARPFields) Device {
	d.arp = d.arp.Merge(in)
	return d.recompute()
}

// ApplyBridge merges bridge host fields into a copy of d.
func (d Device) ApplyBridge(in BridgeFields) Device {
	d.bridge = d.bridge.Merge(in)
	return d.recompute()
}

// AddARPCandidates records extra ARP rows for the same hardware address.
func (d Device) AddARPCandidates(rows ...ARPFields) Device {
	if len(rows) == 0 {
		return d
	}
	merged := make([]ARPFields, 0, len(d.candidates)+len(rows))
	merged = append(merged, d.candidates...)
	merged = append(merged, rows...)
	d.candidates = merged
	return d.recompute()
}

func (d Device) recompute() Device {
	d.conflicts = EvaluateConflicts(d.dhcp, d.arp, d.candidates)
	return d
}

// EvaluateConflicts compares the DHCP and ARP field sets.
// Nothing is evaluated until both sources have reported. A field takes part
// in a comparison only when both sides carry a non-empty value. Hardware
// addresses compare case-insensitively.
func EvaluateConflicts(dhcp DHCPFields, arp ARPFields, candidates []ARPFields) ConflictState {
	if !dhcp.Reported() || !arp.Reported() {
		return ConflictState{}
	}

	details := make(map[ConflictKind]map[string]string)

	dhcpIP, arpIP := utils.Deref(dhcp.Address, ""), utils.Deref(arp.Address, "")
	if dhcpIP != "" && arpIP != "" && dhcpIP != arpIP {
		details[ConflictIPMismatch] = map[string]string{"dhcp_ip": dhcpIP, "arp_ip": arpIP}
	}

	dhcpMAC, arpMAC := utils.Deref(dhcp.MACAddress, ""), utils.Deref(arp.MACAddress, "")
	if dhcpMAC != "" && arpMAC != "" && !strings.EqualFold(dhcpMAC, arpMAC) {
		details[ConflictMACMismatch] = map[string]string{"dhcp_mac": dhcpMAC, "arp_mac": arpMAC}
	}

	if len(candidates) > 0 {
		seen := make(map[string]struct{})
		var addrs []string
		for _, row := range append([]ARPFields{arp}, candidates...) {
			addr := utils.Deref(row.Address, "")
			if addr == "" {
				continue
			}
			if _, ok := seen[addr]; ok {
				continue
			}
			seen[addr] = struct{}{}
			addrs = append(addrs, addr)
		}
		if len(addrs) > 1 {
			sort.Strings(addrs)
			details[ConflictARPMultiple] = map[string]string{"arp_ips": strings.Join(addrs, ",")}
		}
	}

	if len(details) == 0 {
		return ConflictState{}
	}
	return ConflictState{details: details}
}

// MergedView projects the device using DHCP-over-ARP precedence.
// It fails with ErrMissingIdentity when no address or no hardware address
// can be resolved from either source.
func (d Device) MergedView() (MergedView, error) {
	ip := firstNonEmpty(d.dhcp.Address, d.arp.Address)
	if ip == "" {
		return MergedView{}, fmt.Errorf("%w: device %s has no IP address from DHCP or ARP data", ErrMissingIdentity, d.id)
	}
	mac := firstNonEmpty(d.dhcp.MACAddress, d.arp.MACAddress)
	if mac == "" {
		return MergedView{}, fmt.Errorf("%w: device %s has no MAC address from DHCP or ARP data", ErrMissingIdentity, d.id)
	}

	view := MergedView{
		IPAddress:       ip,
		MACAddress:      mac,
		Hostname:        utils.Deref(d.dhcp.HostName, NotAvailable),
		DHCPStatus:      utils.Deref(d.dhcp.Status, NoDHCP),
		LastSeen:        utils.Deref(d.dhcp.LastSeen, NoDHCP),
		Comment:         utils.Deref(d.dhcp.Comment, ""),
		ClientID:        utils.Deref(d.dhcp.ClientID, NoDHCP),
		DHCPServer:      utils.Deref(d.dhcp.Server, NoDHCP),
		StaticLease:     d.dhcp.Dynamic != nil && !*d.dhcp.Dynamic,
		Interface:       utils.Deref(d.arp.Interface, NoARP),
		ARPStatus:       utils.Deref(d.arp.Status, NoARP),
		Published:       publishedLabel(d.arp.Published),
		Invalid:         isTrue(d.arp.Invalid),
		Dynamic:         isTrue(d.arp.Dynamic),
		Bridge:          utils.Deref(d.bridge.Bridge, NoBridge),
		BridgeInterface: utils.Deref(d.bridge.OnInterface, NoBridge),
		BridgeStatus:    bridgeStatus(d.bridge),
		OnBridge:        d.bridge.Reported(),
		BridgeLocal:     isTrue(d.bridge.Local),
		Conflicts:       d.conflicts.HasConflict(),
		ConflictDetails: d.conflicts.Details(),
	}
	return view, nil
}

func publishedLabel(p *bool) string {
	if p == nil {
		return NoARP
	}
	if *p {
		return "true"
	}
	return "false"
}

func bridgeStatus(b BridgeFields) string {
	switch {
	case !b.Reported():
		return NoBridge
	case isTrue(b.Disabled):
		return "disabled"
	case isTrue(b.Invalid):
		return "invalid"
	case isTrue(b.Dynamic):
		return "dynamic"
	default:
		return "static"
	}
}

func isTrue(b *bool) bool {
	return b != nil && *b
}

func firstNonEmpty(values ...*string) string {
	for _, v := range values {
		if s := utils.Deref(v, ""); s != "" {
			return s
		}
	}
	return ""
}
