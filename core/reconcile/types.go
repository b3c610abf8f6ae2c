package reconcile

import (
	"sort"
	"time"
)

// Placeholders used by the merged view when a source did not report a field.
const (
	NotAvailable = "N/A"
	NoDHCP       = "noDHCP"
	NoARP        = "noARP"
	NoBridge     = "noBridge"
)

// DHCPFields holds the lease attributes tracked per device.
// A nil field means the DHCP server did not report it.
type DHCPFields struct {
	Comment    *string `json:"comment,omitempty"`
	Address    *string `json:"address,omitempty"`
	MACAddress *string `json:"mac-address,omitempty"`
	Status     *string `json:"status,omitempty"`
	HostName   *string `json:"host-name,omitempty"`
	LastSeen   *string `json:"last-seen,omitempty"`
	ClientID   *string `json:"client-id,omitempty"`
	Server     *string `json:"server,omitempty"`
	Dynamic    *bool   `json:"dynamic,omitempty"`
}

// Merge returns f with every non-nil field of in applied on top.
func (f DHCPFields) Merge(in DHCPFields) DHCPFields {
	f.Comment = mergeString(f.Comment, in.Comment)
	f.Address = mergeString(f.Address, in.Address)
	f.MACAddress = mergeString(f.MACAddress, in.MACAddress)
	f.Status = mergeString(f.Status, in.Status)
	f.HostName = mergeString(f.HostName, in.HostName)
	f.LastSeen = mergeString(f.LastSeen, in.LastSeen)
	f.ClientID = mergeString(f.ClientID, in.ClientID)
	f.Server = mergeString(f.Server, in.Server)
	f.Dynamic = mergeBool(f.Dynamic, in.Dynamic)
	return f
}

// Reported is true once any field has been set.
func (f DHCPFields) Reported() bool {
	return anyString(f.Comment, f.Address, f.MACAddress, f.Status, f.HostName, f.LastSeen, f.ClientID, f.Server) ||
		f.Dynamic != nil
}

// ARPFields holds the ARP table attributes tracked per device.
type ARPFields struct {
	Comment    *string `json:"comment,omitempty"`
	Address    *string `json:"address,omitempty"`
	MACAddress *string `json:"mac-address,omitempty"`
	Status     *string `json:"status,omitempty"`
	Interface  *string `json:"interface,omitempty"`
	Published  *bool   `json:"published,omitempty"`
	Invalid    *bool   `json:"invalid,omitempty"`
	Dynamic    *bool   `json:"dynamic,omitempty"`
}

// Merge returns f with every non-nil field of in applied on top.
func (f ARPFields) Merge(in ARPFields) ARPFields {
	f.Comment = mergeString(f.Comment, in.Comment)
	f.Address = mergeString(f.Address, in.Address)
	f.MACAddress = mergeString(f.MACAddress, in.MACAddress)
	f.Status = mergeString(f.Status, in.Status)
	f.Interface = mergeString(f.Interface, in.Interface)
	f.Published = mergeBool(f.Published, in.Published)
	f.Invalid = mergeBool(f.Invalid, in.Invalid)
	f.Dynamic = mergeBool(f.Dynamic, in.Dynamic)
	return f
}

// Reported is true once any field has been set.
func (f ARPFields) Reported() bool {
	return anyString(f.Comment, f.Address, f.MACAddress, f.Status, f.Interface) ||
		f.Published != nil || f.Invalid != nil || f.Dynamic != nil
}

// BridgeFields holds the bridge host attributes tracked per device.
type BridgeFields struct {
	MACAddress  *string `json:"mac-address,omitempty"`
	Bridge      *string `json:"bridge,omitempty"`
	OnInterface *string `json:"on-interface,omitempty"`
	VID         *int    `json:"vid,omitempty"`
	Local       *bool   `json:"local,omitempty"`
	External    *bool   `json:"external,omitempty"`
	Dynamic     *bool   `json:"dynamic,omitempty"`
	Invalid     *bool   `json:"invalid,omitempty"`
	Disabled    *bool   `json:"disabled,omitempty"`
}

// Merge returns f with every non-nil field of in applied on top.
func (f BridgeFields) Merge(in BridgeFields) BridgeFields {
	f.MACAddress = mergeString(f.MACAddress, in.MACAddress)
	f.Bridge = mergeString(f.Bridge, in.Bridge)
	f.OnInterface = mergeString(f.OnInterface, in.OnInterface)
	if in.VID != nil {
		f.VID = in.VID
	}
	f.Local = mergeBool(f.Local, in.Local)
	f.External = mergeBool(f.External, in.External)
	f.Dynamic = mergeBool(f.Dynamic, in.Dynamic)
	f.Invalid = mergeBool(f.Invalid, in.Invalid)
	f.Disabled = mergeBool(f.Disabled, in.Disabled)
	return f
}

// Reported is true once any field has been set.
func (f BridgeFields) Reported() bool {
	return anyString(f.MACAddress, f.Bridge, f.OnInterface) || f.VID != nil ||
		f.Local != nil || f.External != nil || f.Dynamic != nil || f.Invalid != nil || f.Disabled != nil
}

// ConflictKind names a class of disagreement between sources.
type ConflictKind string

const (
	// ConflictIPMismatch: DHCP and ARP report different addresses.
	ConflictIPMismatch ConflictKind = "ip_mismatch"
	// ConflictMACMismatch: DHCP and ARP report different hardware addresses.
	ConflictMACMismatch ConflictKind = "mac_mismatch"
	// ConflictARPMultiple: several ARP entries with different addresses share
	// the hardware address. Only evaluated under ARPPolicyFlag.
	ConflictARPMultiple ConflictKind = "arp_multiple"
)

// ConflictState is the derived conflict state of a device. The zero value has no conflicts.
type ConflictState struct {
	details map[ConflictKind]map[string]string
}

// HasConflict reports whether at least one conflict kind was recorded.
func (c ConflictState) HasConflict() bool {
	return len(c.details) > 0
}

// Details returns a copy of the recorded conflicts.
func (c ConflictState) Details() map[ConflictKind]map[string]string {
	out := make(map[ConflictKind]map[string]string, len(c.details))
	for kind, values := range c.details {
		cp := make(map[string]string, len(values))
		for k, v := range values {
			cp[k] = v
		}
		out[kind] = cp
	}
	return out
}

// Kinds returns the recorded conflict kinds in sorted order.
func (c ConflictState) Kinds() []ConflictKind {
	kinds := make([]ConflictKind, 0, len(c.details))
	for kind := range c.details {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// MergedView is the precedence-resolved projection of one device.
// It is the stable structured export format.
type MergedView struct {
	IPAddress       string                             `json:"ip_address"`
	MACAddress      string                             `json:"mac_address"`
	Hostname        string                             `json:"hostname"`
	DHCPStatus      string                             `json:"dhcp_status"`
	LastSeen        string                             `json:"last_seen"`
	Comment         string                             `json:"comment"`
	ClientID        string                             `json:"client_id"`
	DHCPServer      string                             `json:"dhcp_server"`
	StaticLease     bool                               `json:"static_lease"`
	Interface       string                             `json:"interface"`
	ARPStatus       string                             `json:"arp_status"`
	Published       string                             `json:"published"`
	Invalid         bool                               `json:"invalid"`
	Dynamic         bool                               `json:"dynamic"`
	Bridge          string                             `json:"bridge"`
	BridgeInterface string                             `json:"bridge_interface"`
	BridgeStatus    string                             `json:"bridge_status"`
	OnBridge        bool                               `json:"on_bridge"`
	BridgeLocal     bool                               `json:"bridge_local"`
	Conflicts       bool                               `json:"conflicts"`
	ConflictDetails map[ConflictKind]map[string]string `json:"conflict_details"`
}

// PassState is the state of the reconciliation driver.
type PassState string

const (
	// PassCollecting: leases are being iterated.
	PassCollecting PassState = "collecting"
	// PassComplete: every lease was processed.
	PassComplete PassState = "complete"
)

// SkippedLease records a lease row that could not anchor a device.
type SkippedLease struct {
	Index      int    `json:"index"`
	Address    string `json:"address"`
	MACAddress string `json:"mac_address"`
	Reason     string `json:"reason"`
}

// Pass is the outcome of one reconciliation run over a single query round.
type Pass struct {
	ID          string
	State       PassState
	StartedAt   time.Time
	CompletedAt time.Time

	// LeaseCount is the number of lease rows returned by the router.
	LeaseCount int

	// Devices are in first-observation order.
	Devices []Device

	// Skipped lists lease rows without an address or hardware address.
	Skipped []SkippedLease

	// LookupFailures counts ARP/bridge lookups that failed and were tolerated.
	LookupFailures int
}

// DroppedDevice is a device whose merged view could not be produced.
type DroppedDevice struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

// Summary provides aggregate counts for a report.
type Summary struct {
	// Leases is the number of lease rows returned by the router.
	Leases int `json:"leases"`
	// Devices is the number of devices in the report.
	Devices int `json:"devices"`
	// Skipped counts lease rows without identity.
	Skipped int `json:"skipped"`
	// Dropped counts devices that failed projection.
	Dropped int `json:"dropped"`
	// Conflicts counts reported devices with at least one conflict.
	Conflicts int `json:"conflicts"`
	// DHCPOnly counts reported devices without an ARP entry.
	DHCPOnly int `json:"dhcp_only"`
	// OnBridge counts reported devices with a bridge host entry.
	OnBridge int `json:"on_bridge"`
	// LookupFailures counts tolerated ARP/bridge lookup failures.
	LookupFailures int `json:"lookup_failures"`
}

// Report is the presentation-ready result of a pass.
type Report struct {
	PassID      string          `json:"pass_id"`
	StartedAt   time.Time       `json:"started_at"`
	CompletedAt time.Time       `json:"completed_at"`
	Devices     []MergedView    `json:"devices"`
	Skipped     []SkippedLease  `json:"skipped"`
	Dropped     []DroppedDevice `json:"dropped"`
	Summary     Summary         `json:"summary"`
}

func mergeString(dst, src *string) *string {
	if src != nil {
		return src
	}
	return dst
}

func mergeBool(dst, src *bool) *bool {
	if src != nil {
		return src
	}
	return dst
}

func anyString(values ...*string) bool {
	for _, v := range values {
		if v != nil {
			return true
		}
	}
	return false
}
