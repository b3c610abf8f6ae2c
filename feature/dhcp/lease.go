package dhcp

import (
	"device-inventory/core/reconcile"
	"device-inventory/core/router"
	"device-inventory/core/utils"
)

// Status is the binding state of a lease. Values other than the known
// constants are preserved as returned by the router.
type Status string

const (
	StatusBound   Status = "bound"
	StatusWaiting Status = "waiting"
	StatusExpired Status = "expired"
	StatusOffered Status = "offered"
)

// Known reports whether s is one of the documented lease states.
func (s Status) Known() bool {
	switch s {
	case StatusBound, StatusWaiting, StatusExpired, StatusOffered:
		return true
	}
	return false
}

// Lease is one row of the lease table.
type Lease struct {
	ID               string `json:"id"`
	Address          string `json:"address"`
	MACAddress       string `json:"mac-address"`
	ClientID         string `json:"client-id"`
	Server           string `json:"server"`
	Status           Status `json:"status"`
	ExpiresAfter     string `json:"expires-after"`
	LastSeen         string `json:"last-seen"`
	HostName         string `json:"host-name"`
	Comment          string `json:"comment"`
	ActiveAddress    string `json:"active-address"`
	ActiveMACAddress string `json:"active-mac-address"`
	Dynamic          *bool  `json:"dynamic"`
	Disabled         *bool  `json:"disabled"`
}

// ParseLease converts a raw router row.
func ParseLease(row router.Row) Lease {
	return Lease{
		ID:               row.Get("id"),
		Address:          row.Get("address"),
		MACAddress:       row.Get("mac-address"),
		ClientID:         row.Get("client-id"),
		Server:           row.Get("server"),
		Status:           Status(row.Get("status")),
		ExpiresAfter:     row.Get("expires-after"),
		LastSeen:         row.Get("last-seen"),
		HostName:         row.Get("host-name"),
		Comment:          row.Get("comment"),
		ActiveAddress:    row.Get("active-address"),
		ActiveMACAddress: row.Get("active-mac-address"),
		Dynamic:          utils.BoolPtr(row.Get("dynamic")),
		Disabled:         utils.BoolPtr(row.Get("disabled")),
	}
}

// EffectiveAddress is the configured address, or the live binding when the
// lease carries none.
func (l Lease) EffectiveAddress() string {
	if l.Address != "" {
		return l.Address
	}
	return l.ActiveAddress
}

// EffectiveMACAddress is the configured hardware address, or the live binding
// when the lease carries none.
func (l Lease) EffectiveMACAddress() string {
	if l.MACAddress != "" {
		return l.MACAddress
	}
	return l.ActiveMACAddress
}

// Fields projects the lease onto the fields tracked by a device.
func (l Lease) Fields() reconcile.DHCPFields {
	return reconcile.DHCPFields{
		Comment:    utils.StringPtr(l.Comment),
		Address:    utils.StringPtr(l.EffectiveAddress()),
		MACAddress: utils.StringPtr(l.EffectiveMACAddress()),
		Status:     utils.StringPtr(string(l.Status)),
		HostName:   utils.StringPtr(l.HostName),
		LastSeen:   utils.StringPtr(l.LastSeen),
		ClientID:   utils.StringPtr(l.ClientID),
		Server:     utils.StringPtr(l.Server),
		Dynamic:    l.Dynamic,
	}
}
