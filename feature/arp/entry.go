package arp

import (
	"device-inventory/core/reconcile"
	"device-inventory/core/router"
	"device-inventory/core/utils"
)

// Status is the neighbour state of an ARP entry.
type Status string

const (
	StatusReachable  Status = "reachable"
	StatusStale      Status = "stale"
	StatusDelay      Status = "delay"
	StatusFailed     Status = "failed"
	StatusPermanent  Status = "permanent"
	StatusIncomplete Status = "incomplete"
	StatusProbe      Status = "probe"
)

// Known reports whether s is one of the documented neighbour states.
func (s Status) Known() bool {
	switch s {
	case StatusReachable, StatusStale, StatusDelay, StatusFailed,
		StatusPermanent, StatusIncomplete, StatusProbe:
		return true
	}
	return false
}

// Entry is one row of the ARP table.
type Entry struct {
	ID         string `json:"id"`
	Address    string `json:"address"`
	MACAddress string `json:"mac-address"`
	Interface  string `json:"interface"`
	Status     Status `json:"status"`
	Comment    string `json:"comment"`
	Published  *bool  `json:"published"`
	Invalid    *bool  `json:"invalid"`
	DHCP       *bool  `json:"dhcp"`
	Dynamic    *bool  `json:"dynamic"`
	Complete   *bool  `json:"complete"`
	Disabled   *bool  `json:"disabled"`
}

// ParseEntry converts a raw router row.
func ParseEntry(row router.Row) Entry {
	return Entry{
		ID:         row.Get("id"),
		Address:    row.Get("address"),
		MACAddress: row.Get("mac-address"),
		Interface:  row.Get("interface"),
		Status:     Status(row.Get("status")),
		Comment:    row.Get("comment"),
		Published:  utils.BoolPtr(row.Get("published")),
		Invalid:    utils.BoolPtr(row.Get("invalid")),
		DHCP:       utils.BoolPtr(row.Get("dhcp")),
		Dynamic:    utils.BoolPtr(row.Get("dynamic")),
		Complete:   utils.BoolPtr(row.Get("complete")),
		Disabled:   utils.BoolPtr(row.Get("disabled")),
	}
}

// Fields projects the entry onto the fields tracked by a device.
func (e Entry) Fields() reconcile.ARPFields {
	return reconcile.ARPFields{
		Comment:    utils.StringPtr(e.Comment),
		Address:    utils.StringPtr(e.Address),
		MACAddress: utils.StringPtr(e.MACAddress),
		Status:     utils.StringPtr(string(e.Status)),
		Interface:  utils.StringPtr(e.Interface),
		Published:  e.Published,
		Invalid:    e.Invalid,
		Dynamic:    e.Dynamic,
	}
}
