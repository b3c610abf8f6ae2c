package bridge

import (
	"device-inventory/core/reconcile"
	"device-inventory/core/router"
	"device-inventory/core/utils"
)

// Host is one row of the bridge host table.
type Host struct {
	ID          string `json:"id"`
	MACAddress  string `json:"mac-address"`
	Bridge      string `json:"bridge"`
	OnInterface string `json:"on-interface"`
	VID         *int   `json:"vid"`
	Local       *bool  `json:"local"`
	External    *bool  `json:"external"`
	Dynamic     *bool  `json:"dynamic"`
	Invalid     *bool  `json:"invalid"`
	Disabled    *bool  `json:"disabled"`
}

// ParseHost converts a raw router row.
func ParseHost(row router.Row) Host {
	return Host{
		ID:          row.Get("id"),
		MACAddress:  row.Get("mac-address"),
		Bridge:      row.Get("bridge"),
		OnInterface: row.Get("on-interface"),
		VID:         utils.IntPtr(row.Get("vid")),
		Local:       utils.BoolPtr(row.Get("local")),
		External:    utils.BoolPtr(row.Get("external")),
		Dynamic:     utils.BoolPtr(row.Get("dynamic")),
		Invalid:     utils.BoolPtr(row.Get("invalid")),
		Disabled:    utils.BoolPtr(row.Get("disabled")),
	}
}

// Fields projects the host onto the fields tracked by a device.
func (h Host) Fields() reconcile.BridgeFields {
	return reconcile.BridgeFields{
		MACAddress:  utils.StringPtr(h.MACAddress),
		Bridge:      utils.StringPtr(h.Bridge),
		OnInterface: utils.StringPtr(h.OnInterface),
		VID:         h.VID,
		Local:       h.Local,
		External:    h.External,
		Dynamic:     h.Dynamic,
		Invalid:     h.Invalid,
		Disabled:    h.Disabled,
	}
}
