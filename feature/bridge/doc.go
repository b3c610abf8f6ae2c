// Package bridge reads the bridge host table (/interface/bridge/host).
//
// Bridge hosts tell which bridge port a hardware address was learned on.
// The table is only consulted when the bridge variant of a pass is enabled.
// Source implements reconcile.BridgeSource.
package bridge
