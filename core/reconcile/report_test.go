package reconcile

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func samplePass() *Pass {
	conflicting := laptopARP()
	conflicting.Address = str("10.0.0.9")

	return &Pass{
		ID:          "pass-1",
		State:       PassComplete,
		StartedAt:   time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		CompletedAt: time.Date(2026, 1, 2, 3, 4, 6, 0, time.UTC),
		LeaseCount:  4,
		Devices: []Device{
			NewDevice("AA:BB:CC:00:11:22").ApplyDHCP(laptopLease()).ApplyARP(conflicting),
			NewDevice("AA:BB:CC:00:11:33").ApplyDHCP(DHCPFields{
				Address:    str("10.0.0.6"),
				MACAddress: str("AA:BB:CC:00:11:33"),
			}).ApplyBridge(BridgeFields{Bridge: str("bridge1")}),
			NewDevice("AA:BB:CC:00:11:44").ApplyDHCP(DHCPFields{MACAddress: str("AA:BB:CC:00:11:44")}),
		},
		Skipped:        []SkippedLease{{Index: 3, Reason: "lease has no address or mac-address"}},
		LookupFailures: 1,
	}
}

func TestBuildReport(t *testing.T) {
	report := BuildReport(samplePass(), nil)

	assert.Equal(t, "pass-1", report.PassID)
	require.Len(t, report.Devices, 2)
	assert.Equal(t, "AA:BB:CC:00:11:22", report.Devices[0].MACAddress)
	assert.Equal(t, "AA:BB:CC:00:11:33", report.Devices[1].MACAddress)

	require.Len(t, report.Dropped, 1)
	assert.Equal(t, "AA:BB:CC:00:11:44", report.Dropped[0].ID)
	assert.Contains(t, report.Dropped[0].Reason, "no IP address")

	assert.Equal(t, Summary{
		Leases:         4,
		Devices:        2,
		Skipped:        1,
		Dropped:        1,
		Conflicts:      1,
		DHCPOnly:       1,
		OnBridge:       1,
		LookupFailures: 1,
	}, report.Summary)
}

func TestBuildReport_LogsConflictKinds(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)

	BuildReport(samplePass(), zap.New(core))

	entries := logs.FilterMessage("Device has conflicting DHCP and ARP data").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "AA:BB:CC:00:11:22", fields["device"])
	assert.Equal(t, []interface{}{"ip_mismatch"}, fields["kinds"])
}

func TestReport_WithConflictsOnly(t *testing.T) {
	report := BuildReport(samplePass(), nil)

	filtered := report.WithConflictsOnly()

	require.Len(t, filtered.Devices, 1)
	assert.True(t, filtered.Devices[0].Conflicts)
	assert.Len(t, report.Devices, 2, "original report is untouched")
	assert.Equal(t, report.Summary, filtered.Summary)
}

func TestReport_Find(t *testing.T) {
	report := BuildReport(samplePass(), nil)

	view, ok := report.Find("aa:bb:cc:00:11:33")
	require.True(t, ok)
	assert.Equal(t, "10.0.0.6", view.IPAddress)

	_, ok = report.Find("00:00:00:00:00:00")
	assert.False(t, ok)
}

func TestReport_JSONShape(t *testing.T) {
	report := BuildReport(samplePass(), nil)

	data, err := json.Marshal(report.Devices[0])
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	for _, key := range []string{
		"ip_address", "mac_address", "hostname", "dhcp_status", "last_seen", "comment",
		"client_id", "dhcp_server", "static_lease", "interface", "arp_status", "published",
		"invalid", "dynamic", "conflicts", "conflict_details", "bridge", "on_bridge",
	} {
		assert.Contains(t, decoded, key)
	}
	details := decoded["conflict_details"].(map[string]any)
	assert.Contains(t, details, "ip_mismatch")
}
