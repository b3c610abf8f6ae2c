package reconcile

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// stubSources is a simple test source set backed by maps.
type stubSources struct {
	leases     []DHCPFields
	leaseErr   error
	arp        map[string][]ARPFields
	arpErr     error
	bridge     map[string][]BridgeFields
	bridgeErr  error
	activeSeen []bool
	arpCalls   []string
}

func (s *stubSources) Leases(ctx context.Context, activeOnly bool) ([]DHCPFields, error) {
	s.activeSeen = append(s.activeSeen, activeOnly)
	return s.leases, s.leaseErr
}

func (s *stubSources) ARPEntries(ctx context.Context, mac string) ([]ARPFields, error) {
	s.arpCalls = append(s.arpCalls, mac)
	if s.arpErr != nil {
		return nil, s.arpErr
	}
	return s.arp[strings.ToUpper(mac)], nil
}

func (s *stubSources) BridgeHosts(ctx context.Context, mac string) ([]BridgeFields, error) {
	if s.bridgeErr != nil {
		return nil, s.bridgeErr
	}
	return s.bridge[strings.ToUpper(mac)], nil
}

func (s *stubSources) engine(opts Options, withBridge bool) *Engine {
	sources := Sources{Leases: s, ARP: s}
	if withBridge {
		sources.Bridge = s
	}
	return NewEngine(sources, opts, zap.NewNop())
}

func TestEngine_Run_MergesSources(t *testing.T) {
	stub := &stubSources{
		leases: []DHCPFields{
			laptopLease(),
			{Address: str("10.0.0.6"), MACAddress: str("AA:BB:CC:00:11:33"), HostName: str("phone")},
		},
		arp: map[string][]ARPFields{
			"AA:BB:CC:00:11:22": {laptopARP()},
		},
	}

	pass, err := stub.engine(Options{}, false).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, PassComplete, pass.State)
	assert.NotEmpty(t, pass.ID)
	assert.Equal(t, 2, pass.LeaseCount)
	require.Len(t, pass.Devices, 2)
	assert.Equal(t, "AA:BB:CC:00:11:22", pass.Devices[0].ID())
	assert.Equal(t, "AA:BB:CC:00:11:33", pass.Devices[1].ID())
	assert.True(t, pass.Devices[0].ARP().Reported())
	assert.False(t, pass.Devices[1].ARP().Reported())
	assert.Equal(t, []string{"AA:BB:CC:00:11:22", "AA:BB:CC:00:11:33"}, stub.arpCalls)
}

func TestEngine_Run_ActiveOnlyForwarded(t *testing.T) {
	stub := &stubSources{leases: []DHCPFields{laptopLease()}}

	_, err := stub.engine(Options{ActiveOnly: true}, false).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []bool{true}, stub.activeSeen)
}

func TestEngine_Run_NoLeases(t *testing.T) {
	stub := &stubSources{}

	pass, err := stub.engine(Options{}, false).Run(context.Background())

	assert.ErrorIs(t, err, ErrNoLeasesFound)
	assert.Nil(t, pass)
	assert.Empty(t, stub.arpCalls)
}

func TestEngine_Run_LeaseQueryFailure(t *testing.T) {
	queryErr := errors.New("trap: no such command")
	stub := &stubSources{leaseErr: queryErr}

	_, err := stub.engine(Options{}, false).Run(context.Background())

	assert.ErrorIs(t, err, queryErr)
	assert.Contains(t, err.Error(), "failed to fetch DHCP leases")
}

func TestEngine_Run_SkipsLeasesWithoutIdentity(t *testing.T) {
	stub := &stubSources{
		leases: []DHCPFields{
			{Address: str("10.0.0.7"), HostName: str("ghost")},
			laptopLease(),
			{MACAddress: str("AA:BB:CC:00:11:44")},
		},
	}

	pass, err := stub.engine(Options{}, false).Run(context.Background())
	require.NoError(t, err)

	require.Len(t, pass.Devices, 1)
	assert.Equal(t, "AA:BB:CC:00:11:22", pass.Devices[0].ID())
	require.Len(t, pass.Skipped, 2)
	assert.Equal(t, 0, pass.Skipped[0].Index)
	assert.Equal(t, "10.0.0.7", pass.Skipped[0].Address)
	assert.Equal(t, 2, pass.Skipped[1].Index)
	assert.Equal(t, []string{"AA:BB:CC:00:11:22"}, stub.arpCalls)
}

func TestEngine_Run_GroupsCaseInsensitively(t *testing.T) {
	second := laptopLease()
	second.MACAddress = str("aa:bb:cc:00:11:22")
	second.Server = str("dhcp2")

	stub := &stubSources{leases: []DHCPFields{laptopLease(), second}}

	pass, err := stub.engine(Options{}, false).Run(context.Background())
	require.NoError(t, err)

	require.Len(t, pass.Devices, 1)
	assert.Equal(t, "AA:BB:CC:00:11:22", pass.Devices[0].ID())
	assert.Equal(t, "dhcp2", *pass.Devices[0].DHCP().Server)
}

func TestEngine_Run_ARPLookupFailureTolerated(t *testing.T) {
	stub := &stubSources{
		leases: []DHCPFields{laptopLease()},
		arpErr: errors.New("timeout"),
	}

	pass, err := stub.engine(Options{}, false).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, pass.LookupFailures)
	require.Len(t, pass.Devices, 1)
	assert.False(t, pass.Devices[0].ARP().Reported())
}

func TestEngine_Run_ARPLookupFailureStrict(t *testing.T) {
	lookupErr := errors.New("timeout")
	stub := &stubSources{
		leases: []DHCPFields{laptopLease()},
		arpErr: lookupErr,
	}

	pass, err := stub.engine(Options{StrictLookups: true}, false).Run(context.Background())

	assert.ErrorIs(t, err, lookupErr)
	assert.Nil(t, pass)
}

func TestEngine_Run_ARPPolicy(t *testing.T) {
	second := laptopARP()
	second.Address = str("10.0.0.8")

	tests := []struct {
		name       string
		policy     ARPPolicy
		conflict   bool
		candidates int
	}{
		{"first keeps the first row", ARPPolicyFirst, false, 0},
		{"flag records candidates", ARPPolicyFlag, true, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubSources{
				leases: []DHCPFields{laptopLease()},
				arp: map[string][]ARPFields{
					"AA:BB:CC:00:11:22": {laptopARP(), second},
				},
			}

			pass, err := stub.engine(Options{ARPPolicy: tt.policy}, false).Run(context.Background())
			require.NoError(t, err)

			device := pass.Devices[0]
			assert.Equal(t, "10.0.0.5", *device.ARP().Address)
			assert.Equal(t, tt.conflict, device.HasConflict())
			assert.Len(t, device.Candidates(), tt.candidates)
		})
	}
}

func TestEngine_Run_ARPPolicyFlagLogsCandidates(t *testing.T) {
	second := laptopARP()
	second.Address = str("10.0.0.8")
	stub := &stubSources{
		leases: []DHCPFields{laptopLease()},
		arp: map[string][]ARPFields{
			"AA:BB:CC:00:11:22": {laptopARP(), second},
		},
	}
	core, logs := observer.New(zap.WarnLevel)

	_, err := NewEngine(Sources{Leases: stub, ARP: stub}, Options{ARPPolicy: ARPPolicyFlag}, zap.New(core)).Run(context.Background())
	require.NoError(t, err)

	entries := logs.FilterMessage("Multiple ARP entries for device, flagged").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, int64(1), fields["candidates"])
	assert.Equal(t, true, fields["conflict"])
}

func TestEngine_Run_Bridge(t *testing.T) {
	stub := &stubSources{
		leases: []DHCPFields{laptopLease()},
		bridge: map[string][]BridgeFields{
			"AA:BB:CC:00:11:22": {{Bridge: str("bridge1"), OnInterface: str("ether3")}},
		},
	}

	withBridge, err := stub.engine(Options{}, true).Run(context.Background())
	require.NoError(t, err)
	assert.True(t, withBridge.Devices[0].Bridge().Reported())

	withoutBridge, err := stub.engine(Options{}, false).Run(context.Background())
	require.NoError(t, err)
	assert.False(t, withoutBridge.Devices[0].Bridge().Reported())
}

func TestEngine_Run_BridgeFailureTolerated(t *testing.T) {
	stub := &stubSources{
		leases:    []DHCPFields{laptopLease()},
		bridgeErr: errors.New("no such command"),
	}

	pass, err := stub.engine(Options{}, true).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, pass.LookupFailures)
}

func TestEngine_Run_Cancelled(t *testing.T) {
	stub := &stubSources{leases: []DHCPFields{laptopLease()}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := stub.engine(Options{}, false).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewEngine_Defaults(t *testing.T) {
	engine := NewEngine(Sources{}, Options{}, nil)
	assert.Equal(t, ARPPolicyFirst, engine.opts.ARPPolicy)
	assert.NotNil(t, engine.logger)
}
