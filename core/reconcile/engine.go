package reconcile

import (
	"context"
	"fmt"
	"strings"
	"time"

	"device-inventory/core/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Engine drives one reconciliation pass over the configured sources.
type Engine struct {
	sources Sources
	opts    Options
	logger  *zap.Logger
	now     func() time.Time
}

// NewEngine creates a new engine. A nil logger is replaced with a no-op logger.
func NewEngine(sources Sources, opts Options, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.ARPPolicy == "" {
		opts.ARPPolicy = ARPPolicyFirst
	}
	return &Engine{
		sources: sources,
		opts:    opts,
		logger:  logger,
		now:     time.Now,
	}
}

// Run executes a pass: it fetches the lease table, groups rows by hardware
// address and enriches every device with ARP (and bridge) data.
// No partial Pass is returned on a fatal error.
func (e *Engine) Run(ctx context.Context) (*Pass, error) {
	pass := &Pass{
		ID:        uuid.NewString(),
		State:     PassCollecting,
		StartedAt: e.now(),
	}
	log := e.logger.With(zap.String("pass_id", pass.ID))

	// 1. Anchor set
	leases, err := e.sources.Leases.Leases(ctx, e.opts.ActiveOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch DHCP leases: %w", err)
	}
	if len(leases) == 0 {
		log.Error("No DHCP leases found", zap.Bool("active_only", e.opts.ActiveOnly))
		return nil, ErrNoLeasesFound
	}
	pass.LeaseCount = len(leases)
	log.Debug("Fetched DHCP leases", zap.Int("count", len(leases)))

	index := newDeviceIndex()
	for i, lease := range leases {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		// 2. Leases without identity cannot anchor a device
		ip, mac := utils.Deref(lease.Address, ""), utils.Deref(lease.MACAddress, "")
		if ip == "" || mac == "" {
			skip := SkippedLease{Index: i, Address: ip, MACAddress: mac, Reason: "lease has no address or mac-address"}
			pass.Skipped = append(pass.Skipped, skip)
			log.Warn("Skipping lease without identity",
				zap.Int("index", i),
				zap.String("address", ip),
				zap.String("mac_address", mac))
			continue
		}

		// 3. Lookup-or-create
		device := index.get(mac).ApplyDHCP(lease)

		// 4. ARP enrichment
		device, err = e.applyARP(ctx, log, pass, device, mac)
		if err != nil {
			return nil, err
		}

		// 5. Bridge enrichment
		if e.sources.Bridge != nil {
			device, err = e.applyBridge(ctx, log, pass, device, mac)
			if err != nil {
				return nil, err
			}
		}

		index.put(mac, device)
	}

	pass.Devices = index.ordered()
	pass.State = PassComplete
	pass.CompletedAt = e.now()

	log.Info("Reconciliation pass complete",
		zap.Int("leases", pass.LeaseCount),
		zap.Int("devices", len(pass.Devices)),
		zap.Int("skipped", len(pass.Skipped)),
		zap.Int("lookup_failures", pass.LookupFailures),
		zap.Duration("duration", pass.CompletedAt.Sub(pass.StartedAt)))

	return pass, nil
}

func (e *Engine) applyARP(ctx context.Context, log *zap.Logger, pass *Pass, device Device, mac string) (Device, error) {
	rows, err := e.sources.ARP.ARPEntries(ctx, mac)
	if err != nil {
		if e.opts.StrictLookups {
			return device, fmt.Errorf("ARP lookup for %s: %w", mac, err)
		}
		pass.LookupFailures++
		log.Error("ARP lookup failed, keeping DHCP-only data", zap.String("mac_address", mac), zap.Error(err))
		return device, nil
	}
	if len(rows) == 0 {
		log.Debug("No ARP entry for device", zap.String("mac_address", mac))
		return device, nil
	}

	device = device.ApplyARP(rows[0])
	if len(rows) > 1 {
		switch e.opts.ARPPolicy {
		case ARPPolicyFlag:
			device = device.AddARPCandidates(rows[1:]...)
			log.Warn("Multiple ARP entries for device, flagged",
				zap.String("mac_address", mac),
				zap.Int("candidates", len(device.Candidates())),
				zap.Bool("conflict", device.HasConflict()))
		default:
			log.Warn("Multiple ARP entries for device, using the first",
				zap.String("mac_address", mac),
				zap.Int("count", len(rows)))
		}
	}
	return device, nil
}

func (e *Engine) applyBridge(ctx context.Context, log *zap.Logger, pass *Pass, device Device, mac string) (Device, error) {
	rows, err := e.sources.Bridge.BridgeHosts(ctx, mac)
	if err != nil {
		if e.opts.StrictLookups {
			return device, fmt.Errorf("bridge host lookup for %s: %w", mac, err)
		}
		pass.LookupFailures++
		log.Error("Bridge host lookup failed", zap.String("mac_address", mac), zap.Error(err))
		return device, nil
	}
	if len(rows) == 0 {
		return device, nil
	}
	return device.ApplyBridge(rows[0]), nil
}

// deviceIndex groups devices by case-folded hardware address and remembers
// first-observation order.
type deviceIndex struct {
	order   []string
	devices map[string]Device
}

func newDeviceIndex() *deviceIndex {
	return &deviceIndex{devices: make(map[string]Device)}
}

func (x *deviceIndex) get(mac string) Device {
	if d, ok := x.devices[strings.ToUpper(mac)]; ok {
		return d
	}
	return NewDevice(mac)
}

func (x *deviceIndex) put(mac string, d Device) {
	key := strings.ToUpper(mac)
	if _, ok := x.devices[key]; !ok {
		x.order = append(x.order, key)
	}
	x.devices[key] = d
}

func (x *deviceIndex) ordered() []Device {
	out := make([]Device, 0, len(x.order))
	for _, key := range x.order {
		out = append(out, x.devices[key])
	}
	return out
}
