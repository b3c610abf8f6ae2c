package reconcile

import (
	"strings"

	"go.uber.org/zap"
)

// BuildReport projects every device of a pass into its merged view.
// Devices whose identity cannot be resolved are dropped and logged; the rest
// of the report is unaffected.
func BuildReport(pass *Pass, logger *zap.Logger) *Report {
	if logger == nil {
		logger = zap.NewNop()
	}

	report := &Report{
		PassID:      pass.ID,
		StartedAt:   pass.StartedAt,
		CompletedAt: pass.CompletedAt,
		Devices:     make([]MergedView, 0, len(pass.Devices)),
		Skipped:     append([]SkippedLease{}, pass.Skipped...),
		Dropped:     []DroppedDevice{},
	}

	summary := Summary{
		Leases:         pass.LeaseCount,
		Skipped:        len(pass.Skipped),
		LookupFailures: pass.LookupFailures,
	}

	for _, device := range pass.Devices {
		view, err := device.MergedView()
		if err != nil {
			logger.Error("Dropping device from report", zap.String("device", device.ID()), zap.Error(err))
			report.Dropped = append(report.Dropped, DroppedDevice{ID: device.ID(), Reason: err.Error()})
			continue
		}
		report.Devices = append(report.Devices, view)

		if view.Conflicts {
			summary.Conflicts++
			logger.Warn("Device has conflicting DHCP and ARP data",
				zap.String("device", device.ID()),
				zap.Strings("kinds", conflictKinds(device.Conflicts())))
		}
		if !device.ARP().Reported() {
			summary.DHCPOnly++
		}
		if view.OnBridge {
			summary.OnBridge++
		}
	}

	summary.Devices = len(report.Devices)
	summary.Dropped = len(report.Dropped)
	report.Summary = summary
	return report
}

func conflictKinds(c ConflictState) []string {
	kinds := c.Kinds()
	out := make([]string, len(kinds))
	for i, kind := range kinds {
		out[i] = string(kind)
	}
	return out
}

// Conflicting returns the merged views with at least one conflict.
func (r *Report) Conflicting() []MergedView {
	out := make([]MergedView, 0, r.Summary.Conflicts)
	for _, view := range r.Devices {
		if view.Conflicts {
			out = append(out, view)
		}
	}
	return out
}

// WithConflictsOnly returns a shallow copy of the report that keeps only
// conflicting devices. The summary still describes the full pass.
func (r *Report) WithConflictsOnly() *Report {
	cp := *r
	cp.Devices = r.Conflicting()
	return &cp
}

// Find returns the merged view for a hardware address, compared case-insensitively.
func (r *Report) Find(mac string) (MergedView, bool) {
	for _, view := range r.Devices {
		if strings.EqualFold(view.MACAddress, mac) {
			return view, true
		}
	}
	return MergedView{}, false
}
