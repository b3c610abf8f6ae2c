package reconcile

import (
	"fmt"
	"strings"
)

// ARPPolicy decides what happens when several ARP rows share a hardware address.
type ARPPolicy string

const (
	// ARPPolicyFirst applies the first row and ignores the rest.
	ARPPolicyFirst ARPPolicy = "first"
	// ARPPolicyFlag applies the first row and records the rest as candidates,
	// raising an arp_multiple conflict when their addresses differ.
	ARPPolicyFlag ARPPolicy = "flag"
)

// ParseARPPolicy converts a configuration value into an ARPPolicy.
// The empty string selects ARPPolicyFirst.
func ParseARPPolicy(value string) (ARPPolicy, error) {
	switch ARPPolicy(strings.ToLower(strings.TrimSpace(value))) {
	case "", ARPPolicyFirst:
		return ARPPolicyFirst, nil
	case ARPPolicyFlag:
		return ARPPolicyFlag, nil
	default:
		return "", fmt.Errorf("%w: %q (expected first or flag)", ErrInvalidARPPolicy, value)
	}
}

// Options tune a single pass.
type Options struct {
	// ActiveOnly restricts the anchor set to bound leases.
	ActiveOnly bool
	// ARPPolicy handles multiple ARP rows per hardware address.
	ARPPolicy ARPPolicy
	// StrictLookups makes ARP and bridge lookup failures fatal.
	StrictLookups bool
}

// Config holds the reconcile section of the application configuration.
type Config struct {
	ActiveOnly    bool   `mapstructure:"active_only" default:"false"`
	IncludeBridge bool   `mapstructure:"include_bridge" default:"false"`
	ARPPolicy     string `mapstructure:"arp_policy" default:"first"`
	StrictLookups bool   `mapstructure:"strict_lookups" default:"false"`
}

// Options validates the configuration and converts it into pass options.
func (c Config) Options() (Options, error) {
	policy, err := ParseARPPolicy(c.ARPPolicy)
	if err != nil {
		return Options{}, err
	}
	return Options{
		ActiveOnly:    c.ActiveOnly,
		ARPPolicy:     policy,
		StrictLookups: c.StrictLookups,
	}, nil
}
