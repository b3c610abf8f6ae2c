package dhcp

import (
	"context"

	"device-inventory/core/reconcile"
	"device-inventory/core/router"

	"go.uber.org/zap"
)

// Source queries the lease table over an injected session.
type Source struct {
	session router.Session
	logger  *zap.Logger
}

// NewSource creates a new lease source.
func NewSource(session router.Session, logger *zap.Logger) *Source {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Source{session: session, logger: logger.Named("dhcp")}
}

// FetchAll returns every lease.
func (s *Source) FetchAll(ctx context.Context) ([]Lease, error) {
	return s.query(ctx, nil)
}

// FetchActive returns leases whose status is bound.
func (s *Source) FetchActive(ctx context.Context) ([]Lease, error) {
	return s.query(ctx, router.Filter{"status": string(StatusBound)})
}

// FetchAllByField returns every lease whose field equals value.
func (s *Source) FetchAllByField(ctx context.Context, field, value string) ([]Lease, error) {
	return s.query(ctx, router.Filter{field: value})
}

// FetchByField returns the first lease whose field equals value, or nil when none match.
func (s *Source) FetchByField(ctx context.Context, field, value string) (*Lease, error) {
	leases, err := s.FetchAllByField(ctx, field, value)
	if err != nil || len(leases) == 0 {
		return nil, err
	}
	return &leases[0], nil
}

// ByMAC returns the lease for a hardware address.
func (s *Source) ByMAC(ctx context.Context, mac string) (*Lease, error) {
	return s.FetchByField(ctx, "mac-address", mac)
}

// ByIP returns the lease for an address.
func (s *Source) ByIP(ctx context.Context, ip string) (*Lease, error) {
	return s.FetchByField(ctx, "address", ip)
}

// Leases implements reconcile.LeaseSource.
func (s *Source) Leases(ctx context.Context, activeOnly bool) ([]reconcile.DHCPFields, error) {
	fetch := s.FetchAll
	if activeOnly {
		fetch = s.FetchActive
	}
	leases, err := fetch(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]reconcile.DHCPFields, 0, len(leases))
	for _, lease := range leases {
		out = append(out, lease.Fields())
	}
	return out, nil
}

func (s *Source) query(ctx context.Context, filter router.Filter) ([]Lease, error) {
	s.logger.Debug("Querying leases", zap.Any("filter", filter))

	rows, err := s.session.Query(ctx, router.PathDHCPLease, filter)
	if err != nil {
		s.logger.Error("Lease query failed", zap.Any("filter", filter), zap.Error(err))
		return nil, router.QueryError(router.PathDHCPLease, err)
	}

	leases := make([]Lease, 0, len(rows))
	for _, row := range rows {
		lease := ParseLease(row)
		if lease.Status != "" && !lease.Status.Known() {
			s.logger.Warn("Unknown lease status", zap.String("id", lease.ID), zap.String("status", string(lease.Status)))
		}
		leases = append(leases, lease)
	}
	return leases, nil
}
