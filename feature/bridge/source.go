package bridge

import (
	"context"

	"device-inventory/core/reconcile"
	"device-inventory/core/router"

	"go.uber.org/zap"
)

// Source queries the bridge host table over an injected session.
type Source struct {
	session router.Session
	logger  *zap.Logger
}

// NewSource creates a new bridge host source.
func NewSource(session router.Session, logger *zap.Logger) *Source {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Source{session: session, logger: logger.Named("bridge")}
}

// FetchAll returns every bridge host.
func (s *Source) FetchAll(ctx context.Context) ([]Host, error) {
	return s.query(ctx, nil)
}

// FetchAllByField returns every host whose field equals value.
func (s *Source) FetchAllByField(ctx context.Context, field, value string) ([]Host, error) {
	return s.query(ctx, router.Filter{field: value})
}

// FetchByField returns the first host whose field equals value, or nil when none match.
func (s *Source) FetchByField(ctx context.Context, field, value string) (*Host, error) {
	hosts, err := s.FetchAllByField(ctx, field, value)
	if err != nil || len(hosts) == 0 {
		return nil, err
	}
	return &hosts[0], nil
}

// ByMAC returns the first host entry for a hardware address.
func (s *Source) ByMAC(ctx context.Context, mac string) (*Host, error) {
	return s.FetchByField(ctx, "mac-address", mac)
}

// BridgeHosts implements reconcile.BridgeSource.
func (s *Source) BridgeHosts(ctx context.Context, mac string) ([]reconcile.BridgeFields, error) {
	hosts, err := s.FetchAllByField(ctx, "mac-address", mac)
	if err != nil {
		return nil, err
	}
	out := make([]reconcile.BridgeFields, 0, len(hosts))
	for _, host := range hosts {
		out = append(out, host.Fields())
	}
	return out, nil
}

func (s *Source) query(ctx context.Context, filter router.Filter) ([]Host, error) {
	s.logger.Debug("Querying bridge hosts", zap.Any("filter", filter))

	rows, err := s.session.Query(ctx, router.PathBridgeHost, filter)
	if err != nil {
		s.logger.Error("Bridge host query failed", zap.Any("filter", filter), zap.Error(err))
		return nil, router.QueryError(router.PathBridgeHost, err)
	}

	hosts := make([]Host, 0, len(rows))
	for _, row := range rows {
		hosts = append(hosts, ParseHost(row))
	}
	return hosts, nil
}
