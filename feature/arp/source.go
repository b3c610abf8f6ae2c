package arp

import (
	"context"

	"device-inventory/core/reconcile"
	"device-inventory/core/router"

	"go.uber.org/zap"
)

// Source queries the ARP table over an injected session.
type Source struct {
	session router.Session
	logger  *zap.Logger
}

// NewSource creates a new ARP source.
func NewSource(session router.Session, logger *zap.Logger) *Source {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Source{session: session, logger: logger.Named("arp")}
}

// FetchAll returns every ARP entry.
func (s *Source) FetchAll(ctx context.Context) ([]Entry, error) {
	return s.query(ctx, nil)
}

// FetchAllByField returns every entry whose field equals value.
func (s *Source) FetchAllByField(ctx context.Context, field, value string) ([]Entry, error) {
	return s.query(ctx, router.Filter{field: value})
}

// FetchByField returns the first entry whose field equals value, or nil when none match.
func (s *Source) FetchByField(ctx context.Context, field, value string) (*Entry, error) {
	entries, err := s.FetchAllByField(ctx, field, value)
	if err != nil || len(entries) == 0 {
		return nil, err
	}
	return &entries[0], nil
}

// ByMAC returns the first entry for a hardware address.
func (s *Source) ByMAC(ctx context.Context, mac string) (*Entry, error) {
	return s.FetchByField(ctx, "mac-address", mac)
}

// ByIP returns the first entry for an address.
func (s *Source) ByIP(ctx context.Context, ip string) (*Entry, error) {
	return s.FetchByField(ctx, "address", ip)
}

// ARPEntries implements reconcile.ARPSource.
func (s *Source) ARPEntries(ctx context.Context, mac string) ([]reconcile.ARPFields, error) {
	entries, err := s.FetchAllByField(ctx, "mac-address", mac)
	if err != nil {
		return nil, err
	}
	out := make([]reconcile.ARPFields, 0, len(entries))
	for _, entry := range entries {
		out = append(out, entry.Fields())
	}
	return out, nil
}

func (s *Source) query(ctx context.Context, filter router.Filter) ([]Entry, error) {
	s.logger.Debug("Querying ARP table", zap.Any("filter", filter))

	rows, err := s.session.Query(ctx, router.PathARP, filter)
	if err != nil {
		s.logger.Error("ARP query failed", zap.Any("filter", filter), zap.Error(err))
		return nil, router.QueryError(router.PathARP, err)
	}

	entries := make([]Entry, 0, len(rows))
	for _, row := range rows {
		entry := ParseEntry(row)
		if entry.Status != "" && !entry.Status.Known() {
			s.logger.Warn("Unknown ARP status", zap.String("id", entry.ID), zap.String("status", string(entry.Status)))
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
