package router

import "context"

// Resource paths queried by the record source adapters.
const (
	PathDHCPLease  = "/ip/dhcp-server/lease"
	PathARP        = "/ip/arp"
	PathBridgeHost = "/interface/bridge/host"
)

// Row is one record returned by the router. RouterOS returns every scalar as a string.
type Row map[string]string

// Get returns the value for key, or an empty string if the attribute is absent.
func (r Row) Get(key string) string {
	return r[key]
}

// Filter restricts a query to rows whose attributes equal the given values.
// Multiple entries are combined with AND.
type Filter map[string]string

// Session is an authenticated handle on the router API.
type Session interface {
	// Query returns the rows of the resource at path matching filter.
	Query(ctx context.Context, path string, filter Filter) ([]Row, error)
	// Close releases the underlying connection.
	Close() error
}

// Opener opens a new Session. One is called per reconciliation pass.
type Opener func(ctx context.Context) (Session, error)
