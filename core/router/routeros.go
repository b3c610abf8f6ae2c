package router

import (
	"context"
	"crypto/tls"
	"fmt"
	"sort"
	"strings"

	"github.com/go-routeros/routeros/v3"
	"go.uber.org/zap"
)

// apiClient is the subset of *routeros.Client used by apiSession.
type apiClient interface {
	Run(sentence ...string) (*routeros.Reply, error)
	Close() error
}

// apiSession is a Session backed by the RouterOS API protocol.
type apiSession struct {
	client  apiClient
	address string
	logger  *zap.Logger
	closed  bool
}

// Open validates cfg and establishes an authenticated API session.
// Configuration problems are reported before any connection attempt.
func Open(ctx context.Context, cfg Config, logger *zap.Logger) (Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	address := cfg.Address()
	dialCtx, cancel := context.WithTimeout(ctx, cfg.Timeout())
	defer cancel()

	logger.Debug("Connecting to router",
		zap.String("address", address),
		zap.String("user", cfg.Username),
		zap.Bool("tls", cfg.UseTLS),
	)

	var (
		client *routeros.Client
		err    error
	)
	if cfg.UseTLS {
		client, err = routeros.DialTLSContext(dialCtx, address, cfg.Username, cfg.Password, tlsConfig(cfg))
	} else {
		client, err = routeros.DialContext(dialCtx, address, cfg.Username, cfg.Password)
	}
	if err != nil {
		return nil, fmt.Errorf("%w at %s: %v", ErrConnection, address, err)
	}

	logger.Debug("Router session established", zap.String("address", address))
	return newAPISession(client, address, logger), nil
}

// NewOpener returns an Opener that calls Open with the given configuration.
func NewOpener(cfg Config, logger *zap.Logger) Opener {
	return func(ctx context.Context) (Session, error) {
		return Open(ctx, cfg, logger)
	}
}

func newAPISession(client apiClient, address string, logger *zap.Logger) *apiSession {
	return &apiSession{client: client, address: address, logger: logger}
}

// tlsConfig builds the client TLS settings for API-SSL. Go does not offer the
// anonymous Diffie-Hellman suites, so the router must present a certificate.
func tlsConfig(cfg Config) *tls.Config {
	return &tls.Config{
		ServerName:         strings.TrimSpace(cfg.Host),
		InsecureSkipVerify: cfg.InsecureSkipVerify, //nolint:gosec // opt-in for self-signed router certificates
		MinVersion:         tls.VersionTLS12,
	}
}

// Query issues a print command against path. Filter entries become API query
// words, which RouterOS combines with AND.
func (s *apiSession) Query(ctx context.Context, path string, filter Filter) ([]Row, error) {
	if s.closed {
		return nil, fmt.Errorf("%w: %s: %w", ErrQuery, path, ErrSessionClosed)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrQuery, path, err)
	}

	words := printSentence(path, filter)
	s.logger.Debug("Querying router", zap.String("path", path), zap.Strings("words", words))

	reply, err := s.run(ctx, words)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrQuery, path, err)
	}

	rows := make([]Row, 0, len(reply.Re))
	for _, sentence := range reply.Re {
		row := make(Row, len(sentence.Map))
		for key, value := range sentence.Map {
			// ".id" is exposed as "id"
			row[strings.TrimPrefix(key, ".")] = value
		}
		rows = append(rows, row)
	}

	s.logger.Debug("Router query returned", zap.String("path", path), zap.Int("rows", len(rows)))
	return rows, nil
}

type runResult struct {
	reply *routeros.Reply
	err   error
}

// run waits for the reply or for ctx. The client has no way to abandon a
// pending command, so cancellation closes the connection and the session
// cannot be used afterwards.
func (s *apiSession) run(ctx context.Context, words []string) (*routeros.Reply, error) {
	done := make(chan runResult, 1)
	go func() {
		reply, err := s.client.Run(words...)
		done <- runResult{reply: reply, err: err}
	}()

	select {
	case res := <-done:
		return res.reply, res.err
	case <-ctx.Done():
		s.logger.Warn("Router query abandoned, closing connection", zap.String("address", s.address), zap.Error(ctx.Err()))
		s.closed = true
		_ = s.client.Close()
		return nil, ctx.Err()
	}
}

// Close terminates the API connection. Subsequent calls are no-ops.
func (s *apiSession) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.logger.Debug("Disconnecting from router", zap.String("address", s.address))
	return s.client.Close()
}

// printSentence builds the API words for a filtered print. Filter keys are
// sorted so the sentence is stable.
func printSentence(path string, filter Filter) []string {
	words := []string{strings.TrimRight(path, "/") + "/print"}
	keys := make([]string, 0, len(filter))
	for key := range filter {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		words = append(words, "?"+key+"="+filter[key])
	}
	return words
}
