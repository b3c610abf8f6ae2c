package export

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"device-inventory/core/reconcile"

	"github.com/nats-io/nats.go"
)

// Publisher is the subset of *nats.Conn used by NATSSink.
type Publisher interface {
	Publish(subject string, data []byte) error
	FlushTimeout(timeout time.Duration) error
	Close()
}

// NATSSink publishes one JSON message per pass.
type NATSSink struct {
	conn    Publisher
	subject string
	timeout time.Duration
}

// NewNATSSink creates a sink over an existing connection.
func NewNATSSink(conn Publisher, subject string, timeout time.Duration) *NATSSink {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &NATSSink{conn: conn, subject: subject, timeout: timeout}
}

// ConnectNATS dials the configured server and returns a sink over it.
func ConnectNATS(cfg NATSConfig) (*NATSSink, error) {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	opts := []nats.Option{
		nats.Name(cfg.Name),
		nats.Timeout(timeout),
	}
	if cfg.User != "" {
		opts = append(opts, nats.UserInfo(cfg.User, cfg.Password))
	}

	conn, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS at %s: %w", cfg.URL, err)
	}
	return NewNATSSink(conn, cfg.Subject, timeout), nil
}

// Name returns the sink name.
func (s *NATSSink) Name() string { return SinkNATS }

// Export publishes the report and waits for the server to acknowledge the flush.
func (s *NATSSink) Export(ctx context.Context, report *reconcile.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	if err := s.conn.Publish(s.subject, data); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", s.subject, err)
	}
	if err := s.conn.FlushTimeout(s.timeout); err != nil {
		return fmt.Errorf("failed to flush NATS connection: %w", err)
	}
	return nil
}

// Close closes the connection.
func (s *NATSSink) Close() error {
	s.conn.Close()
	return nil
}
