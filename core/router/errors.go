package router

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration is returned when the router credentials are missing or incomplete.
	ErrConfiguration = errors.New("router configuration is incomplete")
	// ErrConnection is returned when the API session cannot be established.
	ErrConnection = errors.New("failed to connect to router")
	// ErrQuery is returned when a query against a resource path fails.
	ErrQuery = errors.New("router query failed")
	// ErrSessionClosed is returned by queries issued after Close.
	ErrSessionClosed = errors.New("router session is closed")
)

// QueryError wraps err with ErrQuery unless it already carries it.
func QueryError(path string, err error) error {
	if err == nil || errors.Is(err, ErrQuery) {
		return err
	}
	return fmt.Errorf("%w: %s: %w", ErrQuery, path, err)
}
