package server_test

import (
	"testing"
	"time"

	"device-inventory/core/server"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Address(t *testing.T) {
	tests := []struct {
		name string
		port string
		want string
	}{
		{"Configured", "9090", ":9090"},
		{"Empty", "", ":8080"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := server.Config{Port: tt.port}
			assert.Equal(t, tt.want, c.Address())
		})
	}
}

func TestConfig_AuthEnabled(t *testing.T) {
	assert.False(t, server.Config{}.AuthEnabled())
	assert.True(t, server.Config{ApiKey: "secret"}.AuthEnabled())
}

func TestConfig_RequestTimeout(t *testing.T) {
	assert.Equal(t, time.Minute, server.Config{}.RequestTimeout())
	assert.Equal(t, 5*time.Second, server.Config{RequestTimeoutSeconds: 5}.RequestTimeout())
}
