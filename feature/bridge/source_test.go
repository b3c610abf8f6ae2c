package bridge

import (
	"context"
	"errors"
	"testing"

	"device-inventory/core/router"
	"device-inventory/core/router/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func hostRows() []router.Row {
	return []router.Row{
		{
			"id":           "*10",
			"mac-address":  "AA:BB:CC:00:11:22",
			"bridge":       "bridge1",
			"on-interface": "ether3",
			"vid":          "10",
			"local":        "false",
			"external":     "false",
			"dynamic":      "true",
			"invalid":      "false",
			"disabled":     "false",
		},
	}
}

func TestParseHost(t *testing.T) {
	host := ParseHost(hostRows()[0])

	assert.Equal(t, "bridge1", host.Bridge)
	assert.Equal(t, "ether3", host.OnInterface)
	require.NotNil(t, host.VID)
	assert.Equal(t, 10, *host.VID)
	assert.True(t, *host.Dynamic)
	assert.False(t, *host.Local)
}

func TestParseHost_MissingVID(t *testing.T) {
	host := ParseHost(router.Row{"mac-address": "AA:BB:CC:00:11:22"})

	assert.Nil(t, host.VID)
	assert.Nil(t, host.Local)
}

func TestSource_BridgeHosts(t *testing.T) {
	session := new(mocks.Session)
	session.On("Query", mock.Anything, router.PathBridgeHost, router.Filter{"mac-address": "AA:BB:CC:00:11:22"}).
		Return(hostRows(), nil)

	hosts, err := NewSource(session, nil).BridgeHosts(context.Background(), "AA:BB:CC:00:11:22")

	require.NoError(t, err)
	require.Len(t, hosts, 1)
	assert.Equal(t, "bridge1", *hosts[0].Bridge)
	assert.True(t, hosts[0].Reported())
	session.AssertExpectations(t)
}

func TestSource_ByMAC(t *testing.T) {
	session := router.NewStaticSession(map[string][]router.Row{router.PathBridgeHost: hostRows()})
	source := NewSource(session, nil)

	host, err := source.ByMAC(context.Background(), "AA:BB:CC:00:11:22")
	require.NoError(t, err)
	assert.Equal(t, "*10", host.ID)

	all, err := source.FetchAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestSource_QueryFailure(t *testing.T) {
	session := new(mocks.Session)
	session.On("Query", mock.Anything, router.PathBridgeHost, mock.Anything).Return(nil, errors.New("no such command"))

	host, err := NewSource(session, nil).ByMAC(context.Background(), "AA:BB:CC:00:11:22")

	assert.ErrorIs(t, err, router.ErrQuery)
	assert.Nil(t, host)
}
