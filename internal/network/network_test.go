package network_test

import (
	"context"
	"net"
	"net/http/httptest"
	"testing"
	"time"

	"news_reader/internal/network"

	"github.com/stretchr/testify/require"
)

func TestNewDialChecker(t *testing.T) {
	c, err := network.NewDialChecker("https://content.guardianapis.com/search", time.Second)
	require.NoError(t, err)
	require.Equal(t, "content.guardianapis.com:443", c.Addr)

	c, err = network.NewDialChecker("http://localhost:8081/search", time.Second)
	require.NoError(t, err)
	require.Equal(t, "localhost:8081", c.Addr)

	_, err = network.NewDialChecker("/relative", time.Second)
	require.Error(t, err)
}

func TestDialChecker_Connected(t *testing.T) {
	server := httptest.NewServer(nil)
	defer server.Close()

	c, err := network.NewDialChecker(server.URL, time.Second)
	require.NoError(t, err)
	require.True(t, c.Connected(context.Background()))
}

func TestDialChecker_Unreachable(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())

	c := &network.DialChecker{Addr: addr, Timeout: 200 * time.Millisecond}
	require.False(t, c.Connected(context.Background()))
}

func TestStatic(t *testing.T) {
	require.True(t, network.Static(true).Connected(context.Background()))
	require.False(t, network.Static(false).Connected(context.Background()))
}
