package cmd

import (
	"context"
	"net"
	"testing"

	"lotobot/infrastructure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

func TestNewEventBus_InProcessWithoutServers(t *testing.T) {
	t.Parallel()

	bus, client, err := newEventBus(context.Background(), "", infrastructure.NewHealthServer("127.0.0.1:0"))

	require.NoError(t, err)
	assert.Nil(t, client)
	assert.IsType(t, &infrastructure.LocalEventPublisher{}, bus)
}

func TestNewEventBus_UnreachableServer(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping network test in short mode")
	}
	t.Parallel()

	// a port that was just released refuses connections
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())

	health := infrastructure.NewHealthServer("127.0.0.1:0")
	bus, client, err := newEventBus(context.Background(), "nats://"+addr, health)

	require.Error(t, err)
	assert.ErrorContains(t, err, "failed to set up NATS event bus")
	assert.Nil(t, bus)
	assert.Nil(t, client)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, health.Refresh(context.Background()),
		"no nats checker is registered when the connection fails")
}
