package tracing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"testament/internal/platform/config"
)

func TestSetup_NoopWithoutEndpoint(t *testing.T) {
	shutdown, err := Setup(context.Background(), config.Tracing{ServiceName: "testament"})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, shutdown(ctx))
}

func TestSetup_InstallsProvider(t *testing.T) {
	// 192.0.2.0/24 is reserved for documentation; nothing is exported.
	shutdown, err := Setup(context.Background(), config.Tracing{
		Endpoint:    "http://192.0.2.1:4318",
		ServiceName: "testament-test",
		SampleRatio: 0,
	})
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
}
