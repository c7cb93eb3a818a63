package metrics

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/gategrid/internal/geom"
	"github.com/vk/gategrid/internal/inmemoryscene"
	"github.com/vk/gategrid/internal/scenestore"
)

func TestInstrumentStore(t *testing.T) {
	backend := inmemoryscene.New()
	store := InstrumentStore(backend)
	ctx := context.Background()

	okBefore := testutil.ToFloat64(BackendRequests.WithLabelValues(scenestore.OpCreateGate, ResultSuccess))
	errBefore := testutil.ToFloat64(BackendRequests.WithLabelValues(scenestore.OpCreateGate, ResultError))

	require.NoError(t, store.CreateGate(ctx, "main", "AND", geom.Pt(0, 0)))

	backend.Fail(scenestore.OpCreateGate, errors.New("down"))
	require.Error(t, store.CreateGate(ctx, "main", "AND", geom.Pt(0, 0)))

	assert.Equal(t, okBefore+1, testutil.ToFloat64(BackendRequests.WithLabelValues(scenestore.OpCreateGate, ResultSuccess)))
	assert.Equal(t, errBefore+1, testutil.ToFloat64(BackendRequests.WithLabelValues(scenestore.OpCreateGate, ResultError)))

	gates, err := store.ListGates(ctx, "main")
	require.NoError(t, err)
	assert.Len(t, gates, 1)
}
