package selection

import (
	"context"
	"errors"
	"testing"

	"github.com/couchcryptid/office-picker/internal/observability"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFastPath_RememberCheckForget(t *testing.T) {
	store := newMemStore()
	m := observability.NewMetricsForTesting()
	fp := NewFastPath(store, discardLogger(), m)
	ctx := context.Background()

	_, ok := fp.Check(ctx)
	assert.False(t, ok)

	require.NoError(t, fp.Remember(ctx, "f1"))
	v, _ := store.value(RememberedFacilityKey)
	assert.Equal(t, "f1", v)

	id, ok := fp.Check(ctx)
	assert.True(t, ok)
	assert.Equal(t, "f1", id)

	require.NoError(t, fp.Forget(ctx))
	_, ok = fp.Check(ctx)
	assert.False(t, ok)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.FastPath.WithLabelValues("hit")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.FastPath.WithLabelValues("miss")))
}

func TestFastPath_ReadErrorIsMiss(t *testing.T) {
	store := newMemStore()
	store.values[RememberedFacilityKey] = "f1"
	store.getErr = errors.New("database is locked")
	fp := NewFastPath(store, discardLogger(), observability.NewMetricsForTesting())

	_, ok := fp.Check(context.Background())
	assert.False(t, ok)
}

func TestFastPath_EmptyValueIsMiss(t *testing.T) {
	store := newMemStore()
	store.values[RememberedFacilityKey] = ""
	fp := NewFastPath(store, discardLogger(), observability.NewMetricsForTesting())

	_, ok := fp.Check(context.Background())
	assert.False(t, ok)
}

func TestFastPath_RememberError(t *testing.T) {
	store := newMemStore()
	store.setErr = errors.New("disk full")
	fp := NewFastPath(store, discardLogger(), observability.NewMetricsForTesting())

	err := fp.Remember(context.Background(), "f1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "f1")
}

func TestFastPath_Remembered(t *testing.T) {
	store := newMemStore()
	m := observability.NewMetricsForTesting()
	fp := NewFastPath(store, discardLogger(), m)

	_, ok, err := fp.Remembered(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)

	store.values[RememberedFacilityKey] = "f1"
	id, ok, err := fp.Remembered(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "f1", id)
	assert.Equal(t, 0.0, testutil.ToFloat64(m.FastPath.WithLabelValues("hit")))

	store.getErr = errors.New("locked")
	_, _, err = fp.Remembered(context.Background())
	require.Error(t, err)
}
