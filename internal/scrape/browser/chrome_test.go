package browser

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScopedContext_CallerCancelPropagates(t *testing.T) {
	tab := context.Background()
	caller, cancelCaller := context.WithCancel(context.Background())

	ctx, cancel := scopedContext(tab, caller, time.Minute)
	defer cancel()

	require.NoError(t, ctx.Err())
	cancelCaller()

	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("derived context did not observe caller cancellation")
	}
}

func TestScopedContext_TimeoutStillApplies(t *testing.T) {
	ctx, cancel := scopedContext(context.Background(), context.Background(), 10*time.Millisecond)
	defer cancel()

	select {
	case <-ctx.Done():
		assert.ErrorIs(t, ctx.Err(), context.DeadlineExceeded)
	case <-time.After(time.Second):
		t.Fatal("derived context missed its deadline")
	}
}

func TestScopedContext_TabCancelPropagates(t *testing.T) {
	tab, cancelTab := context.WithCancel(context.Background())

	ctx, cancel := scopedContext(tab, context.Background(), time.Minute)
	defer cancel()

	cancelTab()

	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("derived context did not observe tab cancellation")
	}
}
