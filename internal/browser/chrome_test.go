package browser

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayscan/hotelworker/logger"
)

func TestOpContextBoundsSingleOperation(t *testing.T) {
	s := &ChromeSession{
		ctx:     context.Background(),
		timeout: time.Minute,
		log:     logger.ForBrowser(),
	}

	octx, cancel := s.opContext()
	defer cancel()

	deadline, ok := octx.Deadline()
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(time.Minute), deadline, 5*time.Second)

	// The session context must never carry the deadline; only individual
	// operations are bounded.
	_, sessionBounded := s.ctx.Deadline()
	assert.False(t, sessionBounded)

	// Cancelling a finished operation leaves the session usable.
	cancel()
	assert.NoError(t, s.ctx.Err())

	next, nextCancel := s.opContext()
	defer nextCancel()
	assert.NoError(t, next.Err())
}

func TestOpContextWithoutTimeout(t *testing.T) {
	s := &ChromeSession{ctx: context.Background(), log: logger.ForBrowser()}

	octx, cancel := s.opContext()
	defer cancel()

	_, ok := octx.Deadline()
	assert.False(t, ok)
}
