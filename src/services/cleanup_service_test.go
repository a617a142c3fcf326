package services

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type countingRemover struct {
	calls atomic.Int32
}

func (c *countingRemover) DeleteExpired() int {
	c.calls.Add(1)
	return 1
}

func TestCleanupService_Sweep(t *testing.T) {
	remover := &countingRemover{}
	service := NewCleanupService(remover, time.Hour)

	assert.Equal(t, 1, service.Sweep())
	assert.Equal(t, int32(1), remover.calls.Load())
}

func TestCleanupService_StartStop(t *testing.T) {
	remover := &countingRemover{}
	service := NewCleanupService(remover, 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	service.Start(ctx)

	assert.Eventually(t, func() bool { return remover.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
	service.Stop()
}
