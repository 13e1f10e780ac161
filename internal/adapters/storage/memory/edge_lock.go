package memory

import (
	"context"
	"sync"
)

// EdgeLock es un mutex de proceso que respeta la cancelación del contexto.
type EdgeLock struct {
	ch chan struct{}
}

func NewEdgeLock() *EdgeLock {
	return &EdgeLock{ch: make(chan struct{}, 1)}
}

func (l *EdgeLock) Lock(ctx context.Context) (func(), error) {
	select {
	case l.ch <- struct{}{}:
		var once sync.Once
		return func() { once.Do(func() { <-l.ch }) }, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
