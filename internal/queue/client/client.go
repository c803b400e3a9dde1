package client

import (
	"context"
	"sync"

	"github.com/hibiken/asynq"
)

type ctxKey int

const (
	_ ctxKey = iota
	asynqCtxKey
)

var (
	globalClient *asynq.Client
	globalMu     sync.RWMutex
)

// GetClient returns the asynq client carried by ctx if present, otherwise the
// global client set with SetClient. Safe for concurrent use. A nil result
// means the queue is not configured.
func GetClient(ctx context.Context) *asynq.Client {
	if c := ctx.Value(asynqCtxKey); c != nil {
		client, ok := c.(*asynq.Client)
		if !ok {
			return nil
		}
		return client
	}

	globalMu.RLock()
	client := globalClient
	globalMu.RUnlock()

	return client
}

// SetClient replaces the global client and returns a function restoring the
// previous one. Safe for concurrent use.
func SetClient(client *asynq.Client) func() {
	globalMu.Lock()
	prev := globalClient
	globalClient = client
	globalMu.Unlock()
	return func() { SetClient(prev) }
}

// WithClient returns a context carrying its own asynq client, used by tests
// to bypass the global.
func WithClient(ctx context.Context, client *asynq.Client) context.Context {
	return context.WithValue(ctx, asynqCtxKey, client)
}
