// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"sync"
)

// =============================================================================
// STREAM GUARD
// =============================================================================

// streamGuard pairs the cancel func of the in-flight request with a
// monotonically increasing generation counter. Starting a new stream or
// stopping the current one bumps the generation, which invalidates every
// message still in flight from the previous stream.
//
// Used as a pointer since it contains a mutex.
type streamGuard struct {
	mu         sync.Mutex
	generation int
	cancelFunc context.CancelFunc
}

// newStreamGuard creates a guard at generation zero.
func newStreamGuard() *streamGuard {
	return &streamGuard{}
}

// begin cancels any previous stream, bumps the generation and returns the
// new generation with a context for the next request.
func (g *streamGuard) begin(parent context.Context) (int, context.Context) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.cancelFunc != nil {
		g.cancelFunc()
	}

	g.generation++
	ctx, cancel := context.WithCancel(parent)
	g.cancelFunc = cancel
	return g.generation, ctx
}

// stop cancels the in-flight stream and bumps the generation so late
// messages are discarded. Idempotent.
func (g *streamGuard) stop() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.cancelFunc != nil {
		g.cancelFunc()
		g.cancelFunc = nil
		g.generation++
	}
}

// finish releases the cancel func after a stream ended on its own. The
// generation is kept so the terminal message still matches.
func (g *streamGuard) finish() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.cancelFunc != nil {
		g.cancelFunc()
		g.cancelFunc = nil
	}
}

// current returns the active generation.
func (g *streamGuard) current() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.generation
}

// matches reports whether gen is the active generation.
func (g *streamGuard) matches(gen int) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return gen == g.generation
}
