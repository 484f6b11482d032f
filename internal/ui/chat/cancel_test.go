// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"sync"
	"testing"
)

func TestGuardBeginBumpsGeneration(t *testing.T) {
	g := newStreamGuard()

	gen1, ctx1 := g.begin(context.Background())
	if gen1 != 1 {
		t.Errorf("Expected generation 1, got %d", gen1)
	}
	if !g.matches(gen1) {
		t.Error("Expected generation 1 to match")
	}

	gen2, _ := g.begin(context.Background())
	if gen2 != 2 {
		t.Errorf("Expected generation 2, got %d", gen2)
	}
	if g.matches(gen1) {
		t.Error("Old generation must not match after begin")
	}

	// Previous context is cancelled by the new begin
	select {
	case <-ctx1.Done():
	default:
		t.Error("Expected previous context cancelled")
	}
}

func TestGuardStopCancelsAndInvalidates(t *testing.T) {
	g := newStreamGuard()
	gen, ctx := g.begin(context.Background())

	g.stop()

	select {
	case <-ctx.Done():
	default:
		t.Error("Expected context cancelled on stop")
	}
	if g.matches(gen) {
		t.Error("Generation must be invalidated by stop")
	}
}

func TestGuardStopIdempotent(t *testing.T) {
	g := newStreamGuard()
	g.begin(context.Background())

	g.stop()
	before := g.current()
	g.stop()
	g.stop()

	if g.current() != before {
		t.Errorf("Repeated stop changed generation: %d -> %d", before, g.current())
	}
}

func TestGuardStopWithoutStream(t *testing.T) {
	g := newStreamGuard()
	g.stop() // must not panic
	if g.current() != 0 {
		t.Errorf("Stop without stream changed generation to %d", g.current())
	}
}

func TestGuardFinishKeepsGeneration(t *testing.T) {
	g := newStreamGuard()
	gen, ctx := g.begin(context.Background())

	g.finish()

	if !g.matches(gen) {
		t.Error("Finish must keep the generation current")
	}
	select {
	case <-ctx.Done():
	default:
		t.Error("Expected context released on finish")
	}
}

func TestGuardConcurrentAccess(t *testing.T) {
	g := newStreamGuard()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(3)
		go func() {
			defer wg.Done()
			g.begin(context.Background())
		}()
		go func() {
			defer wg.Done()
			g.stop()
		}()
		go func() {
			defer wg.Done()
			g.matches(g.current())
		}()
	}
	wg.Wait()
}
