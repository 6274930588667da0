// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package workerpool

import (
	"context"
	"errors"
	"runtime"
	"sync/atomic"
	"testing"
)

func TestNew(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	if pool.NumWorkers() != 4 {
		t.Errorf("NumWorkers() = %d, want 4", pool.NumWorkers())
	}
}

func TestNewDefault(t *testing.T) {
	pool := New(0)
	defer pool.Close()

	if pool.NumWorkers() != runtime.GOMAXPROCS(0) {
		t.Errorf("NumWorkers() = %d, want %d", pool.NumWorkers(), runtime.GOMAXPROCS(0))
	}
}

func TestForEach(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	n := 1000
	results := make([]int, n)
	err := pool.ForEach(context.Background(), n, func(i int) error {
		results[i] = i * 2
		return nil
	})
	if err != nil {
		t.Fatalf("ForEach() error = %v", err)
	}
	for i := range n {
		if results[i] != i*2 {
			t.Errorf("results[%d] = %d, want %d", i, results[i], i*2)
		}
	}
}

func TestForEachReuse(t *testing.T) {
	pool := New(3)
	defer pool.Close()

	for round := range 10 {
		var count atomic.Int64
		if err := pool.ForEach(context.Background(), 57, func(int) error {
			count.Add(1)
			return nil
		}); err != nil {
			t.Fatalf("round %d: ForEach() error = %v", round, err)
		}
		if got := count.Load(); got != 57 {
			t.Errorf("round %d: ran %d items, want 57", round, got)
		}
	}
}

func TestForEachError(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	boom := errors.New("boom")
	var ran atomic.Int64
	err := pool.ForEach(context.Background(), 10000, func(i int) error {
		ran.Add(1)
		if i == 10 {
			return boom
		}
		return nil
	})
	if !errors.Is(err, boom) {
		t.Fatalf("ForEach() error = %v, want boom", err)
	}
	if ran.Load() == 10000 {
		t.Error("ForEach kept going after an error")
	}
}

func TestForEachCanceled(t *testing.T) {
	pool := New(2)
	defer pool.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var ran atomic.Int64
	err := pool.ForEach(ctx, 100, func(int) error {
		ran.Add(1)
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("ForEach() error = %v, want context.Canceled", err)
	}
	if ran.Load() != 0 {
		t.Errorf("ran %d items after cancellation", ran.Load())
	}
}

func TestForEachAfterClose(t *testing.T) {
	pool := New(4)
	pool.Close()
	pool.Close()

	sum := 0
	err := pool.ForEach(context.Background(), 10, func(i int) error {
		sum += i
		return nil
	})
	if err != nil || sum != 45 {
		t.Errorf("ForEach() on closed pool = %v, sum %d, want nil, 45", err, sum)
	}
}

func TestForEachEmpty(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	if err := pool.ForEach(context.Background(), 0, func(int) error {
		t.Error("fn called for n=0")
		return nil
	}); err != nil {
		t.Errorf("ForEach(0) error = %v", err)
	}
}
