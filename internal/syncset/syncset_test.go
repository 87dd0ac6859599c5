// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syncset

import (
	"sync"
	"testing"
)

func TestSeen(t *testing.T) {
	s := NewSeen()
	if !s.MarkFirst("module$a") {
		t.Error("MarkFirst(module$a) returned false for an empty set")
	}
	if s.MarkFirst("module$a") {
		t.Error("MarkFirst(module$a) returned true for a set already containing it")
	}
	if !s.MarkFirst("module$b") {
		t.Error("MarkFirst(module$b) returned false for a set without it")
	}
}

func TestSeenConcurrentClaimsExactlyOneWinner(t *testing.T) {
	var wg sync.WaitGroup
	s := NewSeen()
	wins := make(chan bool, 100)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			wins <- s.MarkFirst("module$shared")
		}()
	}
	wg.Wait()
	close(wins)
	firstCount := 0
	for w := range wins {
		if w {
			firstCount++
		}
	}
	if firstCount != 1 {
		t.Errorf("got %d winners for a shared name claimed concurrently, want exactly 1", firstCount)
	}
}
