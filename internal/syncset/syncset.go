// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package syncset implements a concurrency-safe set of mangled identifiers.
// externs.Assembler's Namespace uses it to claim mangled filenames across
// the per-package goroutines translatecmd fans translation out across;
// Seen serializes those claims with its own mutex.
package syncset

import "sync"

// Seen tracks mangled identifiers that have already been emitted, across
// goroutines translating different packages concurrently.
type Seen struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

// NewSeen returns a new, empty Seen set.
func NewSeen() *Seen {
	return &Seen{seen: map[string]struct{}{}}
}

// MarkFirst records mangledName as seen and reports true iff this is the
// first time it has been recorded. Concurrent translators for distinct
// source files race to claim a mangled name; only the winner should emit it.
func (s *Seen) MarkFirst(mangledName string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.seen[mangledName]; ok {
		return false
	}
	s.seen[mangledName] = struct{}{}
	return true
}
