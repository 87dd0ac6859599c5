// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package externs assembles the translator's per-file output under
// mangled file identifiers into one flat, collision-free namespace for a
// pipeline's combined externs output. The externs-mode switch itself is
// the ExternsMode field of translate.Translator and resolve.Resolver.
package externs

import (
	"sort"
	"strings"
	"sync"

	"google.golang.org/closuretypes/internal/mangle"
	"google.golang.org/closuretypes/internal/syncset"
)

// Namespace tracks which mangled file identifiers have already been
// assigned, so that two distinct filenames that would otherwise mangle to
// the same identifier (mangle.File folds some distinct characters
// together) still get distinct names within one combined externs file.
// It is itself safe for concurrent use, backed by a syncset.Seen.
type Namespace struct {
	seen *syncset.Seen
}

// NewNamespace returns an empty Namespace.
func NewNamespace() *Namespace {
	return &Namespace{seen: syncset.NewSeen()}
}

// MangledName returns the collision-free mangled identifier for filename,
// claiming it in the same step: mangle.CollisionFree probes candidates in
// order and MarkFirst only reports true the first time any given candidate
// is asked for, so the candidate the probe settles on is atomically the one
// this call claims.
func (n *Namespace) MangledName(filename string) string {
	return mangle.CollisionFree(filename, func(candidate string) bool {
		return !n.seen.MarkFirst(candidate)
	})
}

// File is one source file's contribution to the combined externs output:
// its mangled identifier and the already-translated declaration bodies
// emitted under it.
type File struct {
	Filename string
	Mangled  string
	Bodies   []string
}

// Assembler collects File entries and renders the combined externs text in
// a deterministic order (by mangled identifier) so build-to-build diffs
// stay minimal. Add is safe to call from multiple goroutines at once, since
// translatecmd fans per-package translation out across an errgroup.
type Assembler struct {
	mu    sync.Mutex
	ns    *Namespace
	files map[string]*File
}

// NewAssembler returns an empty Assembler.
func NewAssembler() *Assembler {
	return &Assembler{ns: NewNamespace(), files: map[string]*File{}}
}

// Add registers one translated declaration body under filename, mangling
// the filename on first use.
func (a *Assembler) Add(filename, body string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	f, ok := a.files[filename]
	if !ok {
		f = &File{Filename: filename, Mangled: a.ns.MangledName(filename)}
		a.files[filename] = f
	}
	f.Bodies = append(f.Bodies, body)
}

// Render emits the combined externs text: one comment-delimited section per
// file, ordered by mangled identifier for determinism.
func (a *Assembler) Render() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	files := make([]*File, 0, len(a.files))
	for _, f := range a.files {
		files = append(files, f)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Mangled < files[j].Mangled })

	var b strings.Builder
	for _, f := range files {
		b.WriteString("// ")
		b.WriteString(f.Filename)
		b.WriteString("\n")
		for _, body := range f.Bodies {
			b.WriteString(body)
			b.WriteString("\n")
		}
	}
	return b.String()
}
