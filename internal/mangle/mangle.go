// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mangle implements the Name Mangler: a deterministic, pure
// transform from a source filename to a target-dialect identifier unique to
// that file. The translator treats the result as an opaque black box beyond
// the guarantee that it is a legal leading identifier in the target dialect.
package mangle

import (
	"strconv"
	"strings"
	"unicode"
)

// File turns filename into a legal leading target-dialect identifier. The
// transform is pure and deterministic: the same filename always mangles to
// the same identifier, and distinct filenames are extremely unlikely to
// collide (path segments are folded in, not discarded, so two files sharing
// a long common directory prefix still mangle to distinct identifiers).
func File(filename string) string {
	clean := strings.TrimSuffix(filename, extOf(filename))
	segs := splitPath(clean)

	var b strings.Builder
	b.WriteString("module$")
	for i, s := range segs {
		if i > 0 {
			b.WriteString("$")
		}
		b.WriteString(sanitizeSegment(s))
	}
	out := b.String()
	if out == "" || !isIdentStart(rune(out[0])) {
		out = "_" + out
	}
	return out
}

// CollisionFree returns File(filename), or a suffixed variant ("$2", "$3",
// ...) if taken reports the unsuffixed name is already in use. Callers that
// assemble a single flat namespace (e.g. an externs file combining many
// mangled filenames) use this to stay injective in practice even when two
// filenames would otherwise mangle to the same text (for example, because
// they differ only in characters the sanitizer folds together).
func CollisionFree(filename string, taken func(string) bool) string {
	base := File(filename)
	if !taken(base) {
		return base
	}
	for n := 2; ; n++ {
		candidate := base + "$" + strconv.Itoa(n)
		if !taken(candidate) {
			return candidate
		}
	}
}

func extOf(filename string) string {
	for i := len(filename) - 1; i >= 0; i-- {
		switch filename[i] {
		case '/':
			return ""
		case '.':
			return filename[i:]
		}
	}
	return ""
}

func splitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

// sanitizeSegment replaces every rune that isn't a legal identifier
// character with "_", and prefixes a leading "_" if the segment would
// otherwise start with a digit.
func sanitizeSegment(s string) string {
	var b strings.Builder
	for i, r := range s {
		if i == 0 && unicode.IsDigit(r) {
			b.WriteRune('_')
		}
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}

func isIdentStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}
