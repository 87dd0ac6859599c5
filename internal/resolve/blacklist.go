// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resolve

import (
	"path"
	"strings"

	"google.golang.org/closuretypes/internal/setutil"
	"google.golang.org/closuretypes/internal/tstype"
)

// PathBlacklist is the set of fully-qualified source paths whose symbols
// always translate to the unknown sentinel, normalized to OS-neutral form
// at construction. It is immutable for the lifetime of a translator
// instance. Matching is exact-path rather than glob-based: the blacklist is
// a closed, pre-expanded list of files, not a directory-prefix pattern.
type PathBlacklist struct {
	paths setutil.Strings
}

// NewPathBlacklist normalizes every given path (backslashes to forward
// slashes, "." segments cleaned) and returns the resulting blacklist.
func NewPathBlacklist(paths ...string) *PathBlacklist {
	b := &PathBlacklist{paths: setutil.NewStrings()}
	for _, p := range paths {
		b.paths.Add(normalizePath(p))
	}
	return b
}

// Contains reports whether p (after the same normalization) is blacklisted.
func (b *PathBlacklist) Contains(p string) bool {
	if b == nil {
		return false
	}
	return b.paths.Contains(normalizePath(p))
}

func normalizePath(p string) string {
	p = strings.ReplaceAll(p, `\`, "/")
	return path.Clean(p)
}

// IsBlacklisted reports whether sym is blacklisted: every one of its
// declarations' source-file path (normalized) is in the blacklist. A
// symbol with no declarations is never blacklisted.
func (b *PathBlacklist) IsBlacklisted(sym *tstype.Symbol) bool {
	if b == nil || sym == nil || len(sym.Declarations) == 0 {
		return false
	}
	for _, d := range sym.Declarations {
		if d.File == nil || !b.Contains(d.File.Filename) {
			return false
		}
	}
	return true
}
