// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package aliasscope implements the Alias Scope: a mutable mapping
// from a symbol's identity to the textual alias the current emission
// context should use to refer to it, including the blacklist sentinel
// meaning "this symbol is inexpressible, emit the unknown sentinel".
package aliasscope

import "google.golang.org/closuretypes/internal/tstype"

// Unknown is the sentinel alias value meaning "emit the unknown sentinel (?)
// instead of a name".
const Unknown = "?"

// Scope is a mutable symbol -> alias string map shared across a single
// source file's translations. Mutations (notably
// BlacklistTypeParameters) persist for the remainder of the file's
// emission; it is the caller's responsibility to start a fresh Scope per
// file. The zero value is not usable; construct with New.
type Scope struct {
	aliases map[*tstype.Symbol]string
}

// New returns an empty Scope.
func New() *Scope {
	return &Scope{aliases: make(map[*tstype.Symbol]string)}
}

// Set records that sym should be referred to as alias for the remainder of
// this scope's lifetime. Last writer wins.
func (s *Scope) Set(sym *tstype.Symbol, alias string) {
	s.aliases[sym] = alias
}

// Get returns the alias recorded for sym, if any.
func (s *Scope) Get(sym *tstype.Symbol) (string, bool) {
	a, ok := s.aliases[sym]
	return a, ok
}

// Blacklist records that sym is inexpressible in the target dialect; any
// reference to it translates to the unknown sentinel.
func (s *Scope) Blacklist(sym *tstype.Symbol) {
	s.Set(sym, Unknown)
}

// IsBlacklisted reports whether sym is recorded as inexpressible.
func (s *Scope) IsBlacklisted(sym *tstype.Symbol) bool {
	a, ok := s.Get(sym)
	return ok && a == Unknown
}

// BlacklistTypeParameters blacklists the symbol of every generic
// type-parameter declaration among decls. The target dialect has no
// generic function types, so any reference to a signature's own type
// parameters must fall back to the unknown sentinel. This
// operation is idempotent: blacklisting an already-blacklisted symbol has
// no further effect (it is set to Unknown again).
func BlacklistTypeParameters(s *Scope, decls []*tstype.Declaration) {
	for _, d := range decls {
		if d == nil || d.Kind != tstype.TypeParameterDecl || d.Symbol == nil {
			continue
		}
		s.Blacklist(d.Symbol)
	}
}
