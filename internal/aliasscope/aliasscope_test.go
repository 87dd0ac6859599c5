// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package aliasscope_test

import (
	"testing"

	"google.golang.org/closuretypes/internal/aliasscope"
	"google.golang.org/closuretypes/internal/tstype"
)

func TestGetMissing(t *testing.T) {
	s := aliasscope.New()
	sym := &tstype.Symbol{Name: "Foo"}
	if _, ok := s.Get(sym); ok {
		t.Errorf("Get() on empty scope returned ok=true")
	}
}

func TestSetAndGet(t *testing.T) {
	s := aliasscope.New()
	sym := &tstype.Symbol{Name: "Foo"}
	s.Set(sym, "tsickle_m_1.Foo")
	got, ok := s.Get(sym)
	if !ok || got != "tsickle_m_1.Foo" {
		t.Errorf("Get() = %q, %v; want %q, true", got, ok, "tsickle_m_1.Foo")
	}
}

func TestBlacklistSetsUnknownSentinel(t *testing.T) {
	s := aliasscope.New()
	sym := &tstype.Symbol{Name: "T"}
	s.Blacklist(sym)
	if !s.IsBlacklisted(sym) {
		t.Errorf("IsBlacklisted() = false after Blacklist()")
	}
	got, _ := s.Get(sym)
	if got != aliasscope.Unknown {
		t.Errorf("Get() = %q, want sentinel %q", got, aliasscope.Unknown)
	}
}

func TestBlacklistTypeParametersIsIdempotent(t *testing.T) {
	sym := &tstype.Symbol{Name: "T"}
	decl := &tstype.Declaration{Kind: tstype.TypeParameterDecl, Symbol: sym}

	s := aliasscope.New()
	aliasscope.BlacklistTypeParameters(s, []*tstype.Declaration{decl})
	aliasscope.BlacklistTypeParameters(s, []*tstype.Declaration{decl})

	if !s.IsBlacklisted(sym) {
		t.Errorf("IsBlacklisted() = false after two idempotent calls")
	}
}

func TestBlacklistTypeParametersIgnoresOtherKinds(t *testing.T) {
	sym := &tstype.Symbol{Name: "Foo"}
	decl := &tstype.Declaration{Kind: tstype.ClassDecl, Symbol: sym}

	s := aliasscope.New()
	aliasscope.BlacklistTypeParameters(s, []*tstype.Declaration{decl})

	if s.IsBlacklisted(sym) {
		t.Errorf("IsBlacklisted() = true for a non-type-parameter declaration")
	}
}
