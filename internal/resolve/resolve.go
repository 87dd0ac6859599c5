// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package resolve implements the Symbol Resolver: it walks a symbol's
// declarations, classifies where they live, and produces the dotted,
// correctly-mangled, alias-aware name a reference to that symbol should use
// in the target dialect.
package resolve

import (
	"strings"

	"github.com/dave/dst"

	"google.golang.org/closuretypes/internal/aliasscope"
	"google.golang.org/closuretypes/internal/mangle"
	"google.golang.org/closuretypes/internal/tstype"
)

// sentinelNamespace is stripped from the leftmost position of any resolved
// name. It is how one upstream
// collaborator surfaces certain globals; the translator consumes names
// without it.
const sentinelNamespace = "ಠ_ಠ.clutz."

// Resolver implements symbol-to-string against a given checker,
// alias scope, and externs-mode setting.
type Resolver struct {
	Checker        tstype.Checker
	Scope          *aliasscope.Scope
	ExternsMode    bool
	EnsureDeclared tstype.EnsureDeclaredFunc
}

// SymbolToString produces a dotted name for sym relative to ref, or ok=false
// when sym cannot be named (e.g. it is anonymous).
func (r *Resolver) SymbolToString(sym *tstype.Symbol, ref dst.Node) (string, bool) {
	ensureDeclared := r.EnsureDeclared
	if ensureDeclared == nil {
		ensureDeclared = tstype.NoopEnsureDeclared
	}

	// Step 1: outside externs mode, a non-type-parameter symbol may need a
	// forward-declare import registered before it can be named.
	if !r.ExternsMode && !sym.Flags.Has(tstype.SymTypeParameter) {
		ensureDeclared(sym, ref)
	}

	// Step 2: fully-qualified entity name resolution.
	segs, ok := r.Checker.EntityNameForSymbol(sym)
	if !ok {
		return "", false
	}

	// Step 3: walk the entity name left to right.
	var out strings.Builder
	for i, seg := range segs {
		s2 := seg.Symbol
		if s2 != nil && s2.Flags.Has(tstype.Alias) {
			if target, ok := r.Checker.AliasedSymbol(s2); ok {
				s2 = target
			}
		}
		if s2 != nil {
			if alias, ok := r.Scope.Get(s2); ok {
				// Discard all accumulated text and use the alias verbatim,
				// then stop walking.
				out.Reset()
				out.WriteString(alias)
				break
			}
		}
		if i == 0 {
			out.WriteString(r.mangledPrefix(s2, ref))
		} else {
			out.WriteString(".")
		}
		out.WriteString(seg.Text)
	}

	// Step 4: strip the sentinel namespace prefix, if present.
	return strings.TrimPrefix(out.String(), sentinelNamespace), true
}

// mangledPrefix computes the forced mangled-file prefix for the leftmost entity-name segment,
// whose carried symbol is sym (sym may be nil if the checker did not carry
// one for that segment, in which case no prefix applies).
func (r *Resolver) mangledPrefix(sym *tstype.Symbol, ref dst.Node) string {
	if sym == nil || len(sym.Declarations) == 0 {
		return ""
	}
	decls := sym.Declarations

	eligible := false
	for _, d := range decls {
		if d.IsTopLevelInExternalModule() || d.AmbientExternalModuleAncestor() != nil {
			eligible = true
			break
		}
	}
	if !eligible {
		return ""
	}

	if !r.ExternsMode {
		curFile := r.Checker.FileOfNode(ref)
		allLocalAmbientExported := true
		for _, d := range decls {
			sameFile := curFile != nil && d.File != nil && d.File.Filename == curFile.Filename
			if !sameFile || !d.Ambient || !d.Exported {
				allLocalAmbientExported = false
				break
			}
		}
		if !allLocalAmbientExported {
			return ""
		}
	}

	d0 := decls[0]
	filename := ""
	if d0.File != nil {
		filename = d0.File.Filename
	}
	if m := d0.AmbientExternalModuleAncestor(); m != nil {
		filename = m.Module.Text
	}
	return mangle.File(filename) + "."
}
