// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tstype

import "github.com/dave/dst"

// EntityNameSegment is one dotted segment of a fully-qualified entity name,
// as returned by Checker.EntityNameForSymbol. Text is the segment's source
// spelling; Symbol is the symbol that segment refers to (used by the
// resolver to consult the Alias Scope and to dereference import aliases).
type EntityNameSegment struct {
	Text   string
	Symbol *Symbol
}

// Checker is the query surface the type translator needs from the upstream
// semantic analyzer. It is supplied by the host; this package places no
// constraints on how it is implemented beyond the documented contracts of
// each method.
type Checker interface {
	// EntityNameForSymbol returns the fully-qualified dotted entity name for
	// sym, or ok=false if the checker cannot name it (e.g. sym is
	// anonymous).
	EntityNameForSymbol(sym *Symbol) (segments []EntityNameSegment, ok bool)

	// BaseTypeOfLiteral returns the base (widened) type of a literal type,
	// e.g. the enum type of a single enum-literal value.
	BaseTypeOfLiteral(t *Type) *Type

	// SignaturesOfType returns the call and construct signatures of t.
	SignaturesOfType(t *Type) (call, construct []*Signature)

	// TypeOfSymbolAtLocation returns the type of sym as observed at the
	// reference site ref (relevant for generic instantiation/narrowing).
	TypeOfSymbolAtLocation(sym *Symbol, ref dst.Node) *Type

	// ReturnTypeOfSignature returns sig's return type.
	ReturnTypeOfSignature(sig *Signature) *Type

	// IndexTypeOfType returns the value type of t's index signature of the
	// given kind, or nil if t has none.
	IndexTypeOfType(t *Type, kind IndexKind) *Type

	// SymbolAtLocation returns the symbol bound at the reference site ref,
	// if any.
	SymbolAtLocation(ref dst.Node) *Symbol

	// AliasedSymbol dereferences an import-alias symbol to the symbol it
	// ultimately refers to.
	AliasedSymbol(sym *Symbol) (*Symbol, bool)

	// FileOfNode returns the source file containing ref. The Symbol
	// Resolver needs this to decide whether a symbol's declarations are "in
	// the current file" when computing a mangled prefix; it is the concrete
	// mechanism by which "the current reference site" resolves to a file in
	// this module's go/types-backed realization.
	FileOfNode(ref dst.Node) *SourceFile
}

// EnsureDeclaredFunc is the host callback invoked by the Symbol Resolver
// before naming a symbol outside externs mode. It may inject a
// forward-declare import and register a new alias in an Alias Scope it holds
// itself; it receives only the symbol and the reference site.
// The default (used when the host supplies none) is a no-op.
type EnsureDeclaredFunc func(sym *Symbol, ref dst.Node)

// NoopEnsureDeclared is the default EnsureDeclaredFunc.
func NoopEnsureDeclared(*Symbol, dst.Node) {}
