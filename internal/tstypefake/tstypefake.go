// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tstypefake provides a hermetic tstype.Checker implementation that
// does not depend on any real semantic analyzer and can be used in tests.
// Tests build the exact tstype.Type/Symbol graph a scenario calls for, by
// hand, instead of parsing and type-checking real source.
package tstypefake

import (
	"github.com/dave/dst"

	"google.golang.org/closuretypes/internal/tstype"
)

// Checker is a fully in-memory, test-only tstype.Checker. Every query is
// backed by maps populated directly by the test via the Set* helpers; a
// query for something the test never registered returns the zero value
// (nil / false), matching a checker that "doesn't know" about it.
type Checker struct {
	entityNames    map[*tstype.Symbol][]tstype.EntityNameSegment
	baseOfLiteral  map[*tstype.Type]*tstype.Type
	callSigs       map[*tstype.Type][]*tstype.Signature
	constructSigs  map[*tstype.Type][]*tstype.Signature
	typeAtLocation map[*tstype.Symbol]*tstype.Type
	returnTypes    map[*tstype.Signature]*tstype.Type
	stringIndex    map[*tstype.Type]*tstype.Type
	numberIndex    map[*tstype.Type]*tstype.Type
	symbolAt       map[dst.Node]*tstype.Symbol
	aliasTargets   map[*tstype.Symbol]*tstype.Symbol
	fileOfNode     map[dst.Node]*tstype.SourceFile
}

// New returns an empty fake checker.
func New() *Checker {
	return &Checker{
		entityNames:    map[*tstype.Symbol][]tstype.EntityNameSegment{},
		baseOfLiteral:  map[*tstype.Type]*tstype.Type{},
		callSigs:       map[*tstype.Type][]*tstype.Signature{},
		constructSigs:  map[*tstype.Type][]*tstype.Signature{},
		typeAtLocation: map[*tstype.Symbol]*tstype.Type{},
		returnTypes:    map[*tstype.Signature]*tstype.Type{},
		stringIndex:    map[*tstype.Type]*tstype.Type{},
		numberIndex:    map[*tstype.Type]*tstype.Type{},
		symbolAt:       map[dst.Node]*tstype.Symbol{},
		aliasTargets:   map[*tstype.Symbol]*tstype.Symbol{},
		fileOfNode:     map[dst.Node]*tstype.SourceFile{},
	}
}

// SetEntityName registers the fully-qualified entity name for sym.
func (c *Checker) SetEntityName(sym *tstype.Symbol, segs ...tstype.EntityNameSegment) {
	c.entityNames[sym] = segs
}

// SimpleEntityName is a convenience for the common case of a single-segment
// entity name whose carried symbol is sym itself.
func (c *Checker) SimpleEntityName(sym *tstype.Symbol) {
	c.SetEntityName(sym, tstype.EntityNameSegment{Text: sym.Name, Symbol: sym})
}

// SetBaseOfLiteral registers literalType's widened base type.
func (c *Checker) SetBaseOfLiteral(literalType, base *tstype.Type) {
	c.baseOfLiteral[literalType] = base
}

// SetSignatures registers t's call and construct signatures.
func (c *Checker) SetSignatures(t *tstype.Type, call, construct []*tstype.Signature) {
	c.callSigs[t] = call
	c.constructSigs[t] = construct
}

// SetTypeOfSymbol registers the type of sym as observed at any location.
func (c *Checker) SetTypeOfSymbol(sym *tstype.Symbol, t *tstype.Type) {
	c.typeAtLocation[sym] = t
}

// SetReturnType registers sig's return type.
func (c *Checker) SetReturnType(sig *tstype.Signature, t *tstype.Type) {
	c.returnTypes[sig] = t
}

// SetIndexTypes registers t's string/number index signature value types.
func (c *Checker) SetIndexTypes(t *tstype.Type, stringIdx, numberIdx *tstype.Type) {
	c.stringIndex[t] = stringIdx
	c.numberIndex[t] = numberIdx
}

// SetSymbolAtLocation registers the symbol bound at node ref.
func (c *Checker) SetSymbolAtLocation(ref dst.Node, sym *tstype.Symbol) {
	c.symbolAt[ref] = sym
}

// SetAlias registers that aliasSym is an import alias for target.
func (c *Checker) SetAlias(aliasSym, target *tstype.Symbol) {
	c.aliasTargets[aliasSym] = target
}

// SetFileOfNode registers the file containing node ref.
func (c *Checker) SetFileOfNode(ref dst.Node, f *tstype.SourceFile) {
	c.fileOfNode[ref] = f
}

func (c *Checker) EntityNameForSymbol(sym *tstype.Symbol) ([]tstype.EntityNameSegment, bool) {
	segs, ok := c.entityNames[sym]
	return segs, ok
}

func (c *Checker) BaseTypeOfLiteral(t *tstype.Type) *tstype.Type {
	return c.baseOfLiteral[t]
}

func (c *Checker) SignaturesOfType(t *tstype.Type) (call, construct []*tstype.Signature) {
	return c.callSigs[t], c.constructSigs[t]
}

func (c *Checker) TypeOfSymbolAtLocation(sym *tstype.Symbol, _ dst.Node) *tstype.Type {
	return c.typeAtLocation[sym]
}

func (c *Checker) ReturnTypeOfSignature(sig *tstype.Signature) *tstype.Type {
	return c.returnTypes[sig]
}

func (c *Checker) IndexTypeOfType(t *tstype.Type, kind tstype.IndexKind) *tstype.Type {
	if kind == tstype.StringIndex {
		return c.stringIndex[t]
	}
	return c.numberIndex[t]
}

func (c *Checker) SymbolAtLocation(ref dst.Node) *tstype.Symbol {
	return c.symbolAt[ref]
}

func (c *Checker) AliasedSymbol(sym *tstype.Symbol) (*tstype.Symbol, bool) {
	s, ok := c.aliasTargets[sym]
	return s, ok
}

func (c *Checker) FileOfNode(ref dst.Node) *tstype.SourceFile {
	return c.fileOfNode[ref]
}

var _ tstype.Checker = (*Checker)(nil)
