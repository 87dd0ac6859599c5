// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tstypego backs tstype.Checker with Go's own go/types semantic
// model: a loaded Go package's exported API stands in for the
// "upstream type-checked program" the translator consumes. A Go struct
// plays the role of a TS interface; a Go slice plays the role of an array
// type; a Go pointer's pointee plays the role of a nullable reference's
// target; and so on. Fed through translate.Translator, a Checker's types
// render a Go package's public surface as Closure-style JSDoc type strings.
//
// Identity and caching use a golang.org/x/tools/go/types/typeutil.Map
// keyed by go/types.Type identity (types.Identical), so every occurrence of
// the same named type, or of structurally identical unnamed types, collapses
// to one *tstype.Type, and so the Recursion Set (keyed by
// tstype.Type.Identity) actually catches Go's recursive struct/interface
// definitions. Two distinct named types stay distinct even when their
// underlying types are the same.
package tstypego

import (
	"go/ast"
	"go/token"
	"go/types"

	"github.com/dave/dst"
	"golang.org/x/tools/go/ast/astutil"
	"golang.org/x/tools/go/types/typeutil"

	"google.golang.org/closuretypes/internal/goload"
	"google.golang.org/closuretypes/internal/tstype"
)

// Checker adapts one loaded Go package to tstype.Checker.
type Checker struct {
	pkg *goload.Package

	types        typeutil.Map // types.Type -> *tstype.Type
	symbols      map[types.Object]*tstype.Symbol
	files        map[string]*tstype.SourceFile
	fileOfNode   map[dst.Node]*tstype.SourceFile
	symbolAtNode map[dst.Node]*tstype.Symbol
}

// New returns a Checker backed by pkg.
func New(pkg *goload.Package) *Checker {
	return &Checker{
		pkg:          pkg,
		symbols:      map[types.Object]*tstype.Symbol{},
		files:        map[string]*tstype.SourceFile{},
		fileOfNode:   map[dst.Node]*tstype.SourceFile{},
		symbolAtNode: map[dst.Node]*tstype.Symbol{},
	}
}

// RefForObject returns the dst.Node a caller should pass as the reference
// site when translating obj's declared type: the declaration's own name
// identifier, found in the package's syntax and carried over into the
// dst.File goload decorated alongside it. It reports nil if obj's position
// does not land in any file of the loaded package (a builtin or otherwise
// synthetic object).
//
// The returned node is what later FileOfNode/SymbolAtLocation calls for the
// same ref resolve against; RefForObject populates both caches for it
// before returning.
func (c *Checker) RefForObject(obj types.Object) dst.Node {
	if obj == nil || c.pkg.Decorator == nil {
		return nil
	}
	pos := obj.Pos()
	astFile := c.astFileForPos(pos)
	if astFile == nil {
		return nil
	}
	path, _ := astutil.PathEnclosingInterval(astFile, pos, pos)
	var ident *ast.Ident
	for _, n := range path {
		if id, ok := n.(*ast.Ident); ok {
			ident = id
			break
		}
	}
	if ident == nil {
		return nil
	}
	node, ok := c.pkg.Decorator.Dst.Nodes[ident]
	if !ok {
		return nil
	}
	c.fileOfNode[node] = c.fileFor(c.pkg.Fset.Position(pos).Filename)
	c.symbolAtNode[node] = c.symbolFor(obj)
	return node
}

// astFileForPos returns the *ast.File among the package's syntax files that
// contains pos, or nil if none does.
func (c *Checker) astFileForPos(pos token.Pos) *ast.File {
	tf := c.pkg.Fset.File(pos)
	if tf == nil {
		return nil
	}
	for _, f := range c.pkg.Syntax {
		if c.pkg.Fset.File(f.Pos()) == tf {
			return f
		}
	}
	return nil
}

// TypeOf converts a go/types.Type into the tstype.Type the translator
// consumes, memoizing by structural identity so repeated references to the
// same underlying type (e.g. a recursive struct field) share one
// tstype.Type and therefore one Recursion Set entry.
func (c *Checker) TypeOf(t types.Type) *tstype.Type {
	if t == nil {
		return nil
	}
	if cached := c.types.At(t); cached != nil {
		return cached.(*tstype.Type)
	}

	out := &tstype.Type{}
	out.SetIdentity(t)
	// Insert the placeholder before recursing into fields/elements so a
	// cyclic struct sees its own entry already present.
	c.types.Set(t, out)
	c.convertInto(t, out)
	return out
}

func (c *Checker) convertInto(t types.Type, out *tstype.Type) {
	switch u := t.Underlying().(type) {
	case *types.Basic:
		c.convertBasic(u, out)
	case *types.Pointer:
		c.convertPointer(t, u, out)
	case *types.Slice:
		c.convertSlice(u, out)
	case *types.Array:
		c.convertSlice(types.NewSlice(u.Elem()), out)
	case *types.Map:
		c.convertMap(u, out)
	case *types.Struct:
		c.convertStruct(t, u, out)
	case *types.Interface:
		c.convertInterface(t, u, out)
	case *types.Signature:
		c.convertSignature(u, out)
	default:
		out.Kind = tstype.NonPrimitive
	}
}

func (c *Checker) convertBasic(b *types.Basic, out *tstype.Type) {
	switch b.Info() {
	case types.IsBoolean:
		out.Kind = tstype.Boolean
	case types.IsString:
		out.Kind = tstype.String
	default:
		switch {
		case b.Info()&types.IsInteger != 0, b.Info()&types.IsFloat != 0, b.Info()&types.IsComplex != 0:
			out.Kind = tstype.Number
		case b.Kind() == types.UntypedNil:
			out.Kind = tstype.Null
		default:
			out.Kind = tstype.Unknown
		}
	}
}

// convertPointer models a Go pointer as a reference wrapping its pointee,
// the same way a nullable class reference wraps its class in the target
// dialect; Go's "maybe-nil" pointer is the closest domain analog to a
// reference type whose translation can collapse to "?" when its target is
// inexpressible.
func (c *Checker) convertPointer(t types.Type, p *types.Pointer, out *tstype.Type) {
	out.Kind = tstype.Object
	out.Flags = tstype.Reference
	out.Target = c.TypeOf(p.Elem())
}

func (c *Checker) convertSlice(s *types.Slice, out *tstype.Type) {
	arraySym := c.builtinSymbol("Array")
	out.Kind = tstype.Object
	out.Flags = tstype.Reference
	out.Target = &tstype.Type{Kind: tstype.Object, Flags: tstype.Interface, Symbol: arraySym}
	out.TypeArgs = []*tstype.Type{c.TypeOf(s.Elem())}
}

func (c *Checker) convertMap(m *types.Map, out *tstype.Type) {
	out.Kind = tstype.Object
	out.Flags = tstype.Anonymous
	if basic, ok := m.Key().Underlying().(*types.Basic); ok && basic.Info()&types.IsString != 0 {
		out.StringIndexType = c.TypeOf(m.Elem())
	} else {
		out.NumberIndexType = c.TypeOf(m.Elem())
	}
	out.Members = map[string]*tstype.Symbol{tstype.ReservedIndexMember: {Name: "__index"}}
}

func (c *Checker) convertStruct(named types.Type, s *types.Struct, out *tstype.Type) {
	out.Kind = tstype.Object
	if n, ok := named.(*types.Named); ok && n.Obj() != nil {
		out.Flags = tstype.Interface
		out.Symbol = c.symbolFor(n.Obj())
		return
	}
	// An unnamed struct literal type has no symbol to name it by; render it
	// as an anonymous object instead.
	out.Flags = tstype.Anonymous
	members := map[string]*tstype.Symbol{}
	for i := 0; i < s.NumFields(); i++ {
		f := s.Field(i)
		if !f.Exported() {
			continue
		}
		members[f.Name()] = c.symbolFor(f)
	}
	out.Members = members
}

func (c *Checker) convertInterface(named types.Type, iface *types.Interface, out *tstype.Type) {
	out.Kind = tstype.Object
	out.Flags = tstype.Interface
	if n, ok := named.(*types.Named); ok && n.Obj() != nil {
		out.Symbol = c.symbolFor(n.Obj())
	}
}

func (c *Checker) convertSignature(sig *types.Signature, out *tstype.Type) {
	out.Kind = tstype.Object
	out.Flags = tstype.Anonymous
	callSig := c.signatureFor(sig)
	out.CallSignatures = []*tstype.Signature{callSig}
	out.Members = map[string]*tstype.Symbol{tstype.ReservedCallMember: {Name: "__call"}}
}

func (c *Checker) signatureFor(sig *types.Signature) *tstype.Signature {
	out := &tstype.Signature{HasRealDeclaration: true}
	params := sig.Params()
	for i := 0; i < params.Len(); i++ {
		p := params.At(i)
		rest := sig.Variadic() && i == params.Len()-1
		out.Params = append(out.Params, &tstype.Param{
			Name:        p.Name(),
			Type:        c.TypeOf(p.Type()),
			Rest:        rest,
			HasDeclared: true,
		})
	}
	switch sig.Results().Len() {
	case 0:
		out.Return = &tstype.Type{Kind: tstype.Void}
	case 1:
		out.Return = c.TypeOf(sig.Results().At(0).Type())
	default:
		// Go's multi-value return has no analog in the target dialect;
		// approximate with the first result and let the caller's own
		// diagnostics flag the mismatch if it matters.
		out.Return = c.TypeOf(sig.Results().At(0).Type())
	}
	return out
}

// symbolFor returns the (cached) tstype.Symbol for a go/types.Object.
func (c *Checker) symbolFor(obj types.Object) *tstype.Symbol {
	if obj == nil {
		return nil
	}
	if sym, ok := c.symbols[obj]; ok {
		return sym
	}
	sym := &tstype.Symbol{Name: obj.Name()}
	c.symbols[obj] = sym
	if pos := c.pkg.Fset.Position(obj.Pos()); pos.IsValid() {
		sym.Declarations = []*tstype.Declaration{{
			File:               c.fileFor(pos.Filename),
			HasRealDeclaration: true,
		}}
	}
	return sym
}

func (c *Checker) fileFor(filename string) *tstype.SourceFile {
	if f, ok := c.files[filename]; ok {
		return f
	}
	f := &tstype.SourceFile{Filename: filename}
	c.files[filename] = f
	return f
}

// builtinSymbol returns a synthetic, declaration-free symbol standing in
// for a target-dialect built-in (e.g. "Array"), matching the convention
// translate.isBuiltinProvidedType relies on (no declarations => built-in).
func (c *Checker) builtinSymbol(name string) *tstype.Symbol {
	return &tstype.Symbol{Name: name}
}

// EntityNameForSymbol implements tstype.Checker.
func (c *Checker) EntityNameForSymbol(sym *tstype.Symbol) ([]tstype.EntityNameSegment, bool) {
	if sym == nil || sym.Name == "" {
		return nil, false
	}
	return []tstype.EntityNameSegment{{Text: sym.Name, Symbol: sym}}, true
}

// BaseTypeOfLiteral implements tstype.Checker. Go's type system has no
// literal-type/enum-member split the way TS does; const declarations
// typed by a Named type are the closest analog, so the base type of a
// "literal" is simply the type itself. The translator reads a base type
// equal to the literal as the degenerate single-member case; this adapter
// never produces EnumLiteral types, so that path is not reached from it.
func (c *Checker) BaseTypeOfLiteral(t *tstype.Type) *tstype.Type {
	return t
}

// SignaturesOfType implements tstype.Checker.
func (c *Checker) SignaturesOfType(t *tstype.Type) (call, construct []*tstype.Signature) {
	if t == nil {
		return nil, nil
	}
	return t.CallSignatures, t.ConstructSignatures
}

// TypeOfSymbolAtLocation implements tstype.Checker. The location argument
// is unused: this adapter's symbols are go/types.Object-backed and carry
// one fixed type regardless of reference site (Go has no narrowing).
func (c *Checker) TypeOfSymbolAtLocation(sym *tstype.Symbol, _ dst.Node) *tstype.Type {
	for obj, s := range c.symbols {
		if s == sym {
			return c.TypeOf(obj.Type())
		}
	}
	return nil
}

// ReturnTypeOfSignature implements tstype.Checker.
func (c *Checker) ReturnTypeOfSignature(sig *tstype.Signature) *tstype.Type {
	if sig == nil {
		return nil
	}
	return sig.Return
}

// IndexTypeOfType implements tstype.Checker.
func (c *Checker) IndexTypeOfType(t *tstype.Type, kind tstype.IndexKind) *tstype.Type {
	if t == nil {
		return nil
	}
	if kind == tstype.StringIndex {
		return t.StringIndexType
	}
	return t.NumberIndexType
}

// SymbolAtLocation implements tstype.Checker. ref resolves only if it was
// previously returned by RefForObject, which is how this adapter learns the
// symbol bound at a reference site (go/types has no node-keyed symbol table
// of its own; the dst.Node identity is the bridge RefForObject builds).
func (c *Checker) SymbolAtLocation(ref dst.Node) *tstype.Symbol {
	return c.symbolAtNode[ref]
}

// AliasedSymbol implements tstype.Checker. Go's type system has no import
// aliasing at the symbol level analogous to a TS "import X = Y" alias
// (Go's import aliases rename a package, not a type), so this adapter
// never reports a symbol as an alias.
func (c *Checker) AliasedSymbol(*tstype.Symbol) (*tstype.Symbol, bool) {
	return nil, false
}

// FileOfNode implements tstype.Checker. Like SymbolAtLocation, it only
// resolves a ref previously returned by RefForObject; an unrecognized ref
// (including nil) reports "unknown file", which the Resolver treats as
// "does not match" when deciding whether a mangled prefix applies.
func (c *Checker) FileOfNode(ref dst.Node) *tstype.SourceFile {
	return c.fileOfNode[ref]
}

var _ tstype.Checker = (*Checker)(nil)
