// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tstype defines the data model the type translator operates on: an
// opaque type object, the symbols it may carry, and the declarations those
// symbols resolve to. The package has no parsing, no I/O, and no knowledge of
// any particular host type checker; adapters (tstypego, tstypefake) populate
// these structures on behalf of the upstream semantic analyzer described in
// the type translator's contract.
package tstype

// Kind is a bitfield describing which variant a Type is. Multiple bits can be
// set simultaneously (e.g. a union of string literals carries both the Union
// bit and, per member, a StringLiteral bit), mirroring how the source
// checker's type flags are encoded.
type Kind uint64

// Kind bits. Exactly the set of variants the translator's primary dispatch
// table distinguishes, plus the NonPrimitive early-exit kind.
const (
	Any Kind = 1 << iota
	Unknown
	String
	StringLiteral
	Number
	NumberLiteral
	Boolean
	BooleanLiteral
	Enum
	EnumLiteral
	BigInt
	ESSymbol
	UniqueESSymbol
	Void
	Undefined
	Null
	Never
	TypeParameter
	Object
	Union
	Intersection
	Conditional
	Substitution
	Index
	IndexedAccess
	NonPrimitive
)

// Has reports whether all bits in mask are set in k.
func (k Kind) Has(mask Kind) bool { return k&mask == mask }

// ObjectFlags further distinguishes Object-kind types. Like Kind, more than
// one bit may be set (e.g. a generic instantiation of a class is both Class
// and Instantiated), but the translator's object-kind dispatch matches in a
// fixed priority order, so only the first applicable flag in that order
// matters.
type ObjectFlags uint32

const (
	Class ObjectFlags = 1 << iota
	Interface
	Reference
	Tuple
	Anonymous
	Mapped
	Instantiated
	ObjectLiteral
)

func (f ObjectFlags) Has(mask ObjectFlags) bool { return f&mask == mask }

// SymbolFlags classifies what a Symbol denotes.
type SymbolFlags uint32

const (
	Value SymbolFlags = 1 << iota
	SymTypeParameter
	Alias
	Function
	Method
	Property
	EnumMember
	SymClass
	SymInterface
)

func (f SymbolFlags) Has(mask SymbolFlags) bool { return f&mask == mask }

// DeclKind names the syntactic shape of a Declaration.
type DeclKind int

const (
	OtherDecl DeclKind = iota
	ModuleDecl
	ClassDecl
	InterfaceDecl
	FunctionDecl
	SignatureDecl
	EnumDecl
	TypeParameterDecl
)

// ModuleName is the name of a module-declaration: either a quoted string
// literal (marking the declaration an ambient external module) or a plain
// identifier.
type ModuleName struct {
	Text            string
	IsStringLiteral bool
}

// SourceFile is the file a Declaration resides in.
type SourceFile struct {
	Filename          string
	IsDeclarationFile bool
}

// Declaration is an AST node carrying exactly the facts the translator
// needs: where it lives, whether it is ambient/exported, what kind it is,
// and its ancestor chain (needed to detect enclosing namespaces and ambient
// external modules).
type Declaration struct {
	File     *SourceFile
	Ambient  bool // combined modifier flags include the ambient bit
	Exported bool // combined modifier flags include the export bit
	Kind     DeclKind
	Parent   *Declaration // nil at the top of a file
	Module   *ModuleName  // set only when Kind == ModuleDecl

	// HasRealDeclaration is false for JSDoc-only or synthetic declarations.
	// Signature translation does not read this field; it checks
	// Signature.HasRealDeclaration instead.
	HasRealDeclaration bool

	// Symbol is set when Kind == TypeParameterDecl: the symbol this
	// type-parameter declaration introduces, needed by
	// BlacklistTypeParameters to record it in the Alias Scope.
	Symbol *Symbol
}

// IsTopLevelInExternalModule reports whether d sits directly in a source
// file (no ancestor declaration of its own). Every source file counts as an
// external module: SourceFile carries no flag that would mark a file as a
// global script.
func (d *Declaration) IsTopLevelInExternalModule() bool {
	if d == nil || d.Parent != nil {
		return false
	}
	return d.File != nil
}

// AmbientExternalModuleAncestor walks d's ancestor chain and returns the
// nearest enclosing ambient external module declaration, if any.
func (d *Declaration) AmbientExternalModuleAncestor() *Declaration {
	for p := d; p != nil; p = p.Parent {
		if p.Kind == ModuleDecl && p.Module != nil && p.Module.IsStringLiteral {
			return p
		}
	}
	return nil
}

// HasNamespaceAncestor reports whether d has a module-declaration ancestor
// that is not simply the file itself (i.e. a non-file namespace).
func (d *Declaration) HasNamespaceAncestor() bool {
	for p := d.Parent; p != nil; p = p.Parent {
		if p.Kind == ModuleDecl {
			return true
		}
	}
	return false
}

// Symbol is an opaque identity: two *Symbol values denote the same symbol iff
// they are the same pointer. Do not copy a Symbol by value.
type Symbol struct {
	Name         string
	Flags        SymbolFlags
	Declarations []*Declaration
	Parent       *Symbol
	Aliased      *Symbol // set when Flags has Alias
}

// IsAmbient reports whether any declaration of s is in a declaration file or
// has the ambient modifier anywhere up its ancestor chain.
func (s *Symbol) IsAmbient() bool {
	if s == nil {
		return false
	}
	for _, d := range s.Declarations {
		if d.File != nil && d.File.IsDeclarationFile {
			return true
		}
		for p := d; p != nil; p = p.Parent {
			if p.Ambient {
				return true
			}
		}
	}
	return false
}

// IsInNamespace reports whether any declaration of s has a non-file
// module-declaration ancestor.
func (s *Symbol) IsInNamespace() bool {
	if s == nil {
		return false
	}
	for _, d := range s.Declarations {
		if d.HasNamespaceAncestor() {
			return true
		}
	}
	return false
}

// IsModule reports whether any declaration of s resides in a source file that
// is an external module.
func (s *Symbol) IsModule() bool {
	if s == nil {
		return false
	}
	for _, d := range s.Declarations {
		if d.IsTopLevelInExternalModule() || d.HasNamespaceAncestor() {
			return true
		}
	}
	return false
}

// Param describes one parameter of a Signature.
type Param struct {
	Name        string
	Type        *Type
	Optional    bool
	Rest        bool
	HasDeclared bool // false for synthetic parameters without a real declaration
}

// Signature describes a call or construct signature.
type Signature struct {
	HasRealDeclaration bool
	TypeParameterDecls []*Declaration // blacklisted in scope before translating params/return
	ThisParam          *Param         // nil if no explicit this parameter
	Params             []*Param
	Return             *Type
}

// IndexKind selects which of an anonymous object's index signatures to query.
type IndexKind int

const (
	StringIndex IndexKind = iota
	NumberIndex
)

// Type is the opaque handle the translator consumes. Only the fields
// relevant to the active Kind/ObjectFlags are populated; others are left
// zero.
type Type struct {
	Kind   Kind
	Flags  ObjectFlags // meaningful only when Kind.Has(Object)
	Symbol *Symbol

	// Reference (ObjectFlags Reference)
	Target    *Type
	TypeArgs  []*Type

	// Union / Intersection
	UnionMembers []*Type

	// Signatures (anonymous objects and bare function types)
	CallSignatures      []*Signature
	ConstructSignatures []*Signature

	// Members of an anonymous object, keyed by property name. The reserved
	// sentinel keys ReservedCallMember/ReservedIndexMember mark the type as
	// callable/indexable respectively; their presence is looked up directly
	// in this map, there are no separate boolean flags.
	Members         map[string]*Symbol
	StringIndexType *Type
	NumberIndexType *Type

	// identity is what makes two *Type values "the same type" for purposes
	// of the Recursion Set and the reference self-cycle check. It defaults
	// to the Type's own pointer value (see Identity), but adapters backed by
	// an interned type representation may override it explicitly.
	identity any
}

// Identity returns the comparable value used to test whether two Types are
// "the same" for recursion detection and the reference self-cycle check.
// Defaults to t's own pointer.
func (t *Type) Identity() any {
	if t == nil {
		return nil
	}
	if t.identity != nil {
		return t.identity
	}
	return t
}

// SetIdentity overrides the comparable identity value for t. Adapters that
// deduplicate Type values (e.g. caching one *Type per underlying go/types
// type) should call this so that two distinct *Type instances describing the
// same underlying type compare equal for recursion purposes.
func (t *Type) SetIdentity(id any) { t.identity = id }

// PropertyNameRE is the pattern a member name must match to be emitted as an
// unquoted field in an anonymous object type.
const PropertyNameRE = `^[A-Za-z_][A-Za-z0-9_]*$`

// ReservedCallMember and ReservedIndexMember are the sentinel member names
// anonymous-object translation treats specially.
const (
	ReservedCallMember  = "__call"
	ReservedIndexMember = "__index"
)
