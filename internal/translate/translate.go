// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package translate implements the Type Translator: the component that
// converts a tstype.Type into the Closure-Compiler-style JSDoc type string
// the target dialect expects. It dispatches on the type's Kind/ObjectFlags
// bitfields; since the "switch" is over bitfields rather than Go's own type
// system, it is written out explicitly rather than expressed as a Go type
// switch.
package translate

import (
	"fmt"
	"go/token"
	"regexp"
	"sort"
	"strings"

	"github.com/dave/dst"

	"google.golang.org/closuretypes/internal/aliasscope"
	"google.golang.org/closuretypes/internal/diag"
	"google.golang.org/closuretypes/internal/resolve"
	"google.golang.org/closuretypes/internal/tstype"
)

// propertyNameRE is the compiled form of tstype.PropertyNameRE.
var propertyNameRE = regexp.MustCompile(tstype.PropertyNameRE)

// Translator implements translate(type) -> string against a given checker,
// scope, and optional path blacklist. A Translator is short-lived: its
// Recursion Set is per-instance and is never reset. The safe reading is
// that each top-level reference site constructs a fresh instance. Callers
// that translate many top-level reference sites in the same file should
// construct one Translator per site, sharing the same *aliasscope.Scope and
// Resolver across all of them.
type Translator struct {
	Checker     tstype.Checker
	Scope       *aliasscope.Scope
	Resolver    *resolve.Resolver
	Blacklist   *resolve.PathBlacklist
	Diag        *diag.Sink
	ExternsMode bool
	Ref         dst.Node

	seen map[any]bool
}

// New constructs a Translator. ref is the reference AST node the resulting
// translations are anchored to (used by the Resolver for current-file
// bookkeeping and by ensure-declared callbacks); it may be nil when no
// particular reference site applies (e.g. translating into an externs
// file).
func New(checker tstype.Checker, scope *aliasscope.Scope, resolver *resolve.Resolver, blacklist *resolve.PathBlacklist, sink *diag.Sink, ref dst.Node) *Translator {
	return &Translator{
		Checker:   checker,
		Scope:     scope,
		Resolver:  resolver,
		Blacklist: blacklist,
		Diag:      sink,
		Ref:       ref,
		seen:      map[any]bool{},
	}
}

func (t *Translator) warn(category diag.Category, format string, args ...any) {
	if t.Diag == nil {
		return
	}
	t.Diag.Warn(token.NoPos, category, format, args...)
}

// SymbolToString is the ancillary export of the same name: it
// consults the path blacklist before delegating to the Resolver. A
// blacklisted symbol reports ok=false, the same signal an unnameable symbol
// gives, so that every caller's existing "fall back to the unknown
// sentinel" path handles it uniformly: the blacklist silently drives the
// whole translated type to "?", not just the bare name.
func (t *Translator) SymbolToString(sym *tstype.Symbol) (string, bool) {
	if t.IsBlacklisted(sym) {
		return "", false
	}
	if t.Resolver == nil {
		return "", false
	}
	return t.Resolver.SymbolToString(sym, t.Ref)
}

// IsBlacklisted is the ancillary export of the same name.
func (t *Translator) IsBlacklisted(sym *tstype.Symbol) bool {
	return t.Blacklist.IsBlacklisted(sym)
}

// BlacklistTypeParameters is the ancillary export of the same name,
// delegating to the Alias Scope.
func (t *Translator) BlacklistTypeParameters(decls []*tstype.Declaration) {
	aliasscope.BlacklistTypeParameters(t.Scope, decls)
}

// Translate is the primary entry point: translate(type) -> string.
// It always returns a string; the only panics are the two structural
// violations this package documents (a reference's self-cycle check, and
// kind bits matching no case of the primary dispatch), both of which
// indicate the input violated the stated contract rather than anything
// recoverable.
func (t *Translator) Translate(typ *tstype.Type) string {
	if typ == nil {
		return "?"
	}

	// Early exits.
	if typ.Kind == tstype.NonPrimitive {
		return "!Object"
	}
	if t.seen[typ.Identity()] {
		return "?"
	}

	isAmbient, isInNamespace, isModule := declFacts(typ.Symbol)
	if isInNamespace && !isAmbient {
		return "?"
	}
	if t.ExternsMode && isModule && !isAmbient {
		return "?"
	}

	return t.dispatch(typ)
}

// declFacts computes the three booleans the early-exit checks derive from
// a symbol's declarations.
func declFacts(sym *tstype.Symbol) (isAmbient, isInNamespace, isModule bool) {
	if sym == nil {
		return false, false, false
	}
	isAmbient = sym.IsAmbient()
	isInNamespace = sym.IsInNamespace()
	isModule = sym.IsModule()
	return
}

// dispatch implements the primary type-kind dispatch.
func (t *Translator) dispatch(typ *tstype.Type) string {
	k := typ.Kind

	switch {
	case k == tstype.Any:
		return "?"
	case k == tstype.Unknown:
		return "*"
	case k == tstype.String, k == tstype.StringLiteral:
		return "string"
	case k == tstype.Number, k == tstype.NumberLiteral:
		return "number"
	case k == tstype.Boolean, k == tstype.BooleanLiteral:
		return "boolean"
	case k == tstype.ESSymbol, k == tstype.UniqueESSymbol:
		return "symbol"
	case k == tstype.Void:
		return "void"
	case k == tstype.Undefined:
		return "undefined"
	case k == tstype.BigInt:
		return "bigintPlaceholder"
	case k == tstype.Null:
		return "null"
	case k == tstype.Never:
		t.warn(diag.InexpressibleType, "never type is not expressible")
		return "?"
	case k == tstype.Enum:
		return t.enumSymbol(typ)
	case k == tstype.TypeParameter:
		return t.typeParameter(typ)
	case k.Has(tstype.Object):
		return t.translateObject(typ)
	case k.Has(tstype.Union):
		return t.translateUnion(typ)
	case k == tstype.Conditional, k == tstype.Substitution, k == tstype.Intersection,
		k == tstype.Index, k == tstype.IndexedAccess:
		t.warn(diag.InexpressibleType, "kind %v is not expressible", k)
		return "?"
	}

	// Multi-bit kinds not already handled above.
	if k.Has(tstype.Union) {
		return t.translateUnion(typ)
	}
	if k.Has(tstype.EnumLiteral) {
		return t.translateEnumLiteral(typ)
	}

	panic(fmt.Sprintf("translate: unmatched kind bits %v (debug: %+v)", k, typ))
}

func (t *Translator) enumSymbol(typ *tstype.Type) string {
	if typ.Symbol == nil {
		t.warn(diag.InexpressibleType, "enum type has no symbol")
		return "?"
	}
	name, ok := t.SymbolToString(typ.Symbol)
	if !ok {
		return "?"
	}
	return name
}

func (t *Translator) typeParameter(typ *tstype.Type) string {
	if typ.Symbol == nil {
		t.warn(diag.InexpressibleType, "type parameter has no symbol")
		return "?"
	}
	name, ok := t.SymbolToString(typ.Symbol)
	if !ok {
		return "?"
	}
	if !typ.Symbol.Flags.Has(tstype.SymTypeParameter) {
		return "!" + name
	}
	return name
}

// translateEnumLiteral translates an enum-literal type to its widened
// enum type's name.
func (t *Translator) translateEnumLiteral(typ *tstype.Type) string {
	base := t.Checker.BaseTypeOfLiteral(typ)
	if base == nil || base.Symbol == nil {
		return "?"
	}
	sym := base.Symbol
	if base.Identity() == typ.Identity() {
		// Degenerate single-member enum: substitute the symbol's parent if
		// one is present.
		if sym.Parent == nil {
			return "?"
		}
		sym = sym.Parent
	}
	name, ok := t.SymbolToString(sym)
	if !ok {
		return "?"
	}
	return "!" + name
}

// translateUnion translates a union type.
func (t *Translator) translateUnion(typ *tstype.Type) string {
	var ordered []string
	seen := map[string]bool{}
	for _, m := range typ.UnionMembers {
		s := t.Translate(m)
		if seen[s] {
			continue
		}
		seen[s] = true
		ordered = append(ordered, s)
	}
	if len(ordered) == 1 {
		return ordered[0]
	}
	return "(" + strings.Join(ordered, "|") + ")"
}

// translateObject dispatches an Object-kind type, matching object flags in
// priority order.
func (t *Translator) translateObject(typ *tstype.Type) string {
	switch {
	case typ.Flags.Has(tstype.Class):
		return t.translateClass(typ)
	case typ.Flags.Has(tstype.Interface):
		return t.translateInterface(typ)
	case typ.Flags.Has(tstype.Reference):
		return t.translateReference(typ)
	case typ.Flags.Has(tstype.Anonymous):
		return t.translateAnonymous(typ)
	case typ.Flags.Has(tstype.Mapped), typ.Flags.Has(tstype.Instantiated), typ.Flags.Has(tstype.ObjectLiteral):
		t.warn(diag.InexpressibleType, "object flags %v are not expressible", typ.Flags)
		return "?"
	default:
		t.warn(diag.InexpressibleType, "unrecognized object flags %v", typ.Flags)
		return "?"
	}
}

func (t *Translator) translateClass(typ *tstype.Type) string {
	if typ.Symbol == nil {
		t.warn(diag.InexpressibleType, "class type has no symbol")
		return "?"
	}
	n, ok := t.SymbolToString(typ.Symbol)
	if !ok {
		return "?"
	}
	return "!" + n
}

func (t *Translator) translateInterface(typ *tstype.Type) string {
	if typ.Symbol == nil {
		t.warn(diag.InexpressibleType, "interface type has no symbol")
		return "?"
	}
	if typ.Symbol.Flags.Has(tstype.Value) && !t.isBuiltinProvidedType(typ.Symbol) {
		t.warn(diag.InexpressibleType, "symbol %s is both a type and a value", typ.Symbol.Name)
		return "?"
	}
	n, ok := t.SymbolToString(typ.Symbol)
	if !ok {
		return "?"
	}
	return "!" + n
}

// isBuiltinProvidedType reports whether sym is one of the dialect's
// built-in provided types, for which a type/value
// conflict is expected and not a warning condition. This module has no
// closed list of built-ins, so the check is: the symbol carries no
// declarations at all (synthetic built-in symbols, such as the ones
// tstypego creates, have none).
func (t *Translator) isBuiltinProvidedType(sym *tstype.Symbol) bool {
	return len(sym.Declarations) == 0
}

func (t *Translator) translateReference(typ *tstype.Type) string {
	r := typ.Target
	if r != nil && r.Flags.Has(tstype.Tuple) {
		return "!Array<?>"
	}
	if r != nil && r.Identity() == typ.Identity() {
		panic(fmt.Sprintf("translate: reference type's target is itself (debug: %+v)", typ))
	}
	base := t.Translate(r)
	if base == "?" {
		return "?"
	}
	if len(typ.TypeArgs) == 0 {
		return base
	}
	args := make([]string, len(typ.TypeArgs))
	for i, a := range typ.TypeArgs {
		args[i] = t.Translate(a)
	}
	return base + "<" + strings.Join(args, ", ") + ">"
}

// translateAnonymous translates an anonymous object type: a structural
// record of members, optionally with call/index signatures.
func (t *Translator) translateAnonymous(typ *tstype.Type) string {
	t.seen[typ.Identity()] = true

	if len(typ.ConstructSignatures) > 0 {
		return t.translateConstructSignature(typ.ConstructSignatures[0])
	}

	var fields []string
	callable := false
	indexable := false
	names := make([]string, 0, len(typ.Members))
	for name := range typ.Members {
		names = append(names, name)
	}
	for _, name := range sortedPropertyOrder(names) {
		sym := typ.Members[name]
		switch name {
		case tstype.ReservedCallMember:
			callable = true
			continue
		case tstype.ReservedIndexMember:
			indexable = true
			continue
		}
		if !propertyNameRE.MatchString(name) {
			t.warn(diag.InexpressibleType, "property name %q cannot be emitted unquoted", name)
			continue
		}
		fieldType := t.Checker.TypeOfSymbolAtLocation(sym, t.Ref)
		fields = append(fields, name+": "+t.Translate(fieldType))
	}

	if len(fields) == 0 {
		switch {
		case callable && !indexable:
			call, _ := t.Checker.SignaturesOfType(typ)
			if len(call) == 1 {
				return t.signatureToString(call[0])
			}
			t.warn(diag.InexpressibleType, "callable anonymous type has %d call signatures, want exactly 1", len(call))
			return "?"
		case indexable && !callable:
			return t.translateIndexable(typ)
		case !callable && !indexable:
			return "*"
		default:
			t.warn(diag.InexpressibleType, "anonymous type is both callable and indexable with no named fields")
			return "?"
		}
	}

	if !callable && !indexable {
		return "{" + strings.Join(fields, ", ") + "}"
	}

	t.warn(diag.InexpressibleType, "anonymous type mixes named fields with callable/indexable members")
	return "?"
}

func (t *Translator) translateIndexable(typ *tstype.Type) string {
	if typ.StringIndexType != nil {
		return "!Object<string," + t.Translate(typ.StringIndexType) + ">"
	}
	if typ.NumberIndexType != nil {
		return "!Object<number," + t.Translate(typ.NumberIndexType) + ">"
	}
	t.warn(diag.InexpressibleType, "indexable anonymous type has neither a string nor a number index signature")
	return "!Object<?,?>"
}

func (t *Translator) translateConstructSignature(sig *tstype.Signature) string {
	if !sig.HasRealDeclaration {
		t.warn(diag.SyntheticSignature, "construct signature has no real declaration")
		return "?"
	}
	t.BlacklistTypeParameters(sig.TypeParameterDecls)
	params := t.convertParams(sig)
	ret := t.Translate(sig.Return)
	s := "function(new: (" + ret + ")"
	for _, p := range params {
		s += ", " + p
	}
	s += "): ?"
	return s
}

// signatureToString renders a call/construct signature to its function
// type string.
func (t *Translator) signatureToString(sig *tstype.Signature) string {
	if !sig.HasRealDeclaration {
		t.warn(diag.SyntheticSignature, "signature has no real declaration")
		return "Function"
	}
	t.BlacklistTypeParameters(sig.TypeParameterDecls)

	var parts []string
	if sig.ThisParam != nil {
		if sig.ThisParam.Type != nil {
			parts = append(parts, "this: ("+t.Translate(sig.ThisParam.Type)+")")
		} else {
			t.warn(diag.InexpressibleType, "this parameter has no type annotation")
		}
	}
	parts = append(parts, t.convertParams(sig)...)
	ret := t.Translate(sig.Return)
	return "function(" + strings.Join(parts, ", ") + "): " + ret
}

// convertParams converts a signature's parameter list.
func (t *Translator) convertParams(sig *tstype.Signature) []string {
	var out []string
	for _, p := range sig.Params {
		s := t.convertParam(p)
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}

func (t *Translator) convertParam(p *tstype.Param) string {
	if p.Rest {
		if p.Type == nil || !p.Type.Kind.Has(tstype.Object) || !p.Type.Flags.Has(tstype.Reference) {
			t.warn(diag.InexpressibleType, "rest parameter %s is not an array reference", p.Name)
			return "...!Array<?>"
		}
		if len(p.Type.TypeArgs) == 0 {
			return ""
		}
		elem := t.Translate(p.Type.TypeArgs[0])
		return "..." + elem
	}

	s := t.Translate(p.Type)
	if p.Optional {
		s += "="
	}
	return s
}

// sortedPropertyOrder returns names in a stable order. tstype.Type.Members
// is a Go map, which has no iteration order of its own; the translator
// needs a deterministic field order for reproducible output (and for the
// host's diagnostic text to be stable across runs), so names are sorted
// lexicographically.
func sortedPropertyOrder(names []string) []string {
	sort.Strings(names)
	return names
}
