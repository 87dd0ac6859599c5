// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package translate_test

import (
	"strings"
	"testing"

	"google.golang.org/closuretypes/internal/aliasscope"
	"google.golang.org/closuretypes/internal/diag"
	"google.golang.org/closuretypes/internal/resolve"
	"google.golang.org/closuretypes/internal/translate"
	"google.golang.org/closuretypes/internal/tstype"
	"google.golang.org/closuretypes/internal/tstypefake"
)

func newTranslator(checker *tstypefake.Checker) (*translate.Translator, *aliasscope.Scope) {
	scope := aliasscope.New()
	resolver := &resolve.Resolver{Checker: checker, Scope: scope}
	tr := translate.New(checker, scope, resolver, nil, diag.NewSink(nil), nil)
	return tr, scope
}

func namedSymbol(checker *tstypefake.Checker, name string) *tstype.Symbol {
	sym := &tstype.Symbol{Name: name, Declarations: []*tstype.Declaration{
		{File: &tstype.SourceFile{Filename: name + ".ts"}},
	}}
	checker.SimpleEntityName(sym)
	return sym
}

// S1: boolean | true collapses to boolean (duplicate string form dropped).
func TestTranslateUnionDedup(t *testing.T) {
	tr, _ := newTranslator(tstypefake.New())
	union := &tstype.Type{
		Kind: tstype.Union,
		UnionMembers: []*tstype.Type{
			{Kind: tstype.Boolean},
			{Kind: tstype.BooleanLiteral},
		},
	}
	if got, want := tr.Translate(union), "boolean"; got != want {
		t.Errorf("Translate() = %q, want %q", got, want)
	}
}

// S2: string | number stays a disjunction, first-occurrence order preserved.
func TestTranslateUnionMultipleMembers(t *testing.T) {
	tr, _ := newTranslator(tstypefake.New())
	union := &tstype.Type{
		Kind: tstype.Union,
		UnionMembers: []*tstype.Type{
			{Kind: tstype.String},
			{Kind: tstype.Number},
		},
	}
	if got, want := tr.Translate(union), "(string|number)"; got != want {
		t.Errorf("Translate() = %q, want %q", got, want)
	}
}

// S3: Array<number> referencing an interface with one type argument.
func TestTranslateReferenceWithTypeArgs(t *testing.T) {
	checker := tstypefake.New()
	arraySym := namedSymbol(checker, "Array")
	target := &tstype.Type{Kind: tstype.Object, Flags: tstype.Interface, Symbol: arraySym}
	ref := &tstype.Type{
		Kind:     tstype.Object,
		Flags:    tstype.Reference,
		Target:   target,
		TypeArgs: []*tstype.Type{{Kind: tstype.Number}},
	}
	tr, _ := newTranslator(checker)
	if got, want := tr.Translate(ref), "!Array<number>"; got != want {
		t.Errorf("Translate() = %q, want %q", got, want)
	}
}

// S4: a tuple reference has no analog in the target dialect.
func TestTranslateReferenceTuple(t *testing.T) {
	target := &tstype.Type{Kind: tstype.Object, Flags: tstype.Tuple}
	ref := &tstype.Type{Kind: tstype.Object, Flags: tstype.Reference, Target: target}
	tr, _ := newTranslator(tstypefake.New())
	if got, want := tr.Translate(ref), "!Array<?>"; got != want {
		t.Errorf("Translate() = %q, want %q", got, want)
	}
}

// S5: a two-field anonymous object.
func TestTranslateAnonymousObjectFields(t *testing.T) {
	checker := tstypefake.New()
	aSym := &tstype.Symbol{Name: "a"}
	bSym := &tstype.Symbol{Name: "b"}
	checker.SetTypeOfSymbol(aSym, &tstype.Type{Kind: tstype.Number})
	checker.SetTypeOfSymbol(bSym, &tstype.Type{Kind: tstype.String})

	obj := &tstype.Type{
		Kind:  tstype.Object,
		Flags: tstype.Anonymous,
		Members: map[string]*tstype.Symbol{
			"a": aSym,
			"b": bSym,
		},
	}
	tr, _ := newTranslator(checker)
	if got, want := tr.Translate(obj), "{a: number, b: string}"; got != want {
		t.Errorf("Translate() = %q, want %q", got, want)
	}
}

// S6: the empty anonymous object is the closest thing to "any non-null".
func TestTranslateAnonymousEmpty(t *testing.T) {
	obj := &tstype.Type{Kind: tstype.Object, Flags: tstype.Anonymous}
	tr, _ := newTranslator(tstypefake.New())
	if got, want := tr.Translate(obj), "*"; got != want {
		t.Errorf("Translate() = %q, want %q", got, want)
	}
}

// S7: a callable-only anonymous type with exactly one call signature.
func TestTranslateAnonymousCallable(t *testing.T) {
	checker := tstypefake.New()
	obj := &tstype.Type{
		Kind:  tstype.Object,
		Flags: tstype.Anonymous,
		Members: map[string]*tstype.Symbol{
			tstype.ReservedCallMember: {Name: "__call"},
		},
	}
	sig := &tstype.Signature{
		HasRealDeclaration: true,
		Params: []*tstype.Param{
			{Name: "x", Type: &tstype.Type{Kind: tstype.Number}},
		},
		Return: &tstype.Type{Kind: tstype.String},
	}
	checker.SetSignatures(obj, []*tstype.Signature{sig}, nil)

	tr, _ := newTranslator(checker)
	if got, want := tr.Translate(obj), "function(number): string"; got != want {
		t.Errorf("Translate() = %q, want %q", got, want)
	}
}

// S8: an indexable-only anonymous type with a string index signature.
func TestTranslateAnonymousIndexable(t *testing.T) {
	checker := tstypefake.New()
	fooSym := namedSymbol(checker, "Foo")
	obj := &tstype.Type{
		Kind:  tstype.Object,
		Flags: tstype.Anonymous,
		Members: map[string]*tstype.Symbol{
			tstype.ReservedIndexMember: {Name: "__index"},
		},
		StringIndexType: &tstype.Type{Kind: tstype.Object, Flags: tstype.Interface, Symbol: fooSym},
	}
	tr, _ := newTranslator(checker)
	if got, want := tr.Translate(obj), "!Object<string,!Foo>"; got != want {
		t.Errorf("Translate() = %q, want %q", got, want)
	}
}

// S9: a single-member enum used at its sole member substitutes the parent
// symbol since the base type is the literal type itself.
func TestTranslateEnumLiteralSingleMember(t *testing.T) {
	checker := tstypefake.New()
	enumSym := namedSymbol(checker, "E")
	literal := &tstype.Type{Kind: tstype.EnumLiteral}
	memberSym := &tstype.Symbol{Name: "A", Parent: enumSym}
	literal.Symbol = memberSym
	checker.SetBaseOfLiteral(literal, literal)

	tr, _ := newTranslator(checker)
	if got, want := tr.Translate(literal), "!E"; got != want {
		t.Errorf("Translate() = %q, want %q", got, want)
	}
}

// S10: a symbol recorded in the Alias Scope is used verbatim, unmangled.
func TestTranslateSymbolAliasScopeVerbatim(t *testing.T) {
	checker := tstypefake.New()
	sym := namedSymbol(checker, "Foo")
	tr, scope := newTranslator(checker)
	scope.Set(sym, "tsickle_m_1.Foo")

	iface := &tstype.Type{Kind: tstype.Object, Flags: tstype.Interface, Symbol: sym}
	if got, want := tr.Translate(iface), "tsickle_m_1.Foo"; got != want {
		t.Errorf("Translate() = %q, want %q", got, want)
	}
}

// S12: a type whose symbol lives on a blacklisted path always translates to
// the unknown sentinel.
func TestTranslateBlacklistedPath(t *testing.T) {
	checker := tstypefake.New()
	sym := namedSymbol(checker, "Foo")
	scope := aliasscope.New()
	resolver := &resolve.Resolver{Checker: checker, Scope: scope}
	bl := resolve.NewPathBlacklist("Foo.ts")
	tr := translate.New(checker, scope, resolver, bl, diag.NewSink(nil), nil)

	iface := &tstype.Type{Kind: tstype.Object, Flags: tstype.Interface, Symbol: sym}
	if got, want := tr.Translate(iface), "?"; got != want {
		t.Errorf("Translate() = %q, want %q", got, want)
	}
}

// Invariant 3: a recursive anonymous member terminates and surfaces a "?" at
// the recursion point rather than looping forever.
func TestTranslateRecursiveAnonymousTerminates(t *testing.T) {
	checker := tstypefake.New()
	selfSym := &tstype.Symbol{Name: "next"}

	obj := &tstype.Type{Kind: tstype.Object, Flags: tstype.Anonymous}
	obj.Members = map[string]*tstype.Symbol{"next": selfSym}
	checker.SetTypeOfSymbol(selfSym, obj)

	tr, _ := newTranslator(checker)
	got := tr.Translate(obj)
	if !strings.Contains(got, "?") {
		t.Errorf("Translate() = %q, want it to contain %q at the recursion point", got, "?")
	}
}

// Structural violation: a reference type whose target is itself.
func TestTranslateSelfReferencePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("Translate() did not panic on a self-referential reference type")
		}
	}()
	ref := &tstype.Type{Kind: tstype.Object, Flags: tstype.Reference}
	ref.Target = ref

	tr, _ := newTranslator(tstypefake.New())
	tr.Translate(ref)
}

// Structural violation: primary dispatch reaching kind bits the switch does
// not cover.
func TestTranslateUnmatchedKindPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("Translate() did not panic on an unrecognized kind")
		}
	}()
	tr, _ := newTranslator(tstypefake.New())
	tr.Translate(&tstype.Type{Kind: 0})
}

func TestTranslateNeverWarnsAndReturnsUnknown(t *testing.T) {
	tr, _ := newTranslator(tstypefake.New())
	if got, want := tr.Translate(&tstype.Type{Kind: tstype.Never}), "?"; got != want {
		t.Errorf("Translate() = %q, want %q", got, want)
	}
}

func TestTranslateRestParameterUnwrapsArrayElement(t *testing.T) {
	checker := tstypefake.New()
	restType := &tstype.Type{
		Kind:     tstype.Object,
		Flags:    tstype.Reference,
		TypeArgs: []*tstype.Type{{Kind: tstype.String}},
	}
	sig := &tstype.Signature{
		HasRealDeclaration: true,
		Params: []*tstype.Param{
			{Name: "rest", Type: restType, Rest: true},
		},
		Return: &tstype.Type{Kind: tstype.Void},
	}
	obj := &tstype.Type{
		Kind:  tstype.Object,
		Flags: tstype.Anonymous,
		Members: map[string]*tstype.Symbol{
			tstype.ReservedCallMember: {Name: "__call"},
		},
	}
	checker.SetSignatures(obj, []*tstype.Signature{sig}, nil)

	tr, _ := newTranslator(checker)
	if got, want := tr.Translate(obj), "function(...string): void"; got != want {
		t.Errorf("Translate() = %q, want %q", got, want)
	}
}

func TestTranslateOptionalParameterTrailingEquals(t *testing.T) {
	checker := tstypefake.New()
	sig := &tstype.Signature{
		HasRealDeclaration: true,
		Params: []*tstype.Param{
			{Name: "x", Type: &tstype.Type{Kind: tstype.Number}, Optional: true},
		},
		Return: &tstype.Type{Kind: tstype.Void},
	}
	obj := &tstype.Type{
		Kind:  tstype.Object,
		Flags: tstype.Anonymous,
		Members: map[string]*tstype.Symbol{
			tstype.ReservedCallMember: {Name: "__call"},
		},
	}
	checker.SetSignatures(obj, []*tstype.Signature{sig}, nil)

	tr, _ := newTranslator(checker)
	if got, want := tr.Translate(obj), "function(number=): void"; got != want {
		t.Errorf("Translate() = %q, want %q", got, want)
	}
}
