// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tstypego_test

import (
	"context"
	"go/types"
	"testing"

	"google.golang.org/closuretypes/internal/goload"
	"google.golang.org/closuretypes/internal/tstype"
	"google.golang.org/closuretypes/internal/tstypego"
)

func loadChecker(t *testing.T, src string) (*tstypego.Checker, *goload.Package) {
	t.Helper()
	fake := goload.NewFake(map[string]map[string]string{
		"example.com/widget": {"widget.go": src},
	})
	pkgs, err := fake.Load(context.Background(), "example.com/widget")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return tstypego.New(pkgs[0]), pkgs[0]
}

func TestConvertNamedStruct(t *testing.T) {
	checker, pkg := loadChecker(t, `package widget

type S struct {
	Name string
	Size int
	OK   bool
}
`)
	obj := pkg.TypePkg.Scope().Lookup("S")
	if obj == nil {
		t.Fatalf("scope has no S symbol")
	}
	typ := checker.TypeOf(obj.Type())
	if !typ.Kind.Has(tstype.Object) || !typ.Flags.Has(tstype.Interface) {
		t.Fatalf("TypeOf(S) = %+v, want an interface-flagged object", typ)
	}
	if typ.Symbol == nil || typ.Symbol.Name != "S" {
		t.Errorf("TypeOf(S).Symbol = %+v, want name %q", typ.Symbol, "S")
	}
}

func TestConvertPointerAndSlice(t *testing.T) {
	checker, pkg := loadChecker(t, `package widget

type S struct {
	Items []string
	Next  *S
}
`)
	obj := pkg.TypePkg.Scope().Lookup("S")
	typ := checker.TypeOf(obj.Type())

	structType := obj.Type().Underlying().(*types.Struct)
	itemsField := fieldByName(structType, "Items")
	nextField := fieldByName(structType, "Next")

	itemsType := checker.TypeOf(itemsField.Type())
	if !itemsType.Kind.Has(tstype.Object) || !itemsType.Flags.Has(tstype.Reference) {
		t.Errorf("Items type = %+v, want a reference (slice modeled as Array<T>)", itemsType)
	}
	if len(itemsType.TypeArgs) != 1 || itemsType.TypeArgs[0].Kind != tstype.String {
		t.Errorf("Items type args = %+v, want a single string element type", itemsType.TypeArgs)
	}

	nextType := checker.TypeOf(nextField.Type())
	if !nextType.Kind.Has(tstype.Object) || !nextType.Flags.Has(tstype.Reference) {
		t.Errorf("Next type = %+v, want a reference (pointer modeled as nullable reference)", nextType)
	}
	if nextType.Target == nil || nextType.Target.Identity() != typ.Identity() {
		t.Errorf("Next.Target identity mismatch: pointer-to-S should reference S's own cached type")
	}
}

func fieldByName(s *types.Struct, name string) *types.Var {
	for i := 0; i < s.NumFields(); i++ {
		if s.Field(i).Name() == name {
			return s.Field(i)
		}
	}
	return nil
}

func TestConvertRecursiveStructSharesIdentity(t *testing.T) {
	checker, pkg := loadChecker(t, `package widget

type Node struct {
	Next *Node
}
`)
	obj := pkg.TypePkg.Scope().Lookup("Node")
	typ := checker.TypeOf(obj.Type())
	again := checker.TypeOf(obj.Type())
	if typ.Identity() != again.Identity() {
		t.Errorf("TypeOf() called twice on the same go/types.Type produced different identities")
	}
}

func TestEntityNameForSymbol(t *testing.T) {
	checker, pkg := loadChecker(t, `package widget

type S struct{}
`)
	obj := pkg.TypePkg.Scope().Lookup("S")
	typ := checker.TypeOf(obj.Type())

	segs, ok := checker.EntityNameForSymbol(typ.Symbol)
	if !ok || len(segs) != 1 || segs[0].Text != "S" {
		t.Errorf("EntityNameForSymbol() = %+v, %v, want a single segment %q", segs, ok, "S")
	}
}

func TestRefForObjectResolvesToItsOwnFile(t *testing.T) {
	checker, pkg := loadChecker(t, `package widget

type S struct{}
`)
	obj := pkg.TypePkg.Scope().Lookup("S")
	ref := checker.RefForObject(obj)
	if ref == nil {
		t.Fatalf("RefForObject(S) = nil, want a real dst.Node")
	}
	f := checker.FileOfNode(ref)
	if f == nil || f.Filename == "" {
		t.Errorf("FileOfNode(ref) = %+v, want S's own declaring file", f)
	}
	sym := checker.SymbolAtLocation(ref)
	if sym == nil || sym.Name != "S" {
		t.Errorf("SymbolAtLocation(ref) = %+v, want symbol %q", sym, "S")
	}
}

func TestConvertMapIndexable(t *testing.T) {
	checker, pkg := loadChecker(t, `package widget

type S struct {
	ByName map[string]int
}
`)
	obj := pkg.TypePkg.Scope().Lookup("S")
	structType := obj.Type().Underlying().(*types.Struct)
	byNameField := fieldByName(structType, "ByName")

	mapType := checker.TypeOf(byNameField.Type())
	if mapType.StringIndexType == nil || mapType.StringIndexType.Kind != tstype.Number {
		t.Errorf("map type = %+v, want a string-indexed number value type", mapType)
	}
}
