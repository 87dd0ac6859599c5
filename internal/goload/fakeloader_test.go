// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package goload_test

import (
	"context"
	"go/types"
	"testing"

	"github.com/google/go-cmp/cmp"

	"google.golang.org/closuretypes/internal/goload"
)

func TestFakeLoaderChecksSimplePackage(t *testing.T) {
	fake := goload.NewFake(map[string]map[string]string{
		"example.com/widget": {
			"widget.go": `package widget

type Widget struct {
	Name string
	Size int
}
`,
		},
	})

	pkgs, err := fake.Load(context.Background(), "example.com/widget")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(pkgs) != 1 {
		t.Fatalf("Load() returned %d packages, want 1", len(pkgs))
	}
	pkg := pkgs[0]
	if pkg.TypePkg.Path() != "example.com/widget" {
		t.Errorf("TypePkg.Path() = %q, want %q", pkg.TypePkg.Path(), "example.com/widget")
	}
	obj := pkg.TypePkg.Scope().Lookup("Widget")
	if obj == nil {
		t.Fatalf("scope has no Widget symbol")
	}
	st, ok := obj.Type().Underlying().(*types.Struct)
	if !ok {
		t.Fatalf("Widget's underlying type is not a struct")
	}

	var fields []string
	for i := 0; i < st.NumFields(); i++ {
		fields = append(fields, st.Field(i).Name())
	}
	want := []string{"Name", "Size"}
	if diff := cmp.Diff(want, fields); diff != "" {
		t.Errorf("Widget field names (-want +got):\n%s", diff)
	}
}

func TestFakeLoaderUnknownPackage(t *testing.T) {
	fake := goload.NewFake(nil)
	if _, err := fake.Load(context.Background(), "example.com/missing"); err == nil {
		t.Errorf("Load() error = nil, want an error for an unregistered package")
	}
}
