// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package goload

import (
	"context"
	"fmt"
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
)

// Fake is a hermetic Loader backed by parsing and type-checking in-memory
// source, for use in tests. Instead of shelling out to a build system or a
// real module cache, the test supplies source text directly and Fake runs
// it through the standard library's own parser and type checker.
type Fake struct {
	// Files maps an import path to the set of Go source files making up
	// that package, keyed by filename.
	Files map[string]map[string]string
}

// NewFake returns a Fake loader serving the given packages.
func NewFake(files map[string]map[string]string) *Fake {
	return &Fake{Files: files}
}

// Load implements Loader.
func (f *Fake) Load(ctx context.Context, patterns ...string) ([]*Package, error) {
	var out []*Package
	for _, pattern := range patterns {
		files, ok := f.Files[pattern]
		if !ok {
			return nil, fmt.Errorf("goload: fake loader has no package %q", pattern)
		}

		fset := token.NewFileSet()
		var syntax []*ast.File
		for name, src := range files {
			af, err := parser.ParseFile(fset, name, src, parser.ParseComments)
			if err != nil {
				return nil, fmt.Errorf("goload: parsing fake package %q: %w", pattern, err)
			}
			syntax = append(syntax, af)
		}

		info := &types.Info{
			Types:      make(map[ast.Expr]types.TypeAndValue),
			Defs:       make(map[*ast.Ident]types.Object),
			Uses:       make(map[*ast.Ident]types.Object),
			Implicits:  make(map[ast.Node]types.Object),
			Selections: make(map[*ast.SelectorExpr]*types.Selection),
			Scopes:     make(map[ast.Node]*types.Scope),
		}
		conf := types.Config{Importer: importer.Default()}
		typPkg, err := conf.Check(pattern, fset, syntax, info)
		if err != nil {
			return nil, fmt.Errorf("goload: type-checking fake package %q: %w", pattern, err)
		}

		out = append(out, &Package{
			Fset:      fset,
			Syntax:    syntax,
			TypeInfo:  info,
			TypePkg:   typPkg,
			Decorator: decorateSyntax(fset, syntax),
		})
	}
	return out, nil
}

var _ Loader = (*Fake)(nil)
