// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package goload loads Go packages whose go/types data backs the upstream
// checker tstypego adapts. It plays the same role for this tool that the
// teacher's o2o/loader plays for the proto-migration rewriter: isolating the
// one genuinely expensive, environment-dependent step (driving the Go
// compiler's type checker over real source) behind a small interface so the
// rest of the pipeline, and its tests, never have to.
package goload

import (
	"context"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"strings"

	"github.com/dave/dst/decorator"
	"golang.org/x/tools/go/packages"

	"google.golang.org/closuretypes/internal/errutil"
)

// Package is a loaded Go package: parsed syntax plus the full type-checking
// result the translator's tstypego adapter walks.
type Package struct {
	Fset     *token.FileSet
	Syntax   []*ast.File
	TypeInfo *types.Info
	TypePkg  *types.Package

	// Decorator carries the package's syntax over into the dst tree
	// tstypego.Checker.RefForObject consults to produce real reference-site
	// nodes; it is nil only for a Package a test constructs by hand without
	// populating it (tstypefake does not use this path at all).
	Decorator *decorator.Decorator
}

func (p *Package) String() string {
	if p == nil || p.TypePkg == nil {
		return "<nil Go package>"
	}
	return fmt.Sprintf("Go package %s (%d files)", p.TypePkg.Path(), len(p.Syntax))
}

// Loader loads Go packages by import pattern.
type Loader interface {
	Load(ctx context.Context, patterns ...string) ([]*Package, error)
}

// PackagesLoader is the production Loader, backed directly by
// golang.org/x/tools/go/packages.
type PackagesLoader struct {
	Dir string
}

// New returns a PackagesLoader rooted at dir (the working directory used to
// resolve relative import patterns); dir may be empty to use the process's
// current directory.
func New(dir string) *PackagesLoader {
	return &PackagesLoader{Dir: dir}
}

// Load implements Loader.
func (l *PackagesLoader) Load(ctx context.Context, patterns ...string) (pkgs []*Package, err error) {
	defer errutil.Annotatef(&err, "goload.Load(%s)", strings.Join(patterns, ", "))

	cfg := &packages.Config{
		Dir:     l.Dir,
		Context: ctx,
		Mode: packages.NeedName | packages.NeedFiles | packages.NeedCompiledGoFiles |
			packages.NeedSyntax | packages.NeedTypes | packages.NeedTypesInfo |
			packages.NeedImports | packages.NeedDeps,
	}
	loaded, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, err
	}

	var out []*Package
	var errs []string
	for _, pkg := range loaded {
		if strings.Contains(pkg.ID, ".test") {
			continue
		}
		for _, e := range pkg.Errors {
			errs = append(errs, e.Error())
		}
		out = append(out, &Package{
			Fset:      pkg.Fset,
			Syntax:    pkg.Syntax,
			TypeInfo:  pkg.TypesInfo,
			TypePkg:   pkg.Types,
			Decorator: decorateSyntax(pkg.Fset, pkg.Syntax),
		})
	}
	if len(errs) > 0 {
		return out, fmt.Errorf("package errors:\n%s", strings.Join(errs, "\n"))
	}
	return out, nil
}

// decorateSyntax builds the dst tree backing tstypego.Checker.RefForObject,
// the same way fix.ConfiguredPackage.Fix decorates a loaded package's AST
// before walking it. A file that fails to decorate is silently skipped:
// reference-site resolution degenerates to "unknown" for symbols declared
// in it, which the Resolver already treats as "does not match".
func decorateSyntax(fset *token.FileSet, syntax []*ast.File) *decorator.Decorator {
	dec := decorator.NewDecorator(fset)
	for _, f := range syntax {
		if _, err := dec.DecorateFile(f); err != nil {
			continue
		}
	}
	return dec
}

var _ Loader = (*PackagesLoader)(nil)
