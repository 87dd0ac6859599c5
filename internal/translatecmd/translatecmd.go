// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package translatecmd implements the translate subcommand of the
// closuretypes tool: load a Go package, walk its exported type
// declarations, and emit their Closure-style JSDoc type strings.
package translatecmd

import (
	"context"
	"fmt"
	"go/types"
	"os"
	"sort"
	"strings"

	"flag"
	log "github.com/golang/glog"
	"github.com/google/subcommands"
	"golang.org/x/sync/errgroup"

	"google.golang.org/closuretypes/internal/aliasscope"
	"google.golang.org/closuretypes/internal/diag"
	"google.golang.org/closuretypes/internal/errutil"
	"google.golang.org/closuretypes/internal/externs"
	"google.golang.org/closuretypes/internal/goload"
	"google.golang.org/closuretypes/internal/profile"
	"google.golang.org/closuretypes/internal/resolve"
	"google.golang.org/closuretypes/internal/translate"
	"google.golang.org/closuretypes/internal/tstypego"
)

// Cmd implements the translate subcommand.
type Cmd struct {
	externsMode   bool
	blacklistFile string
}

// Name implements subcommand.Command.
func (*Cmd) Name() string { return "translate" }

// Synopsis implements subcommand.Command.
func (*Cmd) Synopsis() string {
	return "Translate a Go package's exported types to JSDoc type strings."
}

// Usage implements subcommand.Command.
func (*Cmd) Usage() string {
	return `Usage: closuretypes translate [-externs] <import path> [<import path>...]

Command-line flag documentation follows:
`
}

// SetFlags implements subcommand.Command.
func (cmd *Cmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&cmd.externsMode, "externs", false,
		"Emit output as if assembling a combined externs file (forbids non-ambient external-module references).")
	f.StringVar(&cmd.blacklistFile, "blacklist_file", "",
		"Path to a file with one source path per line; symbols declared there always translate to '?'.")
}

// Execute implements subcommand.Command.
func (cmd *Cmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	ctx = profile.NewContext(ctx)
	defer func() { log.Infof("%s", profile.Dump(ctx)) }()

	patterns := f.Args()
	if len(patterns) == 0 {
		log.Errorf("translate: at least one import path is required")
		return subcommands.ExitUsageError
	}

	blacklist, err := loadBlacklist(cmd.blacklistFile)
	if err != nil {
		log.Errorf("translate: %v", err)
		return subcommands.ExitFailure
	}

	loader := goload.New("")
	pkgs, err := loader.Load(ctx, patterns...)
	profile.Add(ctx, "load")
	if err != nil {
		log.Errorf("translate: %v", err)
		return subcommands.ExitFailure
	}

	asm := externs.NewAssembler()

	// Packages are independent: each gets its own tstypego.Checker,
	// aliasscope.Scope, and diag.Sink, so translation fans out across an
	// errgroup, one goroutine per package. Only the shared Assembler
	// (which serializes its own Add calls) is touched from more than one
	// goroutine; the per-package Sinks are merged after the group ends.
	sinks := make([]*diag.Sink, len(pkgs))
	eg, egCtx := errgroup.WithContext(ctx)
	for i, pkg := range pkgs {
		i, pkg := i, pkg
		eg.Go(func() error {
			if egCtx.Err() != nil {
				return egCtx.Err()
			}
			sinks[i] = diag.NewSink(pkg.Fset)
			return translatePackage(pkg, cmd.externsMode, blacklist, sinks[i], asm)
		})
	}
	if err := eg.Wait(); err != nil {
		log.Errorf("translate: %v", err)
		return subcommands.ExitFailure
	}
	profile.Add(ctx, "translate")

	fmt.Print(asm.Render())
	for _, sink := range sinks {
		for _, d := range sink.Diagnostics() {
			fmt.Fprintf(os.Stderr, "warning [%s]: %s\n", d.Category, d.Message)
		}
	}
	return subcommands.ExitSuccess
}

func loadBlacklist(path string) (list *resolve.PathBlacklist, err error) {
	if path == "" {
		return resolve.NewPathBlacklist(), nil
	}
	defer errutil.Annotatef(&err, "reading blacklist file %q", path)

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, line := range strings.Split(string(b), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		paths = append(paths, line)
	}
	return resolve.NewPathBlacklist(paths...), nil
}

// translatePackage translates one package's exported named types and adds
// the results to asm, which is safe for concurrent use from the per-package
// goroutines Execute fans out. sink is this package's own Sink.
func translatePackage(pkg *goload.Package, externsMode bool, blacklist *resolve.PathBlacklist, sink *diag.Sink, asm *externs.Assembler) error {
	checker := tstypego.New(pkg)
	scope := aliasscope.New()
	resolver := &resolve.Resolver{Checker: checker, Scope: scope, ExternsMode: externsMode}

	names := exportedTypeNames(pkg)
	for _, name := range names {
		obj := pkg.TypePkg.Scope().Lookup(name)
		named, ok := obj.Type().(*types.Named)
		if !ok {
			continue
		}
		typ := checker.TypeOf(named)
		ref := checker.RefForObject(obj)
		tr := translate.New(checker, scope, resolver, blacklist, sink, ref)
		tr.ExternsMode = externsMode
		out := tr.Translate(typ)

		position := "unknown position"
		if pkg.Fset != nil {
			position = pkg.Fset.Position(obj.Pos()).String()
		}
		file := pkg.TypePkg.Path() + "/" + name
		asm.Add(file, fmt.Sprintf("/** @typedef {%s} */ // %s at %s", out, name, position))
	}
	return nil
}

func exportedTypeNames(pkg *goload.Package) []string {
	scope := pkg.TypePkg.Scope()
	var names []string
	for _, name := range scope.Names() {
		obj := scope.Lookup(name)
		if _, ok := obj.(*types.TypeName); !ok {
			continue
		}
		if !obj.Exported() {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Command returns an initialized Cmd for registration with the subcommands
// package.
func Command() *Cmd {
	return &Cmd{}
}
