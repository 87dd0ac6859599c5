// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The program closuretypes translates the exported type declarations of Go
// packages into Closure-Compiler-style JSDoc type strings.
package main

import (
	"context"
	"fmt"
	"io"
	_ "net/http/pprof"
	"os"
	"path"

	"flag"
	log "github.com/golang/glog"
	"github.com/google/subcommands"

	"google.golang.org/closuretypes/internal/translatecmd"
	"google.golang.org/closuretypes/internal/version"
)

const groupOther = "working with this tool"

func main() {
	ctx := context.Background()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))

	defaultExplain := commander.Explain
	commander.Explain = func(w io.Writer) {
		fmt.Fprintf(w, "The closuretypes tool translates Go packages' exported types into Closure-style JSDoc type strings.\n\n")
		defaultExplain(w)
	}

	commander.Register(commander.HelpCommand(), groupOther)
	commander.Register(commander.FlagsCommand(), groupOther)
	commander.Register(version.Command(), groupOther)

	const groupTranslate = "translating Go types"
	commander.Register(translatecmd.Command(), groupTranslate)

	flag.Usage = func() {
		commander.HelpCommand().Execute(ctx, flag.CommandLine)
	}

	flag.Parse()

	code := int(commander.Execute(ctx))
	log.Flush()
	os.Exit(code)
}
