// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The esscope command analyzes the scopes of JavaScript files and
// prints their scope trees and undefined names.
// With no arguments and a terminal on standard input, it starts an
// interactive loop (REPL).
//
// Usage:
//
//	esscope [flags] [file.js | file.html ...]
//
// HTML files are analyzed one inline script at a time. Undefined names
// are reported on standard error as file:line:col: undefined: x, and
// make the command exit with a nonzero status.
//
// The parser accepts script syntax only. The -module flag and
// <script type="module"> change scoping, but import and export
// declarations are syntax errors.
package main // import "go.esscope.net/cmd/esscope"

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"go.esscope.net/env"
	"go.esscope.net/jsparse"
	"go.esscope.net/repl"
	"go.esscope.net/resolve"
	"go.esscope.net/scopeproto"
	"go.esscope.net/syntax"
	"golang.org/x/term"
)

const usage = `usage: esscope [flags] [file.js | file.html ...]

With no files, esscope reads standard input, or starts a REPL when
standard input is a terminal.

Only script syntax is parsed: -module and <script type="module"> select
module scoping, but import and export declarations fail to parse.

Flags:
`

// flags
var (
	moduleFlag   = flag.Bool("module", false, "analyze input with module scoping (import and export are not parsed)")
	strictFlag   = flag.Bool("strict", false, "treat all input as strict code")
	globalReturn = flag.Bool("globalreturn", false, "wrap scripts in a function scope, as CommonJS loaders do")
	envFlag      = flag.String("env", "es2021", "comma-separated environments whose globals are predeclared ("+strings.Join(env.Names(), ", ")+")")
	outputFlag   = flag.String("output", "tree", "output format (tree, "+strings.Join(scopeproto.Formats, ", ")+")")
	watchFlag    = flag.Bool("watch", false, "analyze the files again whenever they change")
	verbose      = flag.Bool("v", false, "trace scope and resolution events")
	execprog     = flag.String("c", "", "analyze program `prog`")
)

func main() {
	os.Exit(doMain())
}

func doMain() int {
	log.SetPrefix("esscope: ")
	log.SetFlags(0)
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	globals, err := env.Parse(*envFlag)
	check(err)
	if *outputFlag != "tree" && !contains(scopeproto.Formats, *outputFlag) {
		log.Fatalf("unsupported -output format: %s", *outputFlag)
	}

	a := &analyzer{
		opts: resolve.Options{
			ImpliedStrict: *strictFlag,
			GlobalReturn:  *globalReturn,
		},
		globals: globals,
		output:  *outputFlag,
		stdout:  os.Stdout,
		stderr:  os.Stderr,
	}
	if *moduleFlag {
		a.opts.SourceType = resolve.Module
	}
	if *verbose {
		a.opts.Trace = log.Printf
	}
	if term.IsTerminal(int(os.Stdout.Fd())) {
		if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			a.width = width
		}
	}

	switch {
	case *execprog != "":
		return a.run("cmdline", []byte(*execprog))
	case flag.NArg() == 0 && term.IsTerminal(int(os.Stdin.Fd())):
		fmt.Println("Welcome to esscope (go.esscope.net)")
		repl.REPL(a.opts, globals)
		return 0
	case flag.NArg() == 0:
		data, err := io.ReadAll(os.Stdin)
		check(err)
		return a.run("<stdin>", data)
	}

	status := a.runFiles(flag.Args())
	if *watchFlag {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		err := watch(ctx, flag.Args(), 100*time.Millisecond, func(changed []string) {
			a.runFiles(changed)
		})
		check(err)
	}
	return status
}

// An analyzer analyzes programs and prints the results.
type analyzer struct {
	opts    resolve.Options
	globals []string
	output  string // "tree" or one of scopeproto.Formats
	width   int    // if nonzero, tree lines are clipped to this width

	stdout, stderr io.Writer
}

// runFiles analyzes each named file and returns the exit status.
func (a *analyzer) runFiles(files []string) int {
	status := 0
	for _, filename := range files {
		data, err := os.ReadFile(filename)
		if err != nil {
			fmt.Fprintln(a.stderr, err)
			status = 1
			continue
		}
		if a.run(filename, data) != 0 {
			status = 1
		}
	}
	return status
}

// run analyzes one file, which may be an HTML document, and returns
// the exit status.
func (a *analyzer) run(filename string, data []byte) int {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".html", ".htm":
	default:
		prog, err := jsparse.Parse(filename, string(data))
		if err != nil {
			fmt.Fprintln(a.stderr, err)
			return 1
		}
		return a.analyze(filename, prog, a.opts)
	}

	progs, scripts, err := jsparse.ParseHTML(filename, bytes.NewReader(data))
	status := 0
	if err != nil {
		fmt.Fprintln(a.stderr, err)
		status = 1
	}
	for i, prog := range progs {
		opts := a.opts
		if scripts[i].Module {
			opts.SourceType = resolve.Module
		}
		if a.analyze(prog.Path, prog, opts) != 0 {
			status = 1
		}
	}
	return status
}

func (a *analyzer) analyze(filename string, prog *syntax.Program, opts resolve.Options) int {
	m, err := resolve.Analyze(prog, &opts)
	if err != nil {
		fmt.Fprintf(a.stderr, "%s:%s\n", filename, err)
		return 1
	}
	check(m.AddGlobals(a.globals))

	if a.output == "tree" {
		fmt.Fprintf(a.stdout, "# %s\n", filename)
		a.printTree(resolve.Dump(m))
	} else {
		data, err := scopeproto.Marshal(m, a.output)
		check(err)
		a.stdout.Write(data)
	}

	undefined := m.Undefined()
	for _, e := range undefined {
		fmt.Fprintf(a.stderr, "%s:%s: %s\n", filename, e.Pos, e.Msg)
	}
	if len(undefined) > 0 {
		return 1
	}
	return 0
}

// printTree prints a tree dump, clipping long lines to the terminal width.
func (a *analyzer) printTree(tree string) {
	if a.width <= 0 {
		fmt.Fprint(a.stdout, tree)
		return
	}
	for _, line := range strings.SplitAfter(tree, "\n") {
		if line == "" {
			continue
		}
		if text := strings.TrimSuffix(line, "\n"); len(text) > a.width && a.width > 3 {
			line = text[:a.width-3] + "...\n"
		}
		fmt.Fprint(a.stdout, line)
	}
}

func contains(list []string, x string) bool {
	for _, y := range list {
		if x == y {
			return true
		}
	}
	return false
}

func check(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
