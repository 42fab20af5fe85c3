// Package repl provides an interactive loop that analyzes JavaScript
// snippets and prints their scope trees.
//
// It supports readline-style command editing,
// and interrupts through Control-C.
//
// The REPL reads lines until they form a complete program, or until a
// blank line. An incomplete program such as an unclosed function body
// prompts for more input. Each complete snippet is analyzed on its own,
// and the REPL prints its scope tree followed by its undefined names.
package repl // import "go.esscope.net/repl"

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"go.esscope.net/jsparse"
	"go.esscope.net/resolve"
)

// REPL executes a read, analyze, print loop.
//
// Each snippet is analyzed with opts; the names in globals are then
// added to its global scope before undefined names are reported.
func REPL(opts resolve.Options, globals []string) {
	rl, err := readline.New(">>> ")
	if err != nil {
		PrintError(err)
		return
	}
	defer rl.Close()
	for {
		if err := rep(rl, opts, globals); err != nil {
			if err == readline.ErrInterrupt {
				fmt.Println(err)
				continue
			}
			break
		}
	}
	fmt.Println()
}

// rep reads, analyzes, and prints one snippet.
//
// It returns an error (possibly readline.ErrInterrupt)
// only if readline failed. Analysis errors are printed.
func rep(rl *readline.Instance, opts resolve.Options, globals []string) error {
	// readline returns EOF, ErrInterrupted, or a line.
	rl.SetPrompt(">>> ")
	readline := func() (string, error) {
		line, err := rl.Readline()
		rl.SetPrompt("... ")
		return line, err
	}

	src, err := readSnippet(readline)
	if err != nil {
		return err
	}
	if strings.TrimSpace(src) == "" {
		return nil
	}
	if err := Analyze(os.Stdout, "<stdin>", src, opts, globals); err != nil {
		PrintError(err)
	}
	return nil
}

// readSnippet reads lines until they parse as a program, the input
// has a syntax error other than a premature end, or a blank line is
// read. The result is returned even if it does not parse.
func readSnippet(readline func() (string, error)) (string, error) {
	var buf strings.Builder
	for {
		line, err := readline()
		if err != nil {
			if err == io.EOF && buf.Len() > 0 {
				return buf.String(), nil
			}
			return "", err
		}
		buf.WriteString(line)
		buf.WriteByte('\n')
		if strings.TrimSpace(line) == "" {
			return buf.String(), nil
		}
		if _, err := jsparse.Parse("<stdin>", buf.String()); err == nil || !incomplete(err) {
			return buf.String(), nil
		}
	}
}

// incomplete reports whether a parse error was caused by
// input that ended too soon.
func incomplete(err error) bool {
	return strings.Contains(err.Error(), "Unexpected end of input")
}

// Analyze parses and analyzes src, adds globals to its global scope,
// and writes the scope tree and the undefined names to w.
func Analyze(w io.Writer, filename, src string, opts resolve.Options, globals []string) error {
	prog, err := jsparse.Parse(filename, src)
	if err != nil {
		return err
	}
	m, err := resolve.Analyze(prog, &opts)
	if err != nil {
		return err
	}
	if err := m.AddGlobals(globals); err != nil {
		return err
	}
	fmt.Fprint(w, resolve.Dump(m))
	for _, e := range m.Undefined() {
		fmt.Fprintf(w, "%s: %s\n", e.Pos, e.Msg)
	}
	return nil
}

// PrintError prints the error to stderr,
// with the file name for errors reported by the analyzer.
func PrintError(err error) {
	if e, ok := err.(*resolve.Error); ok {
		fmt.Fprintf(os.Stderr, "<stdin>:%s\n", e)
	} else {
		fmt.Fprintln(os.Stderr, err)
	}
}
