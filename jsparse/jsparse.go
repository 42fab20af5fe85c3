// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package jsparse parses JavaScript source text into syntax trees.
//
// Parsing is delegated to the goja parser; the resulting goja AST is
// converted into the node vocabulary of package syntax. goja accepts
// ECMAScript scripts (not modules, and not TypeScript), so trees that
// use TypeScript constructs must come from another producer.
package jsparse // import "go.esscope.net/jsparse"

import (
	"fmt"
	"io"
	"strings"

	"github.com/dop251/goja/parser"
	"go.esscope.net/syntax"
	"golang.org/x/net/html"
)

// Parse parses the JavaScript program src and returns its syntax tree.
// The filename is used only in error messages and in Program.Path.
// A goja tree that cannot be converted is reported as an error.
func Parse(filename, src string) (_ *syntax.Program, err error) {
	prog, err := parser.ParseFile(nil, filename, src, 0)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	defer func() {
		if x := recover(); x != nil {
			err = fmt.Errorf("%s: cannot convert syntax tree: %v", filename, x)
		}
	}()
	c := converter{file: prog.File, src: src}
	return c.program(prog, filename), nil
}

// A Script is the body of an inline <script> element.
type Script struct {
	Line   int32  // line of the element's first content line within the document
	Module bool   // type="module"
	Source string // padded with newlines so that positions match the document
}

// ExtractScripts returns the inline JavaScript of an HTML document, in
// document order. Elements with a src attribute, or a type that is not
// JavaScript, are skipped.
func ExtractScripts(r io.Reader) ([]Script, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	doc, err := html.Parse(strings.NewReader(string(data)))
	if err != nil {
		return nil, err
	}
	text := string(data)

	var scripts []Script
	offset := 0 // search position for locating script bodies in text
	var traverse func(*html.Node)
	traverse = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "script" {
			if s, ok := inlineScript(n, text, &offset); ok {
				scripts = append(scripts, s)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			traverse(c)
		}
	}
	traverse(doc)
	return scripts, nil
}

func inlineScript(n *html.Node, text string, offset *int) (Script, bool) {
	var s Script
	for _, attr := range n.Attr {
		switch strings.ToLower(attr.Key) {
		case "src":
			return s, false
		case "type":
			switch strings.ToLower(strings.TrimSpace(attr.Val)) {
			case "", "text/javascript", "application/javascript":
			case "module":
				s.Module = true
			default:
				return s, false
			}
		}
	}
	var body strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			body.WriteString(c.Data)
		}
	}
	src := body.String()
	if strings.TrimSpace(src) == "" {
		return s, false
	}

	// Recover the line number by locating the body in the raw text.
	s.Line = 1
	if i := strings.Index(text[*offset:], src); i >= 0 {
		start := *offset + i
		s.Line = int32(strings.Count(text[:start], "\n")) + 1
		*offset = start + len(src)
	}
	s.Source = strings.Repeat("\n", int(s.Line)-1) + src
	return s, true
}

// ParseHTML parses each inline script of an HTML document.
// Scripts that fail to parse are reported in the returned error,
// which lists every failure; the programs that parsed are still returned.
func ParseHTML(filename string, r io.Reader) ([]*syntax.Program, []Script, error) {
	scripts, err := ExtractScripts(r)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", filename, err)
	}
	var (
		progs []*syntax.Program
		ok    []Script
		errs  []string
	)
	for i, s := range scripts {
		prog, err := Parse(fmt.Sprintf("%s#script%d", filename, i), s.Source)
		if err != nil {
			errs = append(errs, err.Error())
			continue
		}
		progs = append(progs, prog)
		ok = append(ok, s)
	}
	if len(errs) > 0 {
		return progs, ok, fmt.Errorf("%s", strings.Join(errs, "\n"))
	}
	return progs, ok, nil
}
