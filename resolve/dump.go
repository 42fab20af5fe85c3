// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resolve

import (
	"fmt"
	"io"
	"strings"

	"go.esscope.net/syntax"
)

// Dump returns a text rendering of the scope tree of m:
// one line per scope, variable and direct reference, indented by depth.
//
//	global
//	  var a [Variable] value
//	  ref a 1:5 write init -> global
//	  ref b 1:9 read -> ?
//	  free b 1:9
//
// Unresolved references are marked "-> ?"; the global scope ends with
// the free names of the program.
func Dump(m *Manager) string {
	var buf strings.Builder
	dumpScope(&buf, m.Global, 0)
	return buf.String()
}

func dumpScope(w io.Writer, s *Scope, depth int) {
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(w, "%s%s", indent, s.Kind)
	if s.IsStrict && (s.Upper == nil || !s.Upper.IsStrict) {
		fmt.Fprint(w, " strict")
	}
	fmt.Fprintln(w)

	for _, v := range s.Variables {
		kinds := make([]string, len(v.Defs))
		for i, def := range v.Defs {
			kinds[i] = def.Kind.String()
		}
		fmt.Fprintf(w, "%s  var %s [%s] %s\n", indent, v.Name, strings.Join(kinds, " "), v.capability)
	}
	for _, ref := range s.References {
		fmt.Fprintf(w, "%s  ref %s %s %s -> ", indent, ref.Identifier.Name, syntax.Start(ref.Identifier), describe(ref))
		if ref.Resolved != nil {
			fmt.Fprintln(w, ref.Resolved.Scope.Kind)
		} else {
			fmt.Fprintln(w, "?")
		}
	}
	for _, child := range s.Children {
		dumpScope(w, child, depth+1)
	}
	if s.Upper == nil {
		for _, ref := range s.Through {
			fmt.Fprintf(w, "%s  free %s %s\n", indent, ref.Identifier.Name, syntax.Start(ref.Identifier))
		}
	}
}

// describe returns the flags of a reference as space-separated words.
func describe(ref *Reference) string {
	var words []string
	switch ref.Flag {
	case Read:
		words = append(words, "read")
	case Write:
		words = append(words, "write")
	case ReadWrite:
		words = append(words, "readwrite")
	}
	switch {
	case ref.IsValueReference && ref.IsTypeReference:
		words = append(words, "value+type")
	case ref.IsTypeReference:
		words = append(words, "type")
	}
	if ref.FromTypeQuery {
		words = append(words, "typeof")
	}
	if ref.Init {
		words = append(words, "init")
	}
	return strings.Join(words, " ")
}
