// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resolve

// This file defines a simple spell checker for use in undefined-name
// diagnostics ("undefined: lenght (did you mean length?)").

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"go.esscope.net/syntax"
)

// Undefined returns a diagnostic for each reference that reached the
// global scope unresolved, sorted by position. When a visible name is
// close enough to the unresolved one, the message suggests it.
//
// Call it after AddGlobals, so that environment globals are not reported.
func (m *Manager) Undefined() ErrorList {
	var errs ErrorList
	for _, ref := range m.Global.Through {
		msg := "undefined: " + ref.Identifier.Name
		if !ref.IsValueReference {
			msg = "undefined type: " + ref.Identifier.Name
		}
		if n := nearest(ref.Identifier.Name, visibleNames(ref)); n != "" {
			msg = fmt.Sprintf("%s (did you mean %s?)", msg, n)
		}
		errs = append(errs, Error{Pos: syntax.Start(ref.Identifier), Msg: msg})
	}
	sort.Stable(errs)
	return errs
}

// visibleNames returns the names of the variables that ref could bind
// to by position alone, innermost scope first.
func visibleNames(ref *Reference) []string {
	var names []string
	for s := ref.From; s != nil; s = s.Upper {
		for _, v := range s.Variables {
			if v.accepts(ref) {
				names = append(names, v.Name)
			}
		}
	}
	return names
}

// nearest returns the element of candidates
// nearest to x using the Levenshtein metric.
func nearest(x string, candidates []string) string {
	// Ignore underscores, dollar signs and case when matching.
	fold := func(s string) string {
		return strings.Map(func(r rune) rune {
			if r == '_' || r == '$' {
				return -1
			}
			return unicode.ToLower(r)
		}, s)
	}

	x = fold(x)

	var best string
	bestD := (len(x) + 1) / 2 // allow up to 50% typos
	for _, c := range candidates {
		d := levenshtein(x, fold(c), bestD)
		if d < bestD {
			bestD = d
			best = c
		}
	}
	return best
}

// levenshtein returns the non-negative Levenshtein edit distance
// between the byte strings x and y.
//
// If the computed distance exceeds max,
// the function may return early with an approximate value > max.
func levenshtein(x, y string, max int) int {
	// This implementation is derived from one by Laurent Le Brun in
	// Bazel that uses the single-row space efficiency trick
	// described at bitbucket.org/clearer/iosifovich.

	// Let x be the shorter string.
	if len(x) > len(y) {
		x, y = y, x
	}

	// Remove common prefix.
	for i := 0; i < len(x); i++ {
		if x[i] != y[i] {
			x = x[i:]
			y = y[i:]
			break
		}
	}
	if x == "" {
		return len(y)
	}

	row := make([]int, len(y)+1)
	for i := range row {
		row[i] = i
	}

	for i := 1; i <= len(x); i++ {
		row[0] = i
		best := i
		prev := i - 1
		for j := 1; j <= len(y); j++ {
			a := prev + b2i(x[i-1] != y[j-1]) // substitution
			b := 1 + row[j-1]                 // deletion
			c := 1 + row[j]                   // insertion
			k := min(a, min(b, c))
			prev, row[j] = row[j], k
			best = min(best, k)
		}
		if best > max {
			return best
		}
	}
	return row[len(y)]
}

func min(x, y int) int {
	if x < y {
		return x
	}
	return y
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}
