// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resolve

import (
	"fmt"
	"sort"

	"go.esscope.net/syntax"
)

// Check verifies the structural invariants of an analysis:
//
//   - the scopes form a tree rooted at Global, and every scope in
//     Scopes is reachable from it exactly once;
//   - a scope inside strict code is strict;
//   - every reference is either bound to a variable that lists it, or
//     left in the Through list of the global scope, but not both;
//   - a bound reference respects the value/type capability of its variable,
//     and its variable is declared in a scope enclosing the reference.
//
// It is intended for tests and for debugging producers of syntax trees.
func (m *Manager) Check() error {
	var errs ErrorList
	errorf := func(n syntax.Node, format string, args ...interface{}) {
		var pos syntax.Position
		if n != nil {
			pos = syntax.Start(n)
		}
		errs = append(errs, Error{Pos: pos, Msg: fmt.Sprintf(format, args...)})
	}

	if m.Global == nil || len(m.Scopes) == 0 || m.Scopes[0] != m.Global {
		errorf(nil, "global scope is not the first scope")
		return errs
	}
	if m.Global.Upper != nil {
		errorf(m.Global.Block, "global scope has a parent")
	}

	seen := make(map[*Scope]int)
	var visit func(s *Scope)
	visit = func(s *Scope) {
		seen[s]++
		for _, child := range s.Children {
			if child.Upper != s {
				errorf(child.Block, "%s scope is a child of a scope other than its parent", child.Kind)
			}
			if s.IsStrict && !child.IsStrict {
				errorf(child.Block, "sloppy %s scope inside strict %s scope", child.Kind, s.Kind)
			}
			visit(child)
		}
	}
	visit(m.Global)
	for _, s := range m.Scopes {
		if n := seen[s]; n != 1 {
			errorf(s.Block, "%s scope reached %d times from the global scope", s.Kind, n)
		}
	}

	through := make(map[*Reference]int)
	for _, ref := range m.Global.Through {
		through[ref]++
	}
	for _, ref := range m.References() {
		id := ref.Identifier
		switch v := ref.Resolved; {
		case v == nil:
			if through[ref] != 1 {
				errorf(id, "unresolved reference to %s appears %d times in the global through list", id.Name, through[ref])
			}
		case through[ref] != 0:
			errorf(id, "reference to %s is both resolved and unresolved", id.Name)
		case !v.accepts(ref):
			errorf(id, "reference to %s is bound to a variable of the wrong capability (%s)", id.Name, v.capability)
		case !encloses(v.Scope, ref.From):
			errorf(id, "reference to %s is bound to a variable of a non-enclosing %s scope", id.Name, v.Scope.Kind)
		case !contains(v.References, ref):
			errorf(id, "variable %s does not list its reference", id.Name)
		}
	}

	sort.Stable(errs)
	return errs.Err()
}

// encloses reports whether outer is s or an ancestor of s.
func encloses(outer, s *Scope) bool {
	for ; s != nil; s = s.Upper {
		if s == outer {
			return true
		}
	}
	return false
}

func contains(refs []*Reference, ref *Reference) bool {
	for _, r := range refs {
		if r == ref {
			return true
		}
	}
	return false
}
