// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resolve

import "go.esscope.net/syntax"

// A binding describes one identifier bound by a pattern.
type binding struct {
	id *syntax.Ident

	// rest reports whether the identifier is under a rest element.
	rest bool

	// defaults lists the default-value patterns enclosing the
	// identifier, outermost first. Each default is a potential write.
	defaults []*syntax.AssignPattern
}

// A patternWalker enumerates the identifiers bound by a binding
// pattern or an assignment target.
type patternWalker struct {
	r        *resolver
	assign   bool // assignment target: member expressions may appear
	bindings []binding
	defaults []*syntax.AssignPattern

	// evaluated collects, in source order, the parts of the pattern that
	// are evaluated rather than bound: default values, computed keys,
	// type annotations and, in assignment targets, member expressions.
	evaluated []syntax.Node
}

// pattern returns the bindings of p and the nodes of p that must be
// visited as ordinary expressions or types.
func (r *resolver) pattern(p syntax.Expr, assign bool) ([]binding, []syntax.Node) {
	w := patternWalker{r: r, assign: assign}
	w.walk(p, false)
	return w.bindings, w.evaluated
}

func (w *patternWalker) annotation(t syntax.TypeNode) {
	if t != nil {
		w.evaluated = append(w.evaluated, t)
	}
}

func (w *patternWalker) walk(p syntax.Expr, rest bool) {
	switch p := p.(type) {
	case *syntax.Ident:
		w.annotation(p.Type)
		w.bindings = append(w.bindings, binding{
			id:       p,
			rest:     rest,
			defaults: append([]*syntax.AssignPattern(nil), w.defaults...),
		})

	case *syntax.ObjectPattern:
		w.annotation(p.Type)
		for _, prop := range p.Props {
			switch prop := prop.(type) {
			case *syntax.Property:
				if prop.Computed {
					w.evaluated = append(w.evaluated, prop.Key)
				}
				w.walk(prop.Value, rest)
			case *syntax.RestElement:
				w.annotation(prop.Type)
				w.walk(prop.Arg, true)
			default:
				w.r.errorf(prop, "unexpected %T in object pattern", prop)
			}
		}

	case *syntax.ArrayPattern:
		w.annotation(p.Type)
		for _, elem := range p.Elems {
			if elem != nil {
				w.walk(elem, rest)
			}
		}

	case *syntax.RestElement:
		w.annotation(p.Type)
		w.walk(p.Arg, true)

	case *syntax.AssignPattern:
		w.defaults = append(w.defaults, p)
		w.walk(p.Left, rest)
		w.defaults = w.defaults[:len(w.defaults)-1]
		w.evaluated = append(w.evaluated, p.Right)

	case *syntax.ParamProp:
		w.walk(p.Param, rest)

	case *syntax.MemberExpr:
		if !w.assign {
			w.r.errorf(p, "member expression in binding pattern")
		}
		w.evaluated = append(w.evaluated, p)

	case *syntax.AsExpr:
		if !w.assign {
			w.r.errorf(p, "type assertion in binding pattern")
		}
		w.walk(p.X, rest)
		w.annotation(p.Type)

	case *syntax.TypeAssertion:
		if !w.assign {
			w.r.errorf(p, "type assertion in binding pattern")
		}
		w.annotation(p.Type)
		w.walk(p.X, rest)

	case *syntax.NonNullExpr:
		if !w.assign {
			w.r.errorf(p, "non-null assertion in binding pattern")
		}
		w.walk(p.X, rest)

	case nil:
		w.r.errorf(nil, "missing binding pattern")

	default:
		w.r.errorf(p, "unexpected %T in binding pattern", p)
	}
}
