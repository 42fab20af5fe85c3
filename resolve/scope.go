// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resolve

import (
	"sort"

	"go.esscope.net/syntax"
)

// A ScopeKind classifies a Scope.
type ScopeKind uint8

const (
	GlobalScope                ScopeKind = iota // the program
	ModuleScope                                 // module top level
	FunctionScope                               // function, method, arrow, or GlobalReturn wrapper
	BlockScope                                  // { ... }
	ClassScope                                  // class body and heritage
	ClassFieldInitializerScope                  // initializer of a class field
	ClassStaticBlockScope                       // static { ... }
	SwitchScope                                 // switch cases
	CatchScope                                  // catch parameter
	ForScope                                    // for loop with a let or const head
	WithScope                                   // with statement body
	TypeAliasScope                              // type parameters of a type alias
	TypeParametersScope                         // type parameters of a function, interface, or type
	EnumScope                                   // enum members
	NamespaceScope                              // namespace or module declaration body
)

var scopeKindNames = [...]string{
	GlobalScope:                "global",
	ModuleScope:                "module",
	FunctionScope:              "function",
	BlockScope:                 "block",
	ClassScope:                 "class",
	ClassFieldInitializerScope: "class-field-initializer",
	ClassStaticBlockScope:      "class-static-block",
	SwitchScope:                "switch",
	CatchScope:                 "catch",
	ForScope:                   "for",
	WithScope:                  "with",
	TypeAliasScope:             "type-alias",
	TypeParametersScope:        "type-parameters",
	EnumScope:                  "enum",
	NamespaceScope:             "namespace",
}

func (k ScopeKind) String() string { return scopeKindNames[k] }

// isVarScope reports whether var declarations hoist to scopes of kind k.
func (k ScopeKind) isVarScope() bool {
	switch k {
	case GlobalScope, ModuleScope, FunctionScope, NamespaceScope,
		ClassFieldInitializerScope, ClassStaticBlockScope:
		return true
	}
	return false
}

// A Scope is a lexical region of the program.
type Scope struct {
	Kind ScopeKind

	// Block is the node that opened the scope.
	Block syntax.Node

	Upper    *Scope
	Children []*Scope

	// IsStrict reports whether code in the scope is strict mode code.
	IsStrict bool

	// Variables lists the variables declared in the scope, in order of
	// first declaration. Set indexes them by name.
	Variables []*Variable
	Set       map[string]*Variable

	// References lists the references whose innermost scope is this one.
	References []*Reference

	// Through lists the references left unresolved by this scope and
	// its descendants, in creation order. For the global scope these
	// are the program's free names.
	Through []*Reference

	// Implicit lists, for the global scope, the sloppy-mode assignments
	// to undeclared names: the names that execution would create as
	// properties of the global object.
	Implicit []*Reference

	closed bool
}

// VariableScope returns the scope that var declarations made in s bind in.
func (s *Scope) VariableScope() *Scope {
	for ; s != nil; s = s.Upper {
		if s.Kind.isVarScope() {
			return s
		}
	}
	return nil
}

// Lookup returns the variable named name declared in s, or nil.
func (s *Scope) Lookup(name string) *Variable { return s.Set[name] }

// IsArrowFunction reports whether s is the scope of an arrow function.
func (s *Scope) IsArrowFunction() bool {
	_, ok := s.Block.(*syntax.ArrowFunc)
	return s.Kind == FunctionScope && ok
}

func (s *Scope) declare(name string) *Variable {
	if v := s.Set[name]; v != nil {
		return v
	}
	v := &Variable{Name: name, Scope: s}
	s.Set[name] = v
	s.Variables = append(s.Variables, v)
	return v
}

// close resolves the references of s and its children against the
// variables of s. Unresolved references become the Through list of s.
func (s *Scope) close(r *resolver) {
	var pending []*Reference
	pending = append(pending, s.References...)
	for _, child := range s.Children {
		pending = append(pending, child.Through...)
	}
	sort.SliceStable(pending, func(i, j int) bool { return pending[i].seq < pending[j].seq })

	for _, ref := range pending {
		if v := s.Set[ref.Identifier.Name]; v != nil && v.accepts(ref) {
			ref.Resolved = v
			v.References = append(v.References, ref)
			if r.opts.Trace != nil {
				r.opts.Trace("%s: %s resolved in %s scope", syntax.Start(ref.Identifier), ref.Identifier.Name, s.Kind)
			}
			continue
		}
		s.Through = append(s.Through, ref)
	}

	if s.Kind == GlobalScope {
		for _, ref := range s.Through {
			if ref.IsWriteOnly() && !ref.Init && !ref.From.IsStrict {
				s.Implicit = append(s.Implicit, ref)
			}
		}
	}
	s.closed = true
}
