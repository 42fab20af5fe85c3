// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package resolve binds the identifiers of an ECMAScript syntax tree.
//
// Analyze walks a syntax tree once and builds a tree of lexical scopes.
// Each scope records the variables declared in it and the references
// made directly within it. When a scope is closed its references, along
// with the unresolved references of its children, are matched against
// the variables of the scope; whatever is left over passes through to
// the enclosing scope. References that reach the global scope without
// being resolved stay in the global scope's Through list: they denote
// implicit globals (or typos) and are a normal outcome, not an error.
//
// TypeScript lets one name carry both a value meaning and a type meaning
// in the same scope ("declaration merging"). Every Definition therefore
// has a Capability, and every Reference records whether it appears in a
// value position, a type position, or both. A type reference binds only
// to a variable with a type-capable definition, a value reference only to
// one with a value-capable definition, so an inner value-only variable
// does not hide an outer type of the same name. A 'typeof x' query inside
// a type is a value reference.
//
// Hoisting follows ECMAScript: var declarations, and function declarations
// outside strict code, bind in the nearest variable scope (function,
// global, module, namespace, class field initializer or static block);
// let, const, class and catch parameters bind in the innermost scope.
//
// The resulting Manager is read-only except for AddGlobals, which
// injects environment globals exactly once after analysis.
package resolve // import "go.esscope.net/resolve"

import (
	"errors"
	"fmt"
	"sort"

	"go.esscope.net/syntax"
)

// A SourceType selects between script and module goal symbols.
type SourceType uint8

const (
	Script SourceType = iota
	Module
)

func (t SourceType) String() string {
	if t == Module {
		return "module"
	}
	return "script"
}

// Options controls an analysis.
type Options struct {
	SourceType SourceType

	// ImpliedStrict treats the whole program as strict code.
	ImpliedStrict bool

	// GlobalReturn wraps a script in an additional function scope,
	// as CommonJS loaders do.
	GlobalReturn bool

	// Trace, if non-nil, is called for scope and resolution events.
	Trace func(format string, args ...interface{})
}

// An Error describes a malformed syntax tree.
type Error struct {
	Pos syntax.Position
	Msg string
}

func (e Error) Error() string { return e.Pos.String() + ": " + e.Msg }

// An ErrorList is a list of errors sorted by position.
type ErrorList []Error

func (e ErrorList) Len() int           { return len(e) }
func (e ErrorList) Swap(i, j int)      { e[i], e[j] = e[j], e[i] }
func (e ErrorList) Less(i, j int) bool { return e[i].Pos.Before(e[j].Pos) }

// Err returns nil if the list is empty, or the list itself otherwise.
func (e ErrorList) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

func (e ErrorList) Error() string {
	switch len(e) {
	case 0:
		return "no errors"
	case 1:
		return e[0].Error()
	}
	return fmt.Sprintf("%s (and %d more errors)", e[0], len(e)-1)
}

// ErrGlobalsFinalized is returned by a second call to AddGlobals.
var ErrGlobalsFinalized = errors.New("resolve: globals already added")

// abort carries a contract violation out of the traversal.
type abort struct{ err *Error }

// A Manager holds the result of an analysis.
type Manager struct {
	// Scopes lists every scope in creation order; Scopes[0] is Global.
	Scopes []*Scope
	Global *Scope

	opts      Options
	declared  map[syntax.Node][]*Variable
	blocks    map[syntax.Node][]*Scope
	finalized bool // AddGlobals has been called with a name
}

// Analyze resolves the identifiers of prog. A nil opts is equivalent
// to a pointer to the zero Options (a non-strict script).
//
// The tree must be well formed; a missing required child or a node in
// an unexpected position aborts the analysis with an *Error.
func Analyze(prog *syntax.Program, opts *Options) (m *Manager, err error) {
	if opts == nil {
		opts = new(Options)
	}
	m = &Manager{
		opts:     *opts,
		declared: make(map[syntax.Node][]*Variable),
		blocks:   make(map[syntax.Node][]*Scope),
	}
	defer func() {
		if x := recover(); x != nil {
			a, ok := x.(abort)
			if !ok {
				panic(x)
			}
			m, err = nil, a.err
		}
	}()
	if prog == nil {
		panic(abort{&Error{Msg: "nil program"}})
	}
	r := resolver{m: m, opts: &m.opts}
	r.program(prog)
	return m, nil
}

// IsModule reports whether the program was analyzed as a module.
func (m *Manager) IsModule() bool { return m.opts.SourceType == Module }

// DeclaredVariables returns the variables declared by node, which may
// be any declaring node: a declaration, a declarator, a function or
// class, a catch clause, an import declaration or specifier, a type
// parameter, an enum member, and so on.
func (m *Manager) DeclaredVariables(node syntax.Node) []*Variable {
	return m.declared[node]
}

// Acquire returns the scope opened by node, or nil if none.
// When node opened several scopes (a function with type parameters, a
// module program), inner selects the innermost rather than the outermost.
func (m *Manager) Acquire(node syntax.Node, inner bool) *Scope {
	scopes := m.blocks[node]
	switch len(scopes) {
	case 0:
		return nil
	case 1:
		return scopes[0]
	}
	if inner {
		return scopes[len(scopes)-1]
	}
	return scopes[0]
}

// References returns every reference of the program, in creation order.
func (m *Manager) References() []*Reference {
	var refs []*Reference
	for _, s := range m.Scopes {
		refs = append(refs, s.References...)
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].seq < refs[j].seq })
	return refs
}

func (m *Manager) addDeclared(node syntax.Node, v *Variable) {
	if node == nil {
		return
	}
	for _, prev := range m.declared[node] {
		if prev == v {
			return
		}
	}
	m.declared[node] = append(m.declared[node], v)
}
