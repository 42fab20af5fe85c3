// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resolve

import "go.esscope.net/syntax"

// A RefFlag records how a reference uses its variable.
type RefFlag uint8

const (
	Read      RefFlag = 1 << iota // the value is read
	Write                         // the variable is assigned
	ReadWrite = Read | Write      // compound assignment or update
)

// A Reference is one occurrence of an identifier that refers to a
// variable rather than declaring one.
type Reference struct {
	Identifier *syntax.Ident

	// From is the innermost scope containing the occurrence.
	From *Scope

	// Resolved is the variable the reference binds to, or nil if it
	// reached the global scope unresolved.
	Resolved *Variable

	Flag RefFlag

	// IsValueReference and IsTypeReference record the position of
	// the occurrence. Export specifiers and default exports of a bare
	// identifier are both.
	IsValueReference bool
	IsTypeReference  bool

	// FromTypeQuery marks a value reference made by typeof inside a type.
	FromTypeQuery bool

	// Init marks the write performed by a declaration's initializer
	// (or a parameter default, or a for-in/of binding).
	Init bool

	// WriteExpr is the expression whose value is written, if known.
	WriteExpr syntax.Expr

	seq int // creation order
}

func (r *Reference) IsRead() bool      { return r.Flag&Read != 0 }
func (r *Reference) IsWrite() bool     { return r.Flag&Write != 0 }
func (r *Reference) IsReadOnly() bool  { return r.Flag == Read }
func (r *Reference) IsWriteOnly() bool { return r.Flag == Write }
func (r *Reference) IsReadWrite() bool { return r.Flag == ReadWrite }

// IsStatic reports whether the binding of the reference is fixed at
// analysis time, that is, no with statement lies between the
// occurrence and the scope of its variable.
func (r *Reference) IsStatic() bool {
	for s := r.From; s != nil; s = s.Upper {
		if r.Resolved != nil && s == r.Resolved.Scope {
			return true
		}
		if s.Kind == WithScope {
			return false
		}
	}
	return true
}
