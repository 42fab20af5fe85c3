// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resolve

import "go.esscope.net/syntax"

// useStrict reports whether the directive prologue of list contains
// a "use strict" directive. Escapes and line continuations disqualify
// a directive, so the comparison is against the raw text.
func useStrict(list []syntax.Stmt) bool {
	for _, stmt := range list {
		es, ok := stmt.(*syntax.ExprStmt)
		if !ok || es.Directive == "" {
			return false
		}
		if es.Directive == "use strict" {
			return true
		}
	}
	return false
}

// functionStrict reports whether the body of fn begins with a
// "use strict" directive. Arrow functions with an expression body have
// no prologue.
func functionStrict(fn *syntax.Function) bool {
	return fn.Body != nil && useStrict(fn.Body.List)
}
