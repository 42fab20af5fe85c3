package repl

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"go.esscope.net/resolve"
)

// lines returns a readline function that yields the given lines, then io.EOF.
func lines(input ...string) func() (string, error) {
	return func() (string, error) {
		if len(input) == 0 {
			return "", io.EOF
		}
		line := input[0]
		input = input[1:]
		return line, nil
	}
}

func TestReadSnippet(t *testing.T) {
	for _, test := range []struct {
		input []string
		want  string
	}{
		{[]string{"x = 1;", "y = 2;"}, "x = 1;\n"},
		{[]string{"function f() {", "  return 1;", "}", "g();"}, "function f() {\n  return 1;\n}\n"},
		{[]string{"var = ;", "x;"}, "var = ;\n"}, // syntax error: no continuation
		{[]string{"if (x) {", "", "y;"}, "if (x) {\n\n"},
		{[]string{"while (x) {"}, "while (x) {\n"}, // EOF ends the snippet
	} {
		got, err := readSnippet(lines(test.input...))
		if err != nil {
			t.Errorf("readSnippet(%q): %v", test.input, err)
			continue
		}
		if got != test.want {
			t.Errorf("readSnippet(%q) = %q, want %q", test.input, got, test.want)
		}
	}

	if _, err := readSnippet(lines()); err != io.EOF {
		t.Errorf("readSnippet at EOF: got %v, want io.EOF", err)
	}
}

func TestAnalyze(t *testing.T) {
	var buf bytes.Buffer
	src := "var a = b;\nfunction f() { return c + d; }\n"
	if err := Analyze(&buf, "<stdin>", src, resolve.Options{}, []string{"d"}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"global\n",
		"  var a [Variable] value\n",
		"  var f [FunctionName] value\n",
		"  function\n",
		"    var arguments [ImplicitArguments] value\n",
		"  free b ",
		"  free c ",
		": undefined: b\n",
		": undefined: c\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output lacks %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "undefined: d") {
		t.Errorf("global d reported as undefined:\n%s", out)
	}

	if err := Analyze(&buf, "<stdin>", "var = ;", resolve.Options{}, nil); err == nil {
		t.Errorf("Analyze of a syntax error succeeded")
	}
}
