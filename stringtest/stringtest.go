// Package stringtest builds multi-line expected values for tests that compare
// generated Markdown or source fixtures.
package stringtest

import "strings"

// JoinLF joins multiple strings with LF line endings.
// Use this to construct expected test output with explicit line endings.
//
// Example:
//
//	want := stringtest.JoinLF(
//		"# Group Widget",
//		"",
//		"## GET /widgets",
//	) // -> "# Group Widget\n\n## GET /widgets"
func JoinLF(ss ...string) string {
	var sb strings.Builder
	for i, s := range ss {
		if i > 0 {
			sb.WriteByte('\n')
		}

		sb.WriteString(s)
	}

	return sb.String()
}

// Lines is [JoinLF] with a trailing LF, which is how every line of a
// generated document ends.
func Lines(ss ...string) string {
	if len(ss) == 0 {
		return ""
	}

	return JoinLF(ss...) + "\n"
}

// Input dedents a raw string literal so fixtures can be indented along with
// the surrounding test code.
//
// One leading and one trailing newline are removed, then the longest
// whitespace prefix shared by all non-blank lines is stripped. Lines holding
// only whitespace become empty.
//
// Example:
//
//	src := stringtest.Input(`
//	    // GET /widgets
//	    // Lists widgets.
//	    func listWidgets() {}`)
func Input(s string) string {
	s = strings.TrimPrefix(s, "\n")
	s = strings.TrimSuffix(s, "\n")

	lines := strings.Split(s, "\n")

	prefix := ""
	first := true

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
		if first {
			prefix = indent
			first = false

			continue
		}

		prefix = commonPrefix(prefix, indent)
	}

	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			lines[i] = ""

			continue
		}

		lines[i] = strings.TrimPrefix(line, prefix)
	}

	return strings.Join(lines, "\n")
}

func commonPrefix(a, b string) string {
	n := min(len(a), len(b))
	for i := range n {
		if a[i] != b[i] {
			return a[:i]
		}
	}

	return a[:n]
}
