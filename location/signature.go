package location

import "strings"

// The parsers below extract names from compiler-rendered signature
// strings of the shapes
//
//	ReturnType Qualifiers::Method(Args)
//	Qualifiers::Method(Args)
//	Method(Args)
//	Method
//
// They are positional heuristics, not a grammar: the argument list is
// cut off first, the last "::" splits qualifier from method, and a
// space marks the end of a return-type token. Renderings outside this
// family (operator overloads, lambdas, templates with an embedded "::"
// in the return type) yield best-effort substrings.

// parseMethod returns the bare method name from a raw signature.
func parseMethod(raw string) string {
	s := raw
	if paren := strings.IndexByte(s, '('); paren >= 0 {
		s = s[:paren]
	}
	if sep := strings.LastIndex(s, "::"); sep >= 0 {
		return s[sep+2:]
	}
	if space := strings.IndexByte(s, ' '); space >= 0 {
		return s[space+1:]
	}
	return strings.TrimSpace(s)
}

// parseClass returns the qualifier path preceding the method token, or
// "" when the signature carries no "::" qualifier. Nested namespaces
// stay intact: only the last "::" delimits class from method.
func parseClass(raw string) string {
	s := raw
	if paren := strings.IndexByte(s, '('); paren >= 0 {
		s = s[:paren]
	}
	sep := strings.LastIndex(s, "::")
	if sep < 0 {
		return ""
	}
	s = s[:sep]
	if space := strings.LastIndexByte(s, ' '); space >= 0 {
		return s[space+1:]
	}
	return s
}
