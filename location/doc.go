// Package location captures program call sites as immutable values.
//
// An Info records the source file, line, and raw function signature of
// the place where a log statement executed. The short file name is
// derived once at construction; the bare method name and the enclosing
// class path are parsed on demand from the stored signature using
// positional heuristics over the compiler-rendered text.
//
// When a call site cannot be determined, the fields hold the sentinel
// literals NA ("?"), NAMethod ("?::?"), and NALine (-1) rather than any
// null representation. Callers test individual fields against these
// literals; a descriptor may hold real data in some fields and
// sentinels in others.
//
// Info also knows how to encode itself into the binary record format
// consumed by org.apache.log4j socket receivers; see Write.
package location
