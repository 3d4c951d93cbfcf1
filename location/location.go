package location

import (
	"runtime"
	"sync"
)

// Sentinel values standing in for "data unavailable". Absent call-site
// data is always represented by these literals, never by empty strings
// or a null state.
const (
	// NA is stored in the file name fields when no file is known.
	NA = "?"
	// NAMethod is stored in the signature field when no function is known.
	NAMethod = "?::?"
	// NALine is stored in the line field when no line is known.
	NALine = -1
)

// Info describes a single call site. It is a plain value: copying
// produces an independent instance, and the short file name snapshot
// travels with the copy without being recomputed.
//
// Info is immutable after construction except through Clear or whole-value
// assignment. Concurrent reads of an instance that is not being mutated
// need no locking; concurrent mutation of the same instance must be
// serialized by the caller.
type Info struct {
	file      string
	shortFile string
	method    string
	line      int
}

// New builds an Info from a file path, a raw function signature, and a
// line number. The short file name is derived from file exactly once,
// here; accessors never recompute it.
func New(file, signature string, line int) Info {
	return Info{
		file:      file,
		shortFile: Shorten(file),
		method:    signature,
		line:      line,
	}
}

var (
	unavailableOnce sync.Once
	unavailable     Info
)

// Unavailable returns the canonical "location unknown" value: all fields
// hold their sentinels. The backing instance is created on first use and
// never mutated afterwards, so it is safe to share across goroutines.
func Unavailable() Info {
	unavailableOnce.Do(func() {
		unavailable = Info{
			file:      NA,
			shortFile: NA,
			method:    NAMethod,
			line:      NALine,
		}
	})
	return unavailable
}

// Capture builds an Info for the caller's current position in the Go
// call stack. skip follows the runtime.Caller convention: 0 is the
// caller of Capture itself. When the stack cannot be resolved the
// unavailable value is returned.
//
// The runtime's function name (for example "pkg/path.(*Type).Method")
// is stored as the raw signature. The class/method parsing heuristics
// target C++-style renderings, so MethodName and ClassName degrade to
// best-effort substrings for Go names; FileName, ShortFileName and
// LineNumber are always exact.
func Capture(skip int) Info {
	pc, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return Unavailable()
	}
	signature := NAMethod
	if fn := runtime.FuncForPC(pc); fn != nil {
		signature = fn.Name()
	}
	return New(file, signature, line)
}

// FileName returns the full file path as provided at construction.
func (i Info) FileName() string {
	return i.file
}

// ShortFileName returns the final path segment of the file name,
// cached at construction time.
func (i Info) ShortFileName() string {
	return i.shortFile
}

// LineNumber returns the source line, or NALine when unavailable.
func (i Info) LineNumber() int {
	return i.line
}

// Signature returns the raw signature text exactly as stored.
func (i Info) Signature() string {
	return i.method
}

// MethodName returns the bare function name parsed from the stored
// signature. The parse runs on every call; it is a cheap pure function
// of an already-small string.
func (i Info) MethodName() string {
	return parseMethod(i.method)
}

// ClassName returns the enclosing class or namespace path parsed from
// the stored signature, or "" when the signature carries no qualifier.
func (i Info) ClassName() string {
	return parseClass(i.method)
}

// IsUnavailable reports whether all three meaningful fields hold their
// sentinels simultaneously, i.e. the value equals the canonical
// unavailable instance.
func (i Info) IsUnavailable() bool {
	return i.line == NALine && i.file == NA && i.method == NAMethod
}

// Clear resets the value to the unavailable state in place. All fields,
// including the short file name snapshot, return to their sentinels, so
// a cleared Info compares equal to Unavailable().
func (i *Info) Clear() {
	i.file = NA
	i.shortFile = NA
	i.method = NAMethod
	i.line = NALine
}
