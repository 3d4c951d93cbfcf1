package location

import (
	"strconv"
	"strings"

	"github.com/log4g/log4g/javaio"
)

// locationInfoClass is the foreign class every serialized call site
// claims to be an instance of. Receivers deserialize the record with
// the stock log4j class, so the name and the descriptor bytes below
// are a wire contract.
const locationInfoClass = "org.apache.log4j.spi.LocationInfo"

// locationInfoDesc is the serialized class descriptor for
// org.apache.log4j.spi.LocationInfo: class name, serialVersionUID,
// SC_SERIALIZABLE, and a field table declaring the single String field
// "fullInfo". It is a literal byte table, never derived at runtime, so
// the output stays byte-identical to the reference implementation.
var locationInfoDesc = []byte{
	0x72,
	0x00,
	0x21, 0x6F, 0x72, 0x67, 0x2E, 0x61, 0x70, 0x61, 0x63, 0x68, 0x65, 0x2E,
	0x6C, 0x6F, 0x67, 0x34, 0x6A, 0x2E, 0x73, 0x70, 0x69, 0x2E, 0x4C, 0x6F,
	0x63, 0x61, 0x74, 0x69, 0x6F, 0x6E, 0x49, 0x6E, 0x66, 0x6F, 0xED, 0x99,
	0xBB, 0xE1, 0x4A, 0x91, 0xA5, 0x7C, 0x02,
	0x00,
	0x01, 0x4C,
	0x00,
	0x08, 0x66, 0x75, 0x6C, 0x6C, 0x49, 0x6E, 0x66, 0x6F, 0x74,
	0x00,
	0x12, 0x4C, 0x6A, 0x61, 0x76, 0x61, 0x2F, 0x6C, 0x61, 0x6E, 0x67, 0x2F,
	0x53, 0x74, 0x72, 0x69, 0x6E, 0x67, 0x3B, 0x78, 0x70,
}

// locationInfoHandleSpan is the number of wire handles the descriptor
// consumes: one for the class descriptor itself and one for the
// "Ljava/lang/String;" field type string nested inside it.
const locationInfoHandleSpan = 2

// Write encodes the call site onto w in the log4j object-stream record
// format. The canonical unavailable value is written as a single null
// marker; every other value, including partially-unavailable ones, is
// written as a LocationInfo instance whose fullInfo string embeds the
// stored fields verbatim. Output bytes are a pure function of the
// file, signature, and line fields.
func (i Info) Write(w *javaio.ObjectWriter) error {
	if i.IsUnavailable() {
		return w.WriteNull()
	}
	if err := w.WriteProlog(locationInfoClass, locationInfoHandleSpan, locationInfoDesc); err != nil {
		return err
	}
	return w.WriteUTFString(i.fullInfo())
}

// fullInfo renders the Java-style location text: the signature with a
// leading return type stripped and the class separator "::" replaced
// by ".", followed by "(file:line)".
func (i Info) fullInfo() string {
	full := i.method
	if paren := strings.IndexByte(full, '('); paren >= 0 {
		if space := strings.IndexByte(full, ' '); space >= 0 && space < paren {
			full = full[space+1:]
		}
	}
	if paren := strings.IndexByte(full, '('); paren >= 0 {
		if sep := strings.LastIndex(full[:paren], "::"); sep >= 0 {
			full = full[:sep] + "." + full[sep+2:]
		} else {
			full = "." + full
		}
	}

	var b strings.Builder
	b.Grow(len(full) + len(i.file) + 16)
	b.WriteString(full)
	b.WriteByte('(')
	b.WriteString(i.file)
	b.WriteByte(':')
	b.WriteString(strconv.Itoa(i.line))
	b.WriteByte(')')
	return b.String()
}
