package javaio

import (
	"encoding/binary"
	"fmt"
	"io"
	"unicode/utf16"
)

// Object-stream type codes and constants, as defined by the Java
// serialization grammar.
const (
	tcNull      byte = 0x70
	tcReference byte = 0x71
	tcObject    byte = 0x73
	tcString    byte = 0x74

	// baseWireHandle is the handle assigned to the first object in a
	// stream; every subsequent object, class descriptor, and string
	// takes the next handle in sequence.
	baseWireHandle uint32 = 0x7E0000

	// maxUTFUnits is the largest string a single length-prefixed UTF
	// record can carry: the count field is two bytes of UTF-16 units.
	maxUTFUnits = 0xFFFF
)

// streamHeader is the object-stream magic and protocol version.
var streamHeader = []byte{0xAC, 0xED, 0x00, 0x05}

// ObjectWriter encodes records onto an underlying io.Writer. It tracks
// wire handles so that the second and later occurrences of a class are
// written as back-references instead of repeating the descriptor, the
// way a Java ObjectOutputStream would.
//
// ObjectWriter is not safe for concurrent use; callers serialize access
// the same way they serialize access to the underlying writer.
type ObjectWriter struct {
	w            io.Writer
	handle       uint32
	classHandles map[string]uint32
}

// NewObjectWriter writes the stream header onto w and returns a writer
// positioned for the first record.
func NewObjectWriter(w io.Writer) (*ObjectWriter, error) {
	if _, err := w.Write(streamHeader); err != nil {
		return nil, fmt.Errorf("object stream header: %w", err)
	}
	return &ObjectWriter{
		w:            w,
		handle:       baseWireHandle,
		classHandles: make(map[string]uint32),
	}, nil
}

// WriteNull emits the null marker token.
func (o *ObjectWriter) WriteNull() error {
	_, err := o.w.Write([]byte{tcNull})
	return err
}

// WriteProlog begins an object record for className. On the first use
// of a class the caller-supplied descriptor bytes are emitted verbatim
// after the object tag, and the class handle is recorded; handleSpan
// declares how many wire handles the descriptor and its nested strings
// consume. Later uses of the same class emit a back-reference to the
// recorded handle instead. Either way the new object itself takes the
// next handle.
func (o *ObjectWriter) WriteProlog(className string, handleSpan uint32, desc []byte) error {
	if h, ok := o.classHandles[className]; ok {
		var ref [6]byte
		ref[0] = tcObject
		ref[1] = tcReference
		binary.BigEndian.PutUint32(ref[2:], h)
		if _, err := o.w.Write(ref[:]); err != nil {
			return err
		}
		o.handle++
		return nil
	}

	o.classHandles[className] = o.handle
	if _, err := o.w.Write([]byte{tcObject}); err != nil {
		return err
	}
	if _, err := o.w.Write(desc); err != nil {
		return err
	}
	o.handle += handleSpan // descriptor and its nested strings
	o.handle++             // the object being written
	return nil
}

// WriteUTFString emits s as a string record: the string tag, a two-byte
// big-endian count of UTF-16 code units, and the text in modified
// UTF-8. Strings longer than 65535 UTF-16 units do not fit the count
// field and are rejected.
func (o *ObjectWriter) WriteUTFString(s string) error {
	units := utf16Length(s)
	if units > maxUTFUnits {
		return fmt.Errorf("string of %d UTF-16 units exceeds UTF record limit", units)
	}

	buf := make([]byte, 0, len(s)+3)
	buf = append(buf, tcString, byte(units>>8), byte(units))
	buf = appendModifiedUTF8(buf, s)
	if _, err := o.w.Write(buf); err != nil {
		return err
	}
	o.handle++
	return nil
}

// utf16Length counts the UTF-16 code units needed to represent s.
func utf16Length(s string) int {
	n := 0
	for _, r := range s {
		n++
		if r > 0xFFFF {
			n++
		}
	}
	return n
}

// appendModifiedUTF8 appends the modified UTF-8 encoding of s to dst.
// It differs from standard UTF-8 in exactly two ways: U+0000 becomes
// the two-byte sequence C0 80, and code points above U+FFFF are split
// into a UTF-16 surrogate pair with each surrogate encoded as three
// bytes (CESU-8).
func appendModifiedUTF8(dst []byte, s string) []byte {
	for _, r := range s {
		switch {
		case r == 0:
			dst = append(dst, 0xC0, 0x80)
		case r < 0x80:
			dst = append(dst, byte(r))
		case r < 0x800:
			dst = append(dst, 0xC0|byte(r>>6), 0x80|byte(r&0x3F))
		case r <= 0xFFFF:
			dst = appendUTF8Triple(dst, r)
		default:
			hi, lo := utf16.EncodeRune(r)
			dst = appendUTF8Triple(dst, hi)
			dst = appendUTF8Triple(dst, lo)
		}
	}
	return dst
}

func appendUTF8Triple(dst []byte, r rune) []byte {
	return append(dst,
		0xE0|byte(r>>12),
		0x80|byte((r>>6)&0x3F),
		0x80|byte(r&0x3F))
}
