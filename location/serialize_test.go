package location

import (
	"bytes"
	"testing"

	"github.com/log4g/log4g/javaio"
)

func TestFullInfo(t *testing.T) {
	tests := []struct {
		name      string
		signature string
		want      string
	}{
		{"qualified", "Foo::bar(int)", "Foo.bar(int)(Foo.cpp:42)"},
		{"return type stripped", "void Foo::bar(int)", "Foo.bar(int)(Foo.cpp:42)"},
		{"no qualifier gets leading dot", "bar(int)", ".bar(int)(Foo.cpp:42)"},
		{"bare name stays bare", "main", "main(Foo.cpp:42)"},
		{"only last separator replaced", "ns::C::m(int)", "ns::C.m(int)(Foo.cpp:42)"},
		{"sentinel method embedded verbatim", NAMethod, "?::?(Foo.cpp:42)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := New("Foo.cpp", tt.signature, 42)
			if got := info.fullInfo(); got != tt.want {
				t.Errorf("fullInfo() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWriteUnavailableEmitsOnlyNullMarker(t *testing.T) {
	var buf bytes.Buffer
	w, err := javaio.NewObjectWriter(&buf)
	if err != nil {
		t.Fatalf("NewObjectWriter() error = %v", err)
	}
	header := buf.Len()

	if err := Unavailable().Write(w); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	if got := buf.Bytes()[header:]; !bytes.Equal(got, []byte{0x70}) {
		t.Errorf("record bytes = % X, want 70", got)
	}
}

func TestWriteRecordBytes(t *testing.T) {
	var buf bytes.Buffer
	w, err := javaio.NewObjectWriter(&buf)
	if err != nil {
		t.Fatalf("NewObjectWriter() error = %v", err)
	}

	info := New("Foo.cpp", "Foo::bar(int)", 42)
	if err := info.Write(w); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	payload := "Foo.bar(int)(Foo.cpp:42)"
	want := []byte{0xAC, 0xED, 0x00, 0x05, 0x73}
	want = append(want, locationInfoDesc...)
	want = append(want, 0x74, byte(len(payload)>>8), byte(len(payload)))
	want = append(want, payload...)

	if !bytes.Equal(buf.Bytes(), want) {
		t.Errorf("stream = % X\nwant     % X", buf.Bytes(), want)
	}
}

// A second record on the same stream must reference the class
// descriptor written for the first instead of repeating it.
func TestWriteSecondRecordUsesReference(t *testing.T) {
	var buf bytes.Buffer
	w, err := javaio.NewObjectWriter(&buf)
	if err != nil {
		t.Fatalf("NewObjectWriter() error = %v", err)
	}

	first := New("Foo.cpp", "Foo::bar(int)", 42)
	if err := first.Write(w); err != nil {
		t.Fatalf("first Write() error = %v", err)
	}
	mark := buf.Len()

	second := New("Baz.cpp", "Baz::qux()", 7)
	if err := second.Write(w); err != nil {
		t.Fatalf("second Write() error = %v", err)
	}

	payload := "Baz.qux()(Baz.cpp:7)"
	want := []byte{0x73, 0x71, 0x00, 0x7E, 0x00, 0x00}
	want = append(want, 0x74, byte(len(payload)>>8), byte(len(payload)))
	want = append(want, payload...)

	if got := buf.Bytes()[mark:]; !bytes.Equal(got, want) {
		t.Errorf("second record = % X\nwant          % X", got, want)
	}
}

func TestWriteDeterministic(t *testing.T) {
	render := func() []byte {
		var buf bytes.Buffer
		w, err := javaio.NewObjectWriter(&buf)
		if err != nil {
			t.Fatalf("NewObjectWriter() error = %v", err)
		}
		info := New("/srv/app.cpp", "int App::serve(Request&)", 1234)
		if err := info.Write(w); err != nil {
			t.Fatalf("Write() error = %v", err)
		}
		return buf.Bytes()
	}

	if a, b := render(), render(); !bytes.Equal(a, b) {
		t.Error("identical descriptors produced different byte streams")
	}
}
