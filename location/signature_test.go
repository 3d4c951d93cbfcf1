package location

import "testing"

func TestParseMethod(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"qualified with args", "MyClass::myMethod(int, char*)", "myMethod"},
		{"nested namespaces", "MyNamespace::MyClass::myMethod(int, char*)", "myMethod"},
		{"return type and qualifier", "void MyClass::myMethod(int)", "myMethod"},
		{"return type only", "int myMethod(int)", "myMethod"},
		{"bare name", "myMethod", "myMethod"},
		{"name with args", "myMethod(int)", "myMethod"},
		{"unavailable sentinel", NAMethod, "?"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseMethod(tt.raw); got != tt.want {
				t.Errorf("parseMethod(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestParseClass(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"qualified with args", "MyClass::myMethod(int, char*)", "MyClass"},
		{"nested namespaces", "MyNamespace::MyClass::myMethod(int, char*)", "MyNamespace::MyClass"},
		{"return type and qualifier", "void MyClass::myMethod(int)", "MyClass"},
		{"return type only", "int myMethod(int)", ""},
		{"bare name", "myMethod", ""},
		{"name with args", "myMethod(int)", ""},
		{"unavailable sentinel", NAMethod, "?"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseClass(tt.raw); got != tt.want {
				t.Errorf("parseClass(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

// A "::" inside the argument list must never leak into the parsed
// names because the list is cut off before any separator search.
func TestParseIgnoresArgumentList(t *testing.T) {
	raw := "void ns::C::m(std::vector<int> v, char c = ns::sep)"

	if got := parseMethod(raw); got != "m" {
		t.Errorf("parseMethod() = %q, want %q", got, "m")
	}
	if got := parseClass(raw); got != "ns::C" {
		t.Errorf("parseClass() = %q, want %q", got, "ns::C")
	}
}
