package glinfo

import "testing"

func TestVersionOrder(t *testing.T) {
	tests := []struct {
		a, b Version
		less bool
	}{
		{a: Version{Major: 3, Minor: 9}, b: Version{Major: 4, Minor: 0}, less: true},
		{a: Version{Major: 4, Minor: 0}, b: Version{Major: 4, Minor: 1}, less: true},
		{a: Version{Major: 4, Minor: 1}, b: Version{Major: 4, Minor: 1}, less: false},
		{a: Version{Major: 4, Minor: 1}, b: Version{Major: 4, Minor: 0}, less: false},
		{a: Version{Major: 4, Minor: 0}, b: Version{Major: 3, Minor: 9}, less: false},
	}
	for _, tt := range tests {
		if got := tt.a.Less(tt.b); got != tt.less {
			t.Errorf("%v.Less(%v) = %v, want %v", tt.a, tt.b, got, tt.less)
		}
	}
}

func TestVersionAtLeast(t *testing.T) {
	v := Version{Major: 3, Minor: 2}
	if !v.AtLeast(3, 2) || !v.AtLeast(2, 9) {
		t.Errorf("3.2 should be at least 3.2 and 2.9")
	}
	if v.AtLeast(3, 3) || v.AtLeast(4, 0) {
		t.Errorf("3.2 should not be at least 3.3 or 4.0")
	}
}

func TestParseGLVersion(t *testing.T) {
	tests := []struct {
		in   string
		want Version
	}{
		{in: "4.6.0 NVIDIA 535.54.03", want: Version{Major: 4, Minor: 6}},
		{in: "2.1 Mesa 20.3.5", want: Version{Major: 2, Minor: 1}},
		{in: "OpenGL ES 3.2 Mesa 23.0.4", want: Version{Major: 3, Minor: 2}},
		{in: "", want: Version{}},
		{in: "no digits here", want: Version{}},
		{in: "4", want: Version{}},
	}
	for _, tt := range tests {
		if got := ParseGLVersion(tt.in); got != tt.want {
			t.Errorf("ParseGLVersion(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
