package glinfo

import "fmt"

// Version is a (major, minor) context version pair ordered
// lexicographically, major first.
type Version struct {
	Major int
	Minor int
}

func (v Version) String() string { return fmt.Sprintf("%d.%d", v.Major, v.Minor) }

// Less reports whether v precedes o.
func (v Version) Less(o Version) bool {
	return v.Major < o.Major || (v.Major == o.Major && v.Minor < o.Minor)
}

// AtLeast reports whether v is at or above major.minor.
func (v Version) AtLeast(major, minor int) bool {
	return !v.Less(Version{Major: major, Minor: minor})
}

// Range is the inclusive version span negotiation is allowed to probe.
type Range struct {
	Max Version
	Min Version
}

// DefaultRange spans the versions a modern driver may plausibly grant.
func DefaultRange() Range {
	return Range{Max: Version{Major: 4, Minor: 9}, Min: Version{Major: 3, Minor: 2}}
}

// Exact collapses the probe range to a single point, so negotiation
// either gets exactly v or fails.
func Exact(v Version) Range { return Range{Max: v, Min: v} }

// ParseGLVersion extracts the version pair from a GL_VERSION-style
// string, e.g. "4.6.0 NVIDIA 535.54" or "OpenGL ES 3.2 Mesa 23.0".
// Returns the zero Version when no pair is found.
func ParseGLVersion(s string) (v Version) {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			continue
		}
		if n, _ := fmt.Sscanf(s[i:], "%d.%d", &v.Major, &v.Minor); n == 2 {
			return v
		}
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
		}
	}
	return Version{}
}
