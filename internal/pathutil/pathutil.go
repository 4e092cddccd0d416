// Package pathutil implements the slash-rooted path arithmetic used by the
// navigator. Every path that leaves this package is absolute and normalized:
// no empty, "." or ".." segments and no trailing slash except for the root.
package pathutil

import "strings"

// Root is the normalized root path.
const Root = "/"

// IsAbsolute reports whether p starts with a slash.
func IsAbsolute(p string) bool {
	return strings.HasPrefix(p, "/")
}

// Normalize resolves "." and ".." segments and collapses repeated slashes.
// A ".." above the root is dropped, so the result never escapes "/".
func Normalize(p string) string {
	stack := make([]string, 0, strings.Count(p, "/")+1)
	for _, seg := range strings.Split(p, "/") {
		switch seg {
		case "", ".":
			continue
		case "..":
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		default:
			stack = append(stack, seg)
		}
	}
	return Root + strings.Join(stack, "/")
}

// Join concatenates parts with slashes and normalizes the result.
func Join(parts ...string) string {
	return Normalize(strings.Join(parts, "/"))
}

// Parts returns the segments of the normalized form of p. The root has none.
func Parts(p string) []string {
	n := Normalize(p)
	if n == Root {
		return []string{}
	}
	return strings.Split(n[1:], "/")
}

// FromParts rebuilds a normalized path from breadcrumb segments.
func FromParts(parts []string) string {
	return Normalize(Root + strings.Join(parts, "/"))
}

// Parent returns the directory containing p; the parent of the root is the root.
func Parent(p string) string {
	return Normalize(p + "/..")
}

// Base returns the last segment of p, or "/" for the root.
func Base(p string) string {
	parts := Parts(p)
	if len(parts) == 0 {
		return Root
	}
	return parts[len(parts)-1]
}

// IsRoot reports whether p normalizes to the root.
func IsRoot(p string) bool {
	return Normalize(p) == Root
}
