package query

import "strings"

// Key identifies a cached query. Keys are hierarchical: ["brands","list"]
// and ["brands","detail","mi"] both live under ["brands"].
type Key []string

func (k Key) String() string {
	return strings.Join(k, "/")
}

func (k Key) hash() string {
	return strings.Join(k, "\x00")
}

// HasPrefix reports whether p is a leading part of k. An empty prefix
// matches every key.
func (k Key) HasPrefix(p Key) bool {
	if len(p) > len(k) {
		return false
	}
	for i := range p {
		if k[i] != p[i] {
			return false
		}
	}
	return true
}

// Append returns a new key extending k, leaving k untouched.
func (k Key) Append(parts ...string) Key {
	out := make(Key, 0, len(k)+len(parts))
	out = append(out, k...)
	return append(out, parts...)
}
