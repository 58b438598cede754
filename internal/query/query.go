package query

import "strings"

// Params is a flat string mapping that remembers insertion order.
// Encode walks the keys in that order; nothing is sorted.
type Params struct {
	keys   []string
	values map[string]string
}

// New builds Params from alternating key/value arguments.
// A trailing key without a value is ignored.
func New(kv ...string) Params {
	var p Params
	for i := 0; i+1 < len(kv); i += 2 {
		p.Set(kv[i], kv[i+1])
	}
	return p
}

// FromMap copies m using Go's map iteration order, which is unspecified.
// Callers that need a stable query string should build Params with Set or New.
func FromMap(m map[string]string) Params {
	var p Params
	for k, v := range m {
		p.Set(k, v)
	}
	return p
}

// Set stores value under key. Re-setting an existing key keeps its original position.
func (p *Params) Set(key, value string) {
	if p.values == nil {
		p.values = make(map[string]string)
	}
	if _, ok := p.values[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.values[key] = value
}

// Get returns the value stored for key.
func (p Params) Get(key string) (string, bool) {
	v, ok := p.values[key]
	return v, ok
}

// Len returns the number of pairs.
func (p Params) Len() int {
	return len(p.keys)
}

// Keys returns a copy of the keys in insertion order.
func (p Params) Keys() []string {
	out := make([]string, len(p.keys))
	copy(out, p.keys)
	return out
}

// Encode renders p as key=value pairs joined by '&'.
// Both sides are escaped with EncodeComponent. Empty params give "".
func Encode(p Params) string {
	if p.Len() == 0 {
		return ""
	}
	var b strings.Builder
	for i, k := range p.keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(EncodeComponent(k))
		b.WriteByte('=')
		b.WriteString(EncodeComponent(p.values[k]))
	}
	return b.String()
}

const upperhex = "0123456789ABCDEF"

// EncodeComponent escapes s the way browsers escape a URI component:
// ASCII letters, digits and -_.!~*'() pass through, every other byte of the
// UTF-8 encoding becomes %XX.
func EncodeComponent(s string) string {
	n := 0
	for i := 0; i < len(s); i++ {
		if !unreserved(s[i]) {
			n++
		}
	}
	if n == 0 {
		return s
	}

	buf := make([]byte, 0, len(s)+2*n)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if unreserved(c) {
			buf = append(buf, c)
			continue
		}
		buf = append(buf, '%', upperhex[c>>4], upperhex[c&15])
	}
	return string(buf)
}

func unreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}
