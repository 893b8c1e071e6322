// Package naming turns JSON keys into identifiers for generated types and properties.
package naming

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// TypeName is an identifier for a generated type, in PascalCase.
type TypeName string

// PropertyName is an identifier for a generated property, in camelCase.
type PropertyName string

// FallbackTypeName is used when a JSON key contains no letters.
const FallbackTypeName TypeName = "Value"

// ItemSuffix is appended to a list element name that would otherwise equal
// the name of its enclosing type.
const ItemSuffix = "Item"

const listSuffix = "List"

// Set is a set of names.
type Set[T ~string] map[T]struct{}

// NewSet returns a set holding names.
func NewSet[T ~string](names ...T) Set[T] {
	s := make(Set[T], len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

// Add inserts name and reports whether it was absent.
func (s Set[T]) Add(name T) bool {
	if _, ok := s[name]; ok {
		return false
	}
	s[name] = struct{}{}
	return true
}

// Has reports whether name is in the set.
func (s Set[T]) Has(name T) bool {
	_, ok := s[name]
	return ok
}

// Remove deletes name from the set.
func (s Set[T]) Remove(name T) {
	delete(s, name)
}

// Unique reserves and returns base if it is free, otherwise the first free
// name among base+"1", base+"2", ... The suffix space is unbounded so this
// always terminates.
func Unique[T ~string](base T, taken Set[T]) T {
	if taken.Add(base) {
		return base
	}
	for i := 1; ; i++ {
		candidate := base + T(strconv.Itoa(i))
		if taken.Add(candidate) {
			return candidate
		}
	}
}

// JSONKeyToTypeName converts a JSON key such as "phone_numbers" or
// "streetAddress" into a type name ("PhoneNumbers", "StreetAddress").
func JSONKeyToTypeName(key string) TypeName {
	key = norm.NFC.String(key)
	key = strings.TrimLeftFunc(key, func(r rune) bool { return !unicode.IsLetter(r) })

	var b strings.Builder
	for _, token := range splitHumps(key) {
		r, size := utf8.DecodeRuneInString(token)
		b.WriteRune(unicode.ToTitle(r))
		b.WriteString(token[size:])
	}
	if b.Len() == 0 {
		return FallbackTypeName
	}
	return TypeName(b.String())
}

// splitHumps splits on every rune that is neither a letter nor a digit and
// before every upper-case rune that follows a non-upper-case one.
func splitHumps(s string) []string {
	var tokens []string
	var current strings.Builder
	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	prevUpper := false
	for _, r := range s {
		upper := unicode.IsUpper(r)
		switch {
		case !unicode.IsLetter(r) && !unicode.IsDigit(r):
			flush()
		case !prevUpper && upper:
			flush()
			current.WriteRune(r)
		default:
			current.WriteRune(r)
		}
		prevUpper = upper
	}
	flush()
	return tokens
}

// TypeNameToPropertyName lower-cases the first rune of name.
func TypeNameToPropertyName(name TypeName) PropertyName {
	return PropertyName(mapFirstRune(string(name), unicode.ToLower))
}

// Exported upper-cases the first rune of name.
func Exported(name string) string {
	return mapFirstRune(name, unicode.ToUpper)
}

func mapFirstRune(s string, fn func(rune) rune) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(fn(r)) + s[size:]
}

// Singularize derives a list element type name from a plural name.
// parent is the name of the enclosing type, or "" when there is none.
func Singularize(plural, parent TypeName) TypeName {
	p := string(plural)
	if strings.HasSuffix(p, listSuffix) && len(p) > len(listSuffix) {
		return TypeName(strings.TrimSuffix(p, listSuffix))
	}

	singular := p
	switch {
	case strings.HasSuffix(p, "ies"):
		// -ie and -iy stems are not distinguished
		singular = p[:len(p)-3] + "y"
	case strings.HasSuffix(p, "es"):
		stem := p[:len(p)-2]
		if strings.HasSuffix(stem, "s") || strings.HasSuffix(stem, "sh") ||
			strings.HasSuffix(stem, "ch") || strings.HasSuffix(stem, "x") {
			singular = stem
		} else {
			singular = p[:len(p)-1]
		}
	case strings.HasSuffix(p, "s") && len(p) > 1:
		singular = p[:len(p)-1]
	}

	if singular == p && plural == parent {
		return TypeName(p + ItemSuffix)
	}
	return TypeName(singular)
}

// IsIdentifier reports whether s is a letter or underscore followed by
// letters, digits and underscores.
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) {
			continue
		}
		if i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return true
}
