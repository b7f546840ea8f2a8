package core

import "strings"

// HeaderType is the fully qualified type the bare "Header" token stands for.
const HeaderType = "std_msgs/Header"

// primitiveTypes is the closed set of scalar type names. Anything else is a
// message (struct) type.
var primitiveTypes = map[string]struct{}{
	"bool":     {},
	"int8":     {},
	"uint8":    {},
	"int16":    {},
	"uint16":   {},
	"int32":    {},
	"uint32":   {},
	"int64":    {},
	"uint64":   {},
	"float32":  {},
	"float64":  {},
	"string":   {},
	"time":     {},
	"duration": {},
	"byte":     {},
	"char":     {},
}

// CanonicalType rewrites the bare Header token to its qualified form.
func CanonicalType(token string) string {
	if token == "Header" {
		return HeaderType
	}
	return token
}

// IsArrayType reports whether token carries an array suffix ("[]" or "[N]").
func IsArrayType(token string) bool {
	if !strings.HasSuffix(token, "]") {
		return false
	}
	open := strings.LastIndex(token, "[")
	if open <= 0 {
		return false
	}
	for _, r := range token[open+1 : len(token)-1] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ElementType strips the array suffix from token. Tokens that are not arrays
// are returned unchanged.
func ElementType(token string) string {
	if !IsArrayType(token) {
		return token
	}
	return token[:strings.LastIndex(token, "[")]
}

// IsPrimitiveType reports whether token (after stripping any array suffix) is
// a scalar primitive.
func IsPrimitiveType(token string) bool {
	_, ok := primitiveTypes[ElementType(token)]
	return ok
}

// IsStructType reports whether token (after stripping any array suffix)
// refers to another message type.
func IsStructType(token string) bool {
	elem := ElementType(token)
	return elem != "" && !IsPrimitiveType(elem)
}

// DefaultFor returns the default a field of the given type gets when no
// literal is declared.
func DefaultFor(token string) Default {
	if IsArrayType(token) {
		return EmptySequence()
	}
	return Absent()
}

// QualifyType returns the fully qualified message type for a struct token
// declared inside pkg. Array suffixes are dropped; bare names are resolved
// relative to pkg.
func QualifyType(token, pkg string) string {
	elem := CanonicalType(ElementType(token))
	if strings.Contains(elem, "/") || pkg == "" {
		return elem
	}
	return pkg + "/" + elem
}

// PackageOf returns the package part of a qualified type name.
func PackageOf(typeName string) string {
	pkg, _, found := strings.Cut(typeName, "/")
	if !found {
		return ""
	}
	return pkg
}

// ShortName returns the type name without its package.
func ShortName(typeName string) string {
	if i := strings.LastIndex(typeName, "/"); i >= 0 {
		return typeName[i+1:]
	}
	return typeName
}
