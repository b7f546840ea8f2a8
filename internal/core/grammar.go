package core

import (
	"strconv"
	"strings"
)

// ParseDefinitionText parses cleaned definition text into fields in
// declaration order.
//
// Line format:
//
//	type name
//	type name=value
//
// Lines without both a type and a name are skipped. Anything between the
// name and "=" is dropped.
func ParseDefinitionText(text string) ([]FieldSpec, error) {
	var fields []FieldSpec

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		decl, literal, hasLiteral := strings.Cut(line, "=")

		tokens := strings.Fields(decl)
		if len(tokens) < 2 {
			continue
		}
		typeToken, name := CanonicalType(tokens[0]), tokens[1]

		field := FieldSpec{
			Name:    name,
			Type:    typeToken,
			Default: DefaultFor(typeToken),
		}
		if hasLiteral {
			value, err := ParseLiteral(typeToken, strings.TrimSpace(literal))
			if err != nil {
				if mde, ok := err.(*MalformedDefaultError); ok {
					mde.Field = name
				}
				return nil, err
			}
			field.Default = Literal(value)
		}

		fields = append(fields, field)
	}

	return fields, nil
}

// ParseLiteral interprets a constant literal as a value of the scalar type
// typeToken. Integers become int64 or uint64, floats float64.
func ParseLiteral(typeToken, literal string) (any, error) {
	malformed := func(cause error) error {
		return &MalformedDefaultError{Type: typeToken, Literal: literal, Cause: cause}
	}

	if IsArrayType(typeToken) || IsStructType(typeToken) {
		return nil, malformed(nil)
	}

	switch typeToken {
	case "string":
		return literal, nil
	case "bool":
		v, err := strconv.ParseBool(literal)
		if err != nil {
			return nil, malformed(err)
		}
		return v, nil
	case "int8", "int16", "int32", "int64", "byte":
		v, err := strconv.ParseInt(literal, 10, intBits(typeToken))
		if err != nil {
			return nil, malformed(err)
		}
		return v, nil
	case "uint8", "uint16", "uint32", "uint64", "char":
		v, err := strconv.ParseUint(literal, 10, intBits(typeToken))
		if err != nil {
			return nil, malformed(err)
		}
		return v, nil
	case "float32", "float64":
		v, err := strconv.ParseFloat(literal, intBits(typeToken))
		if err != nil {
			return nil, malformed(err)
		}
		return v, nil
	default:
		// time and duration have no literal form.
		return nil, malformed(nil)
	}
}

func intBits(typeToken string) int {
	switch typeToken {
	case "int8", "uint8", "byte", "char":
		return 8
	case "int16", "uint16":
		return 16
	case "int32", "uint32", "float32":
		return 32
	default:
		return 64
	}
}
