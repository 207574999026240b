package common

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Camel lower-cases the first character and leaves the rest untouched
// (e.g. "GetCustomer" -> "getCustomer").
func Camel(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToLower(r)) + s[size:]
}

// Pascal upper-cases the first character and leaves the rest untouched.
func Pascal(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

func splitWords(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == '_' || r == '-' || r == '.' || unicode.IsSpace(r)
	})
}

// ToPascalCase joins snake, kebab, dotted or spaced words into PascalCase.
// Inner capitals are preserved, so "customer_orderItem" becomes "CustomerOrderItem".
func ToPascalCase(s string) string {
	var b strings.Builder
	for _, word := range splitWords(s) {
		b.WriteString(Pascal(word))
	}
	return b.String()
}

// ToCamelCase is ToPascalCase with a lower-case first character.
func ToCamelCase(s string) string {
	return Camel(ToPascalCase(s))
}

// ToKebabCase splits camel humps and separators into lower-case words joined by '-'.
// "CustomerOrder" -> "customer-order", "XMLParser" -> "xml-parser".
func ToKebabCase(s string) string {
	if s == "" {
		return ""
	}
	var b strings.Builder
	for wi, word := range splitWords(s) {
		if wi > 0 {
			b.WriteByte('-')
		}
		runes := []rune(word)
		for i := 0; i < len(runes); i++ {
			r := runes[i]
			if i > 0 && unicode.IsUpper(r) {
				prevIsLower := unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1])
				// end of an acronym: "XMLParser" at 'P'
				nextIsLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
				if prevIsLower || (nextIsLower && unicode.IsUpper(runes[i-1])) {
					b.WriteByte('-')
				}
			}
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// SanitizeLeadingDigit prefixes names that start with a digit with "Num"
// to keep identifiers valid in generated code.
func SanitizeLeadingDigit(name string) string {
	if name == "" {
		return ""
	}
	if name[0] >= '0' && name[0] <= '9' {
		return "Num" + name
	}
	return name
}

// Identifier turns a module name such as "order-items" into a type-name stem ("OrderItems").
func Identifier(module string) string {
	return SanitizeLeadingDigit(ToPascalCase(module))
}
