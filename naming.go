package oasgen

import (
	"reflect"
	"strings"

	"github.com/stoewer/go-strcase"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// applyNaming renders a Go identifier under the configured naming convention.
func applyNaming(convention NamingConvention, name string) string {
	switch convention {
	case NamingCamel:
		return strcase.LowerCamelCase(name)
	case NamingSnake:
		return strcase.SnakeCase(name)
	case NamingKebab:
		return strcase.KebabCase(name)
	case NamingPascal:
		return strcase.UpperCamelCase(name)
	default:
		return name
	}
}

// wireName resolves the schema property key for a struct field: the json tag
// when present, else the naming-convention transform of the Go name. Pruning
// uses the same resolution so removal keys always match property keys.
func wireName(convention NamingConvention, sf reflect.StructField) string {
	tag := strings.Split(sf.Tag.Get("json"), ",")[0]
	if tag == "-" {
		return ""
	}
	if tag != "" {
		return tag
	}
	return applyNaming(convention, sf.Name)
}

// tagCase applies the configured case transform to a derived tag.
func tagCase(c TagCase, tag string) string {
	switch c {
	case TagCaseTitle:
		return titleCaser.String(tag)
	case TagCaseLower:
		return strings.ToLower(tag)
	default:
		return tag
	}
}

// stripSymbols removes non-alphanumeric runes.
func stripSymbols(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
