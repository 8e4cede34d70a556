package oasgen

import (
	"mime/multipart"
	"reflect"
)

// fieldInfo is the reflected view of one publicly settable request-shape
// field, resolved to its wire name up front so classification, pruning, and
// example projection all share the same key.
type fieldInfo struct {
	goName     string
	wire       string
	typ        reflect.Type
	nullable   bool
	hasDefault bool
}

func indirectType(t reflect.Type) reflect.Type {
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}

// settableFields flattens a request shape into its settable fields, recursing
// into embedded (anonymous) structs and skipping unexported fields and
// json:"-". Returns nil for non-struct shapes.
func settableFields(convention NamingConvention, t reflect.Type) []fieldInfo {
	t = indirectType(t)
	if t == nil || t.Kind() != reflect.Struct {
		return nil
	}
	var out []fieldInfo
	for i := range t.NumField() {
		sf := t.Field(i)
		if sf.Anonymous {
			ft := indirectType(sf.Type)
			if ft.Kind() == reflect.Struct {
				out = append(out, settableFields(convention, ft)...)
			}
			continue
		}
		if !sf.IsExported() {
			continue
		}
		wire := wireName(convention, sf)
		if wire == "" {
			continue
		}
		_, hasDefault := sf.Tag.Lookup("default")
		out = append(out, fieldInfo{
			goName:     sf.Name,
			wire:       wire,
			typ:        sf.Type,
			nullable:   isNullable(sf.Type),
			hasDefault: hasDefault,
		})
	}
	return out
}

func isNullable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Ptr, reflect.Slice, reflect.Map, reflect.Interface:
		return true
	default:
		return false
	}
}

// isListLike reports whether a shape serializes as a JSON array rather than
// an object.
func isListLike(t reflect.Type) bool {
	t = indirectType(t)
	if t == nil {
		return false
	}
	return t.Kind() == reflect.Slice || t.Kind() == reflect.Array
}

var fileHeaderType = reflect.TypeOf(multipart.FileHeader{})

// isFileField detects upload fields (multipart.FileHeader and slices or
// pointers thereof). Only consulted in the Swagger 2 dialect, which has no
// file-in-body support.
func isFileField(t reflect.Type) bool {
	t = indirectType(t)
	if t == nil {
		return false
	}
	if t == fileHeaderType {
		return true
	}
	if t.Kind() == reflect.Slice {
		return indirectType(t.Elem()) == fileHeaderType
	}
	return false
}
