// Package fieldpath addresses individual fields of a nested record with
// RFC 6901 pointers (for example /addressHistory/0/moveInDate), matching
// struct fields by their JSON names. It stores raw text input into leaf
// fields, coercing it to the field's type.
package fieldpath

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"mortgage-portal/internal/derive"
	"mortgage-portal/internal/jsonpatch"
)

var (
	ErrBadPointer      = errors.New("malformed pointer")
	ErrNotFound        = errors.New("field not found")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrNotList         = errors.New("not a list")
	ErrNotLeaf         = errors.New("not a leaf field")
	ErrInvalidValue    = errors.New("invalid value")
)

var nullDecimalType = reflect.TypeOf(decimal.NullDecimal{})

// Allocator is implemented by records with optional sub-records. A nil
// sub-record is created on the way down only when AllocField allows it.
type Allocator interface {
	AllocField(field string) bool
}

// Pointer is a parsed JSON pointer, one unescaped token per element.
type Pointer []string

func Parse(s string) (Pointer, error) {
	if s == "" || s[0] != '/' {
		return nil, fmt.Errorf("%w: %q", ErrBadPointer, s)
	}
	parts := strings.Split(s[1:], "/")
	p := make(Pointer, len(parts))
	for i, part := range parts {
		if part == "" {
			return nil, fmt.Errorf("%w: empty token in %q", ErrBadPointer, s)
		}
		p[i] = jsonpatch.UnescapeKey(part)
	}
	return p, nil
}

func (p Pointer) String() string {
	var b strings.Builder
	for _, tok := range p {
		b.WriteByte('/')
		b.WriteString(jsonpatch.EscapeKey(tok))
	}
	return b.String()
}

// Split returns the pointer to the enclosing record and the last token.
func (p Pointer) Split() (Pointer, string) {
	if len(p) == 0 {
		return nil, ""
	}
	return p[:len(p)-1], p[len(p)-1]
}

// Resolve walks root, which must be a pointer to a struct, along p and returns
// the addressable value found there. Pointers to structs are dereferenced,
// allocating them when the enclosing record permits.
func Resolve(root any, p Pointer) (reflect.Value, error) {
	v := reflect.ValueOf(root)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return reflect.Value{}, fmt.Errorf("fieldpath: root must be a non-nil pointer, got %T", root)
	}
	v = v.Elem()
	for i, tok := range p {
		switch v.Kind() {
		case reflect.Struct:
			fv, err := Field(v, tok)
			if err != nil {
				return reflect.Value{}, fmt.Errorf("%s: %w", p[:i+1], err)
			}
			if fv.Kind() == reflect.Ptr && fv.Type().Elem().Kind() == reflect.Struct {
				if fv.IsNil() {
					alloc, ok := v.Addr().Interface().(Allocator)
					if !ok || !alloc.AllocField(tok) {
						return reflect.Value{}, fmt.Errorf("%s: %w", p[:i+1], ErrNotFound)
					}
					fv.Set(reflect.New(fv.Type().Elem()))
				}
				fv = fv.Elem()
			}
			v = fv
		case reflect.Slice:
			idx, err := index(v, tok)
			if err != nil {
				return reflect.Value{}, fmt.Errorf("%s: %w", p[:i+1], err)
			}
			v = v.Index(idx)
		default:
			return reflect.Value{}, fmt.Errorf("%s: %w", p[:i+1], ErrNotFound)
		}
	}
	return v, nil
}

// Field returns the field of struct value v whose JSON name is name.
func Field(v reflect.Value, name string) (reflect.Value, error) {
	if v.Kind() != reflect.Struct {
		return reflect.Value{}, ErrNotFound
	}
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		if JSONName(t.Field(i)) == name {
			return v.Field(i), nil
		}
	}
	return reflect.Value{}, ErrNotFound
}

// JSONName is the name f carries in JSON, or its Go name when untagged.
func JSONName(f reflect.StructField) string {
	tag := f.Tag.Get("json")
	if tag == "" {
		return f.Name
	}
	name, _, _ := strings.Cut(tag, ",")
	return name
}

func index(list reflect.Value, tok string) (int, error) {
	idx, err := strconv.Atoi(tok)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an index", ErrNotFound, tok)
	}
	if idx < 0 || idx >= list.Len() {
		return 0, fmt.Errorf("%w: %d (length %d)", ErrIndexOutOfRange, idx, list.Len())
	}
	return idx, nil
}

// SetText stores raw into the leaf field fv. Input that does not parse for the
// field's type leaves the field at its unset value and returns ErrInvalidValue.
func SetText(fv reflect.Value, raw string) error {
	if fv.Type() == nullDecimalType {
		amount, ok := derive.ParseMoney(raw)
		fv.Set(reflect.ValueOf(amount))
		if !ok {
			return fmt.Errorf("%w: %q is not an amount", ErrInvalidValue, raw)
		}
		return nil
	}

	switch fv.Kind() {
	case reflect.String:
		fv.SetString(raw)
	case reflect.Bool:
		s := strings.TrimSpace(raw)
		if s == "" {
			fv.SetBool(false)
			return nil
		}
		b, err := strconv.ParseBool(s)
		fv.SetBool(b)
		if err != nil {
			return fmt.Errorf("%w: %q is not a yes/no answer", ErrInvalidValue, raw)
		}
	case reflect.Int:
		n, ok := derive.ParseCount(raw)
		fv.SetInt(int64(n))
		if !ok {
			return fmt.Errorf("%w: %q is not a whole number", ErrInvalidValue, raw)
		}
	case reflect.Ptr:
		if fv.Type().Elem().Kind() != reflect.String {
			return ErrNotLeaf
		}
		if raw == "" {
			fv.Set(reflect.Zero(fv.Type()))
			return nil
		}
		s := raw
		fv.Set(reflect.ValueOf(&s))
	default:
		return ErrNotLeaf
	}
	return nil
}

// Walk calls fn for every record (struct value) at or below p, a record before
// its children. fn may change the record; its children are visited as they
// stand afterwards. Amounts are leaves, not records.
func Walk(root any, p Pointer, fn func(at Pointer, record reflect.Value)) error {
	v, err := Resolve(root, p)
	if err != nil {
		return err
	}
	walk(v, p, fn)
	return nil
}

func walk(v reflect.Value, at Pointer, fn func(Pointer, reflect.Value)) {
	switch v.Kind() {
	case reflect.Ptr:
		if !v.IsNil() {
			walk(v.Elem(), at, fn)
		}
	case reflect.Slice:
		for i := 0; i < v.Len(); i++ {
			walk(v.Index(i), at.child(strconv.Itoa(i)), fn)
		}
	case reflect.Struct:
		if v.Type() == nullDecimalType {
			return
		}
		fn(at, v)
		t := v.Type()
		for i := 0; i < t.NumField(); i++ {
			walk(v.Field(i), at.child(JSONName(t.Field(i))), fn)
		}
	}
}

func (p Pointer) child(tok string) Pointer {
	out := make(Pointer, len(p), len(p)+1)
	copy(out, p)
	return append(out, tok)
}

// Append adds a zero-valued element to the list at p and returns its index.
func Append(root any, p Pointer) (int, error) {
	list, err := Resolve(root, p)
	if err != nil {
		return 0, err
	}
	if list.Kind() != reflect.Slice {
		return 0, fmt.Errorf("%s: %w", p, ErrNotList)
	}
	list.Set(reflect.Append(list, reflect.Zero(list.Type().Elem())))
	return list.Len() - 1, nil
}

// Remove deletes the list element p points at. The remaining elements keep
// their relative order and are copied into a fresh backing array.
func Remove(root any, p Pointer) error {
	parent, tok := p.Split()
	if len(parent) == 0 {
		return fmt.Errorf("%s: %w", p, ErrNotList)
	}
	list, err := Resolve(root, parent)
	if err != nil {
		return err
	}
	if list.Kind() != reflect.Slice {
		return fmt.Errorf("%s: %w", parent, ErrNotList)
	}
	idx, err := index(list, tok)
	if err != nil {
		return fmt.Errorf("%s: %w", p, err)
	}
	n := list.Len()
	out := reflect.MakeSlice(list.Type(), 0, n-1)
	out = reflect.AppendSlice(out, list.Slice(0, idx))
	out = reflect.AppendSlice(out, list.Slice(idx+1, n))
	list.Set(out)
	return nil
}
