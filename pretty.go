package debughelpers

import (
	"cmp"
	"fmt"
	"io"
	"reflect"
	"slices"
	"strconv"
	"strings"
)

const prettyIndent = "  "

// formatPretty renders maps as indented blocks with sorted keys.
// Other values are rendered on a single line.
func formatPretty(w io.Writer, v any) error {
	p := printer{seen: map[uintptr]bool{}}
	p.value(reflect.ValueOf(v), 0)
	p.buf.WriteByte('\n')
	_, err := io.WriteString(w, p.buf.String())
	return err
}

// printer accumulates one rendering. seen holds the maps, pointers and
// slices on the current path.
type printer struct {
	buf  strings.Builder
	seen map[uintptr]bool
}

// entry is one map key/value pair with the key already rendered.
type entry struct {
	key, val reflect.Value
	keyText  string
}

func (p *printer) value(v reflect.Value, depth int) {
	if !v.IsValid() {
		p.buf.WriteString("nil")
		return
	}

	switch v.Kind() {
	case reflect.Interface:
		if v.IsNil() {
			p.buf.WriteString("nil")
			return
		}
		p.value(v.Elem(), depth)

	case reflect.Pointer:
		if v.IsNil() {
			p.buf.WriteString("nil")
			return
		}
		if !p.enter(v) {
			return
		}
		p.value(v.Elem(), depth)
		p.leave(v)

	case reflect.Map:
		if v.Len() == 0 {
			p.buf.WriteString("{}")
			return
		}
		if !p.enter(v) {
			return
		}
		p.mapBlock(v, depth)
		p.leave(v)

	case reflect.Slice:
		if v.IsNil() {
			p.buf.WriteString("nil")
			return
		}
		if v.Len() == 0 {
			p.buf.WriteString("[]")
			return
		}
		if !p.enter(v) {
			return
		}
		p.list(v, depth)
		p.leave(v)

	case reflect.Array:
		p.list(v, depth)

	case reflect.Struct:
		if s, ok := stringer(v); ok {
			p.buf.WriteString(s)
			return
		}
		p.fields(v, depth)

	case reflect.String:
		p.buf.WriteString(strconv.Quote(v.String()))

	default:
		p.scalar(v)
	}
}

// mapBlock writes a non-empty map as a multi-line block with sorted keys.
func (p *printer) mapBlock(v reflect.Value, depth int) {
	entries := make([]entry, 0, v.Len())
	iter := v.MapRange()
	for iter.Next() {
		entries = append(entries, entry{
			key:     iter.Key(),
			val:     iter.Value(),
			keyText: p.text(iter.Key(), depth+1),
		})
	}
	slices.SortFunc(entries, func(a, b entry) int {
		if c := compareKeys(a.key, b.key, a.keyText, b.keyText); c != 0 {
			return c
		}
		// Only keys that never compare equal (NaN) get here.
		return cmp.Compare(p.text(a.val, depth+1), p.text(b.val, depth+1))
	})

	pad := strings.Repeat(prettyIndent, depth+1)
	p.buf.WriteString("{\n")
	for i, e := range entries {
		p.buf.WriteString(pad)
		p.buf.WriteString(e.keyText)
		p.buf.WriteString(": ")
		p.value(e.val, depth+1)
		if i < len(entries)-1 {
			p.buf.WriteByte(',')
		}
		p.buf.WriteByte('\n')
	}
	p.buf.WriteString(strings.Repeat(prettyIndent, depth))
	p.buf.WriteByte('}')
}

// list writes slices and arrays inline.
func (p *printer) list(v reflect.Value, depth int) {
	p.buf.WriteByte('[')
	for i := 0; i < v.Len(); i++ {
		if i > 0 {
			p.buf.WriteString(", ")
		}
		p.value(v.Index(i), depth)
	}
	p.buf.WriteByte(']')
}

// fields writes a struct inline as {Name: value, ...}, unexported fields included.
func (p *printer) fields(v reflect.Value, depth int) {
	t := v.Type()
	p.buf.WriteByte('{')
	for i := 0; i < v.NumField(); i++ {
		if i > 0 {
			p.buf.WriteString(", ")
		}
		p.buf.WriteString(t.Field(i).Name)
		p.buf.WriteString(": ")
		p.value(v.Field(i), depth)
	}
	p.buf.WriteByte('}')
}

// text renders v on its own, sharing the cycle state of p.
func (p *printer) text(v reflect.Value, depth int) string {
	sub := printer{seen: p.seen}
	sub.value(v, depth)
	return sub.buf.String()
}

// scalar writes numbers, bools and other leaf values.
// Values read from unexported fields cannot be passed to fmt.
func (p *printer) scalar(v reflect.Value) {
	if v.CanInterface() {
		fmt.Fprintf(&p.buf, "%+v", v.Interface())
		return
	}

	switch v.Kind() {
	case reflect.Bool:
		p.buf.WriteString(strconv.FormatBool(v.Bool()))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		p.buf.WriteString(strconv.FormatInt(v.Int(), 10))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		p.buf.WriteString(strconv.FormatUint(v.Uint(), 10))
	case reflect.Float32, reflect.Float64:
		p.buf.WriteString(strconv.FormatFloat(v.Float(), 'g', -1, v.Type().Bits()))
	case reflect.Complex64, reflect.Complex128:
		p.buf.WriteString(strconv.FormatComplex(v.Complex(), 'g', -1, v.Type().Bits()))
	default:
		p.buf.WriteString("<" + v.Type().String() + ">")
	}
}

// enter marks a map, pointer or slice as being printed. It writes <cycle>
// and returns false if the value is already on the current path.
func (p *printer) enter(v reflect.Value) bool {
	ptr := v.Pointer()
	if p.seen[ptr] {
		p.buf.WriteString("<cycle>")
		return false
	}
	p.seen[ptr] = true
	return true
}

func (p *printer) leave(v reflect.Value) { delete(p.seen, v.Pointer()) }

// stringer returns the String or Error text of an exported struct value.
func stringer(v reflect.Value) (string, bool) {
	if !v.CanInterface() {
		return "", false
	}
	switch s := v.Interface().(type) {
	case error:
		return s.Error(), true
	case fmt.Stringer:
		return s.String(), true
	}
	return "", false
}

func unwrap(v reflect.Value) reflect.Value {
	for v.IsValid() && v.Kind() == reflect.Interface {
		v = v.Elem()
	}
	return v
}

// compareKeys orders map keys: same-kind keys compare by value, different
// kinds compare by kind. Remaining ties fall back to the rendered text.
func compareKeys(a, b reflect.Value, aText, bText string) int {
	a, b = unwrap(a), unwrap(b)
	if !a.IsValid() || !b.IsValid() {
		return cmp.Compare(boolInt(a.IsValid()), boolInt(b.IsValid()))
	}

	if a.Kind() == b.Kind() {
		switch a.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return cmp.Compare(a.Int(), b.Int())
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
			return cmp.Compare(a.Uint(), b.Uint())
		case reflect.Float32, reflect.Float64:
			return cmp.Compare(a.Float(), b.Float())
		case reflect.String:
			return cmp.Compare(a.String(), b.String())
		case reflect.Bool:
			return cmp.Compare(boolInt(a.Bool()), boolInt(b.Bool()))
		}
	} else if c := cmp.Compare(a.Kind(), b.Kind()); c != 0 {
		return c
	}

	return cmp.Compare(aText, bText)
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
