package format

import (
	"bytes"
	"encoding/json"
	"io"
	"sort"
	"strings"
	"unicode"
)

// WriteEDN writes v as EDN. Values go through their JSON form first, so
// json tags decide the field names; camelCase keys become kebab-case
// keywords.
func WriteEDN(w io.Writer, v any, pretty bool) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var tree any
	if err := dec.Decode(&tree); err != nil {
		return err
	}

	p := ednPrinter{pretty: pretty}
	p.value(tree, 0)
	p.buf.WriteByte('\n')
	_, err = w.Write(p.buf.Bytes())
	return err
}

type ednPrinter struct {
	buf    bytes.Buffer
	pretty bool
}

func (p *ednPrinter) value(v any, depth int) {
	switch t := v.(type) {
	case nil:
		p.buf.WriteString("nil")
	case bool:
		if t {
			p.buf.WriteString("true")
		} else {
			p.buf.WriteString("false")
		}
	case json.Number:
		p.buf.WriteString(t.String())
	case string:
		p.str(t)
	case []any:
		p.seq('[', ']', len(t), depth, func(i int) { p.value(t[i], depth+1) })
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		p.seq('{', '}', len(keys), depth, func(i int) {
			p.buf.WriteByte(':')
			p.buf.WriteString(keyword(keys[i]))
			p.buf.WriteByte(' ')
			p.value(t[keys[i]], depth+1)
		})
	}
}

func (p *ednPrinter) seq(open, close byte, n, depth int, each func(i int)) {
	p.buf.WriteByte(open)
	for i := 0; i < n; i++ {
		switch {
		case p.pretty:
			p.buf.WriteByte('\n')
			p.buf.WriteString(strings.Repeat("  ", depth+1))
		case i > 0:
			p.buf.WriteByte(' ')
		}
		each(i)
	}
	if p.pretty && n > 0 {
		p.buf.WriteByte('\n')
		p.buf.WriteString(strings.Repeat("  ", depth))
	}
	p.buf.WriteByte(close)
}

// str writes an EDN string literal. EDN strings take UTF-8 as-is; only the
// quote, backslash and control characters are escaped.
func (p *ednPrinter) str(s string) {
	p.buf.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			p.buf.WriteString(`\"`)
		case '\\':
			p.buf.WriteString(`\\`)
		case '\n':
			p.buf.WriteString(`\n`)
		case '\t':
			p.buf.WriteString(`\t`)
		case '\r':
			p.buf.WriteString(`\r`)
		default:
			if r < 0x20 {
				continue
			}
			p.buf.WriteRune(r)
		}
	}
	p.buf.WriteByte('"')
}

// keyword turns a JSON key into an EDN keyword name: "roundsCompleted"
// becomes "rounds-completed".
func keyword(k string) string {
	var b strings.Builder
	for i, r := range strings.TrimSpace(k) {
		switch {
		case r == ' ' || r == '_':
			b.WriteByte('-')
		case unicode.IsUpper(r):
			if i > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
