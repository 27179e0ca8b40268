package urlparts

import (
	"strings"
)

// String renders one "field: value" line per component. Absent fields are
// shown as "-".
func (p URLParts) String() string {
	var b strings.Builder

	line := func(name string, v *string) {
		b.WriteString(name)
		b.WriteString(": ")
		if v == nil {
			b.WriteString("-")
		} else {
			b.WriteString(*v)
		}
		b.WriteByte('\n')
	}

	line("protocol", p.Protocol)
	line("host", p.Host)
	line("path", p.Path)
	line("search", p.Search)
	line("fragment", p.Fragment)

	b.WriteString("params:")
	if len(p.Params) == 0 {
		b.WriteString(" -")
	}
	b.WriteByte('\n')
	for _, kv := range p.Params {
		b.WriteString("  ")
		b.WriteString(kv.Key)
		b.WriteByte('=')
		b.WriteString(kv.Value)
		b.WriteByte('\n')
	}

	return b.String()
}

// Field returns the named component of p ("protocol", "host", "path",
// "search" or "fragment").
func (p URLParts) Field(name string) (*string, bool) {
	switch name {
	case "protocol":
		return p.Protocol, true
	case "host":
		return p.Host, true
	case "path":
		return p.Path, true
	case "search":
		return p.Search, true
	case "fragment":
		return p.Fragment, true
	}
	return nil, false
}
