package domain

import (
	"strings"
	"unicode"
)

// GenreDelimiter separates genres in the denormalized representation.
const GenreDelimiter = ','

// SerializeGenres encodes genres as a PostgreSQL array literal, e.g.
// {Jazz,"Rock n Roll"}. Elements are quoted when they would otherwise be
// ambiguous on the way back.
func SerializeGenres(genres []string) string {
	var b strings.Builder

	b.WriteByte('{')
	for i, g := range genres {
		if i > 0 {
			b.WriteRune(GenreDelimiter)
		}

		if !needsQuoting(g) {
			b.WriteString(g)
			continue
		}

		b.WriteByte('"')
		for _, r := range g {
			if r == '"' || r == '\\' {
				b.WriteByte('\\')
			}
			b.WriteRune(r)
		}
		b.WriteByte('"')
	}
	b.WriteByte('}')

	return b.String()
}

// ParseGenres decodes the representation produced by SerializeGenres. Input
// without surrounding braces is treated as a plain comma separated list.
func ParseGenres(raw string) []string {
	s := strings.TrimSpace(raw)
	if len(s) < 2 || s[0] != '{' || s[len(s)-1] != '}' {
		return splitPlain(s)
	}

	body := s[1 : len(s)-1]
	out := []string{}
	if strings.TrimSpace(body) == "" {
		return out
	}

	var (
		cur       strings.Builder
		inQuotes  bool
		wasQuoted bool
		escaped   bool
	)

	flush := func() {
		v := cur.String()
		if !wasQuoted {
			v = strings.TrimSpace(v)
		}
		out = append(out, v)
		cur.Reset()
		wasQuoted = false
	}

	for _, r := range body {
		switch {
		case escaped:
			cur.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
		case r == '"':
			if !inQuotes && !wasQuoted && strings.TrimSpace(cur.String()) == "" {
				cur.Reset()
			}
			inQuotes = !inQuotes
			wasQuoted = true
		case r == GenreDelimiter && !inQuotes:
			flush()
		case wasQuoted && !inQuotes && unicode.IsSpace(r):
			// padding after a closing quote
		default:
			cur.WriteRune(r)
		}
	}
	flush()

	return out
}

func splitPlain(s string) []string {
	out := []string{}
	if s == "" {
		return out
	}

	for _, part := range strings.Split(s, string(GenreDelimiter)) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}

	return out
}

func needsQuoting(s string) bool {
	if s == "" || strings.EqualFold(s, "NULL") {
		return true
	}

	for _, r := range s {
		switch {
		case r == '{', r == '}', r == '"', r == '\\', r == GenreDelimiter:
			return true
		case unicode.IsSpace(r):
			return true
		}
	}

	return false
}
