package levyt

import (
	"fmt"
	"strconv"
	"strings"
)

// Params carries named query parameters, bound with the :name syntax.
type Params map[string]any

// bindStyle selects the placeholder syntax of the underlying driver.
type bindStyle int

const (
	bindQuestion bindStyle = iota // sqlite3, mysql: ?
	bindDollar                    // postgres: $1, $2, ...
)

func bindStyleFor(driver string) bindStyle {
	if driver == "postgres" {
		return bindDollar
	}
	return bindQuestion
}

// bindNamed expands :name placeholders into the driver's positional
// placeholder syntax and returns the matching argument list. Quoted
// strings and :: type casts are left untouched. A placeholder with no
// matching parameter is an error; unused parameters are ignored.
func bindNamed(query string, params Params, style bindStyle) (string, []any, error) {
	if !strings.ContainsRune(query, ':') {
		return query, nil, nil
	}

	var (
		out   strings.Builder
		args  []any
		quote rune
	)
	runes := []rune(query)
	for i := 0; i < len(runes); i++ {
		r := runes[i]

		if quote != 0 {
			out.WriteRune(r)
			if r == quote {
				quote = 0
			}
			continue
		}
		switch r {
		case '\'', '"', '`':
			quote = r
			out.WriteRune(r)
			continue
		case ':':
			// A double colon is a cast, not a parameter.
			if i+1 < len(runes) && runes[i+1] == ':' {
				out.WriteString("::")
				i++
				continue
			}
			start := i + 1
			end := start
			for end < len(runes) && isNameRune(runes[end]) {
				end++
			}
			if end == start {
				out.WriteRune(r)
				continue
			}
			name := string(runes[start:end])
			value, ok := params[name]
			if !ok {
				return "", nil, fmt.Errorf("levyt: query references parameter %q but none was provided", name)
			}
			args = append(args, value)
			if style == bindDollar {
				out.WriteByte('$')
				out.WriteString(strconv.Itoa(len(args)))
			} else {
				out.WriteByte('?')
			}
			i = end - 1
			continue
		}
		out.WriteRune(r)
	}
	if quote != 0 {
		return "", nil, fmt.Errorf("levyt: unterminated quote in query")
	}
	return out.String(), args, nil
}

func isNameRune(r rune) bool {
	return r == '_' ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9')
}
