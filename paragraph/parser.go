package paragraph

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ErrUnclosedProperties is returned when a %interpreter( block has no closing parenthesis.
var ErrUnclosedProperties = errors.New("unclosed local properties")

// ParseResult is a paragraph's text split into its parts.
//
//	%jdbc(db=sales, user="bob smith") select 1
//
// binds IntpText "jdbc" with LocalProperties {db: sales, user: bob smith} and ScriptText "select 1".
type ParseResult struct {
	IntpText        string            `json:"intpText"`
	ScriptText      string            `json:"scriptText"`
	LocalProperties map[string]string `json:"localProperties"`
}

// Parse splits paragraph text into interpreter binding, local properties and script.
// Text that does not start with % has no binding and is all script.
func Parse(text string) (ParseResult, error) {
	result := ParseResult{LocalProperties: map[string]string{}}
	s := strings.TrimLeftFunc(text, unicode.IsSpace)
	if !strings.HasPrefix(s, "%") {
		result.ScriptText = strings.TrimSpace(text)
		return result, nil
	}

	i := 1
	for i < len(s) && s[i] != '(' && !unicode.IsSpace(rune(s[i])) {
		i++
	}
	result.IntpText = s[1:i]

	if i < len(s) && s[i] == '(' {
		props, end, err := parseLocalProperties(s, i)
		if err != nil {
			return result, fmt.Errorf("failed to parse paragraph %%%s %w", result.IntpText, err)
		}
		result.LocalProperties = props
		i = end
	}
	result.ScriptText = strings.TrimSpace(s[i:])
	return result, nil
}

// parseLocalProperties reads the comma separated key=value list starting at s[open] == '('
// and returns it with the index just after the closing parenthesis.
func parseLocalProperties(s string, open int) (map[string]string, int, error) {
	result := make(map[string]string)
	start := open + 1
	eq := -1
	inQuote, escaped := false, false

	flush := func(end int) {
		raw := s[start:end]
		if eq < 0 {
			if k := unquote(strings.TrimSpace(raw)); k != "" {
				result[k] = ""
			}
			return
		}
		k := unquote(strings.TrimSpace(s[start:eq]))
		if k != "" {
			result[k] = unquote(strings.TrimSpace(s[eq+1 : end]))
		}
	}

	for i := start; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			escaped = false
		case inQuote && c == '\\':
			escaped = true
		case c == '"':
			inQuote = !inQuote
		case inQuote:
		case c == '=' && eq < 0:
			eq = i
		case c == ',':
			flush(i)
			start, eq = i+1, -1
		case c == ')':
			flush(i)
			return result, i + 1, nil
		}
	}
	return nil, 0, ErrUnclosedProperties
}

// unquote strips surrounding double quotes and resolves \" and \\ escapes inside them.
func unquote(s string) string {
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return s
	}
	inner := s[1 : len(s)-1]
	var sb strings.Builder
	for i := 0; i < len(inner); i++ {
		if inner[i] == '\\' && i+1 < len(inner) {
			i++
		}
		sb.WriteByte(inner[i])
	}
	return sb.String()
}
