package paragraph

import "strings"

type splitState int

const (
	stateCode splitState = iota
	stateSingleQuote
	stateDoubleQuote
	stateBacktick
	stateLineComment
	stateBlockComment
)

// SplitSQL splits script into statements on semicolons outside quotes and comments.
// Comments are dropped, statements are trimmed and empty statements skipped.
func SplitSQL(script string) []string {
	var result []string
	var cur []byte
	state := stateCode

	flush := func() {
		if s := strings.TrimSpace(string(cur)); s != "" {
			result = append(result, s)
		}
		cur = cur[:0]
	}
	next := func(i int) byte {
		if i+1 < len(script) {
			return script[i+1]
		}
		return 0
	}

	for i := 0; i < len(script); i++ {
		c := script[i]
		switch state {
		case stateCode:
			switch {
			case c == '\'':
				state = stateSingleQuote
				cur = append(cur, c)
			case c == '"':
				state = stateDoubleQuote
				cur = append(cur, c)
			case c == '`':
				state = stateBacktick
				cur = append(cur, c)
			case c == '-' && next(i) == '-':
				state = stateLineComment
				i++
			case c == '/' && next(i) == '*':
				state = stateBlockComment
				i++
			case c == ';':
				flush()
			default:
				cur = append(cur, c)
			}
		case stateSingleQuote, stateDoubleQuote, stateBacktick:
			cur = append(cur, c)
			quote := closingQuote(state)
			switch {
			case c == '\\' && state != stateBacktick && i+1 < len(script):
				cur = append(cur, script[i+1])
				i++
			case c == quote && next(i) == quote:
				cur = append(cur, script[i+1])
				i++
			case c == quote:
				state = stateCode
			}
		case stateLineComment:
			if c == '\n' {
				state = stateCode
				cur = append(cur, c)
			}
		case stateBlockComment:
			if c == '*' && next(i) == '/' {
				state = stateCode
				i++
				if n := len(cur); n > 0 && cur[n-1] != ' ' && cur[n-1] != '\n' && cur[n-1] != '\t' {
					cur = append(cur, ' ')
				}
			}
		}
	}
	flush()
	return result
}

func closingQuote(state splitState) byte {
	switch state {
	case stateDoubleQuote:
		return '"'
	case stateBacktick:
		return '`'
	default:
		return '\''
	}
}
