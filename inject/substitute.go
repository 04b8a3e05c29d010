package inject

import (
	"regexp"
	"strings"
)

// VariablePattern matches a ${name} placeholder; the first group is the name.
var VariablePattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Substitute replaces every ${name} placeholder in text whose name is a key of configs
// with the literal config value. Placeholders with no matching key are kept as they are.
// Substituted values are not scanned again, so a value containing "${x}", "$1" or a
// backslash is inserted verbatim.
func Substitute(text string, configs map[string]string) string {
	if len(configs) == 0 {
		return text
	}
	matches := VariablePattern.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return text
	}

	var sb strings.Builder
	sb.Grow(len(text))
	last := 0
	for _, m := range matches {
		value, exists := configs[text[m[2]:m[3]]]
		if !exists {
			continue
		}
		sb.WriteString(text[last:m[0]])
		sb.WriteString(value)
		last = m[1]
	}
	sb.WriteString(text[last:])
	return sb.String()
}

// SubstituteProperties runs Substitute over every value of properties and overwrites
// the values that changed. It returns the number of values rewritten.
func SubstituteProperties(properties map[string]string, configs map[string]string) int {
	var rewritten int
	for key, value := range properties {
		if finalValue := Substitute(value, configs); finalValue != value {
			properties[key] = finalValue
			rewritten++
		}
	}
	return rewritten
}
