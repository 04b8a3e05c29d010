// go test github.com/homemade/notebook-inject/paragraph -v
package paragraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitSQL(t *testing.T) {
	tests := []struct {
		name     string
		script   string
		expected []string
	}{
		{
			name:     "single statement without semicolon",
			script:   "select 1",
			expected: []string{"select 1"},
		},
		{
			name:     "multiple statements",
			script:   "set a=1;\nselect * from t;\n\n;",
			expected: []string{"set a=1", "select * from t"},
		},
		{
			name:     "semicolons inside quotes",
			script:   `select ';', "a;b", ` + "`c;d`" + ` from t; select 2`,
			expected: []string{`select ';', "a;b", ` + "`c;d`" + ` from t`, "select 2"},
		},
		{
			name:     "escaped and doubled quotes",
			script:   `select 'it''s;', 'a\';b'; select 3`,
			expected: []string{`select 'it''s;', 'a\';b'`, "select 3"},
		},
		{
			name:     "line comments dropped",
			script:   "-- header; not a statement\nselect 1; -- trailing\nselect 2",
			expected: []string{"select 1", "select 2"},
		},
		{
			name:     "block comments dropped",
			script:   "/* a; b */select/*x*/1;/* only comment */",
			expected: []string{"select 1"},
		},
		{
			name:     "comment markers inside quotes are text",
			script:   "select '--not', '/*nor*/' from t",
			expected: []string{"select '--not', '/*nor*/' from t"},
		},
		{
			name:     "empty",
			script:   "  ;\n ; ",
			expected: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SplitSQL(tt.script))
		})
	}
}
