package inject

// ExecutionContext holds the paragraph-scoped identifiers available at injection time.
// It is read-only for stages except LocalProperties, which an injector may rewrite
// in place.
type ExecutionContext struct {
	NoteID      string
	ParagraphID string
	UserName    string

	LocalProperties map[string]string
}

// Interpreter is the handle of the interpreter a paragraph is bound to.
type Interpreter interface {
	// Property returns the named interpreter setting and whether it is set.
	Property(name string) (string, bool)
	// Properties returns a copy of every interpreter setting.
	Properties() map[string]string
}

// Paragraph carries what a pipeline stage needs to prepare one paragraph's script.
// It is passed by pointer and never shared between paragraph executions.
type Paragraph struct {
	Context     *ExecutionContext
	Interpreter Interpreter
}
