package paragraph

// AnalysisResult describes what executing a paragraph would run.
type AnalysisResult struct {
	ParseResult
	Scripts        []string          `json:"scripts"`
	Configurations map[string]string `json:"configurations"`
}

// Analyze parses text, splits its script into statements and merges the properties of
// the interpreters it is bound to; later property sets win.
func Analyze(text string, interpreterProperties ...map[string]string) (AnalysisResult, error) {
	parsed, err := Parse(text)
	if err != nil {
		return AnalysisResult{}, err
	}
	result := AnalysisResult{
		ParseResult:    parsed,
		Scripts:        SplitSQL(parsed.ScriptText),
		Configurations: make(map[string]string),
	}
	if result.Scripts == nil {
		result.Scripts = []string{}
	}
	for _, properties := range interpreterProperties {
		for k, v := range properties {
			result.Configurations[k] = v
		}
	}
	return result, nil
}
