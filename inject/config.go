package inject

import (
	"fmt"
	"sort"

	"go.uber.org/config"
)

// Settings holds the interpreter settings the injection pipeline reads.
type Settings struct {
	Interpreters map[string]InterpreterSettings
}

// InterpreterSettings holds the properties of one configured interpreter.
type InterpreterSettings struct {
	Group      string
	Properties map[string]string
}

// InterpreterNames returns the configured interpreter names in sorted order.
func (s Settings) InterpreterNames() []string {
	result := make([]string, 0, len(s.Interpreters))
	for name := range s.Interpreters {
		result = append(result, name)
	}
	sort.Strings(result)
	return result
}

// Interpreter returns the handle for the named interpreter.
func (s Settings) Interpreter(name string) (*PropertyInterpreter, bool) {
	settings, exists := s.Interpreters[name]
	if !exists {
		return nil, false
	}
	return NewPropertyInterpreter(name, settings.Properties), true
}

// PropertyInterpreter is an Interpreter backed by a fixed property map.
type PropertyInterpreter struct {
	Name       string
	properties map[string]string
}

// NewPropertyInterpreter copies properties into a new PropertyInterpreter.
func NewPropertyInterpreter(name string, properties map[string]string) *PropertyInterpreter {
	result := &PropertyInterpreter{Name: name, properties: make(map[string]string, len(properties))}
	for k, v := range properties {
		result.properties[k] = v
	}
	return result
}

// Property implements Interpreter.
func (p *PropertyInterpreter) Property(name string) (string, bool) {
	v, exists := p.properties[name]
	return v, exists
}

// Properties implements Interpreter.
func (p *PropertyInterpreter) Properties() map[string]string {
	result := make(map[string]string, len(p.properties))
	for k, v := range p.properties {
		result[k] = v
	}
	return result
}

// LookupEnv resolves ${VAR} references found in settings files.
type LookupEnv interface {
	LookupEnv(name string) (string, bool)
}

// YAMLSettingsUnmarshaler merges settings files, later sources overriding earlier ones.
type YAMLSettingsUnmarshaler struct {
	// Overrides, when set, is consulted for every interpreter property after the
	// files are merged (see EnvOverrideName). The injector properties can be set this
	// way even when no file mentions them.
	Overrides LookupEnv
}

func (u YAMLSettingsUnmarshaler) Unmarshal(lookup LookupEnv, sources ...SettingsFile) (Settings, error) {
	var result Settings
	var options []config.YAMLOption
	for _, s := range sources {
		if s.Length > 0 {
			options = append(options, config.Source(s.Reader))
		}
	}
	if lookup != nil {
		options = append(options, config.Expand(lookup.LookupEnv))
	}
	yaml, err := config.NewYAML(options...)
	if err != nil {
		return result, fmt.Errorf("failed to read yaml settings %w", err)
	}

	key := "interpreters"
	if yaml.Get(key).HasValue() {
		err = yaml.Get(key).Populate(&result.Interpreters)
		if err != nil {
			return result, fmt.Errorf("failed to read '%s' from yaml settings %w", key, err)
		}
	}
	if result.Interpreters == nil {
		result.Interpreters = make(map[string]InterpreterSettings)
	}

	for name, settings := range result.Interpreters {
		if settings.Properties == nil {
			settings.Properties = make(map[string]string)
		}
		if u.Overrides != nil {
			candidates := []string{HTTPConfigURLProperty, HTTPConfigTokenProperty}
			for property := range settings.Properties {
				candidates = append(candidates, property)
			}
			for _, property := range candidates {
				if v, exists := u.Overrides.LookupEnv(EnvOverrideName(name, property)); exists {
					settings.Properties[property] = v
				}
			}
		}
		result.Interpreters[name] = settings
	}

	return result, nil
}
