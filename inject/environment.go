package inject

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/iancoleman/strcase"
)

// SettingsEnvVar names the environment variable that may hold a JSON object of values
// for ${VAR} references in settings files.
const SettingsEnvVar = "NOTEBOOK_INJECT_SETTINGS"

// settingsOptions holds optional configuration for LoadSettingsFromEnvironment.
type settingsOptions struct {
	lookup       LookupEnv
	envOverrides bool
}

// SettingsOption is a functional option for configuring LoadSettingsFromEnvironment.
type SettingsOption func(*settingsOptions)

// SettingsWithLookup replaces the lookup used for ${VAR} expansion and overrides.
func SettingsWithLookup(lookup LookupEnv) SettingsOption {
	return func(o *settingsOptions) {
		o.lookup = lookup
	}
}

// SettingsWithEnvOverrides enables per-property environment overrides (see EnvOverrideName).
func SettingsWithEnvOverrides() SettingsOption {
	return func(o *settingsOptions) {
		o.envOverrides = true
	}
}

// EnvOverrideName returns the environment variable that overrides property of the named
// interpreter, e.g. jdbc + inject.http.config.url -> JDBC_INJECT_HTTP_CONFIG_URL.
func EnvOverrideName(interpreter string, property string) string {
	return strcase.ToScreamingSnake(interpreter + "." + property)
}

// JSONCompositeEnvVar looks values up in the JSON object held by the Parent environment
// variable, then in the process environment.
type JSONCompositeEnvVar struct {
	Parent string
}

func (c JSONCompositeEnvVar) LookupEnv(child string) (string, bool) {
	if c.Parent != "" {
		s := os.Getenv(c.Parent)
		if s != "" {
			m := make(map[string]string)
			err := json.Unmarshal([]byte(s), &m)
			if err == nil {
				if v, exists := m[child]; exists {
					return v, true
				}
			}
		}
	}
	return os.LookupEnv(child)
}

// LoadSettingsFromEnvironment merges defaults.yaml with the interpreter overrides found
// in files, expanding ${VAR} references from the environment.
func LoadSettingsFromEnvironment(files SettingsFiles, opts ...SettingsOption) (Settings, error) {
	options := settingsOptions{lookup: JSONCompositeEnvVar{Parent: SettingsEnvVar}}
	for _, opt := range opts {
		opt(&options)
	}

	var result Settings
	defaults, err := files.MustFindDefaultsSettingsFile()
	if err != nil {
		return result, fmt.Errorf("failed to read defaults settings file %w", err)
	}
	overrides, err := files.FindInterpreterSettingsFiles()
	if err != nil {
		return result, fmt.Errorf("failed to read interpreter settings files %w", err)
	}

	unmarshaler := YAMLSettingsUnmarshaler{}
	if options.envOverrides {
		unmarshaler.Overrides = options.lookup
	}
	result, err = unmarshaler.Unmarshal(options.lookup, append([]SettingsFile{defaults}, overrides...)...)
	if err != nil {
		return result, fmt.Errorf("failed to load settings %w", err)
	}
	return result, nil
}
