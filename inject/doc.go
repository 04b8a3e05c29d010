// Package inject prepares paragraph scripts for execution.
//
// A Pipeline runs an ordered list of Stages over a script. HTTPConfigInjector is the
// stage that fetches a per-paragraph config set from a remote service and substitutes
// ${name} placeholders in the script and the paragraph's local properties:
//
//	settings, err := inject.LoadSettingsFromEnvironment(inject.SettingsFiles{Root: "settings", Files: settingsFS})
//	interpreter, _ := settings.Interpreter("jdbc")
//	pipeline := inject.NewPipeline(inject.NewHTTPConfigInjector(logger))
//	script = pipeline.Run(ctx, script, &inject.Paragraph{Context: ec, Interpreter: interpreter})
//
// The package also carries the helpers behind the recoverydata command.
package inject
