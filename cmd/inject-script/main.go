// inject-script runs the injection pipeline over a script the way the notebook server
// does before executing a paragraph, and prints the result.
//
//	inject-script --settings ./settings --interpreter jdbc --note 2HTYRQ479 --paragraph p1 --user alice query.sql
//
// The script is read from the named file, or stdin when none is given. With --record DIR
// each config service exchange is saved to DIR as a .req.txt/.res.txt pair. Rewritten local
// properties are logged.
package main

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"

	"github.com/homemade/notebook-inject/inject"
	"github.com/spf13/pflag"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	var (
		settingsDir string
		interpreter string
		logLevel    string
		recordDir   string
		ec          inject.ExecutionContext
	)
	flagSet := pflag.NewFlagSet("inject-script", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVar(&settingsDir, "settings", "settings", "directory holding defaults.yaml and interpreters/")
	flagSet.StringVar(&interpreter, "interpreter", "", "interpreter the paragraph is bound to")
	flagSet.StringVar(&ec.NoteID, "note", "", "note id")
	flagSet.StringVar(&ec.ParagraphID, "paragraph", "", "paragraph id")
	flagSet.StringVar(&ec.UserName, "user", "", "user running the paragraph")
	flagSet.StringToStringVar(&ec.LocalProperties, "property", map[string]string{}, "paragraph local property key=value (repeatable)")
	flagSet.StringVar(&recordDir, "record", "", "directory to store every config service request and response in")
	flagSet.StringVar(&logLevel, "log-level", "warn", "debug, info, warn or error")
	if err := flagSet.Parse(args); err != nil {
		return err
	}
	if flagSet.NArg() > 1 {
		return fmt.Errorf("expected at most one script file, got %d", flagSet.NArg())
	}

	logger := newLogger(stderr, logLevel)

	settings, err := inject.LoadSettingsFromEnvironment(
		inject.SettingsFiles{Root: ".", Files: dirFS{os.DirFS(settingsDir)}},
		inject.SettingsWithEnvOverrides(),
	)
	if err != nil {
		return err
	}
	handle, found := settings.Interpreter(interpreter)
	if !found {
		return fmt.Errorf("interpreter %q is not configured in %s", interpreter, settingsDir)
	}

	script, err := readScript(flagSet.Arg(0), stdin)
	if err != nil {
		return err
	}

	injector := inject.NewHTTPConfigInjector(logger)
	if recordDir != "" {
		injector.RecordRequests = true
		injector.RecordPath = recordDir
	}
	pipeline := inject.NewPipeline(injector)
	paragraph := &inject.Paragraph{Context: &ec, Interpreter: handle}
	result := pipeline.Run(ctx, script, paragraph)

	for k, v := range ec.LocalProperties {
		logger.Info("local property", "key", k, "value", v)
	}
	_, err = io.WriteString(stdout, result)
	return err
}

// dirFS fills in ReadDir and ReadFile for an fs.FS that only promises Open.
type dirFS struct {
	fs.FS
}

func (d dirFS) ReadDir(name string) ([]fs.DirEntry, error) { return fs.ReadDir(d.FS, name) }

func (d dirFS) ReadFile(name string) ([]byte, error) { return fs.ReadFile(d.FS, name) }

func readScript(path string, stdin io.Reader) (string, error) {
	var b []byte
	var err error
	if path == "" || path == "-" {
		b, err = io.ReadAll(stdin)
	} else {
		b, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read script %w", err)
	}
	return string(b), nil
}

func newLogger(w io.Writer, level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: logLevel}))
}
