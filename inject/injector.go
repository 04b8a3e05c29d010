package inject

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/carlmjohnson/requests"
)

// Interpreter properties read by HTTPConfigInjector.
const (
	HTTPConfigURLProperty   = "inject.http.config.url"
	HTTPConfigTokenProperty = "inject.http.config.token"
)

// HTTPConfigInjector is a pipeline stage that fetches a config set for the paragraph
// from the service named by the interpreter's inject.http.config.url property and
// substitutes ${name} placeholders in the script and in the paragraph's local properties.
//
// It never fails: if the stage cannot apply, or the fetch fails, the script comes back
// with no substitutions made.
type HTTPConfigInjector struct {
	Logger *slog.Logger
	// Client defaults to NewConfigHTTPClient().
	Client *http.Client
	// RecordRequests stores every exchange under RecordPath (see requests.Record).
	RecordRequests bool
	RecordPath     string
}

// NewHTTPConfigInjector returns an injector using the default client.
func NewHTTPConfigInjector(logger *slog.Logger) *HTTPConfigInjector {
	return &HTTPConfigInjector{Logger: logger, Client: NewConfigHTTPClient()}
}

func (i *HTTPConfigInjector) logger() *slog.Logger {
	if i.Logger != nil {
		return i.Logger
	}
	return slog.Default()
}

// ConfigAPIBuilder returns a new requests.Builder configured for the config service at url.
func (i *HTTPConfigInjector) ConfigAPIBuilder(url string) *requests.Builder {
	client := i.Client
	if client == nil {
		client = NewConfigHTTPClient()
	}
	result := requests.
		URL(url).
		Client(client)
	if i.RecordRequests {
		path := i.RecordPath
		if path == "" {
			path = "testdata/.requests/config"
		}
		result = result.Transport(requests.Record(client.Transport, path))
	}
	return result
}

// Inject implements Stage.
func (i *HTTPConfigInjector) Inject(ctx context.Context, script string, paragraph *Paragraph) string {
	log := i.logger()
	if paragraph == nil || paragraph.Context == nil || paragraph.Interpreter == nil {
		log.Warn("Param unexpected, skipping config injection",
			"has_paragraph", paragraph != nil,
			"has_context", paragraph != nil && paragraph.Context != nil,
			"has_interpreter", paragraph != nil && paragraph.Interpreter != nil)
		return script
	}

	url, _ := paragraph.Interpreter.Property(HTTPConfigURLProperty)
	if url == "" {
		log.Warn(fmt.Sprintf("the interpreter property '%s' is not configured, skipping config injection", HTTPConfigURLProperty),
			"note_id", paragraph.Context.NoteID,
			"paragraph_id", paragraph.Context.ParagraphID)
		return script
	}
	token, _ := paragraph.Interpreter.Property(HTTPConfigTokenProperty)

	configs := i.configs(ctx, url, token, paragraph.Context)

	if paragraph.Context.LocalProperties != nil {
		SubstituteProperties(paragraph.Context.LocalProperties, configs)
	}
	log.Info("injecting variables", "configs", len(configs), "paragraph_id", paragraph.Context.ParagraphID)
	return Substitute(script, configs)
}

// configs returns the config set for ec, or an empty set if it could not be fetched.
func (i *HTTPConfigInjector) configs(ctx context.Context, url, token string, ec *ExecutionContext) map[string]string {
	log := i.logger()
	response, payload, err := fetchConfigs(fetchConfigsParams{
		Token:            token,
		ExecutionContext: ec,
		Context:          ctx,
		ConfigAPIBuilder: i.ConfigAPIBuilder(url),
	})
	if err != nil {
		if payload != "" {
			log.Error("Config get result abnormal", "url", url, "payload", payload, "error", err)
		} else {
			log.Error("Config get failed", "url", url, "error", err)
		}
		return map[string]string{}
	}
	return response.Data
}
