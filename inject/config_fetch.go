package inject

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/carlmjohnson/requests"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// ConfigResponseSuccessCode is the only response code the config service uses for success.
const ConfigResponseSuccessCode = 0

var (
	// ErrInvalidConfigResponse is returned when the config service answers with
	// something that is not a JSON object.
	ErrInvalidConfigResponse = errors.New("invalid config response")
	// ErrConfigUnavailable is returned when the config service answers with a
	// failure code or without data.
	ErrConfigUnavailable = errors.New("config unavailable")
)

type fetchConfigsParams struct {
	Token            string
	ExecutionContext *ExecutionContext
	Context          context.Context
	ConfigAPIBuilder *requests.Builder
}

// ConfigResponse is the envelope returned by the remote config service.
type ConfigResponse struct {
	Code int
	Tag  string
	Msg  string
	Data map[string]string
}

// buildConfigRequestBody returns {"notebookId":..,"paragraphId":..,"userName":..}.
func buildConfigRequestBody(ec *ExecutionContext) (string, error) {
	body := "{}"
	var err error
	for _, field := range [][2]string{
		{"notebookId", ec.NoteID},
		{"paragraphId", ec.ParagraphID},
		{"userName", ec.UserName},
	} {
		body, err = sjson.Set(body, field[0], field[1])
		if err != nil {
			return "", fmt.Errorf("failed to set %s in config request %w", field[0], err)
		}
	}
	return body, nil
}

// fetchConfigs posts the execution context identifiers to the config service and returns
// the raw payload alongside the decoded response. The payload is returned even when
// decoding fails so callers can log it.
func fetchConfigs(params fetchConfigsParams) (ConfigResponse, string, error) {
	var result ConfigResponse
	body, err := buildConfigRequestBody(params.ExecutionContext)
	if err != nil {
		return result, "", err
	}

	var payload string
	builder := params.ConfigAPIBuilder.
		Post().
		ContentType("application/json").
		BodyBytes([]byte(body)).
		CheckStatus(http.StatusOK).
		ToString(&payload)
	if params.Token != "" {
		builder = builder.Bearer(params.Token)
	}
	if err = builder.Fetch(params.Context); err != nil {
		return result, payload, err
	}

	result, err = ParseConfigResponse(payload)
	return result, payload, err
}

// ParseConfigResponse decodes a config service payload. It fails unless the payload is
// a JSON object with an integer success code and an object of data.
// Null data values are dropped; numbers and booleans keep their JSON text.
func ParseConfigResponse(payload string) (ConfigResponse, error) {
	var result ConfigResponse
	if !gjson.Valid(payload) {
		return result, ErrInvalidConfigResponse
	}
	response := gjson.Parse(payload)
	if !response.IsObject() {
		return result, ErrInvalidConfigResponse
	}

	code := response.Get("code")
	switch code.Type {
	case gjson.Null:
		// missing or null code reads as 0
	case gjson.Number:
		if code.Num != float64(code.Int()) {
			return result, fmt.Errorf("%w: code %s is not an integer", ErrInvalidConfigResponse, code.Raw)
		}
		result.Code = int(code.Int())
	default:
		return result, fmt.Errorf("%w: code %s is not a number", ErrInvalidConfigResponse, code.Raw)
	}
	result.Tag = response.Get("tag").String()
	result.Msg = response.Get("msg").String()

	data := response.Get("data")
	if result.Code != ConfigResponseSuccessCode || !data.IsObject() {
		return result, fmt.Errorf("%w: code %d msg %q", ErrConfigUnavailable, result.Code, result.Msg)
	}

	var dataErr error
	result.Data = make(map[string]string)
	data.ForEach(func(key, value gjson.Result) bool {
		switch value.Type {
		case gjson.Null:
			return true
		case gjson.JSON:
			dataErr = fmt.Errorf("%w: value of %q is not a string", ErrInvalidConfigResponse, key.String())
			return false
		}
		result.Data[key.String()] = value.String()
		return true
	})
	if dataErr != nil {
		result.Data = nil
		return result, dataErr
	}
	return result, nil
}
