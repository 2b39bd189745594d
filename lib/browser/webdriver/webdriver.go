// Package webdriver drives a real browser through a W3C WebDriver endpoint
// (chromedriver, geckodriver, or a remote grid). It implements the
// lib/browser interfaces.
package webdriver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"redditauto/lib/browser"
	"redditauto/lib/restyutil"
	"redditauto/lib/telemetry"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
)

// the W3C element identifier key
const webElementID = "element-6066-11e4-a52e-4f735466cecf"

type Options struct {
	// driver endpoint, e.g. http://localhost:9515
	Endpoint string
	// capabilities merged under alwaysMatch; nil asks the driver for
	// whatever browser it defaults to
	Capabilities map[string]any
	// per-request timeout, 30s if zero
	Timeout time.Duration
	// when set, every wire exchange is dumped to one file per request
	// under this directory
	DebugDumpDir string
}

type Session struct {
	http *resty.Client
	id   string
}

// compile-time interface checks
var (
	_ browser.Browser = (*Session)(nil)
	_ browser.Element = (*element)(nil)
)

func New(ctx context.Context, opts Options) (*Session, error) {
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = time.Second * 30
	}

	client := resty.New()
	client.SetBaseURL(strings.TrimSuffix(opts.Endpoint, "/"))
	client.SetTimeout(timeout)
	client.SetHeader("content-type", "application/json")
	if opts.DebugDumpDir != "" {
		restyutil.InstrumentClient(client, otel.Tracer("browser/webdriver"),
			restyutil.NewFilesystemOutput(opts.DebugDumpDir))
	} else {
		telemetry.InstrumentResty(client, "browser/webdriver")
	}

	s := &Session{http: client}

	var created struct {
		SessionId string `json:"sessionId"`
	}
	err := s.do(ctx, resty.MethodPost, "/session", map[string]any{
		"capabilities": map[string]any{
			"alwaysMatch": opts.Capabilities,
		},
	}, &created)
	if err != nil {
		return nil, fmt.Errorf("create webdriver session: %w", err)
	}
	if created.SessionId == "" {
		return nil, fmt.Errorf("webdriver endpoint returned an empty session id")
	}
	s.id = created.SessionId
	return s, nil
}

// Close deletes the remote session, closing the browser window it owns.
func (s *Session) Close(ctx context.Context) error {
	return s.do(ctx, resty.MethodDelete, fmt.Sprintf("/session/%s", s.id), nil, nil)
}

func (s *Session) Navigate(ctx context.Context, url string) error {
	return s.do(ctx, resty.MethodPost, fmt.Sprintf("/session/%s/url", s.id),
		map[string]any{"url": url}, nil)
}

func (s *Session) Find(ctx context.Context, loc browser.Locator) (browser.Element, error) {
	return findOne(ctx, s, fmt.Sprintf("/session/%s", s.id), loc)
}

func (s *Session) FindAll(ctx context.Context, loc browser.Locator) ([]browser.Element, error) {
	return findAll(ctx, s, fmt.Sprintf("/session/%s", s.id), loc)
}

func (s *Session) ExecuteScript(ctx context.Context, source string) error {
	return s.do(ctx, resty.MethodPost, fmt.Sprintf("/session/%s/execute/sync", s.id),
		map[string]any{"script": source, "args": []any{}}, nil)
}

type wireError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// do performs one wire-protocol request, unwrapping the {"value": ...}
// envelope into out when out is non-nil.
func (s *Session) do(ctx context.Context, method, path string, body, out any) error {
	req := s.http.R().SetContext(ctx)
	if method == resty.MethodPost {
		// the protocol requires a JSON body on every POST
		if body == nil {
			body = struct{}{}
		}
		req.SetBody(body)
	}

	res, err := req.Execute(method, path)
	if err != nil {
		return err
	}

	if res.IsError() {
		var envelope struct {
			Value wireError `json:"value"`
		}
		// a parse failure here leaves the zero value, reported below
		_ = json.Unmarshal(res.Body(), &envelope)
		if envelope.Value.Error == "no such element" ||
			envelope.Value.Error == "stale element reference" {
			return browser.ErrElementNotFound
		}
		if envelope.Value.Error == "" {
			return fmt.Errorf("webdriver: %s %s: %s", method, path, res.Status())
		}
		return fmt.Errorf("webdriver: %s %s: %s: %s",
			method, path, envelope.Value.Error, envelope.Value.Message)
	}

	if out != nil {
		var envelope struct {
			Value json.RawMessage `json:"value"`
		}
		if err := json.Unmarshal(res.Body(), &envelope); err != nil {
			return fmt.Errorf("webdriver: decode response: %w", err)
		}
		if err := json.Unmarshal(envelope.Value, out); err != nil {
			return fmt.Errorf("webdriver: decode response value: %w", err)
		}
	}
	return nil
}
