package webdriver

import (
	"context"
	"fmt"
	"strings"

	"redditauto/lib/browser"

	"github.com/go-resty/resty/v2"
)

type element struct {
	session *Session
	id      string
}

func (e *element) path(suffix string) string {
	return fmt.Sprintf("/session/%s/element/%s%s", e.session.id, e.id, suffix)
}

func (e *element) Attr(ctx context.Context, name string) (string, error) {
	var value *string
	err := e.session.do(ctx, resty.MethodGet, e.path("/attribute/"+name), nil, &value)
	if err != nil {
		return "", err
	}
	if value == nil {
		return "", nil
	}
	return *value, nil
}

func (e *element) Text(ctx context.Context) (string, error) {
	var text string
	err := e.session.do(ctx, resty.MethodGet, e.path("/text"), nil, &text)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

func (e *element) Click(ctx context.Context) error {
	return e.session.do(ctx, resty.MethodPost, e.path("/click"), nil, nil)
}

func (e *element) SetValue(ctx context.Context, value string) error {
	err := e.session.do(ctx, resty.MethodPost, e.path("/clear"), nil, nil)
	if err != nil {
		return err
	}
	return e.session.do(ctx, resty.MethodPost, e.path("/value"),
		map[string]any{"text": value}, nil)
}

func (e *element) Find(ctx context.Context, loc browser.Locator) (browser.Element, error) {
	return findOne(ctx, e.session, fmt.Sprintf("/session/%s/element/%s", e.session.id, e.id), loc)
}

func (e *element) FindAll(ctx context.Context, loc browser.Locator) ([]browser.Element, error) {
	return findAll(ctx, e.session, fmt.Sprintf("/session/%s/element/%s", e.session.id, e.id), loc)
}

func (e *element) Children(ctx context.Context) ([]browser.Element, error) {
	return findAllBy(ctx, e.session,
		fmt.Sprintf("/session/%s/element/%s", e.session.id, e.id), "xpath", "./*")
}

// findOne resolves a locator under the given scope (session or element
// path prefix). Text-filtered locators are resolved by listing the CSS
// matches and comparing rendered text, since CSS cannot express text
// equality.
func findOne(ctx context.Context, s *Session, scope string, loc browser.Locator) (browser.Element, error) {
	if loc.Text == "" {
		var ref map[string]string
		err := s.do(ctx, resty.MethodPost, scope+"/element",
			map[string]any{"using": "css selector", "value": loc.Selector}, &ref)
		if err != nil {
			return nil, err
		}
		return &element{session: s, id: ref[webElementID]}, nil
	}

	matches, err := findAll(ctx, s, scope, loc)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, browser.ErrElementNotFound
	}
	return matches[0], nil
}

func findAll(ctx context.Context, s *Session, scope string, loc browser.Locator) ([]browser.Element, error) {
	els, err := findAllBy(ctx, s, scope, "css selector", loc.Selector)
	if err != nil {
		return nil, err
	}
	if loc.Text == "" {
		return els, nil
	}

	var filtered []browser.Element
	for _, el := range els {
		text, err := el.Text(ctx)
		if err != nil {
			return nil, err
		}
		if text == loc.Text {
			filtered = append(filtered, el)
		}
	}
	return filtered, nil
}

func findAllBy(ctx context.Context, s *Session, scope, using, value string) ([]browser.Element, error) {
	var refs []map[string]string
	err := s.do(ctx, resty.MethodPost, scope+"/elements",
		map[string]any{"using": using, "value": value}, &refs)
	if err != nil {
		return nil, err
	}

	els := make([]browser.Element, len(refs))
	for i, ref := range refs {
		els[i] = &element{session: s, id: ref[webElementID]}
	}
	return els, nil
}
