package domtest

import (
	"context"

	"redditauto/lib/browser"

	"github.com/PuerkitoBio/goquery"
)

type element struct {
	b   *Browser
	sel *goquery.Selection
	gen int
}

// stale handles behave like the webdriver implementation: the element is
// simply gone
func (e *element) live() error {
	if e.gen != e.b.gen {
		return browser.ErrElementNotFound
	}
	return nil
}

func (e *element) Attr(ctx context.Context, name string) (string, error) {
	if err := e.live(); err != nil {
		return "", err
	}
	return e.sel.AttrOr(name, ""), nil
}

func (e *element) Text(ctx context.Context) (string, error) {
	if err := e.live(); err != nil {
		return "", err
	}
	return renderedText(e.sel), nil
}

func (e *element) Click(ctx context.Context) error {
	if err := e.live(); err != nil {
		return err
	}
	for _, hook := range e.b.clickHooks {
		if e.sel.Is(hook.selector) {
			hook.fn(e.b)
		}
	}
	return nil
}

func (e *element) SetValue(ctx context.Context, value string) error {
	if err := e.live(); err != nil {
		return err
	}
	if e.sel.Is("input") {
		e.sel.SetAttr("value", value)
	} else {
		e.sel.SetText(value)
	}
	return nil
}

func (e *element) Find(ctx context.Context, loc browser.Locator) (browser.Element, error) {
	if err := e.live(); err != nil {
		return nil, err
	}
	return firstMatch(e.b, e.sel, loc)
}

func (e *element) FindAll(ctx context.Context, loc browser.Locator) ([]browser.Element, error) {
	if err := e.live(); err != nil {
		return nil, err
	}
	return allMatches(e.b, e.sel, loc), nil
}

func (e *element) Children(ctx context.Context) ([]browser.Element, error) {
	if err := e.live(); err != nil {
		return nil, err
	}
	children := e.sel.Children()
	els := make([]browser.Element, 0, children.Length())
	for i := 0; i < children.Length(); i++ {
		els = append(els, &element{b: e.b, sel: children.Eq(i), gen: e.b.gen})
	}
	return els, nil
}
