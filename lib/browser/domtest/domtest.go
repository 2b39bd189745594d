// Package domtest implements the lib/browser interfaces over static HTML
// documents so page automation can be tested without a real browser. Tests
// register pages with Route, then mutate page state from click or script
// hooks to mimic a live site.
package domtest

import (
	"context"
	"fmt"
	"strings"

	"redditauto/lib/browser"
	"redditauto/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

type clickHook struct {
	selector string
	fn       func(b *Browser)
}

type scriptHook struct {
	substring string
	fn        func(b *Browser)
}

type Browser struct {
	pages map[string]string

	doc *goquery.Document
	url string
	// bumped whenever the live document is replaced, so handles into the
	// old document can be detected as stale
	gen int

	clickHooks  []clickHook
	scriptHooks []scriptHook

	navigations []string
	scripts     []string
}

var (
	_ browser.Browser = (*Browser)(nil)
	_ browser.Element = (*element)(nil)
)

func New() *Browser {
	return &Browser{pages: map[string]string{}}
}

// Route registers the HTML served for a URL.
func (b *Browser) Route(url, html string) {
	b.pages[url] = html
}

// HandleClick runs fn whenever an element matching selector is clicked.
func (b *Browser) HandleClick(selector string, fn func(b *Browser)) {
	b.clickHooks = append(b.clickHooks, clickHook{selector: selector, fn: fn})
}

// HandleScript runs fn whenever an executed script contains substring.
func (b *Browser) HandleScript(substring string, fn func(b *Browser)) {
	b.scriptHooks = append(b.scriptHooks, scriptHook{substring: substring, fn: fn})
}

// SetHTML replaces the live document, invalidating all element handles.
func (b *Browser) SetHTML(html string) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		panic(fmt.Sprintf("domtest: parse html: %v", err))
	}
	b.doc = doc
	b.gen++
}

// CurrentURL returns the URL of the last successful navigation.
func (b *Browser) CurrentURL() string { return b.url }

// Navigations returns every URL navigated to, in order.
func (b *Browser) Navigations() []string { return b.navigations }

// Scripts returns every script source executed, in order.
func (b *Browser) Scripts() []string { return b.scripts }

func (b *Browser) Navigate(ctx context.Context, url string) error {
	html, ok := b.pages[url]
	if !ok {
		return fmt.Errorf("domtest: no page routed for %q", url)
	}
	b.navigations = append(b.navigations, url)
	b.url = url
	b.SetHTML(html)
	return nil
}

func (b *Browser) Find(ctx context.Context, loc browser.Locator) (browser.Element, error) {
	if b.doc == nil {
		return nil, fmt.Errorf("domtest: no page loaded")
	}
	return firstMatch(b, b.doc.Selection, loc)
}

func (b *Browser) FindAll(ctx context.Context, loc browser.Locator) ([]browser.Element, error) {
	if b.doc == nil {
		return nil, fmt.Errorf("domtest: no page loaded")
	}
	return allMatches(b, b.doc.Selection, loc), nil
}

func (b *Browser) ExecuteScript(ctx context.Context, source string) error {
	b.scripts = append(b.scripts, source)
	for _, hook := range b.scriptHooks {
		if strings.Contains(source, hook.substring) {
			hook.fn(b)
		}
	}
	return nil
}

func match(sel *goquery.Selection, loc browser.Locator) *goquery.Selection {
	found := sel.Find(loc.Selector)
	if loc.Text == "" {
		return found
	}
	return found.FilterFunction(func(_ int, s *goquery.Selection) bool {
		return renderedText(s) == loc.Text
	})
}

func firstMatch(b *Browser, scope *goquery.Selection, loc browser.Locator) (browser.Element, error) {
	found := match(scope, loc)
	if found.Length() == 0 {
		return nil, browser.ErrElementNotFound
	}
	return &element{b: b, sel: found.Eq(0), gen: b.gen}, nil
}

func allMatches(b *Browser, scope *goquery.Selection, loc browser.Locator) []browser.Element {
	found := match(scope, loc)
	els := make([]browser.Element, 0, found.Length())
	for i := 0; i < found.Length(); i++ {
		els = append(els, &element{b: b, sel: found.Eq(i), gen: b.gen})
	}
	return els
}

func renderedText(sel *goquery.Selection) string {
	if len(sel.Nodes) == 0 {
		return ""
	}
	return htmlutil.RenderedText(sel.Nodes[0])
}
