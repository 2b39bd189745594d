// Package browser defines the capability boundary between page automation
// code and whatever drives the actual browser. Scrapers depend on these
// interfaces only; implementations live in subpackages (a W3C WebDriver
// client in webdriver, an in-memory fake in domtest).
package browser

import (
	"context"
	"errors"
	"fmt"
)

// ErrElementNotFound is returned by Find and friends when no element on the
// current page matches the locator.
var ErrElementNotFound = errors.New("element not found")

// Locator addresses elements on the current page. Selector is a CSS
// selector; if Text is nonempty only elements whose rendered text equals it
// (after whitespace normalization) match. The text filter covers lookups CSS
// cannot express, like "the link that says logout".
type Locator struct {
	Selector string
	Text     string
}

func CSS(selector string) Locator {
	return Locator{Selector: selector}
}

func Text(selector, text string) Locator {
	return Locator{Selector: selector, Text: text}
}

func (l Locator) String() string {
	if l.Text == "" {
		return l.Selector
	}
	return fmt.Sprintf("%s[text=%q]", l.Selector, l.Text)
}

// Element is a handle to a single element on the page the browser currently
// displays. Handles go stale when the page changes; using a stale handle is
// implementation-defined but never silently wrong (it errors).
type Element interface {
	// Attr returns the value of the named attribute, or "" if the
	// attribute is absent.
	Attr(ctx context.Context, name string) (string, error)
	// Text returns the element's rendered text with normalized whitespace.
	Text(ctx context.Context) (string, error)
	Click(ctx context.Context) error
	// SetValue clears the field and types value into it.
	SetValue(ctx context.Context, value string) error
	// Find locates the first matching descendant.
	Find(ctx context.Context, loc Locator) (Element, error)
	// FindAll locates all matching descendants in document order.
	FindAll(ctx context.Context, loc Locator) ([]Element, error)
	// Children returns the element's direct children in document order.
	Children(ctx context.Context) ([]Element, error)
}

// Browser is a live, single-tab browser session. Navigation replaces the
// current page; all lookups are relative to it.
type Browser interface {
	Navigate(ctx context.Context, url string) error
	Find(ctx context.Context, loc Locator) (Element, error)
	FindAll(ctx context.Context, loc Locator) ([]Element, error)
	// ExecuteScript runs a script in the page. The result, if any, is
	// discarded.
	ExecuteScript(ctx context.Context, source string) error
}

// Exists reports whether at least one element matches loc, mapping
// ErrElementNotFound to false rather than an error.
func Exists(ctx context.Context, b Browser, loc Locator) (bool, error) {
	_, err := b.Find(ctx, loc)
	if errors.Is(err, ErrElementNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ExistsIn is Exists scoped to an element's descendants.
func ExistsIn(ctx context.Context, el Element, loc Locator) (bool, error) {
	_, err := el.Find(ctx, loc)
	if errors.Is(err, ErrElementNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
