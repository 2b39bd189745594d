package webdriver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"redditauto/lib/browser"

	"github.com/stretchr/testify/require"
)

// fakeDriver emulates just enough of the wire protocol for the client to be
// exercised end to end.
func fakeDriver(t *testing.T) *httptest.Server {
	writeValue := func(w http.ResponseWriter, value any) {
		w.Header().Set("content-type", "application/json")
		err := json.NewEncoder(w).Encode(map[string]any{"value": value})
		require.NoError(t, err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/session", func(w http.ResponseWriter, r *http.Request) {
		writeValue(w, map[string]any{"sessionId": "abc123"})
	})
	mux.HandleFunc("/session/abc123", func(w http.ResponseWriter, r *http.Request) {
		writeValue(w, nil)
	})
	mux.HandleFunc("/session/abc123/url", func(w http.ResponseWriter, r *http.Request) {
		writeValue(w, nil)
	})
	mux.HandleFunc("/session/abc123/element", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Using string `json:"using"`
			Value string `json:"value"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "css selector", body.Using)

		if body.Value == "#missing" {
			w.WriteHeader(http.StatusNotFound)
			writeValue(w, map[string]any{
				"error":   "no such element",
				"message": "no element matches #missing",
			})
			return
		}
		writeValue(w, map[string]any{webElementID: "el-1"})
	})
	mux.HandleFunc("/session/abc123/element/el-1/text", func(w http.ResponseWriter, r *http.Request) {
		writeValue(w, "  hello world  ")
	})
	mux.HandleFunc("/session/abc123/element/el-1/attribute/href", func(w http.ResponseWriter, r *http.Request) {
		writeValue(w, "/r/golang/")
	})
	mux.HandleFunc("/session/abc123/element/el-1/attribute/title", func(w http.ResponseWriter, r *http.Request) {
		// absent attributes come back as a JSON null
		writeValue(w, nil)
	})
	mux.HandleFunc("/session/abc123/element/el-1/click", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		writeValue(w, map[string]any{
			"error":   "stale element reference",
			"message": "the page changed",
		})
	})
	return httptest.NewServer(mux)
}

func TestSession(t *testing.T) {
	server := fakeDriver(t)
	defer server.Close()

	ctx := context.Background()
	session, err := New(ctx, Options{Endpoint: server.URL})
	require.NoError(t, err)
	defer session.Close(ctx)

	require.NoError(t, session.Navigate(ctx, "https://old.reddit.com/"))

	el, err := session.Find(ctx, browser.CSS("a.title"))
	require.NoError(t, err)

	text, err := el.Text(ctx)
	require.NoError(t, err)
	require.Equal(t, "hello world", text)

	href, err := el.Attr(ctx, "href")
	require.NoError(t, err)
	require.Equal(t, "/r/golang/", href)

	title, err := el.Attr(ctx, "title")
	require.NoError(t, err)
	require.Equal(t, "", title)

	_, err = session.Find(ctx, browser.CSS("#missing"))
	require.ErrorIs(t, err, browser.ErrElementNotFound)

	// stale handles surface as the element being gone
	require.ErrorIs(t, el.Click(ctx), browser.ErrElementNotFound)
}
