//go:build integration_test || all_tests

package test

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// browser keeps cookies between requests and does not follow redirects.
type browser struct {
	t      *testing.T
	client *http.Client
}

func newBrowser(t *testing.T) *browser {
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &browser{
		t: t,
		client: &http.Client{
			Jar:     jar,
			Timeout: 10 * time.Second,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

func (b *browser) do(req *http.Request) (*http.Response, string) {
	b.t.Helper()
	req.Header.Set("User-Agent", "test-agent")
	resp, err := b.client.Do(req)
	require.NoError(b.t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(b.t, err)
	return resp, string(body)
}

func (b *browser) get(path string) (*http.Response, string) {
	b.t.Helper()
	req, err := http.NewRequest(http.MethodGet, serverEndpoint+path, nil)
	require.NoError(b.t, err)
	return b.do(req)
}

func (b *browser) post(path string, form url.Values) (*http.Response, string) {
	b.t.Helper()
	req, err := http.NewRequest(http.MethodPost, serverEndpoint+path, strings.NewReader(form.Encode()))
	require.NoError(b.t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return b.do(req)
}

// follow asserts a 303 to location and loads it, returning the page body.
func (b *browser) follow(resp *http.Response, location string) string {
	b.t.Helper()
	require.Equal(b.t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(b.t, location, resp.Header.Get("Location"))
	_, body := b.get(location)
	return body
}

func (b *browser) register(username, password string) {
	b.t.Helper()
	resp, _ := b.post("/register", url.Values{
		"username":         {username},
		"email":            {username + "@example.com"},
		"password":         {password},
		"confirm_password": {password},
	})
	require.Equal(b.t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(b.t, "/", resp.Header.Get("Location"))
}

func (b *browser) login(username, password string) {
	b.t.Helper()
	resp, _ := b.post("/login", url.Values{
		"username": {username},
		"password": {password},
	})
	require.Equal(b.t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(b.t, "/", resp.Header.Get("Location"))
}
