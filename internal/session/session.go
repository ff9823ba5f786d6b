// Package session owns the authenticated gateway session: the cookie jar
// earned at bootstrap plus the single browser fingerprint it is bound to.
// A Session is created once at startup, read-only afterwards, and passed
// explicitly to the query executor.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/Shafnaa/scrapping-tokopedia-review/internal/httputil"
	"github.com/Shafnaa/scrapping-tokopedia-review/internal/stealth"
)

// GatewayURL is the endpoint the plain bootstrap GET warms up against.
const GatewayURL = "https://gql.tokopedia.com/graphql"

// ErrBootstrap means no usable session could be established. Fatal:
// without cookies every review query comes back empty or blocked.
var ErrBootstrap = errors.New("session bootstrap failed")

// Session is an immutable authenticated identity for one harvesting run.
type Session struct {
	Cookie      string // rendered "name=value; name=value" header
	Fingerprint stealth.Fingerprint
}

// Bootstrap establishes a session with a plain GET against baseURL
// (normally GatewayURL), the same warm-up request a browser tab fires.
// The fingerprint picked here stays pinned to the session.
func Bootstrap(ctx context.Context, client *http.Client, baseURL string) (*Session, error) {
	fp := stealth.PickFingerprint()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL, nil)
	if err != nil {
		return nil, err
	}
	for k, v := range httputil.BrowserHeaders() {
		req.Header[k] = v
	}
	for k, v := range fp.Headers {
		req.Header[k] = v
	}
	req.Header.Set("User-Agent", fp.UserAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBootstrap, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: gateway returned status %d", ErrBootstrap, resp.StatusCode)
	}

	cookies := resp.Cookies()
	if len(cookies) == 0 {
		return nil, fmt.Errorf("%w: no cookies issued", ErrBootstrap)
	}

	return &Session{
		Cookie:      renderCookies(cookies),
		Fingerprint: fp,
	}, nil
}

func renderCookies(cookies []*http.Cookie) string {
	pairs := make([]string, 0, len(cookies))
	for _, c := range cookies {
		pairs = append(pairs, c.Name+"="+c.Value)
	}
	return strings.Join(pairs, "; ")
}
