package session

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/Shafnaa/scrapping-tokopedia-review/internal/stealth"
)

const storefrontURL = "https://www.tokopedia.com"

// BootstrapHeadless establishes a session by loading the storefront in a
// real browser and lifting its cookies. Fallback for when the plain GET
// bootstrap comes back cookie-less (the gateway occasionally gates cookie
// issuance behind JS challenges).
func BootstrapHeadless(ctx context.Context) (*Session, error) {
	l := launcher.New().Headless(true).Logger(io.Discard)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}
	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("%w: launch browser: %v", ErrBootstrap, err)
	}

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("%w: connect browser: %v", ErrBootstrap, err)
	}
	defer func() {
		browser.Close()
		l.Cleanup()
	}()

	page, err := browser.Page(proto.TargetCreateTarget{URL: storefrontURL})
	if err != nil {
		return nil, fmt.Errorf("%w: open storefront: %v", ErrBootstrap, err)
	}
	defer page.Close()

	timedPage := page.Timeout(30 * time.Second)
	if err := timedPage.WaitStable(time.Second); err == nil {
		_ = timedPage.WaitDOMStable(2*time.Second, 0.1)
	}

	cookies, err := page.Cookies(nil)
	if err != nil {
		return nil, fmt.Errorf("%w: read cookies: %v", ErrBootstrap, err)
	}
	if len(cookies) == 0 {
		return nil, fmt.Errorf("%w: browser session has no cookies", ErrBootstrap)
	}

	pairs := make([]string, 0, len(cookies))
	for _, c := range cookies {
		pairs = append(pairs, c.Name+"="+c.Value)
	}

	// The pinned fingerprint must match the browser that earned the
	// cookies, not a canned one.
	fp := browserFingerprint(browser)

	return &Session{
		Cookie:      strings.Join(pairs, "; "),
		Fingerprint: fp,
	}, nil
}

func browserFingerprint(browser *rod.Browser) stealth.Fingerprint {
	fp := stealth.PickFingerprint()
	if version, err := (proto.BrowserGetVersion{}).Call(browser); err == nil && version.UserAgent != "" {
		fp.UserAgent = strings.ReplaceAll(version.UserAgent, "HeadlessChrome", "Chrome")
	}
	return fp
}
