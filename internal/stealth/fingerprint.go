package stealth

import (
	"math/rand/v2"
	"net/http"
)

// Fingerprint is one coherent browser identity: a User-Agent with the
// matching client-hint headers. A harvesting session picks exactly one
// fingerprint at bootstrap and keeps it for its whole lifetime. The
// gateway ties its cookies to the identity that earned them, so rotating
// mid-session invalidates the session.
type Fingerprint struct {
	UserAgent string
	Headers   http.Header
}

// PickFingerprint returns a random desktop Chrome identity.
func PickFingerprint() Fingerprint {
	fps := fingerprints()
	return fps[rand.IntN(len(fps))]
}

func fingerprints() []Fingerprint {
	return []Fingerprint{
		{
			UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/133.0.0.0 Safari/537.36",
			Headers:   chromeHints("133", "Windows"),
		},
		{
			UserAgent: "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/133.0.0.0 Safari/537.36",
			Headers:   chromeHints("133", "macOS"),
		},
		{
			UserAgent: "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/133.0.0.0 Safari/537.36",
			Headers:   chromeHints("133", "Linux"),
		},
	}
}

// Only Chromium identities: the gateway's bot checks expect the
// Sec-Ch-Ua family, which Firefox does not send.
func chromeHints(version, platform string) http.Header {
	h := http.Header{}
	h.Set("Sec-Ch-Ua", `"Chromium";v="`+version+`", "Not(A:Brand";v="99", "Google Chrome";v="`+version+`"`)
	h.Set("Sec-Ch-Ua-Mobile", "?0")
	h.Set("Sec-Ch-Ua-Platform", `"`+platform+`"`)
	return h
}
