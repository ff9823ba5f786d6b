package httputil

import "net/http"

// BrowserHeaders returns the headers sent on the plain bootstrap GET.
func BrowserHeaders() http.Header {
	h := http.Header{}
	h.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8")
	h.Set("Accept-Language", "en")
	h.Set("Accept-Encoding", "gzip, deflate, br")
	h.Set("Connection", "keep-alive")
	h.Set("Upgrade-Insecure-Requests", "1")
	h.Set("Sec-Fetch-Dest", "document")
	h.Set("Sec-Fetch-Mode", "navigate")
	h.Set("Sec-Fetch-Site", "none")
	h.Set("Sec-Fetch-User", "?1")
	return h
}

// GatewayHeaders returns the fixed header set the GraphQL gateway expects
// on every query. The browser identity headers (User-Agent, Sec-Ch-Ua
// family) and the session cookie are layered on top per request.
func GatewayHeaders() http.Header {
	h := http.Header{}
	h.Set("Authority", "gql.tokopedia.com")
	h.Set("Accept", "*/*")
	h.Set("Accept-Language", "en")
	h.Set("Content-Type", "application/json")
	h.Set("Origin", "https://www.tokopedia.com")
	h.Set("Referer", "https://www.tokopedia.com")
	h.Set("Sec-Fetch-Dest", "empty")
	h.Set("Sec-Fetch-Mode", "cors")
	h.Set("Sec-Fetch-Site", "same-site")
	h.Set("Tkpd-Userid", "0")
	h.Set("X-Device", "desktop-0.0")
	h.Set("X-Source", "tokopedia-lite")
	h.Set("X-Tkpd-Lite-Service", "zeus")
	h.Set("X-Version", "1fbf287")
	return h
}
