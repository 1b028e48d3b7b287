package xhttp

import (
	"fmt"
	"net/http"
	"time"
)

const (
	XForwardedFor    = "X-Forwarded-For"
	XContentTypeOpts = "X-Content-Type-Options"
	XFrameOpts       = "X-Frame-Options"
	XXSSProtection   = "X-Xss-Protection"
	ReferrerPolicy   = "Referrer-Policy"
	XRateLimitReason = "X-RateLimit-Reason"
)

// XAPIKey carries the shared credential on every gateway and backend call.
const XAPIKey = "x-api-key"

const (
	Accept          = "Accept"
	AcceptEncoding  = "Accept-Encoding"
	CacheControl    = "Cache-Control"
	ContentEncoding = "Content-Encoding"
	ContentLength   = "Content-Length"
	ContentType     = "Content-Type"
	Pragma          = "Pragma"
	UserAgent       = "User-Agent"
	Vary            = "Vary"
)

const ApplicationJSON = "application/json"

func SetHeaderRequestID(w http.ResponseWriter, requestID string) {
	const headerName = "X-Request-ID"
	w.Header().Set(headerName, requestID)
}

func SetHeaderContentTypeApplicationJSON(w http.ResponseWriter) {
	w.Header().Set(ContentType, ApplicationJSON)
}

func SetHeaderRetryAfter(w http.ResponseWriter, retryAfter time.Duration) {
	const retryAfterHeader = "Retry-After"
	retryAfterSeconds := int(retryAfter.Seconds())
	w.Header().Set(retryAfterHeader, fmt.Sprintf("%d", retryAfterSeconds))
}

// SetRequestNoStore disables every cache between the caller and the gateway.
func SetRequestNoStore(req *http.Request) {
	req.Header.Set(CacheControl, "no-store")
	req.Header.Set(Pragma, "no-cache")
}

func GetRequestHeaderAPIKey(r *http.Request) string {
	return r.Header.Get(XAPIKey)
}
