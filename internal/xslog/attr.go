package xslog

import (
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/garrettladley/healthmesh/internal/version"
	"github.com/garrettladley/healthmesh/internal/xhttp"
)

const (
	keyError = "error"
)

func Error(err error) slog.Attr {
	return slog.String(keyError, err.Error())
}

func ErrorAny(err any) slog.Attr {
	return slog.Any(keyError, err)
}

func RequestID(requestID string) slog.Attr {
	const requestIDKey = "request_id"
	return slog.String(requestIDKey, requestID)
}

func Stack() slog.Attr {
	const stackKey = "stack"
	return slog.String(stackKey, string(debug.Stack()))
}

func HTTPStatus(status int) slog.Attr {
	const statusKey = "status"
	return slog.Int(statusKey, status)
}

func Duration(duration time.Duration) slog.Attr {
	const durationKey = "duration"
	return slog.Duration(durationKey, duration)
}

func RequestMethod(r *http.Request) slog.Attr {
	const methodKey = "method"
	return slog.String(methodKey, r.Method)
}

func RequestPath(r *http.Request) slog.Attr {
	const pathKey = "path"
	return slog.String(pathKey, r.URL.Path)
}

func IP(ip string) slog.Attr {
	const ipKey = "ip"
	return slog.String(ipKey, ip)
}

func RequestIP(r *http.Request) slog.Attr {
	return IP(xhttp.GetRequestIP(r))
}

func Version() slog.Attr {
	const versionKey = "version"
	return slog.String(versionKey, version.Get())
}

func Count(count int) slog.Attr {
	const countKey = "count"
	return slog.Int(countKey, count)
}

func Capability(name string) slog.Attr {
	const capabilityKey = "capability"
	return slog.String(capabilityKey, name)
}

func Section(name string) slog.Attr {
	const sectionKey = "section"
	return slog.String(sectionKey, name)
}

func Method(method string) slog.Attr {
	const methodKey = "method"
	return slog.String(methodKey, method)
}

func Path(path string) slog.Attr {
	const pathKey = "path"
	return slog.String(pathKey, path)
}

func Bytes(n int) slog.Attr {
	const bytesKey = "bytes"
	return slog.Int(bytesKey, n)
}

func SyncKind(kind string) slog.Attr {
	const syncKindKey = "sync_kind"
	return slog.String(syncKindKey, kind)
}

func Slug(slug string) slog.Attr {
	const slugKey = "slug"
	return slog.String(slugKey, slug)
}

func MessageID(id string) slog.Attr {
	const messageIDKey = "message_id"
	return slog.String(messageIDKey, id)
}

func ClientVersion(v string) slog.Attr {
	const clientVersionKey = "client_version"
	return slog.String(clientVersionKey, v)
}
