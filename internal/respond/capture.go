package respond

import (
	"bytes"
	"context"
	"io"
	"net/http"
)

const maxCapturedBody = 4 << 10

type captureKey struct{}

// bodyRecorder keeps a bounded copy of what the handler reads from the body.
type bodyRecorder struct {
	io.ReadCloser
	buf bytes.Buffer
}

func (b *bodyRecorder) Read(p []byte) (int, error) {
	n, err := b.ReadCloser.Read(p)
	if room := maxCapturedBody - b.buf.Len(); room > 0 && n > 0 {
		b.buf.Write(p[:min(n, room)])
	}
	return n, err
}

// CaptureBody records the request body as it is consumed so failures can be
// logged with it. The body is never read ahead of the handler.
func CaptureBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body == nil || r.Body == http.NoBody {
			next.ServeHTTP(w, r)
			return
		}
		rec := &bodyRecorder{ReadCloser: r.Body}
		r.Body = rec
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), captureKey{}, rec)))
	})
}

func CapturedBody(ctx context.Context) string {
	rec, ok := ctx.Value(captureKey{}).(*bodyRecorder)
	if !ok {
		return ""
	}
	return rec.buf.String()
}
