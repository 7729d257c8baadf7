package middleware

import (
	"net/http"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/gin-gonic/gin"
)

const brotliMinLength = 1024

type brotliWriter struct {
	gin.ResponseWriter
	bw      *brotli.Writer
	pending []byte
	started bool
}

func (w *brotliWriter) Write(data []byte) (int, error) {
	if w.started {
		return w.bw.Write(data)
	}

	w.pending = append(w.pending, data...)
	if len(w.pending) < brotliMinLength {
		return len(data), nil
	}

	w.started = true
	w.ResponseWriter.Header().Set("Content-Encoding", "br")
	w.ResponseWriter.Header().Del("Content-Length")
	if _, err := w.bw.Write(w.pending); err != nil {
		return 0, err
	}
	w.pending = nil
	return len(data), nil
}

func (w *brotliWriter) WriteString(s string) (int, error) {
	return w.Write([]byte(s))
}

// Flush drains pending bytes uncompressed and forwards the flush, keeping
// streaming handlers working if one slips past the skip check.
func (w *brotliWriter) Flush() {
	if !w.started && len(w.pending) > 0 {
		_, _ = w.ResponseWriter.Write(w.pending)
		w.pending = nil
	}
	w.ResponseWriter.Flush()
}

func (w *brotliWriter) close() error {
	if w.started {
		return w.bw.Close()
	}
	if len(w.pending) > 0 {
		_, err := w.ResponseWriter.Write(w.pending)
		return err
	}
	return nil
}

// Brotli compresses responses larger than a kilobyte for clients that
// advertise br support. WebSocket upgrades and SSE subscriptions pass
// through untouched since both break when the response is buffered.
func Brotli(quality int) gin.HandlerFunc {
	if quality < brotli.BestSpeed || quality > brotli.BestCompression {
		quality = brotli.DefaultCompression
	}

	return func(c *gin.Context) {
		if shouldSkipCompression(c) || !acceptsBrotli(c.Request) {
			c.Next()
			return
		}

		c.Header("Vary", "Accept-Encoding")

		w := &brotliWriter{
			ResponseWriter: c.Writer,
			bw:             brotli.NewWriterLevel(c.Writer, quality),
		}
		c.Writer = w

		defer func() {
			if err := w.close(); err != nil {
				_ = c.Error(err)
			}
		}()

		c.Next()
	}
}

func shouldSkipCompression(c *gin.Context) bool {
	if strings.EqualFold(c.GetHeader("Upgrade"), "websocket") {
		return true
	}
	return strings.Contains(c.GetHeader("Accept"), "text/event-stream")
}

func acceptsBrotli(r *http.Request) bool {
	for _, enc := range strings.Split(r.Header.Get("Accept-Encoding"), ",") {
		if strings.TrimSpace(strings.ToLower(enc)) == "br" {
			return true
		}
	}
	return false
}
