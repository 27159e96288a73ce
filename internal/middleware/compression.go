package middleware

import (
	"net/http"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/gin-gonic/gin"
)

var compressibleTypes = []string{"text/html", "text/css"}

// Compression brotli-encodes HTML and CSS responses for clients that accept br.
func Compression() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodHead || !acceptsBrotli(c.GetHeader("Accept-Encoding")) {
			c.Next()
			return
		}

		w := &brotliWriter{ResponseWriter: c.Writer}
		c.Writer = w
		defer w.Close()

		c.Next()
	}
}

func acceptsBrotli(header string) bool {
	for _, part := range strings.Split(header, ",") {
		enc, params, _ := strings.Cut(strings.TrimSpace(part), ";")
		if !strings.EqualFold(strings.TrimSpace(enc), "br") {
			continue
		}
		return strings.ReplaceAll(strings.TrimSpace(params), " ", "") != "q=0"
	}
	return false
}

// brotliWriter decides on the first body write, once Content-Type is
// known, whether the response is worth compressing. gin holds the headers
// back until then.
type brotliWriter struct {
	gin.ResponseWriter
	br      *brotli.Writer
	decided bool
}

func (w *brotliWriter) decide(status int) {
	if w.decided {
		return
	}
	w.decided = true

	h := w.Header()
	if status == http.StatusNoContent || status == http.StatusNotModified || h.Get("Content-Encoding") != "" {
		return
	}

	contentType := h.Get("Content-Type")
	for _, t := range compressibleTypes {
		if strings.HasPrefix(contentType, t) {
			h.Set("Content-Encoding", "br")
			h.Add("Vary", "Accept-Encoding")
			h.Del("Content-Length")
			w.br = brotli.NewWriterLevel(w.ResponseWriter, brotli.DefaultCompression)
			return
		}
	}
}

func (w *brotliWriter) Write(b []byte) (int, error) {
	w.decide(w.ResponseWriter.Status())
	if w.br != nil {
		return w.br.Write(b)
	}
	return w.ResponseWriter.Write(b)
}

func (w *brotliWriter) WriteString(s string) (int, error) {
	return w.Write([]byte(s))
}

func (w *brotliWriter) Close() {
	if w.br != nil {
		_ = w.br.Close()
	}
}
