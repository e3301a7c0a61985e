package middleware

import (
	"compress/gzip"
	"net/http"
	"strings"
	"sync"
)

// compressibleTypes are the bare media types worth gzipping. Anything under
// text/ compresses too; binary formats are already packed.
var compressibleTypes = map[string]bool{
	"application/javascript": true,
	"application/json":       true,
	"application/xml":        true,
	"image/svg+xml":          true,
}

// CompressSelective gzips responses whose content type is compressible and
// whose body reaches minSize bytes. Smaller payloads go out as-is since the
// gzip header overhead can exceed the savings.
func CompressSelective(level int, minSize int) func(http.Handler) http.Handler {
	pool := &sync.Pool{
		New: func() any {
			gz, err := gzip.NewWriterLevel(nil, level)
			if err != nil {
				gz = gzip.NewWriter(nil)
			}
			return gz
		},
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
				next.ServeHTTP(w, r)
				return
			}

			bw := &bufferedWriter{ResponseWriter: w}
			next.ServeHTTP(bw, r)
			bw.flush(pool, minSize)
		})
	}
}

// bufferedWriter holds the response back until the handler finishes, so the
// compress-or-not decision can see the final size and content type.
type bufferedWriter struct {
	http.ResponseWriter
	body   []byte
	status int
}

func (bw *bufferedWriter) WriteHeader(status int) {
	bw.status = status
}

func (bw *bufferedWriter) Write(b []byte) (int, error) {
	bw.body = append(bw.body, b...)
	return len(b), nil
}

func (bw *bufferedWriter) flush(pool *sync.Pool, minSize int) {
	compress := len(bw.body) >= minSize && isCompressible(bw.Header().Get("Content-Type"))
	if compress {
		bw.Header().Set("Content-Encoding", "gzip")
		bw.Header().Set("Vary", "Accept-Encoding")
		bw.Header().Del("Content-Length")
	}

	if bw.status != 0 {
		bw.ResponseWriter.WriteHeader(bw.status)
	}
	if len(bw.body) == 0 {
		return
	}

	if !compress {
		_, _ = bw.ResponseWriter.Write(bw.body)
		return
	}

	gz := pool.Get().(*gzip.Writer)
	gz.Reset(bw.ResponseWriter)
	_, _ = gz.Write(bw.body)
	_ = gz.Close()
	pool.Put(gz)
}

func isCompressible(contentType string) bool {
	mediaType, _, _ := strings.Cut(contentType, ";")
	mediaType = strings.ToLower(strings.TrimSpace(mediaType))
	if mediaType == "" {
		return false
	}
	return compressibleTypes[mediaType] || strings.HasPrefix(mediaType, "text/")
}
