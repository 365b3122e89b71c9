package middleware

import (
	"bytes"
	"net/http"
	"strings"
	"time"

	"github.com/jellydator/ttlcache/v3"
)

const (
	IdempotencyHeader = "Idempotency-Key"

	// Ventana de replay: un retry del cliente dentro de este plazo recibe
	// la misma respuesta sin re-ejecutar la mutación.
	IdempotencyTTL = 24 * time.Hour
)

// CachedResponse es lo que se repite ante una key ya vista.
type CachedResponse struct {
	Status      int
	ContentType string
	Body        []byte
}

// NewIdempotencyCache crea el cache con TTL fijo; el caller arranca la
// limpieza con cache.Start() (goroutine propia de ttlcache).
func NewIdempotencyCache() *ttlcache.Cache[string, CachedResponse] {
	return ttlcache.New(
		ttlcache.WithTTL[string, CachedResponse](IdempotencyTTL),
		ttlcache.WithDisableTouchOnHit[string, CachedResponse](),
	)
}

// Idempotency repite la respuesta guardada cuando el cliente reenvía la
// misma Idempotency-Key (doble submit de los forms multipart). Los
// endpoints originales no eran seguros de reintentar; el header es
// opt-in, clientes legacy no cambian de comportamiento. Solo respuestas
// 2xx se guardan: un fallo se puede reintentar con la misma key.
func Idempotency(cache *ttlcache.Cache[string, CachedResponse]) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet || r.Method == http.MethodHead {
				next.ServeHTTP(w, r)
				return
			}

			key := strings.TrimSpace(r.Header.Get(IdempotencyHeader))
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}
			// Key con scope por método+path: la misma key en otro endpoint
			// es otra operación.
			key = r.Method + " " + r.URL.Path + " " + key

			if item := cache.Get(key); item != nil {
				cached := item.Value()
				if cached.ContentType != "" {
					w.Header().Set("Content-Type", cached.ContentType)
				}
				w.Header().Set("Idempotency-Replayed", "true")
				w.WriteHeader(cached.Status)
				_, _ = w.Write(cached.Body)
				return
			}

			rec := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			if rec.status >= 200 && rec.status < 300 {
				cache.Set(key, CachedResponse{
					Status:      rec.status,
					ContentType: rec.Header().Get("Content-Type"),
					Body:        rec.buf.Bytes(),
				}, ttlcache.DefaultTTL)
			}
		})
	}
}

// responseRecorder copia lo que sale hacia el cliente para poder
// repetirlo después.
type responseRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
	buf         bytes.Buffer
}

func (r *responseRecorder) WriteHeader(status int) {
	if !r.wroteHeader {
		r.status = status
		r.wroteHeader = true
	}
	r.ResponseWriter.WriteHeader(status)
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	if !r.wroteHeader {
		r.WriteHeader(http.StatusOK)
	}
	r.buf.Write(b)
	return r.ResponseWriter.Write(b)
}
