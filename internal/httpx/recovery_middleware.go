package httpx

import (
	"log"
	"net/http"
	"runtime/debug"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var panicsRecovered = promauto.NewCounter(prometheus.CounterOpts{
	Name: "thothexport_http_panics_total",
	Help: "Handler panics turned into 500 responses.",
})

// RecoveryMiddleware turns a handler panic, such as an unmapped code-table
// value, into a 500 and keeps the server alive.
func RecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			panicsRecovered.Inc()
			log.Printf("panic request_id=%s method=%s path=%s error=%v stack=%q",
				RequestIDFrom(r), r.Method, r.URL.Path, rec, debug.Stack())

			if rw, ok := w.(*statusRecorder); ok && rw.wroteHeader {
				return
			}
			JSONErrorWithRequest(r, w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred", nil)
		}()
		next.ServeHTTP(w, r)
	})
}
