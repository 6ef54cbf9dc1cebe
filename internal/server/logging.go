package server

import (
	"log"
	"net/http"
	"strconv"

	"github.com/fatih/color"
)

// statusRecorder remembers the status code and body size written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *statusRecorder) WriteHeader(code int) {
	if r.status == 0 {
		r.status = code
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(b)
	r.bytes += n
	return n, err
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

func statusText(code int, colored bool) string {
	var attrs []color.Attribute
	switch {
	case code >= 500:
		attrs = []color.Attribute{color.FgRed, color.Bold}
	case code >= 400:
		attrs = []color.Attribute{color.FgYellow}
	case code >= 300:
		attrs = []color.Attribute{color.FgCyan}
	default:
		attrs = []color.Attribute{color.FgGreen}
	}
	return newColor(colored, attrs...).Sprint(strconv.Itoa(code))
}

// logRequests writes one access log line per request to the standard logger.
func logRequests(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w}
		h.ServeHTTP(rec, r)
		if rec.status == 0 {
			rec.status = http.StatusOK
		}
		status := statusText(rec.status, colorEnabled(log.Writer()))
		log.Printf("%s \"%s %s %s\" %s %d", r.RemoteAddr, r.Method, r.URL.RequestURI(), r.Proto, status, rec.bytes)
	})
}
