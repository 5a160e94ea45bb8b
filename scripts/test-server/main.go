// Command test-server runs a local HTTP server with endpoints for
// exercising creq by hand: JSON and plain text documents, an echo
// endpoint, a form sink, and a configurable slow responder.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"
)

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	flag.Parse()

	http.HandleFunc("/json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json;charset=utf-8")
		fmt.Fprint(w, `{"id": 1, "name": "Test User", "roles": ["admin", "user"]}`)
	})

	http.HandleFunc("/text", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain;charset=utf-8")
		fmt.Fprint(w, "Hello from the test server")
	})

	http.HandleFunc("/echo", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)

		headers := make(map[string]string, len(r.Header))
		for name := range r.Header {
			headers[name] = r.Header.Get(name)
		}

		w.Header().Set("Content-Type", "application/json;charset=utf-8")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"method":  r.Method,
			"path":    r.URL.Path,
			"headers": headers,
			"body":    string(body),
		})
	})

	http.HandleFunc("/form", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		fields := make(map[string]string, len(r.PostForm))
		for name := range r.PostForm {
			fields[name] = r.PostForm.Get(name)
		}

		w.Header().Set("Content-Type", "application/json;charset=utf-8")
		json.NewEncoder(w).Encode(fields)
	})

	http.HandleFunc("/slow", func(w http.ResponseWriter, r *http.Request) {
		ms := 2000
		if v := r.URL.Query().Get("ms"); v != "" {
			if parsed, err := strconv.Atoi(v); err == nil {
				ms = parsed
			}
		}
		time.Sleep(time.Duration(ms) * time.Millisecond)

		w.Header().Set("Content-Type", "text/plain;charset=utf-8")
		fmt.Fprintf(w, "slept %dms", ms)
	})

	http.HandleFunc("/status/", func(w http.ResponseWriter, r *http.Request) {
		code, err := strconv.Atoi(strings.TrimPrefix(r.URL.Path, "/status/"))
		if err != nil || code < 100 || code > 599 {
			http.Error(w, "bad status code", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "text/plain;charset=utf-8")
		w.WriteHeader(code)
		fmt.Fprint(w, http.StatusText(code))
	})

	http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "healthy")
	})

	// The write timeout leaves room for the slow responder
	server := &http.Server{
		Addr:              *addr,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
	}

	log.Printf("Starting test server on %s", *addr)
	log.Printf("Endpoints: /json /text /echo /form /slow?ms=N /status/CODE /health")

	if err := server.ListenAndServe(); err != nil {
		log.Fatal(err)
	}
}
