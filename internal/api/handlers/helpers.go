package handlers

import (
	"encoding/json"
	"log"
	"net/http"
)

// Statuses depend on the query time and the in-memory run, so nothing is cacheable.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: req_id=%s method=%s path=%s err=%v",
			w.Header().Get("X-Request-ID"), r.Method, r.URL.Path, err)
	}
}

// writeError echoes the request ID so a client report can be matched to the log line.
func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	res := map[string]string{"error": msg}
	if id := w.Header().Get("X-Request-ID"); id != "" {
		res["request_id"] = id
	}
	writeJSON(w, r, status, res)
}
