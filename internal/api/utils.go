package api

import (
	"encoding/json"
	"io"
	"net/http"
)

func readAllLimited(w http.ResponseWriter, r *http.Request, max int64) ([]byte, error) {
	rr := http.MaxBytesReader(w, r.Body, max)
	defer rr.Close()
	return io.ReadAll(rr)
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
