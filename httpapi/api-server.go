package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"simple-kv/kvstore"
	"simple-kv/logger"
)

// ApiServer exposes a KeyValueStore over HTTP. The store is not safe for
// concurrent use, so every handler goes through mu.
type ApiServer struct {
	mu      sync.RWMutex
	KvStore *kvstore.KeyValueStore
	log     logrus.FieldLogger
}

type setRequest struct {
	Value *string `json:"value"`
}

type listResponse struct {
	Len     int               `json:"len"`
	Keys    []string          `json:"keys"`
	Entries map[string]string `json:"entries"`
}

// NewApiServer returns a server for store. A nil log falls back to logger.Log.
func NewApiServer(store *kvstore.KeyValueStore, log logrus.FieldLogger) *ApiServer {
	if log == nil {
		log = logger.Log
	}
	return &ApiServer{KvStore: store, log: log}
}

func stripHTTPPrefix(url string) string {
	return strings.TrimPrefix(url, "http://")
}

// Router returns the client-facing routes. Requests that match no route are
// logged too.
func (as *ApiServer) Router() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/kv", as.handleList).Methods("GET")
	r.HandleFunc("/kv/{key}", as.handleGet).Methods("GET")
	r.HandleFunc("/kv/{key}", as.handleSet).Methods("PUT")
	r.HandleFunc("/kv/{key}", as.handleDelete).Methods("DELETE")
	return as.logRequests(r)
}

// ListenAndServe serves the router on clientListenURL until ctx is cancelled.
func (as *ApiServer) ListenAndServe(ctx context.Context, clientListenURL string) error {
	clientAddr := stripHTTPPrefix(clientListenURL)
	srv := &http.Server{Addr: clientAddr, Handler: as.Router()}

	errc := make(chan error, 1)
	go func() {
		as.log.Infof("Starting client HTTP server on %s", clientAddr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen on %s: %w", clientAddr, err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	as.log.Info("Shutting down client HTTP server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func (as *ApiServer) handleList(w http.ResponseWriter, r *http.Request) {
	as.mu.RLock()
	resp := listResponse{
		Len:     as.KvStore.Len(),
		Keys:    as.KvStore.Keys(),
		Entries: as.KvStore.Dump(),
	}
	as.mu.RUnlock()

	as.writeJSON(w, http.StatusOK, resp)
}

func (as *ApiServer) handleGet(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]

	as.mu.RLock()
	value, ok := as.KvStore.Get(key)
	as.mu.RUnlock()

	if !ok {
		http.NotFound(w, r)
		return
	}
	as.writeJSON(w, http.StatusOK, value)
}

func (as *ApiServer) handleSet(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	var req setRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Value == nil {
		http.Error(w, `missing "value" field`, http.StatusBadRequest)
		return
	}

	as.mu.Lock()
	_, existed := as.KvStore.Get(key)
	as.KvStore.Insert(key, *req.Value)
	as.mu.Unlock()

	if existed {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (as *ApiServer) handleDelete(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]

	as.mu.Lock()
	value, ok := as.KvStore.Remove(key)
	as.mu.Unlock()

	if !ok {
		http.NotFound(w, r)
		return
	}
	as.writeJSON(w, http.StatusOK, value)
}

func (as *ApiServer) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		as.log.WithError(err).Error("failed to encode response")
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

func (as *ApiServer) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		as.log.WithFields(logrus.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
			"status": rec.status,
		}).Debug("handled request")
	})
}
