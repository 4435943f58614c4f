package api

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/segmentio/ksuid"

	"github.com/ssargent/bindb/pkg/codec"
	"github.com/ssargent/bindb/pkg/storage"
)

// Server holds the API server state
type Server struct {
	store   DatabaseStore
	config  ServerConfig
	metrics *Metrics
	logger  *slog.Logger
}

// NewServer creates a new API server. store may be nil, in which case only
// stateless decoding is served.
func NewServer(store DatabaseStore, config ServerConfig, metrics *Metrics, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		store:   store,
		config:  config,
		metrics: metrics,
		logger:  logger,
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	sendSuccess(w, map[string]string{"status": "healthy"})
}

// readBody reads the request body up to the configured limit. It writes the
// error response itself and returns false when the body cannot be used.
func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body := r.Body
	if s.config.MaxInputSize > 0 {
		body = http.MaxBytesReader(w, r.Body, s.config.MaxInputSize)
	}
	raw, err := io.ReadAll(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.metrics.RecordOversized()
			sendError(w, fmt.Sprintf("Body exceeds %d bytes", tooLarge.Limit), http.StatusRequestEntityTooLarge)
			return nil, false
		}
		sendError(w, "Failed to read request body", http.StatusBadRequest)
		return nil, false
	}
	return raw, true
}

// handleDecode decodes the request body and returns the database as JSON
func (s *Server) handleDecode(w http.ResponseWriter, r *http.Request) {
	raw, ok := s.readBody(w, r)
	if !ok {
		return
	}

	db, err := codec.Decode(raw)
	s.metrics.RecordDecode(len(raw), db, err)
	if err != nil {
		s.logger.Debug("decode failed", "bytes", len(raw), "error", err)
		sendError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	sendSuccess(w, db)
}

// handleStore decodes and persists the request body
func (s *Server) handleStore(w http.ResponseWriter, r *http.Request) {
	raw, ok := s.readBody(w, r)
	if !ok {
		return
	}

	id, db, err := s.store.Put(raw)
	if err != nil {
		var de *codec.DecodeError
		if errors.As(err, &de) {
			s.metrics.RecordDecode(len(raw), nil, err)
			sendError(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		s.logger.Error("failed to store database", "error", err)
		sendError(w, "Failed to store database", http.StatusInternalServerError)
		return
	}
	s.metrics.RecordDecode(len(raw), db, nil)
	s.refreshStoreGauge()

	s.logger.Info("stored database", "id", id.String(), "records", db.Len())
	sendJSON(w, http.StatusCreated, StoredResponse{
		ID:      id.String(),
		Records: db.Len(),
		Bytes:   len(raw),
	})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	ids, err := s.store.List()
	if err != nil {
		s.logger.Error("failed to list databases", "error", err)
		sendError(w, "Failed to list databases", http.StatusInternalServerError)
		return
	}

	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	sendSuccess(w, out)
}

// loadDatabase resolves the {id} URL parameter. It writes the error response
// itself and returns nil when the database cannot be loaded.
func (s *Server) loadDatabase(w http.ResponseWriter, r *http.Request) *codec.Database {
	id, err := ksuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		sendError(w, "Invalid database id", http.StatusBadRequest)
		return nil
	}

	db, err := s.store.Load(id)
	if errors.Is(err, storage.ErrNotFound) {
		sendError(w, "Database not found", http.StatusNotFound)
		return nil
	}
	if err != nil {
		s.logger.Error("failed to load database", "id", id.String(), "error", err)
		sendError(w, "Failed to load database", http.StatusInternalServerError)
		return nil
	}
	return db
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	if db := s.loadDatabase(w, r); db != nil {
		sendSuccess(w, db)
	}
}

func (s *Server) handleGetValue(w http.ResponseWriter, r *http.Request) {
	db := s.loadDatabase(w, r)
	if db == nil {
		return
	}

	key := chi.URLParam(r, "key")
	v, ok := db.Get(key)
	if !ok {
		sendError(w, "Key not found", http.StatusNotFound)
		return
	}
	sendSuccess(w, ValueResponse{Key: key, Type: v.Type().String(), Value: v})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := ksuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		sendError(w, "Invalid database id", http.StatusBadRequest)
		return
	}

	err = s.store.Delete(id)
	if errors.Is(err, storage.ErrNotFound) {
		sendError(w, "Database not found", http.StatusNotFound)
		return
	}
	if err != nil {
		s.logger.Error("failed to delete database", "id", id.String(), "error", err)
		sendError(w, "Failed to delete database", http.StatusInternalServerError)
		return
	}
	s.refreshStoreGauge()

	sendSuccess(w, map[string]string{"deleted": id.String()})
}

func (s *Server) refreshStoreGauge() {
	ids, err := s.store.List()
	if err != nil {
		s.logger.Warn("failed to count stored databases", "error", err)
		return
	}
	s.metrics.SetStoredDatabases(len(ids))
}
