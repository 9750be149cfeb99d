package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/DrMaserLie/temporium/pkg/catalog"
	"github.com/DrMaserLie/temporium/pkg/snapshot"
	"github.com/DrMaserLie/temporium/pkg/store"
)

// Server holds the API server state
type Server struct {
	store   CatalogStore
	writer  *snapshot.Writer
	config  ServerConfig
	metrics *Metrics
}

// NewServer creates a new API server
func NewServer(catalogStore CatalogStore, config ServerConfig, metrics *Metrics) *Server {
	return &Server{
		store:   catalogStore,
		writer:  snapshot.NewWriter(),
		config:  config,
		metrics: metrics,
	}
}

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	sendSuccess(w, map[string]string{"status": "healthy"})
}

// handleLogin authenticates credentials and issues a session token.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, err := s.store.Authenticate(req.Username, req.Password)
	if err != nil {
		s.metrics.RecordAuthRequest(false)
		sendError(w, err.Error(), http.StatusUnauthorized)
		return
	}
	token, err := s.store.NewSession(user.ID)
	if err != nil {
		sendError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	s.metrics.RecordAuthRequest(true)
	sendSuccess(w, LoginResponse{
		Token:    token,
		UserID:   user.ID,
		Username: user.Username,
		IsAdmin:  user.IsAdmin,
	})
}

// ownerParam parses the {owner} URL parameter.
func ownerParam(r *http.Request) (int32, error) {
	owner, err := strconv.ParseInt(chi.URLParam(r, "owner"), 10, 32)
	if err != nil {
		return 0, errors.New("invalid owner id")
	}
	return int32(owner), nil
}

// idParam parses the {id} URL parameter.
func idParam(r *http.Request) (int32, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		return 0, errors.New("invalid game id")
	}
	return int32(id), nil
}

// handleAddGame inserts a game for the owner.
func (s *Server) handleAddGame(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerParam(r)
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	var game catalog.Game
	if err := json.NewDecoder(r.Body).Decode(&game); err != nil {
		sendError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	game.OwnerID = owner

	if err := s.store.AddGame(&game); err != nil {
		s.metrics.RecordCatalogOperation("add", false)
		status := http.StatusInternalServerError
		if errors.Is(err, store.ErrDuplicateName) {
			status = http.StatusConflict
		}
		sendError(w, err.Error(), status)
		return
	}

	s.metrics.RecordCatalogOperation("add", true)
	sendSuccess(w, game)
}

// handleListGames returns the owner's catalog, ordered by name.
func (s *Server) handleListGames(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerParam(r)
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	games, err := s.store.ListGames(owner)
	if err != nil {
		s.metrics.RecordCatalogOperation("list", false)
		sendError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	s.metrics.RecordCatalogOperation("list", true)
	sendSuccess(w, games)
}

// handleSearchGames returns the owner's games matching the filter in
// the request body.
func (s *Server) handleSearchGames(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerParam(r)
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	var filter catalog.Filter
	if err := json.NewDecoder(r.Body).Decode(&filter); err != nil {
		sendError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	games, err := s.store.ListFiltered(owner, &filter)
	if err != nil {
		s.metrics.RecordCatalogOperation("search", false)
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.metrics.RecordCatalogOperation("search", true)
	sendSuccess(w, games)
}

// handleGetGame fetches one game.
func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerParam(r)
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}
	id, err := idParam(r)
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	game, err := s.store.GetGame(owner, id)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, store.ErrGameNotFound) {
			status = http.StatusNotFound
		}
		sendError(w, err.Error(), status)
		return
	}
	sendSuccess(w, game)
}

// handleUpdateGame replaces one game.
func (s *Server) handleUpdateGame(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerParam(r)
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}
	id, err := idParam(r)
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	var game catalog.Game
	if err := json.NewDecoder(r.Body).Decode(&game); err != nil {
		sendError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	game.OwnerID = owner
	game.ID = id

	if err := s.store.UpdateGame(&game); err != nil {
		s.metrics.RecordCatalogOperation("update", false)
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, store.ErrGameNotFound):
			status = http.StatusNotFound
		case errors.Is(err, store.ErrDuplicateName):
			status = http.StatusConflict
		}
		sendError(w, err.Error(), status)
		return
	}

	s.metrics.RecordCatalogOperation("update", true)
	sendSuccess(w, game)
}

// handleDeleteGame removes one game.
func (s *Server) handleDeleteGame(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerParam(r)
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}
	id, err := idParam(r)
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := s.store.DeleteGame(owner, id); err != nil {
		s.metrics.RecordCatalogOperation("delete", false)
		status := http.StatusInternalServerError
		if errors.Is(err, store.ErrGameNotFound) {
			status = http.StatusNotFound
		}
		sendError(w, err.Error(), status)
		return
	}

	s.metrics.RecordCatalogOperation("delete", true)
	sendSuccess(w, map[string]int32{"deleted": id})
}

// handleStats summarizes the owner's catalog.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerParam(r)
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	stats, err := s.store.Stats(owner)
	if err != nil {
		sendError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	sendSuccess(w, stats)
}

// handleTags lists the owner's distinct tags.
func (s *Server) handleTags(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerParam(r)
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	tags, err := s.store.ListTags(owner)
	if err != nil {
		sendError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	sendSuccess(w, tags)
}

// handleExport writes a snapshot of the owner's catalog to a
// server-side path.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerParam(r)
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	var req SnapshotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Path == "" {
		sendError(w, "Snapshot path is required", http.StatusBadRequest)
		return
	}

	if req.Filter != nil {
		err = s.writer.ExportFiltered(req.Path, owner, req.Filter, s.store)
	} else {
		err = s.writer.Export(req.Path, owner, s.store)
	}
	if err != nil {
		s.metrics.RecordSnapshotOperation("export", statusError)
		sendError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	s.metrics.RecordSnapshotOperation("export", statusSuccess)
	sendSuccess(w, map[string]string{"path": req.Path})
}

// handleImport verifies a server-side snapshot and merges it into the
// owner's catalog.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerParam(r)
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	var req SnapshotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Path == "" {
		sendError(w, "Snapshot path is required", http.StatusBadRequest)
		return
	}

	result, err := snapshot.Import(req.Path, owner, s.store)
	if err != nil {
		s.metrics.RecordSnapshotOperation("import", statusError)
		sendError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	s.metrics.RecordSnapshotOperation("import", statusSuccess)
	sendSuccess(w, ImportResponse{Imported: result.Imported, Failed: result.Failed})
}

// handleVerify classifies a server-side snapshot's integrity.
func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		sendError(w, "Query parameter 'path' is required", http.StatusBadRequest)
		return
	}

	result := snapshot.Verify(path)
	s.metrics.RecordSnapshotOperation("verify", result.String())
	sendSuccess(w, VerifyResponse{
		Outcome: result.String(),
		Message: result.Text(),
		OK:      result == snapshot.OK,
	})
}

// handlePreview decodes a server-side snapshot for inspection without
// requiring full verification.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		sendError(w, "Query parameter 'path' is required", http.StatusBadRequest)
		return
	}

	games, err := snapshot.Read(path)
	if err != nil {
		s.metrics.RecordSnapshotOperation("preview", statusError)
		sendError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	s.metrics.RecordSnapshotOperation("preview", statusSuccess)
	sendSuccess(w, games)
}
