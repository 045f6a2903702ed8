// Package transport exposes the diary over HTTP.
package transport

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"

	"github.com/ymori/labnote/internal/domain/entry"
	"github.com/ymori/labnote/internal/imagestore"
	"github.com/ymori/labnote/internal/render"
)

const maxUploadBytes = 32 << 20

// Handler wires HTTP routes to the diary services.
type Handler struct {
	entries     *entry.Service
	images      *imagestore.Store
	render      *render.Renderer
	archivePath string
	logger      *slog.Logger
}

// NewRouter creates the chi router for all diary endpoints.
func NewRouter(entries *entry.Service, images *imagestore.Store, renderer *render.Renderer, archivePath string, logger *slog.Logger) *chi.Mux {
	if logger == nil {
		logger = slog.Default()
	}
	h := &Handler{
		entries:     entries,
		images:      images,
		render:      renderer,
		archivePath: archivePath,
		logger:      logger,
	}

	r := chi.NewRouter()
	r.Get("/health", h.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/entries", h.handleList)
		r.Post("/entries", h.handleCommit)
		r.Get("/entries/{id}", h.handleGet)
		r.Put("/entries/{id}", h.handleAmend)
		r.Delete("/entries/{id}", h.handleRemove)
		r.Get("/entries/{id}/export", h.handleExport)
		r.Post("/drafts", h.handleSaveDraft)
		r.Post("/images", h.handleUploadImage)
		r.Get("/images", h.handleImageSelection)
	})
	r.Get("/images/{filename}", h.handleServeImage)
	r.Get("/archive", h.handleArchive)
	return r
}

type entryRequest struct {
	Type    string       `json:"type"`
	Data    entry.Fields `json:"data"`
	DraftID string       `json:"draft_id,omitempty"`
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) handleList(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.entries.List())
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	e, ok := h.entries.Find(chi.URLParam(r, "id"))
	if !ok {
		http.Error(w, "entry not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (h *Handler) handleCommit(w http.ResponseWriter, r *http.Request) {
	var req entryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	t, err := entry.ParseType(req.Type)
	if err != nil {
		http.Error(w, "invalid entry type", http.StatusBadRequest)
		return
	}

	e, err := h.entries.Commit(r.Context(), t, req.Data, req.DraftID)
	if err != nil {
		h.logger.Error("commit failed", "error", err)
		http.Error(w, "failed to save entry", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

func (h *Handler) handleAmend(w http.ResponseWriter, r *http.Request) {
	var req entryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	t, err := entry.ParseType(req.Type)
	if err != nil {
		http.Error(w, "invalid entry type", http.StatusBadRequest)
		return
	}

	found, err := h.entries.Amend(r.Context(), chi.URLParam(r, "id"), t, req.Data)
	if err != nil {
		h.logger.Error("amend failed", "error", err)
		http.Error(w, "failed to update entry", http.StatusInternalServerError)
		return
	}
	if !found {
		http.Error(w, "entry not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"updated": true})
}

func (h *Handler) handleSaveDraft(w http.ResponseWriter, r *http.Request) {
	var req entryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	t, err := entry.ParseType(req.Type)
	if err != nil {
		http.Error(w, "invalid entry type", http.StatusBadRequest)
		return
	}

	id, err := h.entries.SaveDraft(r.Context(), t, req.Data, req.DraftID)
	if err != nil {
		h.logger.Error("draft save failed", "error", err)
		http.Error(w, "failed to save draft", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"draft_id": id})
}

func (h *Handler) handleRemove(w http.ResponseWriter, r *http.Request) {
	removed, err := h.entries.Remove(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.logger.Error("remove failed", "error", err)
		http.Error(w, "failed to delete entry", http.StatusInternalServerError)
		return
	}
	if !removed {
		http.Error(w, "entry not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	e, ok := h.entries.Find(chi.URLParam(r, "id"))
	if !ok {
		http.Error(w, "entry not found", http.StatusNotFound)
		return
	}

	formatParam := r.URL.Query().Get("format")
	if formatParam == "" {
		formatParam = string(render.FormatPDF)
	}
	format, err := render.ParseFormat(formatParam)
	if err != nil {
		if errors.Is(err, render.ErrUnknownFormat) {
			http.Error(w, "unknown export format", http.StatusBadRequest)
			return
		}
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}

	tempPath := filepath.Join(os.TempDir(), e.ID+"."+string(format))
	if err := h.render.Render(&e, tempPath, format); err != nil {
		h.logger.Error("export failed", "id", e.ID, "error", err)
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}
	defer os.Remove(tempPath)

	contentType := "application/pdf"
	if format == render.FormatPNG {
		contentType = "image/png"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+e.ExportFilename(string(format))+`"`)
	http.ServeFile(w, r, tempPath)
}

func (h *Handler) handleUploadImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "invalid upload", http.StatusBadRequest)
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		http.Error(w, "missing image file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "failed to read image", http.StatusBadRequest)
		return
	}
	name, err := h.images.Store(data, header.Filename)
	if err != nil {
		http.Error(w, "failed to store image", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"filename": name})
}

func (h *Handler) handleImageSelection(w http.ResponseWriter, _ *http.Request) {
	refs := h.entries.ImagesForSelection()
	if refs == nil {
		refs = []entry.ImageRef{}
	}
	writeJSON(w, http.StatusOK, refs)
}

func (h *Handler) handleServeImage(w http.ResponseWriter, r *http.Request) {
	path, ok := h.images.Resolve(chi.URLParam(r, "filename"))
	if !ok {
		http.Error(w, "image not found", http.StatusNotFound)
		return
	}
	f, err := os.Open(path)
	if err != nil {
		http.Error(w, "image not found", http.StatusNotFound)
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", "image/jpeg")
	_, _ = io.Copy(w, f)
}

func (h *Handler) handleArchive(w http.ResponseWriter, r *http.Request) {
	if _, err := os.Stat(h.archivePath); err != nil {
		http.Error(w, "archive not generated yet", http.StatusNotFound)
		return
	}
	http.ServeFile(w, r, h.archivePath)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
