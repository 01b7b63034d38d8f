package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/coolbeans/lawchunk/internal/chunk"
	"github.com/coolbeans/lawchunk/internal/lines"
	"github.com/coolbeans/lawchunk/internal/pipeline"
	"github.com/coolbeans/lawchunk/internal/search"
	"github.com/coolbeans/lawchunk/internal/store"
	"github.com/go-chi/chi/v5"
)

// handleChunk ingests one uploaded document, runs the chunking pipeline
// synchronously, and persists the corpus.
func (s *Server) handleChunk(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !lines.IsSupportedExtension(filename) {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return
	}

	src, err := lines.ForFile(file, filename, s.cfg.PDFFallbackPdftotext)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	cfg := chunk.Config{DocTitle: s.cfg.DocTitle, DocChapter: s.cfg.DocChapter}
	result, err := pipeline.Run(src, cfg, s.log)
	if err != nil {
		var dup *chunk.DuplicateIDError
		switch {
		case errors.As(err, &dup):
			jsonError(w, err.Error(), http.StatusConflict)
		case errors.Is(err, pipeline.ErrNoInput):
			jsonError(w, err.Error(), http.StatusUnprocessableEntity)
		default:
			jsonError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	if err := store.New(s.cfg.ChunksDir).Save(result.Chunks, result.CrossRefs, result.Index); err != nil {
		jsonError(w, "persist corpus: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]any{
		"filename": filename,
		"stats":    result.Stats,
	})
}

func (s *Server) handleListChunks(w http.ResponseWriter, r *http.Request) {
	corpus, ok := s.loadCorpus(w)
	if !ok {
		return
	}

	typeFilter := r.URL.Query().Get("type")

	type entry struct {
		ChunkID string `json:"chunk_id"`
		Title   string `json:"title"`
		Type    string `json:"chunk_type"`
	}
	var out []entry
	for _, c := range corpus.Chunks {
		if typeFilter != "" && string(c.Type) != typeFilter {
			continue
		}
		out = append(out, entry{ChunkID: c.ChunkID, Title: c.Title, Type: string(c.Type)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ChunkID < out[j].ChunkID })

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"chunks": out, "total": len(out)})
}

func (s *Server) handleGetChunk(w http.ResponseWriter, r *http.Request) {
	corpus, ok := s.loadCorpus(w)
	if !ok {
		return
	}

	chunkID := chi.URLParam(r, "chunkID")
	c, found := corpus.Chunks[chunkID]
	if !found {
		jsonError(w, "chunk not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(c)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		jsonError(w, "q query parameter is required", http.StatusBadRequest)
		return
	}
	topK := 5
	if v := r.URL.Query().Get("top"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			topK = n
		}
	}

	corpus, ok := s.loadCorpus(w)
	if !ok {
		return
	}

	results := search.New(corpus).Search(query, topK)
	if results == nil {
		results = []search.Result{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"results": results})
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Question string `json:"question"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Question) == "" {
		jsonError(w, "question is required", http.StatusBadRequest)
		return
	}

	corpus, ok := s.loadCorpus(w)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(search.New(corpus).Ask(req.Question))
}

func (s *Server) handleRelated(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	if len(code) != 4 {
		jsonError(w, "section code must be 4 digits", http.StatusBadRequest)
		return
	}

	corpus, ok := s.loadCorpus(w)
	if !ok {
		return
	}

	related := search.New(corpus).Related(code)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"section": code, "related": related})
}

// loadCorpus reads the persisted record set. The corpus is small and flat, so
// reloading per request keeps handlers consistent with what is on disk.
func (s *Server) loadCorpus(w http.ResponseWriter) (*store.Corpus, bool) {
	corpus, err := store.New(s.cfg.ChunksDir).Load()
	if err != nil {
		jsonError(w, "load corpus: "+err.Error(), http.StatusInternalServerError)
		return nil, false
	}
	return corpus, true
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
