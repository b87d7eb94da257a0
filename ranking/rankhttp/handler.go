// Package rankhttp serves a leaderboard over HTTP and records finished games against one.
package rankhttp

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/plus3/blockstack/ranking"
)

// maxBodyBytes bounds a posted entry.
const maxBodyBytes = 4 << 10

// Leaderboard is the storage behind a Handler. *ranking.Store implements it.
type Leaderboard interface {
	Entries() []ranking.Entry
	Add(e ranking.Entry) (string, error)
}

type Handler struct {
	board Leaderboard
}

func NewHandler(board Leaderboard) *Handler {
	return &Handler{board: board}
}

// RecordResponse is the body of a successful POST /scores.
type RecordResponse struct {
	ID   string `json:"id"`
	Rank int    `json:"rank"`
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/healthz", h.health)
	r.Route("/scores", func(r chi.Router) {
		r.Get("/", h.listScores)
		r.Post("/", h.recordScore)
	})
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listScores(w http.ResponseWriter, r *http.Request) {
	entries := h.board.Entries()
	if entries == nil {
		entries = []ranking.Entry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *Handler) recordScore(w http.ResponseWriter, r *http.Request) {
	var entry ranking.Entry
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&entry); err != nil {
		http.Error(w, "invalid entry", http.StatusBadRequest)
		return
	}

	entry.Name = strings.TrimSpace(entry.Name)
	if entry.Score < 0 || entry.Lines < 0 || entry.Level < 1 {
		http.Error(w, "invalid entry", http.StatusBadRequest)
		return
	}
	// the server clock stamps every entry
	entry.Time = ""

	id, err := h.board.Add(entry)
	if err != nil {
		log.Printf("record score name=%q score=%d err=%v", entry.Name, entry.Score, err)
		http.Error(w, "failed to save", http.StatusInternalServerError)
		return
	}
	log.Printf("record score name=%q score=%d id=%s", entry.Name, entry.Score, id)

	writeJSON(w, http.StatusCreated, RecordResponse{
		ID:   id,
		Rank: ranking.Rank(h.board.Entries(), id),
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
