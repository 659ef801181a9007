// Package server provides the HTTP handlers for the local dictionary
// API: tokenize, lookup, search, card sync and the health probe.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/honyakun/localdict/internal/cards"
	"github.com/honyakun/localdict/internal/config"
	"github.com/honyakun/localdict/internal/dictionary"
	"github.com/honyakun/localdict/internal/tokenizer"
)

const defaultSearchLimit = 10

// Handler serves the dictionary API.
type Handler struct {
	cfg   *config.Config
	dict  *dictionary.Repository
	cards *cards.Log

	// now is swapped in tests.
	now func() time.Time
}

// New creates a Handler.
func New(cfg *config.Config, dict *dictionary.Repository, cardLog *cards.Log) *Handler {
	return &Handler{
		cfg:   cfg,
		dict:  dict,
		cards: cardLog,
		now:   time.Now,
	}
}

// Routes returns the route table. Every endpoint except the health
// probe sits behind the API key gate.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", h.health)
	mux.Handle("POST /tokenize", h.requireAPIKey(http.HandlerFunc(h.tokenize)))
	mux.Handle("GET /lookup", h.requireAPIKey(http.HandlerFunc(h.lookup)))
	mux.Handle("GET /search", h.requireAPIKey(http.HandlerFunc(h.search)))
	mux.Handle("POST /sync_cards", h.requireAPIKey(http.HandlerFunc(h.syncCards)))
	mux.Handle("GET /cards", h.requireAPIKey(http.HandlerFunc(h.listCards)))
	return mux
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"time":   float64(h.now().UnixNano()) / float64(time.Second),
	})
}

type tokenizeRequest struct {
	Text string `json:"text"`
}

type tokenizeResponse struct {
	Tokens []tokenizer.Token `json:"tokens"`
	Engine string            `json:"engine"`
}

func (h *Handler) tokenize(w http.ResponseWriter, r *http.Request) {
	var req tokenizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	text := strings.TrimSpace(req.Text)
	if text == "" {
		writeError(w, http.StatusBadRequest, "text required")
		return
	}

	writeJSON(w, http.StatusOK, tokenizeResponse{
		Tokens: tokenizer.Tokenize(text),
		Engine: tokenizer.Engine,
	})
}

func (h *Handler) lookup(w http.ResponseWriter, r *http.Request) {
	word := r.URL.Query().Get("word")
	if word == "" {
		writeError(w, http.StatusBadRequest, "word required")
		return
	}

	doc, err := h.dict.Lookup(r.Context(), word)
	if errors.Is(err, dictionary.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	if err != nil {
		writeInternalError(w, r, fmt.Errorf("lookup %q: %w", word, err))
		return
	}

	writeJSON(w, http.StatusOK, doc)
}

type searchResponse struct {
	Results []dictionary.Document `json:"results"`
	Count   int                   `json:"count"`
}

func (h *Handler) search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	term := query.Get("term")
	if term == "" {
		writeError(w, http.StatusBadRequest, "term required")
		return
	}

	limit := defaultSearchLimit
	if raw := query.Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = parsed
	}

	results, err := h.dict.Search(r.Context(), term, limit)
	if err != nil {
		writeInternalError(w, r, fmt.Errorf("search %q: %w", term, err))
		return
	}

	writeJSON(w, http.StatusOK, searchResponse{
		Results: results,
		Count:   len(results),
	})
}

type syncCardsRequest struct {
	Cards []json.RawMessage `json:"cards"`
}

func (h *Handler) syncCards(w http.ResponseWriter, r *http.Request) {
	var req syncCardsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	saved, err := h.cards.Append(req.Cards)
	if err != nil {
		writeInternalError(w, r, fmt.Errorf("append cards: %w", err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"saved": saved})
}

func (h *Handler) listCards(w http.ResponseWriter, r *http.Request) {
	all, err := h.cards.ReadAll()
	if err != nil {
		writeInternalError(w, r, fmt.Errorf("read cards: %w", err))
		return
	}

	writeJSON(w, http.StatusOK, map[string][]json.RawMessage{"cards": all})
}
