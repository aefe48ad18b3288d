package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/RichardoC/synxai/internal/llm"
	"github.com/RichardoC/synxai/internal/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Store is the persistence the handlers need; *db.Database satisfies it.
type Store interface {
	ListThreads(ctx context.Context) ([]models.Thread, error)
	CreateThread(ctx context.Context, title *string) (*models.Thread, error)
	ListMessages(ctx context.Context, threadID int64) ([]models.Message, error)
	SaveMessage(ctx context.Context, msg *models.Message) error
}

type Handler struct {
	store     Store
	llm       llm.Generator
	staticDir string
	logger    *zap.Logger
}

func NewHandler(store Store, generator llm.Generator, staticDir string, logger *zap.Logger) *Handler {
	return &Handler{
		store:     store,
		llm:       generator,
		staticDir: staticDir,
		logger:    logger,
	}
}

type CreateThreadRequest struct {
	Title *string `json:"title"`
}

type CreateThreadResponse struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

type ChatRequest struct {
	Message string `json:"message"`
}

type ChatResponse struct {
	Response string `json:"response"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	http.ServeFile(w, r, filepath.Join(h.staticDir, "index.html"))
}

func (h *Handler) ListThreads(w http.ResponseWriter, r *http.Request) {
	threads, err := h.store.ListThreads(r.Context())
	if err != nil {
		h.logger.Error("Failed to list threads",
			zap.Error(err),
			zap.String("path", r.URL.Path))
		h.writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.logger.Debug("Retrieved threads", zap.Int("count", len(threads)))
	h.writeJSON(w, http.StatusOK, threads)
}

func (h *Handler) CreateThread(w http.ResponseWriter, r *http.Request) {
	var req CreateThreadRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	thread, err := h.store.CreateThread(r.Context(), req.Title)
	if err != nil {
		h.logger.Error("Failed to create thread", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.writeJSON(w, http.StatusOK, CreateThreadResponse{ID: thread.ID, Title: thread.Title})
}

func (h *Handler) ListMessages(w http.ResponseWriter, r *http.Request) {
	threadID, ok := threadIDParam(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	messages, err := h.store.ListMessages(r.Context(), threadID)
	if err != nil {
		h.logger.Error("Failed to list messages",
			zap.Error(err),
			zap.Int64("threadID", threadID))
		h.writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.writeJSON(w, http.StatusOK, messages)
}

// Chat runs one turn: store the user message, ask the model, store the reply.
// The user message is not rolled back if generation fails. The turn ignores
// client disconnects so a finished reply is always stored; LLM_TIMEOUT is the
// only deadline.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	threadID, ok := threadIDParam(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	var req ChatRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	content := strings.TrimSpace(req.Message)
	if content == "" {
		h.writeError(w, http.StatusBadRequest, "Message cannot be empty")
		return
	}

	reply, err := h.chatTurn(context.WithoutCancel(r.Context()), threadID, content)
	if err != nil {
		h.logger.Error("Failed to complete chat turn",
			zap.Error(err),
			zap.Int64("threadID", threadID))
		h.writeError(w, http.StatusInternalServerError, fmt.Sprintf("Error generating response: %v", err))
		return
	}

	h.writeJSON(w, http.StatusOK, ChatResponse{Response: reply})
}

func (h *Handler) chatTurn(ctx context.Context, threadID int64, content string) (string, error) {
	userMsg := &models.Message{
		ThreadID: threadID,
		Role:     models.RoleUser,
		Content:  content,
	}
	if err := h.store.SaveMessage(ctx, userMsg); err != nil {
		return "", err
	}

	reply, err := h.llm.Generate(ctx, content)
	if err != nil {
		return "", err
	}

	botMsg := &models.Message{
		ThreadID: threadID,
		Role:     models.RoleBot,
		Content:  reply,
	}
	if err := h.store.SaveMessage(ctx, botMsg); err != nil {
		return "", err
	}
	return reply, nil
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// threadIDParam reads {thread_id}; the route pattern already restricts it
// to digits, so a failure here means it overflows int64.
func threadIDParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "thread_id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// decodeBody decodes a JSON body into v. An empty body leaves v untouched.
func decodeBody(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, ErrorResponse{Error: msg})
}
