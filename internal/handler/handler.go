// Package handler contains HTTP handlers for the devotional API.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"devotional-api/internal/apperror"
	"devotional-api/internal/model"
	"devotional-api/internal/notifier"
	"devotional-api/internal/store"
	"devotional-api/internal/streak"
	"devotional-api/internal/validate"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PassageValidator validates scripture references (e.g., John 3:16, 1 Cor 13:4-7).
var PassageValidator = func(fl validator.FieldLevel) bool {
	pattern := `^[1-3]? ?[A-Za-z]+(?: [A-Za-z]+)* \d{1,3}(?::\d{1,3}(?:-\d{1,3})?)?$`
	matched, _ := regexp.MatchString(pattern, fl.Field().String())
	return matched
}

// Handler wraps HTTP handlers with their collaborators.
type Handler struct {
	log      *zap.Logger
	store    store.Store
	notify   notifier.Notifier
	engine   *streak.Engine
	validate *validator.Validate
	now      func() time.Time
}

// New creates a new Handler instance.
func New(log *zap.Logger, st store.Store, n notifier.Notifier, e *streak.Engine, v *validator.Validate) *Handler {
	return &Handler{log: log, store: st, notify: n, engine: e, validate: v, now: time.Now}
}

// Healthz is a simple health check endpoint.
func (h *Handler) Healthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// CompleteDay marks one day of a devotional plan as done.
func (h *Handler) CompleteDay(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	planID := chi.URLParam(r, "planID")
	day, err := strconv.Atoi(chi.URLParam(r, "day"))
	if err != nil || day < 1 {
		h.writeError(w, http.StatusBadRequest, "day must be a positive number")
		return
	}

	completedAt := h.now()
	if err := h.store.CompleteDay(r.Context(), userID, planID, day, completedAt); err != nil {
		h.log.Error("failed to record completion", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "could not record completion")
		return
	}

	h.notify.Add(notifier.Event{UserID: userID, Kind: "completion", OccurredAt: completedAt})
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "Ok"})
}

// CreateJournal receives and stores a journal entry.
func (h *Handler) CreateJournal(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req model.CreateJournalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Error("failed to decode json", zap.Error(err))
		h.writeError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		h.writeValidationError(w, err)
		return
	}

	subject := validate.Sanitize(req.Subject)
	content := validate.Sanitize(req.Content)
	if res := validate.StudySubject(subject); !res.IsValid {
		h.writeError(w, http.StatusBadRequest, res.Error)
		return
	}
	if res := validate.LongText(content, 0); !res.IsValid {
		h.writeError(w, http.StatusBadRequest, res.Error)
		return
	}

	entry := model.JournalEntry{
		ID:           uuid.NewString(),
		DevotionalID: req.DevotionalID,
		Day:          req.Day,
		Subject:      strings.TrimSpace(subject),
		Content:      content,
		CreatedAt:    h.now(),
	}
	if err := h.store.CreateJournalEntry(r.Context(), userID, entry); err != nil {
		h.log.Error("failed to store journal entry", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "could not save journal entry")
		return
	}

	h.notify.Add(notifier.Event{UserID: userID, Kind: "journal", OccurredAt: entry.CreatedAt})
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(entry)
}

// ListJournal returns the user's journal entries, newest first.
func (h *Handler) ListJournal(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	entries, err := h.store.EntriesForUser(r.Context(), userID)
	if err != nil {
		h.log.Error("failed to list journal entries", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "could not list journal entries")
		return
	}
	if entries == nil {
		entries = []model.JournalEntry{}
	}
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(entries)
}

// CreateBookmark saves a scripture passage bookmark.
func (h *Handler) CreateBookmark(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req model.CreateBookmarkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Error("failed to decode json", zap.Error(err))
		h.writeError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		h.writeValidationError(w, err)
		return
	}

	note := validate.Sanitize(req.Note)
	if strings.TrimSpace(note) != "" {
		if res := validate.ShortText(note); !res.IsValid {
			h.writeError(w, http.StatusBadRequest, res.Error)
			return
		}
	}

	bm := model.Bookmark{
		ID:        uuid.NewString(),
		Passage:   strings.TrimSpace(req.Passage),
		Note:      strings.TrimSpace(note),
		CreatedAt: h.now(),
	}
	if err := h.store.AddBookmark(r.Context(), userID, bm); err != nil {
		h.log.Error("failed to store bookmark", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "could not save bookmark")
		return
	}

	h.notify.Add(notifier.Event{UserID: userID, Kind: "bookmark", OccurredAt: bm.CreatedAt})
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(bm)
}

// ListBookmarks returns the user's bookmarks, newest first.
func (h *Handler) ListBookmarks(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	bookmarks, err := h.store.BookmarksForUser(r.Context(), userID)
	if err != nil {
		h.log.Error("failed to list bookmarks", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "could not list bookmarks")
		return
	}
	if bookmarks == nil {
		bookmarks = []model.Bookmark{}
	}
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(bookmarks)
}

// DeleteBookmark removes one of the user's bookmarks.
func (h *Handler) DeleteBookmark(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.store.RemoveBookmark(r.Context(), userID, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.writeError(w, http.StatusNotFound, "bookmark not found")
			return
		}
		h.log.Error("failed to delete bookmark", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "could not delete bookmark")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetStreak computes the user's streak fresh from stored activity.
func (h *Handler) GetStreak(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	progress, err := h.store.ProgressForUser(r.Context(), userID)
	if err != nil {
		h.log.Error("failed to load progress", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "could not compute streak")
		return
	}
	entries, err := h.store.EntriesForUser(r.Context(), userID)
	if err != nil {
		h.log.Error("failed to load journal entries", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "could not compute streak")
		return
	}

	result := h.engine.Calculate(progress, entries)
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(result)
}

// UpdateName changes the profile display name.
func (h *Handler) UpdateName(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req model.UpdateNameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Error("failed to decode json", zap.Error(err))
		h.writeError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		h.writeValidationError(w, err)
		return
	}

	name := validate.Sanitize(req.Name)
	if res := validate.Name(name); !res.IsValid {
		h.writeError(w, http.StatusBadRequest, res.Error)
		return
	}

	if err := h.store.SetDisplayName(r.Context(), userID, strings.TrimSpace(name)); err != nil {
		h.log.Error("failed to update display name", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "could not update name")
		return
	}
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "Ok"})
}

func (h *Handler) userID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.Header.Get("X-User-ID")
	if id == "" {
		h.writeError(w, http.StatusUnauthorized, "missing X-User-ID header")
		return "", false
	}
	return id, true
}

func (h *Handler) writeError(w http.ResponseWriter, code int, msg string) {
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func (h *Handler) writeValidationError(w http.ResponseWriter, err error) {
	h.log.Warn("validation failed", zap.Error(err))
	w.WriteHeader(http.StatusBadRequest)
	validationError := apperror.CustomValidationError(err)
	if err := json.NewEncoder(w).Encode(validationError); err != nil {
		h.log.Error("unable to write response stream", zap.Error(err))
	}
}
