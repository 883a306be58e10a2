package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/wordle-solver-api/internal/api/shared"
	"github.com/phrazzld/wordle-solver-api/internal/domain"
	"github.com/phrazzld/wordle-solver-api/internal/platform/logger"
	"github.com/phrazzld/wordle-solver-api/internal/redact"
	"github.com/phrazzld/wordle-solver-api/internal/service"
)

// StatusMessage is reported at the root path while the server is up.
const StatusMessage = "Wordle Solver API with Lazy-Loading Cache is running."

// SuggestionHandler serves the solver endpoints.
type SuggestionHandler struct {
	service service.SuggestionService
	logger  *slog.Logger
}

// NewSuggestionHandler creates a new SuggestionHandler
func NewSuggestionHandler(svc service.SuggestionService, logger *slog.Logger) *SuggestionHandler {
	if svc == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("suggestion service cannot be nil for SuggestionHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for SuggestionHandler")
	}

	return &SuggestionHandler{
		service: svc,
		logger:  logger.With(slog.String("component", "suggestion_handler")),
	}
}

// GetSuggestions handles POST /api/suggestions requests.
// It filters the word list by the submitted history and returns the
// highest-entropy next guesses.
func (h *SuggestionHandler) GetSuggestions(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req SuggestionRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err,
			shared.WithElevatedLogLevel())
		return
	}

	history, err := req.observations()
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	result, err := h.service.Suggest(r.Context(), history)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to compute suggestions")
		return
	}

	suggestions := result.Suggestions
	if suggestions == nil {
		suggestions = []domain.Word{}
	}

	log.Debug("suggestions computed",
		slog.Int("history", len(history)),
		slog.Int("remaining", result.Remaining),
		slog.Int("suggestions", len(suggestions)),
		slog.Bool("starter", result.Starter))

	shared.RespondWithJSON(w, r, http.StatusOK, SuggestionResponse{
		Suggestions: suggestions,
		Remaining:   result.Remaining,
		Starter:     result.Starter,
	})
}

// GetFeedback handles POST /api/feedback requests.
// It scores a guess against a chosen secret.
func (h *SuggestionHandler) GetFeedback(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req FeedbackRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err,
			shared.WithElevatedLogLevel())
		return
	}

	guess, err := domain.ParseWord(req.Guess)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	secret, err := domain.ParseWord(req.Secret)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	fb, err := h.service.Feedback(r.Context(), guess, secret)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to compute feedback")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, FeedbackResponse{Feedback: fb})
}

// GetStatus handles GET / requests.
func (h *SuggestionHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	st := h.service.Status()
	shared.RespondWithJSON(w, r, http.StatusOK, StatusResponse{
		Status:       StatusMessage,
		Words:        st.Words,
		StarterWords: st.Starter,
		Cache: CacheResponse{
			Hits:   st.Cache.Hits,
			Misses: st.Cache.Misses,
			Loads:  st.Cache.Loads,
			Tables: st.Cache.Tables,
		},
	})
}
