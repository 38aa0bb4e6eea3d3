package chi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/marcelsud/webhook-scheduler/webhook"
	"github.com/rs/zerolog"
)

/* HTTP layer for the JSON API
 * Reads never fail hard: on error they answer with an empty result
 */

// clearResponse represents the API response when clearing the history
type clearResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// postTrigger handles POST /api/trigger and /api/trigger/secondary
func postTrigger(trigger func(ctx context.Context) webhook.Response, logger zerolog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Info().Str("path", r.URL.Path).Msg("manual webhook trigger requested")

		// a disconnecting client does not cancel the call, only the target timeout does
		response := trigger(context.WithoutCancel(r.Context()))

		logger.Info().Str("target", response.Target).Int("status_code", response.StatusCode).Msg("manual trigger completed")
		writeJSON(w, http.StatusOK, response)
	})
}

// getData handles GET /api/data
func getData(webhookService webhook.UseCase, logger zerolog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		history, err := safeHistory(r.Context(), webhookService)
		if err != nil {
			logger.Error().Err(err).Msg("getting data")
			history = []webhook.Response{}
		}
		writeJSON(w, http.StatusOK, history)
	})
}

// getLatest handles GET /api/latest, answering null on an empty history
func getLatest(webhookService webhook.UseCase, logger zerolog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		latest, ok, err := webhookService.Latest(r.Context())
		if err != nil {
			logger.Error().Err(err).Msg("getting latest response")
		}
		if err != nil || !ok {
			writeJSON(w, http.StatusOK, nil)
			return
		}
		writeJSON(w, http.StatusOK, latest)
	})
}

// deleteHistory handles DELETE /api/clear
func deleteHistory(webhookService webhook.UseCase, logger zerolog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Info().Msg("clear history requested")
		if err := webhookService.ClearHistory(r.Context()); err != nil {
			logger.Error().Err(err).Msg("clearing history")
			writeJSON(w, http.StatusInternalServerError, clearResponse{
				Status:  "error",
				Message: fmt.Sprintf("Error: %v", err),
			})
			return
		}
		writeJSON(w, http.StatusOK, clearResponse{
			Status:  "success",
			Message: "History cleared",
		})
	})
}

// safeHistory turns a panic while reading the history into an error
func safeHistory(ctx context.Context, webhookService webhook.UseCase) (history []webhook.Response, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("reading history: %v", r)
		}
	}()
	history, err = webhookService.History(ctx)
	if history == nil && err == nil {
		history = []webhook.Response{}
	}
	return history, err
}
