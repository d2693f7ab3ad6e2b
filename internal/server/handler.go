package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/baalimago/hfchat/internal/session"
	"github.com/baalimago/hfchat/internal/vendors/huggingface"
)

type errorResponse struct {
	Error string `json:"error"`
}

type chatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

type historyResponse struct {
	SessionID string   `json:"session_id"`
	History   []string `json:"history"`
}

type sessionsResponse struct {
	Sessions []string `json:"sessions"`
}

type healthResponse struct {
	Status string `json:"status"`
	Model  string `json:"model"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, errorResponse{Error: msg})
}

func outcome(reply string) string {
	switch {
	case strings.HasPrefix(reply, huggingface.ErrorReplyPrefix):
		return "error"
	case reply == huggingface.EmptyReply:
		return "empty"
	default:
		return "ok"
	}
}

func chat(table *session.Table) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				writeError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("body exceeds %v bytes", tooLarge.Limit))
				return
			}
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if strings.TrimSpace(req.Message) == "" {
			writeError(w, http.StatusBadRequest, "message is required")
			return
		}

		start := time.Now()
		res, err := table.Respond(r.Context(), req.Message, req.SessionID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		exchangeDuration.WithLabelValues(res.Model).Observe(time.Since(start).Seconds())
		exchangesTotal.WithLabelValues(res.Model, outcome(res.Response)).Inc()
		sessionsGauge.Set(float64(len(table.Sessions())))
		writeJSON(w, http.StatusOK, res)
	}
}

func history(table *session.Table) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		turns := table.History(id)
		lines := make([]string, 0, len(turns))
		for _, t := range turns {
			lines = append(lines, t.String())
		}
		writeJSON(w, http.StatusOK, historyResponse{SessionID: id, History: lines})
	}
}

func clearHistory(table *session.Table) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		table.Clear(r.PathValue("id"))
		w.WriteHeader(http.StatusNoContent)
	}
}

func sessions(table *session.Table) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, sessionsResponse{Sessions: table.Sessions()})
	}
}

func health(table *session.Table) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Model: table.Model()})
	}
}
