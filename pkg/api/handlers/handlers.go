package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/cbodonnell/lastone/pkg/log"
	"github.com/cbodonnell/lastone/pkg/repositories"
	"github.com/cbodonnell/lastone/pkg/state"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

func HandleListSets(repository repositories.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := repositories.DefaultListLimit
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 1 {
				http.Error(w, "limit must be a positive integer", http.StatusBadRequest)
				return
			}
			limit = parsed
		}

		sets, err := repository.ListSetResults(r.Context(), limit)
		if err != nil {
			log.Error("failed to list sets: %v", err)
			http.Error(w, "Failed to list sets", http.StatusInternalServerError)
			return
		}

		writeJSON(w, sets)
	}
}

func HandleGetSet(repository repositories.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(mux.Vars(r)["id"])
		if err != nil {
			http.Error(w, "Invalid set id", http.StatusBadRequest)
			return
		}

		set, err := repository.GetSetResult(r.Context(), id)
		if err != nil {
			if repositories.IsNotFound(err) {
				http.Error(w, "Set not found", http.StatusNotFound)
				return
			}
			log.Error("failed to get set %s: %v", id, err)
			http.Error(w, "Failed to get set", http.StatusInternalServerError)
			return
		}

		writeJSON(w, set)
	}
}

func HandleGetPlayer(repository repositories.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := mux.Vars(r)["name"]
		record, err := repository.PlayerRecord(r.Context(), name)
		if err != nil {
			if repositories.IsNotFound(err) {
				http.Error(w, "Player not found", http.StatusNotFound)
				return
			}
			log.Error("failed to get player record for %s: %v", name, err)
			http.Error(w, "Failed to get player record", http.StatusInternalServerError)
			return
		}

		writeJSON(w, record)
	}
}

func HandleGetStandings(standings state.StandingsManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snapshot, err := standings.Get(r.Context())
		if err != nil {
			if errors.Is(err, state.ErrNoSnapshot) {
				http.Error(w, "No set is running", http.StatusNotFound)
				return
			}
			log.Error("failed to get standings: %v", err)
			http.Error(w, "Failed to get standings", http.StatusInternalServerError)
			return
		}

		writeJSON(w, snapshot)
	}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("failed to encode response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}
