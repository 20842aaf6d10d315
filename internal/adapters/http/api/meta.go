// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
)

// MetaHandler handles reference data requests.
type MetaHandler struct {
	deps Dependencies
}

// NewMetaHandler creates a new meta handler.
func NewMetaHandler(deps Dependencies) *MetaHandler {
	return &MetaHandler{deps: deps}
}

type metaView struct {
	TopTierTeams   []string `json:"top_tier_teams"`
	NotablePlayers []string `json:"notable_players"`
}

// HandleMeta handles GET /api/meta requests. It exposes the reference sets
// the scorer currently works from.
func (h *MetaHandler) HandleMeta(w http.ResponseWriter, r *http.Request) {
	sets, err := h.deps.ReferenceSets(r.Context())
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "unavailable", err)
		return
	}
	if sets.TopTier == nil {
		sets.TopTier = []string{}
	}
	if sets.NotablePlayers == nil {
		sets.NotablePlayers = []string{}
	}
	writeJSON(w, http.StatusOK, metaView{
		TopTierTeams:   sets.TopTier,
		NotablePlayers: sets.NotablePlayers,
	})
}
