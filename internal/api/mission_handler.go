package api

import (
	"net/http"

	"github.com/phrazzld/vortex-api/internal/service/mission"
)

// MissionHandler handles daily mission API requests.
type MissionHandler struct {
	missionService *mission.Service
}

// NewMissionHandler creates a new MissionHandler.
func NewMissionHandler(missionService *mission.Service) *MissionHandler {
	return &MissionHandler{missionService: missionService}
}

// Today handles GET /api/missions/today. The first request of a day
// generates the mission; a 204 means nothing is due and no mission
// exists.
func (h *MissionHandler) Today(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	todayMission, err := h.missionService.Today(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	if todayMission == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	RespondWithJSON(w, r, http.StatusOK, todayMission)
}
