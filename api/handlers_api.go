package api

import (
	"log"
	"net/http"

	mc "github.com/saeidalz13/battleship-skirmish/models/connection"
)

func HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// HandleStats reports the analytics counters of this server.
func (rp *RequestProcessor) HandleStats(w http.ResponseWriter, r *http.Request) {
	resp := mc.NewMessage[mc.RespStats](mc.CodeStats)
	stats := mc.RespStats{ActiveGames: rp.gameManager.ActiveGames()}

	if rp.dbManager == nil {
		stats.DbNotAvailable = true
		resp.AddPayload(stats)
		writeJSON(w, http.StatusOK, resp)
		return
	}

	gamesCreated, rematchCalled, err := rp.dbManager.Analytics.Counts(r.Context())
	if err != nil {
		log.Println(err)
		resp.AddError(err.Error(), "failed to read analytics")
		writeJSON(w, http.StatusInternalServerError, resp)
		return
	}

	stats.GamesCreated = gamesCreated
	stats.RematchCalled = rematchCalled
	resp.AddPayload(stats)
	writeJSON(w, http.StatusOK, resp)
}
