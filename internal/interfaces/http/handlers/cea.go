package handlers

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/sawpanic/cea/internal/application/advisor"
	"github.com/sawpanic/cea/internal/domain/sectors"
	"github.com/sawpanic/cea/internal/domain/validation"
	httpContracts "github.com/sawpanic/cea/internal/http"
)

// CEA handles POST /api/cea
func (h *Handlers) CEA(w http.ResponseWriter, r *http.Request) {
	var req httpContracts.CEARequest
	if err := decodeJSON(r, &req); err != nil {
		h.metrics.RecordRejected("cea", "invalid_json")
		h.writeError(w, http.StatusBadRequest, MsgInvalidJSON)
		return
	}

	ans, err := h.advisor.Ask(r.Context(), advisor.Query{
		UserType: req.UserType,
		Sector:   req.Sector,
		Problem:  req.Problem,
	})
	if err != nil {
		var unknown *sectors.UnknownSectorError
		switch verr, ok := validation.As(err); {
		case ok:
			h.metrics.RecordRejected("cea", "validation")
			h.writeError(w, http.StatusBadRequest, verr.Message)
		case errors.As(err, &unknown):
			h.metrics.RecordRejected("cea", "unknown_sector")
			h.writeError(w, http.StatusBadRequest, unknown.Error())
		default:
			log.Error().Err(err).Msg("CEA request failed")
			h.writeError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	if ans.Suspicious {
		h.metrics.RecordRefusal(ans.Alert.Sector)
		h.writeJSON(w, http.StatusOK, httpContracts.RefusalResponse{
			Suspicious: true,
			Message:    ans.Message,
		})
		return
	}

	h.metrics.RecordAdvice(ans.Sector, ans.Snapshot.Usage)
	h.writeJSON(w, http.StatusOK, httpContracts.CEAResponse{
		Suspicious:    false,
		Header:        ans.Header,
		Advice:        ans.Advice,
		Problem:       ans.Problem,
		Sector:        ans.Sector,
		UserType:      ans.UserType,
		Years:         sectors.Years,
		Baseline:      ans.Snapshot.Baseline,
		WithCEA:       ans.Snapshot.Projected,
		LearningUsage: ans.Snapshot.Usage,
		Label:         ans.Snapshot.Label,
	})
}

// Sectors handles GET /api/sectors
func (h *Handlers) Sectors(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, httpContracts.SectorsResponse{
		Years:   sectors.Years,
		Sectors: h.advisor.Sectors().All(),
	})
}
