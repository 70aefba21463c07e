package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/sawpanic/cea/internal/domain/validation"
	httpContracts "github.com/sawpanic/cea/internal/http"
)

// MsgCompanyNotFound answers lookups of unknown ids
const MsgCompanyNotFound = "Company not found."

// ListCompanies handles GET /api/companies
func (h *Handlers) ListCompanies(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, httpContracts.CompaniesResponse{
		Companies: h.companies.List(),
	})
}

// CreateCompany handles POST /api/companies
func (h *Handlers) CreateCompany(w http.ResponseWriter, r *http.Request) {
	var req httpContracts.CompanyRequest
	if err := decodeJSON(r, &req); err != nil {
		h.metrics.RecordRejected("companies", "invalid_json")
		h.writeError(w, http.StatusBadRequest, MsgInvalidJSON)
		return
	}

	company, err := h.companies.Create(req.Name, req.Sector, string(req.Revenue))
	if err != nil {
		if verr, ok := validation.As(err); ok {
			h.metrics.RecordRejected("companies", "validation")
			h.writeError(w, http.StatusBadRequest, verr.Message)
			return
		}
		log.Error().Err(err).Msg("Company creation failed")
		h.writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	log.Info().
		Int("id", company.ID).
		Str("sector", company.Sector).
		Float64("start_revenue", company.StartRevenue).
		Msg("Company created")

	h.metrics.RecordCompanyCreated(company.Sector)
	h.writeJSON(w, http.StatusCreated, company)
}

// GetCompany handles GET /api/companies/{id}
func (h *Handlers) GetCompany(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, http.StatusNotFound, MsgCompanyNotFound)
		return
	}

	company, ok := h.companies.Get(id)
	if !ok {
		h.writeError(w, http.StatusNotFound, MsgCompanyNotFound)
		return
	}
	h.writeJSON(w, http.StatusOK, company)
}
