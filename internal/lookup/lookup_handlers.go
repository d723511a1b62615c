package lookup

import (
	"encoding/json"
	"errors"
	"net/http"

	"lookup-tracker/internal/iplookup"
	"lookup-tracker/internal/phonelookup"
	"lookup-tracker/models"
)

type LookupHandlers struct {
	Service *LookupService
}

func NewLookupHandlers(service *LookupService) *LookupHandlers {
	return &LookupHandlers{Service: service}
}

type phoneLookupRequest struct {
	Number         string `json:"number"`
	ManualOperator string `json:"manual_operator"`
}

type ipLookupRequest struct {
	Mode models.LookupMode `json:"mode"`
	IP   string            `json:"ip"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *LookupHandlers) SubmitPhone(w http.ResponseWriter, r *http.Request) {
	var req phoneLookupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	result, err := h.Service.SubmitPhoneLookup(r.Context(), req.Number, req.ManualOperator)
	if err != nil {
		writeLookupError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *LookupHandlers) SubmitIP(w http.ResponseWriter, r *http.Request) {
	var req ipLookupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	result, err := h.Service.SubmitIPLookup(r.Context(), req.Mode, req.IP)
	if err != nil {
		writeLookupError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// writeLookupError maps the lookup error taxonomy onto HTTP statuses:
// validation failures are the caller's fault, provider failures are upstream,
// everything else is ours.
func writeLookupError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, phonelookup.ErrInvalidNumber),
		errors.Is(err, iplookup.ErrInvalidAddress),
		errors.Is(err, ErrUnknownMode):
		status = http.StatusBadRequest
	case errors.Is(err, iplookup.ErrProviderUnavailable),
		errors.Is(err, iplookup.ErrMalformedResponse):
		status = http.StatusBadGateway
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
