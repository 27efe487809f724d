// Package httpapi is the HTTP transport adapter over the roster core:
// it decodes requests, calls roster.Generate/roster.Evaluate, and
// encodes the result. The core itself has no knowledge of HTTP.
package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/turnos/turnos/internal/config"
	"github.com/turnos/turnos/pkg/apperror"
	"github.com/turnos/turnos/pkg/model"
	"github.com/turnos/turnos/pkg/rlog"
	"github.com/turnos/turnos/pkg/roster"
)

// RosterHandler serves the generate/evaluate/vocabulary endpoints.
type RosterHandler struct {
	logger *rlog.RosterLogger
	roster config.RosterConfig
}

// NewRosterHandler constructs a handler with its own component logger,
// using cfg's attempt budget for every generation it serves.
func NewRosterHandler(cfg config.RosterConfig) *RosterHandler {
	return &RosterHandler{logger: rlog.NewRosterLogger(), roster: cfg}
}

// scheduleRequest is the shared request body shape for generate and
// evaluate; Shifts is only read by evaluate.
type scheduleRequest struct {
	Service             serviceDTO           `json:"service"`
	Month               int                  `json:"month"`
	Year                int                  `json:"year"`
	Employees           []employeeDTO        `json:"employees"`
	Holidays            []string             `json:"holidays"`
	PreviousMonthShifts []model.AssignedShift `json:"previousMonthShifts"`
	RulesConfig         *rulesConfigDTO      `json:"rulesConfig"`
	Shifts              []model.AssignedShift `json:"shifts"`
}

// scheduleResponse mirrors spec.md §6's generateSchedule/evaluateSchedule
// return shape.
type scheduleResponse struct {
	GeneratedShifts []model.AssignedShift `json:"generatedShifts"`
	ResponseText    string                 `json:"responseText"`
	Violations      []model.Violation      `json:"violations"`
	Score           float64                `json:"score"`
	ScoreBreakdown  model.ScoreBreakdown   `json:"scoreBreakdown"`
}

// Generate handles POST /api/v1/rosters/generate.
func (h *RosterHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req scheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.InvalidInput("body", "malformed JSON"))
		return
	}

	svc, employees, rules, err := req.toCoreInputs()
	if err != nil {
		writeError(w, err)
		return
	}

	result := roster.Generate(roster.GenerateInput{
		Service: svc, Month: req.Month, Year: req.Year,
		Employees: employees, Holidays: req.Holidays,
		PreviousMonthShifts: req.PreviousMonthShifts, Rules: rules,
		MaxAttempts: h.roster.MaxAttempts, TargetScore: h.roster.TargetScore,
	}, h.logger)

	writeJSON(w, http.StatusOK, toResponse(result))
}

// Evaluate handles POST /api/v1/rosters/evaluate.
func (h *RosterHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	var req scheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.InvalidInput("body", "malformed JSON"))
		return
	}

	svc, employees, rules, err := req.toCoreInputs()
	if err != nil {
		writeError(w, err)
		return
	}

	result := roster.Evaluate(roster.EvaluateInput{
		Shifts: req.Shifts, Service: svc, Month: req.Month, Year: req.Year,
		Employees: employees, Holidays: req.Holidays,
		PreviousMonthShifts: req.PreviousMonthShifts, Rules: rules,
	})

	writeJSON(w, http.StatusOK, toResponse(result))
}

// Vocabulary handles GET /api/v1/rosters/vocabulary.
func (h *RosterHandler) Vocabulary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, model.ShiftVocabulary)
}

// Health handles GET /healthz.
func (h *RosterHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": "turnos"})
}

func toResponse(result roster.EvaluateResult) scheduleResponse {
	return scheduleResponse{
		GeneratedShifts: result.GeneratedShifts,
		ResponseText:    result.ResponseText,
		Violations:      result.Violations,
		Score:           result.Score,
		ScoreBreakdown:  result.ScoreBreakdown,
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		rlog.WithError(err).Msg("failed to encode response body")
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := apperror.GetHTTPStatus(err)
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
