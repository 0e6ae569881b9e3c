package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"beerbot/internal/config"
	"beerbot/internal/decision"
	"beerbot/internal/logger"
)

// Protocol reminders:
// - POST only, JSON body, JSON answer
// - handshake answer carries ok, student_email, algorithm_name, version,
//   supports and message "BeerBot ready"
// - weekly answer carries orders for all 4 roles, non-negative integers

const readyMessage = "BeerBot ready"

type handshakeRequest struct {
	Handshake bool   `json:"handshake"`
	Ping      string `json:"ping"`
	Seed      int    `json:"seed"`
}

type weeklyRequest struct {
	Mode       string                `json:"mode"` // "blackbox" or "glassbox"
	Week       int                   `json:"week"`
	WeeksTotal int                   `json:"weeks_total"` // typically 36
	Seed       int                   `json:"seed"`
	Weeks      []decision.WeekRecord `json:"weeks"`
}

type handshakeResponse struct {
	Ok            bool            `json:"ok"`
	StudentEmail  string          `json:"student_email"`
	AlgorithmName string          `json:"algorithm_name"`
	Version       string          `json:"version"`
	Supports      map[string]bool `json:"supports"`
	Message       string          `json:"message"`
}

type weeklyResponse struct {
	Orders decision.Orders `json:"orders"`
}

// DecisionHandler serves POST /api/decision: the handshake probe and the
// weekly order request.
type DecisionHandler struct {
	cfg    *config.Config
	policy *decision.Policy
	logger *logger.Logger
}

// NewDecisionHandler creates the decision endpoint handler.
func NewDecisionHandler(cfg *config.Config, policy *decision.Policy, log *logger.Logger) *DecisionHandler {
	return &DecisionHandler{cfg: cfg, policy: policy, logger: log}
}

func (h *DecisionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := h.logger.WithField("request_id", RequestIDFrom(r.Context()))

	body, err := readAllLimited(w, r, h.cfg.MaxBodyBytes)
	if err != nil {
		log.WithError(err).Warn("Failed to read request body")
		respondError(w, http.StatusBadRequest, "bad request")
		return
	}

	// The body must be a non-empty JSON object.
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope) == 0 {
		log.Warn("Request body is not a non-empty JSON object")
		respondError(w, http.StatusBadRequest, "bad request")
		return
	}

	var hs handshakeRequest
	if raw, ok := envelope["handshake"]; ok && json.Unmarshal(raw, &hs.Handshake) == nil && hs.Handshake {
		_ = json.Unmarshal(envelope["ping"], &hs.Ping)
		_ = json.Unmarshal(envelope["seed"], &hs.Seed)
		log.WithFields(map[string]interface{}{"ping": hs.Ping, "seed": hs.Seed}).Info("Handshake")
		respondJSON(w, http.StatusOK, h.handshake())
		return
	}

	var req weeklyRequest
	if err := json.Unmarshal(body, &req); err != nil {
		h.fail(w, log, err)
		return
	}

	d, err := h.policy.Decide(req.Mode, req.Weeks)
	if err != nil {
		h.fail(w, log, err)
		return
	}

	log.WithFields(map[string]interface{}{
		"mode":        d.Mode,
		"week":        req.Week,
		"weeks_total": req.WeeksTotal,
		"seed":        req.Seed,
		"weeks_len":   len(req.Weeks),
		"cold_start":  d.ColdStart,
	}).Info("Weekly decision")

	for _, rd := range d.Roles {
		log.WithFields(map[string]interface{}{
			"role":         rd.Role,
			"smoothed":     rd.SmoothedDemand,
			"effective":    rd.EffectiveInventory,
			"supply_line":  rd.SupplyLine,
			"raw_order":    rd.RawOrder,
			"order":        rd.Order,
			"pass_through": rd.PassThrough,
		}).Debug("Role decision")
	}

	respondJSON(w, http.StatusOK, weeklyResponse{Orders: d.Orders})
}

func (h *DecisionHandler) handshake() handshakeResponse {
	return handshakeResponse{
		Ok:            true,
		StudentEmail:  h.cfg.StudentEmail,
		AlgorithmName: h.cfg.AlgorithmName,
		Version:       h.cfg.Version,
		Supports: map[string]bool{
			string(decision.ModeBlackbox): h.cfg.SupportsBlackBox,
			string(decision.ModeGlassbox): h.cfg.SupportsGlassBox,
		},
		Message: readyMessage,
	}
}

// fail logs the detail and answers with a generic server error.
func (h *DecisionHandler) fail(w http.ResponseWriter, log *logger.Logger, err error) {
	log.WithError(err).
		WithField("malformed_history", errors.Is(err, decision.ErrMalformedHistory)).
		Error("Decision failed")
	respondError(w, http.StatusInternalServerError, "internal server error")
}
