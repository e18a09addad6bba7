// Package scenario exposes the calculation engine over HTTP.
package scenario

import (
	"encoding/json"
	"fmt"
	"net/http"

	"mortgage_scenario/pkg/core/advisor"
	"mortgage_scenario/pkg/core/cache"
	"mortgage_scenario/pkg/core/config"
	"mortgage_scenario/pkg/core/report"
	"mortgage_scenario/pkg/core/scenario"
	"mortgage_scenario/pkg/core/store"
)

// CalculateRequest carries the scenario parameters. Assumptions and
// restrictions may be named presets, explicit values, or absent (defaults).
type CalculateRequest struct {
	Inputs scenario.Inputs `json:"inputs"`

	AssumptionsPreset  string `json:"assumptions_preset,omitempty"`
	RestrictionsPreset string `json:"restrictions_preset,omitempty"`

	Assumptions  *scenario.Assumptions  `json:"assumptions,omitempty"`
	Restrictions *scenario.Restrictions `json:"restrictions,omitempty"`

	Save  bool   `json:"save,omitempty"`
	Label string `json:"label,omitempty"`
}

// CalculateResponse wraps the result with cache and persistence metadata.
type CalculateResponse struct {
	Result scenario.Result `json:"result"`
	Cached bool            `json:"cached"`
	ID     string          `json:"id,omitempty"`
}

// Handler holds the dependencies of the scenario endpoints. Repo and
// Advisor may be nil when persistence or advisory is not configured.
type Handler struct {
	Cache   cache.Repository
	Repo    *store.ScenarioRepo
	Advisor *advisor.Advisor
}

// NewHandler creates a scenario handler.
func NewHandler(c cache.Repository, repo *store.ScenarioRepo, adv *advisor.Advisor) *Handler {
	if c == nil {
		c = cache.NewMemoryCache()
	}
	return &Handler{Cache: c, Repo: repo, Advisor: adv}
}

func writeCORS(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
}

// resolve turns a request into the concrete parameter set for the calculator.
func (h *Handler) resolve(req CalculateRequest) (scenario.Assumptions, scenario.Restrictions, error) {
	assumptions := scenario.DefaultAssumptions()
	if req.AssumptionsPreset != "" {
		a, err := config.AssumptionsByName(req.AssumptionsPreset)
		if err != nil {
			return assumptions, scenario.Restrictions{}, err
		}
		assumptions = a
	}
	if req.Assumptions != nil {
		assumptions = *req.Assumptions
	}

	restrictions := scenario.DefaultRestrictions()
	if req.RestrictionsPreset != "" {
		r, err := config.RestrictionsByName(req.RestrictionsPreset)
		if err != nil {
			return assumptions, restrictions, err
		}
		restrictions = r
	}
	if req.Restrictions != nil {
		restrictions = *req.Restrictions
	}

	return assumptions, restrictions, nil
}

// HandleCalculate runs a scenario calculation, consulting the cache first.
func (h *Handler) HandleCalculate(w http.ResponseWriter, r *http.Request) {
	writeCORS(w)
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req CalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	assumptions, restrictions, err := h.resolve(req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	key := cache.ResultKey(req.Inputs, assumptions, restrictions)
	if cached, ok := h.Cache.Get(key); ok && !req.Save {
		fmt.Printf("[SCENARIO] Cache hit for %s\n", key)
		var result scenario.Result
		if err := json.Unmarshal([]byte(cached), &result); err == nil {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(CalculateResponse{Result: result, Cached: true})
			return
		}
		// Corrupt entry, fall through and recompute.
	}

	result, err := scenario.Calculate(req.Inputs, &assumptions, &restrictions)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if encoded, err := json.Marshal(result); err == nil {
		if err := h.Cache.Set(key, string(encoded)); err != nil {
			fmt.Printf("[WARNING] Failed to cache scenario: %v\n", err)
		}
	}

	resp := CalculateResponse{Result: result}
	if req.Save && h.Repo != nil {
		id, err := h.Repo.Save(r.Context(), "", req.Label, result)
		if err != nil {
			fmt.Printf("[WARNING] Failed to persist scenario: %v\n", err)
		} else {
			resp.ID = id
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// HandleReport renders a calculation as a markdown report.
func (h *Handler) HandleReport(w http.ResponseWriter, r *http.Request) {
	writeCORS(w)
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req CalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	assumptions, restrictions, err := h.resolve(req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := scenario.Calculate(req.Inputs, &assumptions, &restrictions)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	narrative := ""
	if h.Advisor != nil {
		if text, err := h.Advisor.Narrate(r.Context(), req.Inputs, result); err == nil {
			narrative = text
		} else {
			fmt.Printf("[WARNING] Advisor narration failed: %v\n", err)
		}
	}

	md, err := report.Render(result, narrative)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	fmt.Fprint(w, md)
}

// HandleAdvise returns the structured advisory verdict for a scenario.
func (h *Handler) HandleAdvise(w http.ResponseWriter, r *http.Request) {
	writeCORS(w)
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if h.Advisor == nil {
		http.Error(w, "advisor not configured", http.StatusServiceUnavailable)
		return
	}

	var req CalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	assumptions, restrictions, err := h.resolve(req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := scenario.Calculate(req.Inputs, &assumptions, &restrictions)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	advice, err := h.Advisor.Advise(r.Context(), req.Inputs, result)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(advice)
}

// HandlePresets lists the named assumption and restriction profiles.
func (h *Handler) HandlePresets(w http.ResponseWriter, r *http.Request) {
	writeCORS(w)
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	resp := struct {
		Assumptions  map[string]scenario.Assumptions  `json:"assumptions"`
		Restrictions map[string]scenario.Restrictions `json:"restrictions"`
		Descriptions map[string]string                `json:"descriptions"`
	}{
		Assumptions: map[string]scenario.Assumptions{
			"conservative": config.ConservativeAssumptions(),
			"moderate":     config.ModerateAssumptions(),
			"aggressive":   config.AggressiveAssumptions(),
		},
		Restrictions: map[string]scenario.Restrictions{
			"default": scenario.DefaultRestrictions(),
			"strict":  config.StrictRestrictions(),
			"lenient": config.LenientRestrictions(),
		},
		Descriptions: config.AssumptionDescriptions(),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// HandleSaved lists persisted scenarios, or loads one when ?id= is given.
func (h *Handler) HandleSaved(w http.ResponseWriter, r *http.Request) {
	writeCORS(w)
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}
	if h.Repo == nil {
		http.Error(w, "persistence not configured", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if id := r.URL.Query().Get("id"); id != "" {
		saved, err := h.Repo.Load(r.Context(), id)
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		json.NewEncoder(w).Encode(saved)
		return
	}

	all, err := h.Repo.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(all)
}
