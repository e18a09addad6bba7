package scenario

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"mortgage_scenario/pkg/core/cache"
	core "mortgage_scenario/pkg/core/scenario"
)

func requestBody(t *testing.T, req CalculateRequest) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(req); err != nil {
		t.Fatalf("encode request: %v", err)
	}
	return &buf
}

func sampleRequest() CalculateRequest {
	return CalculateRequest{
		Inputs: core.Inputs{
			PropertyPrice:     2000000,
			DownPayment:       1000000,
			AvailableCash:     2000000,
			MonthlyIncome:     36000,
			MonthlyAvailable:  10000,
			MortgageTermYears: 10,
			YearsUntilSale:    10,
			IsFirstHouse:      true,
		},
	}
}

func TestHandleCalculate(t *testing.T) {
	h := NewHandler(cache.NewMemoryCache(), nil, nil)

	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/scenario/calculate", requestBody(t, sampleRequest()))
	h.HandleCalculate(rec, r)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", rec.Code, rec.Body.String())
	}

	var resp CalculateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Cached {
		t.Error("first request should not be a cache hit")
	}
	if !resp.Result.IsValid {
		t.Errorf("expected valid scenario, errors: %v", resp.Result.ValidationErrors)
	}
	if resp.Result.Loan.LoanAmount != 1000000 {
		t.Errorf("LoanAmount = %f, want 1000000", resp.Result.Loan.LoanAmount)
	}
}

func TestHandleCalculateCacheHit(t *testing.T) {
	h := NewHandler(cache.NewMemoryCache(), nil, nil)

	first := httptest.NewRecorder()
	h.HandleCalculate(first, httptest.NewRequest(http.MethodPost, "/api/scenario/calculate", requestBody(t, sampleRequest())))
	if first.Code != http.StatusOK {
		t.Fatalf("first request failed: %d", first.Code)
	}

	second := httptest.NewRecorder()
	h.HandleCalculate(second, httptest.NewRequest(http.MethodPost, "/api/scenario/calculate", requestBody(t, sampleRequest())))
	if second.Code != http.StatusOK {
		t.Fatalf("second request failed: %d", second.Code)
	}

	var resp CalculateResponse
	if err := json.Unmarshal(second.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Cached {
		t.Error("identical second request should hit the cache")
	}
}

func TestHandleCalculateRestrictionPresetsDoNotShareCache(t *testing.T) {
	h := NewHandler(cache.NewMemoryCache(), nil, nil)

	// 80% LTV: fails strict lending policy, passes lenient.
	leveraged := sampleRequest()
	leveraged.Inputs.DownPayment = 400000
	leveraged.Inputs.MortgageTermYears = 30

	strict := leveraged
	strict.RestrictionsPreset = "strict"
	first := httptest.NewRecorder()
	h.HandleCalculate(first, httptest.NewRequest(http.MethodPost, "/api/scenario/calculate", requestBody(t, strict)))
	if first.Code != http.StatusOK {
		t.Fatalf("strict request failed: %d", first.Code)
	}
	var strictResp CalculateResponse
	if err := json.Unmarshal(first.Body.Bytes(), &strictResp); err != nil {
		t.Fatalf("decode strict response: %v", err)
	}
	if strictResp.Result.IsValid {
		t.Fatal("80% LTV should violate the strict policy")
	}

	lenient := leveraged
	lenient.RestrictionsPreset = "lenient"
	second := httptest.NewRecorder()
	h.HandleCalculate(second, httptest.NewRequest(http.MethodPost, "/api/scenario/calculate", requestBody(t, lenient)))
	if second.Code != http.StatusOK {
		t.Fatalf("lenient request failed: %d", second.Code)
	}
	var lenientResp CalculateResponse
	if err := json.Unmarshal(second.Body.Bytes(), &lenientResp); err != nil {
		t.Fatalf("decode lenient response: %v", err)
	}
	if lenientResp.Cached {
		t.Error("different restriction presets must not share a cache entry")
	}
	if !lenientResp.Result.IsValid {
		t.Errorf("lenient verdict carries stale violations: %v", lenientResp.Result.ValidationErrors)
	}
}

func TestHandleCalculatePreset(t *testing.T) {
	h := NewHandler(cache.NewMemoryCache(), nil, nil)

	req := sampleRequest()
	req.AssumptionsPreset = "conservative"
	rec := httptest.NewRecorder()
	h.HandleCalculate(rec, httptest.NewRequest(http.MethodPost, "/api/scenario/calculate", requestBody(t, req)))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", rec.Code, rec.Body.String())
	}

	var resp CalculateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Result.Assumptions.RentalYield != 0.025 {
		t.Errorf("conservative rental yield = %f, want 0.025", resp.Result.Assumptions.RentalYield)
	}
}

func TestHandleCalculateUnknownPreset(t *testing.T) {
	h := NewHandler(cache.NewMemoryCache(), nil, nil)

	req := sampleRequest()
	req.AssumptionsPreset = "reckless"
	rec := httptest.NewRecorder()
	h.HandleCalculate(rec, httptest.NewRequest(http.MethodPost, "/api/scenario/calculate", requestBody(t, req)))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandleCalculateBadInputs(t *testing.T) {
	h := NewHandler(cache.NewMemoryCache(), nil, nil)

	req := sampleRequest()
	req.Inputs.PropertyPrice = -1
	rec := httptest.NewRecorder()
	h.HandleCalculate(rec, httptest.NewRequest(http.MethodPost, "/api/scenario/calculate", requestBody(t, req)))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandleCalculateRejectsMethodAndBody(t *testing.T) {
	h := NewHandler(cache.NewMemoryCache(), nil, nil)

	rec := httptest.NewRecorder()
	h.HandleCalculate(rec, httptest.NewRequest(http.MethodGet, "/api/scenario/calculate", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET status = %d, want 405", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.HandleCalculate(rec, httptest.NewRequest(http.MethodPost, "/api/scenario/calculate", strings.NewReader("{not json")))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad body status = %d, want 400", rec.Code)
	}
}

func TestHandleCalculateOptionsCORS(t *testing.T) {
	h := NewHandler(cache.NewMemoryCache(), nil, nil)

	rec := httptest.NewRecorder()
	h.HandleCalculate(rec, httptest.NewRequest(http.MethodOptions, "/api/scenario/calculate", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("OPTIONS status = %d, want 200", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("missing CORS header")
	}
}

func TestHandleReport(t *testing.T) {
	h := NewHandler(cache.NewMemoryCache(), nil, nil)

	rec := httptest.NewRecorder()
	h.HandleReport(rec, httptest.NewRequest(http.MethodPost, "/api/scenario/report", requestBody(t, sampleRequest())))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/markdown") {
		t.Errorf("Content-Type = %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "# Property Scenario Report") {
		t.Error("report body missing title")
	}
}

func TestHandleAdviseUnconfigured(t *testing.T) {
	h := NewHandler(cache.NewMemoryCache(), nil, nil)

	rec := httptest.NewRecorder()
	h.HandleAdvise(rec, httptest.NewRequest(http.MethodPost, "/api/scenario/advise", requestBody(t, sampleRequest())))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}

func TestHandleSavedUnconfigured(t *testing.T) {
	h := NewHandler(cache.NewMemoryCache(), nil, nil)

	rec := httptest.NewRecorder()
	h.HandleSaved(rec, httptest.NewRequest(http.MethodGet, "/api/scenario/saved", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}

func TestHandlePresets(t *testing.T) {
	h := NewHandler(cache.NewMemoryCache(), nil, nil)

	rec := httptest.NewRecorder()
	h.HandlePresets(rec, httptest.NewRequest(http.MethodGet, "/api/scenario/presets", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp struct {
		Assumptions  map[string]core.Assumptions  `json:"assumptions"`
		Restrictions map[string]core.Restrictions `json:"restrictions"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	for _, name := range []string{"conservative", "moderate", "aggressive"} {
		if _, ok := resp.Assumptions[name]; !ok {
			t.Errorf("presets missing assumption profile %q", name)
		}
	}
	for _, name := range []string{"default", "strict", "lenient"} {
		if _, ok := resp.Restrictions[name]; !ok {
			t.Errorf("presets missing restriction profile %q", name)
		}
	}
}
