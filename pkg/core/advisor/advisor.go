// Package advisor turns a computed scenario into a plain-language
// recommendation using a text-generation backend.
package advisor

import (
	"context"
	"fmt"
	"strings"

	"mortgage_scenario/pkg/core/llm"
	"mortgage_scenario/pkg/core/scenario"
	"mortgage_scenario/pkg/core/utils"
)

// Verdict is the structured half of an advisory response.
type Verdict struct {
	Recommendation string   `json:"recommendation"` // "buy_property", "invest_market", or "borderline"
	Confidence     float64  `json:"confidence"`     // 0..1
	KeyRisks       []string `json:"key_risks"`
	Summary        string   `json:"summary"`
}

// Advice couples the structured verdict with the full narrative text.
type Advice struct {
	Verdict   Verdict `json:"verdict"`
	Narrative string  `json:"narrative"`
}

// Advisor asks a model to interpret scenario results.
type Advisor struct {
	provider llm.Provider
}

// New returns an advisor backed by the given provider. A nil provider
// selects one from the environment.
func New(provider llm.Provider) *Advisor {
	if provider == nil {
		provider = llm.FromEnv()
	}
	return &Advisor{provider: provider}
}

const systemPrompt = `You are a real-estate investment analyst. You receive the computed
results of a leveraged property purchase scenario compared against investing the same
capital in a market portfolio. Respond ONLY with a JSON object of this shape:
{"recommendation": "buy_property"|"invest_market"|"borderline", "confidence": 0.0-1.0,
"key_risks": ["..."], "summary": "..."}
Base your judgment strictly on the numbers provided. Do not invent figures.`

// Advise generates a structured verdict for a computed scenario.
func (a *Advisor) Advise(ctx context.Context, inputs scenario.Inputs, result scenario.Result) (Advice, error) {
	prompt := buildPrompt(inputs, result)

	raw, err := a.provider.GenerateResponse(ctx, prompt, systemPrompt, map[string]interface{}{
		"response_format": map[string]interface{}{"type": "json_object"},
	})
	if err != nil {
		return Advice{}, fmt.Errorf("advisor generation failed: %w", err)
	}

	var verdict Verdict
	normalized, err := utils.SmartParse(raw, &verdict)
	if err != nil {
		return Advice{}, fmt.Errorf("advisor returned unparseable verdict: %w", err)
	}

	verdict.Recommendation = normalizeRecommendation(verdict.Recommendation)

	return Advice{Verdict: verdict, Narrative: normalized}, nil
}

// Narrate generates a free-form markdown explanation of the scenario.
func (a *Advisor) Narrate(ctx context.Context, inputs scenario.Inputs, result scenario.Result) (string, error) {
	prompt := buildPrompt(inputs, result) +
		"\n\nWrite a short markdown report (no more than 300 words) explaining whether " +
		"buying the property beats the market portfolio for this buyer, and the main risks."

	raw, err := a.provider.GenerateResponse(ctx, prompt, "", nil)
	if err != nil {
		return "", fmt.Errorf("advisor narration failed: %w", err)
	}
	return utils.CleanMarkdown(raw), nil
}

func buildPrompt(in scenario.Inputs, r scenario.Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Scenario inputs:\n")
	fmt.Fprintf(&b, "- Property price: %.0f\n", in.PropertyPrice)
	fmt.Fprintf(&b, "- Down payment: %.0f\n", in.DownPayment)
	fmt.Fprintf(&b, "- Available cash: %.0f\n", in.AvailableCash)
	fmt.Fprintf(&b, "- Monthly income: %.0f, monthly available: %.0f\n", in.MonthlyIncome, in.MonthlyAvailable)
	fmt.Fprintf(&b, "- Mortgage term: %d years, sale after %d years\n", in.MortgageTermYears, in.YearsUntilSale)
	fmt.Fprintf(&b, "- First house: %v, urban renewal value: %.0f\n", in.IsFirstHouse, in.UrbanRenewalValue)

	fmt.Fprintf(&b, "\nComputed results:\n")
	fmt.Fprintf(&b, "- Loan amount: %.0f (leverage ratio %.2f)\n", r.Loan.LoanAmount, r.Loan.LeverageRatio)
	fmt.Fprintf(&b, "- Monthly mortgage payment: %.0f, monthly rent: %.0f, net cash flow: %.0f\n",
		r.Loan.MonthlyPayment, r.CashFlow.MonthlyRent, r.CashFlow.MonthlyNetCashFlow)
	fmt.Fprintf(&b, "- Property value at sale: %.0f\n", r.Appreciation.SaleValue)
	fmt.Fprintf(&b, "- Net property gain before taxes: %.0f, after taxes: %.0f\n",
		r.EarlyRepayment.NetGainProperty, r.Taxes.NetProfitAfterTaxes)
	fmt.Fprintf(&b, "- Portfolio counterfactual net profit: %.0f\n", r.Portfolio.NetPortfolioProfit)
	fmt.Fprintf(&b, "- Total profit: %.0f, annualized return: %.4f\n", r.TotalProfit, r.AnnualReturn)

	if !r.IsValid {
		fmt.Fprintf(&b, "\nValidation failures:\n")
		for _, e := range r.ValidationErrors {
			fmt.Fprintf(&b, "- %s\n", e)
		}
	}

	return b.String()
}

func normalizeRecommendation(rec string) string {
	switch strings.ToLower(strings.TrimSpace(rec)) {
	case "buy_property", "buy", "property":
		return "buy_property"
	case "invest_market", "market", "portfolio":
		return "invest_market"
	default:
		return "borderline"
	}
}
