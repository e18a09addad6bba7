// Package financial provides Excel-compatible time-value-of-money functions:
// PMT, FV, PV, compound growth and annualized-return conversions.
// Results were validated against spreadsheet output, so the zero-rate and
// zero-principal branches must stay exactly as documented on each function.
package financial

import "math"

// Pmt returns the level monthly payment that amortizes principal over
// nMonths at annualRate (annual decimal, divided by 12 internally).
// The result is a payment magnitude, always non-negative.
func Pmt(annualRate float64, nMonths int, principal float64) float64 {
	if principal == 0 {
		return 0
	}
	if annualRate == 0 {
		// Straight-line, no interest.
		return principal / float64(nMonths)
	}

	r := annualRate / 12
	n := float64(nMonths)
	return principal * r / (1 - math.Pow(1+r, -n))
}

// Fv returns the future value of a level payment stream plus a lump sum
// (Excel FV semantics: deposits are negative, the result is positive).
// periodRate is the rate per period, not annual.
func Fv(periodRate float64, nPeriods int, periodPayment, presentValue float64) float64 {
	n := float64(nPeriods)
	if periodRate == 0 {
		return -(presentValue + periodPayment*n)
	}

	growth := math.Pow(1+periodRate, n)
	return -(presentValue*growth + periodPayment*(growth-1)/periodRate)
}

// Pv returns the present value of a level payment stream
// (Excel PV semantics).
func Pv(periodRate float64, nPeriods int, periodPayment float64) float64 {
	n := float64(nPeriods)
	if periodRate == 0 {
		return -periodPayment * n
	}

	return -periodPayment * (1 - math.Pow(1+periodRate, -n)) / periodRate
}

// CompoundGrowth returns the compounded gain only (future value minus
// principal) of principal at annualRate over years.
func CompoundGrowth(principal, annualRate, years float64) float64 {
	if years <= 0 || annualRate == 0 {
		return 0
	}
	return principal * (math.Pow(1+annualRate, years) - 1)
}

// CompoundValue returns the total compounded value of principal at
// annualRate over years. Zero years or a zero rate leave it unchanged.
func CompoundValue(principal, annualRate, years float64) float64 {
	if years <= 0 || annualRate == 0 {
		return principal
	}
	return principal * math.Pow(1+annualRate, years)
}

// AnnualizedReturn converts a cumulative fractional return over years into
// the equivalent compounded per-year rate, i.e. it solves
// (1+totalReturn) = (1+r)^years for r.
func AnnualizedReturn(totalReturn, years float64) float64 {
	if years <= 0 || totalReturn == 0 {
		return 0
	}
	return math.Pow(1+totalReturn, 1/years) - 1
}

// Nper returns the number of periods needed to amortize pv toward fv at
// periodRate with a signed payment per period (Excel NPER semantics).
func Nper(periodRate, payment, pv, fv float64) float64 {
	if periodRate == 0 {
		if payment == 0 {
			return 0
		}
		return -(pv + fv) / payment
	}

	num := payment - fv*periodRate
	den := payment + pv*periodRate
	return math.Log(num/den) / math.Log(1+periodRate)
}

// Ipmt returns the interest portion (positive) of the payment for a
// specific 1-indexed period of a level-payment loan.
func Ipmt(periodRate float64, period, nPeriods int, pv float64) float64 {
	if periodRate == 0 || pv == 0 {
		return 0
	}

	payment := pv * periodRate / (1 - math.Pow(1+periodRate, -float64(nPeriods)))
	k := float64(period - 1)
	// Balance remaining after period-1 payments.
	balance := pv*math.Pow(1+periodRate, k) - payment*(math.Pow(1+periodRate, k)-1)/periodRate
	return balance * periodRate
}

// Ppmt returns the principal portion (positive) of the payment for a
// specific 1-indexed period of a level-payment loan.
func Ppmt(periodRate float64, period, nPeriods int, pv float64) float64 {
	if periodRate == 0 {
		if nPeriods > 0 {
			return pv / float64(nPeriods)
		}
		return 0
	}
	if pv == 0 {
		return 0
	}

	payment := pv * periodRate / (1 - math.Pow(1+periodRate, -float64(nPeriods)))
	return payment - Ipmt(periodRate, period, nPeriods, pv)
}

// Npv returns the net present value of a cash flow series where
// cashflows[0] occurs at period 0.
func Npv(rate float64, cashflows []float64) float64 {
	if len(cashflows) == 0 {
		return 0
	}

	var npv float64
	for i, cf := range cashflows {
		npv += cf / math.Pow(1+rate, float64(i))
	}
	return npv
}

// Irr returns the internal rate of return of a cash flow series, or 0 when
// no solution is found. Newton iteration with a bisection fallback.
func Irr(cashflows []float64) float64 {
	if len(cashflows) < 2 {
		return 0
	}

	derivative := func(rate float64) float64 {
		var d float64
		for i, cf := range cashflows[1:] {
			t := float64(i + 1)
			d -= t * cf / math.Pow(1+rate, t+1)
		}
		return d
	}

	// Newton from a mild positive guess.
	rate := 0.1
	for i := 0; i < 100; i++ {
		v := Npv(rate, cashflows)
		if math.Abs(v) < 1e-9 {
			return rate
		}
		d := derivative(rate)
		if d == 0 || math.IsNaN(d) {
			break
		}
		next := rate - v/d
		if next <= -1 || math.IsNaN(next) || math.IsInf(next, 0) {
			break
		}
		if math.Abs(next-rate) < 1e-12 {
			return next
		}
		rate = next
	}

	// Bisection fallback over a wide but bounded range.
	lo, hi := -0.9999, 10.0
	vLo, vHi := Npv(lo, cashflows), Npv(hi, cashflows)
	if vLo*vHi > 0 {
		return 0
	}
	for i := 0; i < 200; i++ {
		mid := (lo + hi) / 2
		vMid := Npv(mid, cashflows)
		if math.Abs(vMid) < 1e-9 {
			return mid
		}
		if vLo*vMid < 0 {
			hi = mid
		} else {
			lo, vLo = mid, vMid
		}
	}
	return (lo + hi) / 2
}
