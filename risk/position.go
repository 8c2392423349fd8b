package risk

import "math"

type SizeInputs struct {
	Balance    float64
	RiskPct    float64 // 1 means 1% of balance
	EntryPrice float64
	StopPrice  float64
	// Step is the smallest tradeable size increment; 0 means whole units.
	Step float64
}

type SizeResult struct {
	Size         float64
	StopDistance float64
	RiskAmount   float64
}

// PositionSize returns the largest size, rounded down to Step, that loses
// no more than RiskPct of Balance if the stop is hit.
func PositionSize(in SizeInputs) SizeResult {
	dist := math.Abs(in.EntryPrice - in.StopPrice)
	riskAmt := in.Balance * in.RiskPct / 100

	res := SizeResult{StopDistance: dist, RiskAmount: riskAmt}
	if dist == 0 || riskAmt <= 0 {
		return res
	}

	step := in.Step
	if step <= 0 {
		step = 1
	}
	res.Size = math.Floor(riskAmt/dist/step) * step
	return res
}
