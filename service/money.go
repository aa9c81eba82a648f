package service

import "github.com/shopspring/decimal"

// roundTo2Decimals rounds a value to cents, half away from zero.
func roundTo2Decimals(value float64) float64 {
	return decimal.NewFromFloat(value).Round(2).InexactFloat64()
}

// accumulator sums float64 amounts in fixed-point so long schedules do not
// drift.
type accumulator struct {
	sum decimal.Decimal
}

func (a *accumulator) Add(v float64) {
	a.sum = a.sum.Add(decimal.NewFromFloat(v))
}

func (a *accumulator) Float64() float64 {
	return a.sum.InexactFloat64()
}
