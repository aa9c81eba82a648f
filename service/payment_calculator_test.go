package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loan-amortizer/domain"
)

func TestLevelPayment(t *testing.T) {
	tests := []struct {
		name        string
		principal   float64
		rate        float64
		periods     int
		wantPayment float64
		wantBalloon float64
	}{
		{name: "30 year mortgage", principal: 200000, rate: 0.005, periods: 360, wantPayment: 1199.10},
		{name: "zero rate", principal: 1200, rate: 0, periods: 12, wantPayment: 100},
		{name: "single period", principal: 1000, rate: 0.01, periods: 1, wantPayment: 1010},
		{name: "no amortizing periods", principal: 200000, rate: 0.005, periods: 0, wantPayment: 1000, wantBalloon: 200000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := LevelPayment(tt.principal, tt.rate, tt.periods)
			require.NoError(t, err)
			assert.InDelta(t, tt.wantPayment, plan.Payment, 0.01)
			assert.InDelta(t, tt.wantBalloon, plan.FinalBalloonDue, 1e-9)
		})
	}
}

func TestLevelPayment_Errors(t *testing.T) {
	_, err := LevelPayment(0, 0.005, 360)
	assert.ErrorIs(t, err, domain.ErrInvalidTerm)

	_, err = LevelPayment(-100, 0.005, 360)
	assert.ErrorIs(t, err, domain.ErrInvalidTerm)

	_, err = LevelPayment(1000, 0.005, -1)
	assert.ErrorIs(t, err, domain.ErrInvalidTerm)

	_, err = LevelPayment(1000, -0.005, 12)
	assert.ErrorIs(t, err, domain.ErrInvalidRate)
}
