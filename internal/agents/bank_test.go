package agents

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/areumfire/macrosim-go/internal/config"
	"github.com/areumfire/macrosim-go/internal/rng"
)

func bankConfigs() (config.BankConfig, config.BankBehaviorConfig) {
	cfg := config.Default()
	return cfg.Banks, cfg.BankBehavior
}

func testBank(t *testing.T, seed BankSeed) *Bank {
	t.Helper()
	cfg, beh := bankConfigs()
	return NewBank("", seed, cfg, beh)
}

func TestCapitalRatio(t *testing.T) {
	b := testBank(t, BankSeed{Capital: 100, Loans: 1000})
	assert.InDelta(t, 0.1, b.CapitalRatio(), 1e-12)

	// No loans: unconstrained.
	b2 := testBank(t, BankSeed{Capital: 100})
	assert.Equal(t, 1.0, b2.CapitalRatio())
}

func TestReserveRatio(t *testing.T) {
	b := testBank(t, BankSeed{Reserves: 50, Deposits: 1000})
	assert.InDelta(t, 0.05, b.ReserveRatio(), 1e-12)

	b2 := testBank(t, BankSeed{Reserves: 50})
	assert.Equal(t, 1.0, b2.ReserveRatio())
}

func TestMeetsCapitalRequirement(t *testing.T) {
	// Requirement 0.10 + buffer 0.02.
	b := testBank(t, BankSeed{Capital: 130, Loans: 1000})
	assert.True(t, b.MeetsCapitalRequirement())

	b2 := testBank(t, BankSeed{Capital: 110, Loans: 1000})
	assert.False(t, b2.MeetsCapitalRequirement())
}

func TestSetPolicyRate(t *testing.T) {
	b := testBank(t, BankSeed{Capital: 1000, Loans: 1000})
	b.NonPerformingLoans = 100

	b.SetPolicyRate(0.03)
	// policy + base markup + sensitivity * NPL ratio = 0.03 + 0.02 + 0.05*0.1
	assert.InDelta(t, 0.055, b.InterestRate, 1e-12)
}

func TestBankStep(t *testing.T) {
	b := testBank(t, BankSeed{Capital: 1000, Loans: 1000, Deposits: 500})
	b.NonPerformingLoans = 10
	b.SetPolicyRate(0.03)

	b.Step()

	// Rate re-derived from the last policy rate: 0.03 + 0.02 + 0.05*0.01.
	assert.InDelta(t, 0.0505, b.InterestRate, 1e-12)
	// income = rate*loans; deposit rate = rate-0.02; provision = 0.5*NPL.
	income := 0.0505 * 1000
	expense := (0.0505 - 0.02) * 500
	provision := 5.0
	assert.InDelta(t, income-expense-provision, b.Profit, 1e-9)
	assert.InDelta(t, 1000+income-expense-provision, b.Capital, 1e-9)
}

// TestEvaluateLoanHardThresholds covers scenario S5.
func TestEvaluateLoanHardThresholds(t *testing.T) {
	cfg, beh := bankConfigs()
	beh.LendingThreshold = 0.3
	beh.CreditScoreNoiseStd = 0
	b := NewBank("", BankSeed{Capital: 1_000_000}, cfg, beh)
	require.Equal(t, 0.05, b.InterestRate)
	require.True(t, b.MeetsCapitalRequirement())

	// Collateral short: equity 49 < 0.5 * 100.
	assert.False(t, b.EvaluateLoan(100, 49, 10_000, nil))

	// Coverage short: 1 / (100*0.05) = 0.2 < 0.3.
	assert.False(t, b.EvaluateLoan(100, 51, 1, nil))

	// Both clear.
	assert.True(t, b.EvaluateLoan(100, 60, 1000, nil))
}

func TestEvaluateLoanRejectsWithoutRevenue(t *testing.T) {
	b := testBank(t, BankSeed{Capital: 1_000_000})
	assert.False(t, b.EvaluateLoan(100, 1000, 0, nil))
	assert.False(t, b.EvaluateLoan(100, 1000, -5, nil))
}

func TestEvaluateLoanConstrainedBankRejects(t *testing.T) {
	cfg, beh := bankConfigs()
	beh.CreditScoreNoiseStd = 0.5
	b := NewBank("", BankSeed{Capital: 10, Loans: 1000}, cfg, beh)

	// Capital-constrained banks reject before any scoring, noisy or not.
	r := rng.New(1)
	for i := 0; i < 50; i++ {
		assert.False(t, b.EvaluateLoan(100, 1_000_000, 1_000_000, r))
	}
}

func TestEvaluateLoanNoisyExtremes(t *testing.T) {
	cfg, beh := bankConfigs()
	beh.CreditScoreNoiseStd = 0.1
	b := NewBank("", BankSeed{Capital: 1_000_000}, cfg, beh)

	r := rng.New(7)
	// Clearly creditworthy: composite score far above 1 regardless of the
	// draw.
	for i := 0; i < 100; i++ {
		assert.True(t, b.EvaluateLoan(100, 10_000, 100_000, r))
	}
	// Hopeless: composite score near zero.
	for i := 0; i < 100; i++ {
		assert.False(t, b.EvaluateLoan(1_000_000, 1, 1, r))
	}
}

func TestEvaluateLoanNoisyMatchesDeterministicLimit(t *testing.T) {
	cfg, beh := bankConfigs()
	beh.LendingThreshold = 0.3
	beh.CreditScoreNoiseStd = 1e-12
	noisy := NewBank("", BankSeed{Capital: 1_000_000}, cfg, beh)

	beh.CreditScoreNoiseStd = 0
	hard := NewBank("", BankSeed{Capital: 1_000_000}, cfg, beh)

	// Well inside the approval region both paths agree.
	r := rng.New(3)
	assert.Equal(t,
		hard.EvaluateLoan(100, 60, 1000, nil),
		noisy.EvaluateLoan(100, 60, 1000, r))
	// Well inside the rejection region both paths agree.
	assert.Equal(t,
		hard.EvaluateLoan(100, 1, 1, nil),
		noisy.EvaluateLoan(100, 1, 1, r))
}

func TestExtendLoanCreatesDeposit(t *testing.T) {
	b := testBank(t, BankSeed{Capital: 1000})
	rate := b.ExtendLoan(250)

	assert.Equal(t, b.InterestRate, rate)
	assert.Equal(t, 250.0, b.Loans)
	assert.Equal(t, 250.0, b.Deposits)
}

func TestRecordDefaultAndRepayment(t *testing.T) {
	b := testBank(t, BankSeed{Capital: 1000, Loans: 500})

	b.RecordDefault(50)
	assert.Equal(t, 50.0, b.NonPerformingLoans)

	b.RecordRepayment(200)
	assert.Equal(t, 300.0, b.Loans)

	b.RecordRepayment(1000)
	assert.Equal(t, 0.0, b.Loans, "repayment clamps at zero")
}
