package agents

import (
	"math"

	"github.com/areumfire/macrosim-go/internal/config"
	"github.com/areumfire/macrosim-go/internal/rng"
)

// collateralRequirement is the equity cover demanded per unit of loan
// principal in the deterministic decision rule and the collateral leg of the
// composite score.
const collateralRequirement = 0.5

// BankSeed is the initial balance sheet a bank starts from.
type BankSeed struct {
	Capital  float64
	Reserves float64
	Loans    float64
	Deposits float64
}

// Bank accepts deposits, extends credit to firms, and must satisfy
// regulatory capital and reserve requirements.
type Bank struct {
	ID string

	Capital            float64
	Reserves           float64
	Loans              float64
	Deposits           float64
	NonPerformingLoans float64
	InterestRate       float64
	Profit             float64

	interestIncome  float64
	interestExpense float64
	lastPolicyRate  float64

	cfg config.BankConfig
	beh config.BankBehaviorConfig
}

// NewBank creates a bank from an initial balance sheet.
func NewBank(id string, seed BankSeed, cfg config.BankConfig, beh config.BankBehaviorConfig) *Bank {
	return &Bank{
		ID:             orID(id),
		Capital:        seed.Capital,
		Reserves:       seed.Reserves,
		Loans:          seed.Loans,
		Deposits:       seed.Deposits,
		InterestRate:   0.05,
		lastPolicyRate: 0.05,
		cfg:            cfg,
		beh:            beh,
	}
}

// CapitalRatio is capital over risk-weighted loans, re-derived on every
// read. A bank with no loans is unconstrained (ratio 1).
func (b *Bank) CapitalRatio() float64 {
	riskWeighted := b.Loans * b.cfg.RiskWeight
	if riskWeighted <= 0 {
		return 1.0
	}
	return b.Capital / riskWeighted
}

// ReserveRatio is reserves over deposits.
func (b *Bank) ReserveRatio() float64 {
	if b.Deposits <= 0 {
		return 1.0
	}
	return b.Reserves / b.Deposits
}

// MeetsCapitalRequirement reports whether the capital ratio clears the
// regulatory requirement plus the bank's own buffer.
func (b *Bank) MeetsCapitalRequirement() bool {
	return b.CapitalRatio() >= b.cfg.CapitalRequirement+b.beh.CapitalBuffer
}

// Step advances the bank one period: re-derive the lending rate from the
// last-known policy rate, accrue interest income and expense, provision
// against non-performing loans, book the profit into capital.
func (b *Bank) Step() {
	b.setLendingRate(b.lastPolicyRate)
	b.interestIncome = b.InterestRate * b.Loans
	depositRate := math.Max(b.InterestRate-0.02, 0)
	b.interestExpense = depositRate * b.Deposits
	provisions := 0.5 * b.NonPerformingLoans
	b.Profit = b.interestIncome - b.interestExpense - provisions
	b.Capital += b.Profit
}

// SetPolicyRate updates the lending rate for a new central bank policy rate.
func (b *Bank) SetPolicyRate(rate float64) {
	b.lastPolicyRate = rate
	b.setLendingRate(rate)
}

func (b *Bank) setLendingRate(policyRate float64) {
	nplRatio := 0.0
	if b.Loans > 0 {
		nplRatio = b.NonPerformingLoans / b.Loans
	}
	b.InterestRate = policyRate + b.beh.BaseInterestMarkup + b.beh.RiskPremiumSensitivity*nplRatio
}

// EvaluateLoan decides whether to extend a loan.
//
// When credit_score_noise_std > 0 and an RNG is provided, the decision uses
// a composite credit score (Gabaix 2014): each criterion is normalised so
// that 1.0 sits exactly at its threshold, the equal-weighted average is
// perturbed by one Gaussian draw, and the loan is approved when the noisy
// score exceeds 1. Otherwise the deterministic hard-threshold rule applies;
// it is the zero-noise limit of the scored rule.
func (b *Bank) EvaluateLoan(amount, borrowerEquity, borrowerRevenue float64, r *rng.Rand) bool {
	if !b.MeetsCapitalRequirement() {
		return false
	}
	if borrowerRevenue <= 0 {
		return false
	}

	threshold := b.beh.LendingThreshold
	noiseStd := b.beh.CreditScoreNoiseStd

	if noiseStd > 0 && r != nil {
		collateralScore := borrowerEquity / math.Max(amount*collateralRequirement, epsilon)
		coverageScore := (borrowerRevenue / math.Max(amount*b.InterestRate, epsilon)) / math.Max(threshold, epsilon)
		composite := 0.5*collateralScore + 0.5*coverageScore
		noise := r.Gaussian(0, noiseStd)
		return composite+noise > 1.0
	}

	if borrowerEquity < amount*collateralRequirement {
		return false
	}
	debtServiceCoverage := borrowerRevenue / math.Max(amount*b.InterestRate, epsilon)
	return debtServiceCoverage >= threshold
}

// ExtendLoan books a new loan and returns the interest rate charged. The
// loan creates a matching deposit.
func (b *Bank) ExtendLoan(amount float64) float64 {
	b.Loans += amount
	b.Deposits += amount
	return b.InterestRate
}

// RecordDefault adds a defaulted amount to non-performing loans.
func (b *Bank) RecordDefault(amount float64) {
	b.NonPerformingLoans += amount
}

// RecordRepayment reduces outstanding loans, clamped at zero.
func (b *Bank) RecordRepayment(amount float64) {
	b.Loans = math.Max(b.Loans-amount, 0)
}

// BankState is a flat snapshot of the bank for inspection.
type BankState struct {
	ID                 string  `json:"id"`
	Capital            float64 `json:"capital"`
	Reserves           float64 `json:"reserves"`
	Loans              float64 `json:"loans"`
	Deposits           float64 `json:"deposits"`
	NonPerformingLoans float64 `json:"non_performing_loans"`
	InterestRate       float64 `json:"interest_rate"`
	CapitalRatio       float64 `json:"capital_ratio"`
	Profit             float64 `json:"profit"`
}

// State returns a snapshot of the bank's state.
func (b *Bank) State() BankState {
	return BankState{
		ID:                 b.ID,
		Capital:            b.Capital,
		Reserves:           b.Reserves,
		Loans:              b.Loans,
		Deposits:           b.Deposits,
		NonPerformingLoans: b.NonPerformingLoans,
		InterestRate:       b.InterestRate,
		CapitalRatio:       b.CapitalRatio(),
		Profit:             b.Profit,
	}
}
