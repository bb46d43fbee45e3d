package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"banking-ledger/internal/errors"
	"banking-ledger/internal/idgen"
)

type AccountKind string

const (
	KindChecking AccountKind = "checking"
	KindSavings  AccountKind = "savings"
)

const txnIDPrefix = "TXN"

var (
	defaultMonthlyFee             = decimal.NewFromFloat(5.00)
	defaultMonthlyWithdrawalLimit = 6
)

// Account is a single bank account over a closed set of kinds. The two kinds
// share balance and history mechanics and differ in withdrawal policy and in
// which periodic operation applies to them (fee for checking, interest for
// savings).
type Account struct {
	id           string
	userID       string
	kind         AccountKind
	balance      decimal.Decimal
	transactions []*Transaction
	openedAt     time.Time
	active       bool
	gen          idgen.Generator

	// checking
	overdraftLimit decimal.Decimal
	monthlyFee     decimal.Decimal

	// savings
	interestRate           decimal.Decimal
	monthlyWithdrawalLimit int
	withdrawalsThisMonth   int
	lastInterestAt         time.Time
}

// NewCheckingAccount opens a checking account. The opening balance is taken
// as-is, negative included; overdraftLimit bounds how far withdrawals may push
// the balance below zero.
func NewCheckingAccount(id, userID string, balance, overdraftLimit decimal.Decimal, gen idgen.Generator) *Account {
	a := newAccount(id, userID, KindChecking, balance, gen)
	a.overdraftLimit = overdraftLimit
	a.monthlyFee = defaultMonthlyFee
	return a
}

// NewSavingsAccount opens a savings account with an annual interest rate in
// percent and the default monthly withdrawal limit.
func NewSavingsAccount(id, userID string, balance, interestRate decimal.Decimal, gen idgen.Generator) *Account {
	a := newAccount(id, userID, KindSavings, balance, gen)
	a.interestRate = interestRate
	a.monthlyWithdrawalLimit = defaultMonthlyWithdrawalLimit
	a.lastInterestAt = a.openedAt
	return a
}

func newAccount(id, userID string, kind AccountKind, balance decimal.Decimal, gen idgen.Generator) *Account {
	return &Account{
		id:       id,
		userID:   userID,
		kind:     kind,
		balance:  balance,
		openedAt: time.Now(),
		active:   true,
		gen:      gen,
	}
}

func (a *Account) ID() string { return a.id }
func (a *Account) UserID() string { return a.userID }
func (a *Account) Kind() AccountKind { return a.kind }
func (a *Account) Balance() decimal.Decimal { return a.balance }
func (a *Account) OpenedAt() time.Time { return a.openedAt }
func (a *Account) Active() bool { return a.active }

func (a *Account) OverdraftLimit() decimal.Decimal { return a.overdraftLimit }
func (a *Account) MonthlyFee() decimal.Decimal { return a.monthlyFee }

func (a *Account) InterestRate() decimal.Decimal { return a.interestRate }
func (a *Account) MonthlyWithdrawalLimit() int { return a.monthlyWithdrawalLimit }
func (a *Account) WithdrawalsThisMonth() int { return a.withdrawalsThisMonth }
func (a *Account) LastInterestAt() time.Time { return a.lastInterestAt }

// Deposit adds amount to the balance and records a deposit transaction.
func (a *Account) Deposit(amount decimal.Decimal) (*Transaction, error) {
	if !amount.IsPositive() {
		return nil, errors.ErrInvalidAmount
	}

	a.balance = a.balance.Add(amount)
	tx := NewTransaction(a.gen.NewID(txnIDPrefix), TypeDeposit, amount, "", a.id, "Deposit into account")
	a.transactions = append(a.transactions, tx)
	return tx, nil
}

// Withdraw removes amount from the balance under the kind's policy: savings
// enforces the monthly withdrawal count before anything else and never lets
// the balance go negative; checking allows the balance down to
// -overdraftLimit.
func (a *Account) Withdraw(amount decimal.Decimal) (*Transaction, error) {
	// The limit check precedes amount validation, so a limit-exhausted
	// account rejects even a malformed withdrawal with the limit error.
	if a.kind == KindSavings && a.withdrawalsThisMonth >= a.monthlyWithdrawalLimit {
		return nil, errors.ErrWithdrawalLimitReached
	}

	if !amount.IsPositive() {
		return nil, errors.ErrInvalidAmount
	}

	switch a.kind {
	case KindChecking:
		if amount.GreaterThan(a.balance.Add(a.overdraftLimit)) {
			return nil, errors.ErrOverdraftExceeded
		}
	default:
		if amount.GreaterThan(a.balance) {
			return nil, errors.ErrInsufficientFunds
		}
	}

	a.balance = a.balance.Sub(amount)
	tx := NewTransaction(a.gen.NewID(txnIDPrefix), TypeWithdrawal, amount, a.id, "", "Withdrawal from account")
	a.transactions = append(a.transactions, tx)

	if a.kind == KindSavings {
		a.withdrawalsThisMonth++
	}
	return tx, nil
}

// ApplyMonthlyFee charges the checking account's fixed maintenance fee. The
// charge is unconditional: no funds check, and the balance may end up below
// -overdraftLimit.
func (a *Account) ApplyMonthlyFee() (*Transaction, error) {
	if a.kind != KindChecking {
		return nil, errors.ErrInvalidAccountType
	}

	a.balance = a.balance.Sub(a.monthlyFee)
	tx := NewTransaction(a.gen.NewID(txnIDPrefix), TypeFee, a.monthlyFee, a.id, "", "Monthly maintenance fee")
	a.transactions = append(a.transactions, tx)
	return tx, nil
}

// ApplyInterest credits one month of simple interest from the annual rate,
// rounded to 4 decimal places. A zero or negative rate is allowed and yields a
// zero or negative credit.
func (a *Account) ApplyInterest() (*Transaction, error) {
	if a.kind != KindSavings {
		return nil, errors.ErrInvalidAccountType
	}

	monthlyRate := a.interestRate.Div(decimal.NewFromInt(12)).Div(decimal.NewFromInt(100))
	interest := a.balance.Mul(monthlyRate).Round(4)
	a.balance = a.balance.Add(interest)

	tx := NewTransaction(a.gen.NewID(txnIDPrefix), TypeInterest, interest, "", a.id, "Monthly interest")
	a.transactions = append(a.transactions, tx)
	a.lastInterestAt = time.Now()
	return tx, nil
}

// ResetMonthlyWithdrawals zeroes the withdrawal counter. Meant to be driven by
// an external monthly schedule; nothing in the account triggers it.
func (a *Account) ResetMonthlyWithdrawals() {
	a.withdrawalsThisMonth = 0
}

// Credit adds amount to the balance without recording a transaction. Used by
// the bank's transfer path, which records a single shared transfer record via
// Record instead.
func (a *Account) Credit(amount decimal.Decimal) {
	a.balance = a.balance.Add(amount)
}

// Debit removes amount from the balance without recording a transaction.
func (a *Account) Debit(amount decimal.Decimal) {
	a.balance = a.balance.Sub(amount)
}

// Record appends an externally created transaction to the history. The same
// *Transaction may be recorded on several accounts.
func (a *Account) Record(tx *Transaction) {
	a.transactions = append(a.transactions, tx)
}

// History returns the account's transactions, oldest first, as a snapshot
// taken at call time.
func (a *Account) History() []*Transaction {
	out := make([]*Transaction, len(a.transactions))
	copy(out, a.transactions)
	return out
}

type CheckingInfo struct {
	OverdraftLimit decimal.Decimal `json:"overdraft_limit"`
	MonthlyFee     decimal.Decimal `json:"monthly_fee"`
}

type SavingsInfo struct {
	InterestRate           decimal.Decimal `json:"interest_rate"`
	MonthlyWithdrawalLimit int             `json:"monthly_withdrawal_limit"`
	WithdrawalsThisMonth   int             `json:"withdrawals_this_month"`
	LastInterestAt         time.Time       `json:"last_interest_at"`
}

type AccountInfo struct {
	ID               string          `json:"id"`
	UserID           string          `json:"user_id"`
	Kind             AccountKind     `json:"kind"`
	Balance          decimal.Decimal `json:"balance"`
	OpenedAt         time.Time       `json:"opened_at"`
	Active           bool            `json:"active"`
	TransactionCount int             `json:"transaction_count"`
	Checking         *CheckingInfo   `json:"checking,omitempty"`
	Savings          *SavingsInfo    `json:"savings,omitempty"`
}

// Info returns the base snapshot extended with the kind-specific fields.
func (a *Account) Info() AccountInfo {
	info := AccountInfo{
		ID:               a.id,
		UserID:           a.userID,
		Kind:             a.kind,
		Balance:          a.balance,
		OpenedAt:         a.openedAt,
		Active:           a.active,
		TransactionCount: len(a.transactions),
	}
	switch a.kind {
	case KindChecking:
		info.Checking = &CheckingInfo{
			OverdraftLimit: a.overdraftLimit,
			MonthlyFee:     a.monthlyFee,
		}
	case KindSavings:
		info.Savings = &SavingsInfo{
			InterestRate:           a.interestRate,
			MonthlyWithdrawalLimit: a.monthlyWithdrawalLimit,
			WithdrawalsThisMonth:   a.withdrawalsThisMonth,
			LastInterestAt:         a.lastInterestAt,
		}
	}
	return info
}
