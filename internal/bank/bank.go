// Package bank holds the top-level registry that mediates cross-account
// operations and the periodic batch jobs.
package bank

import (
	"log/slog"

	"github.com/shopspring/decimal"

	"banking-ledger/internal/domain"
	"banking-ledger/internal/errors"
	"banking-ledger/internal/idgen"
)

const (
	userIDPrefix    = "USER"
	accountIDPrefix = "ACCT"
	txnIDPrefix     = "TXN"
)

// Bank registers users and accounts and keeps a bank-wide transaction log.
// All state is in memory and mutated in place; the type assumes a single
// logical caller at a time and takes no locks.
type Bank struct {
	name         string
	users        map[string]*domain.User
	accounts     map[string]*domain.Account
	transactions []*domain.Transaction
	gen          idgen.Generator
	logger       *slog.Logger
}

func New(name string, gen idgen.Generator, logger *slog.Logger) *Bank {
	return &Bank{
		name:     name,
		users:    make(map[string]*domain.User),
		accounts: make(map[string]*domain.Account),
		gen:      gen,
		logger:   logger,
	}
}

func (b *Bank) Name() string { return b.name }

// Transactions returns a snapshot of the bank-wide log, oldest first. Only
// transactions created by bank-level operations (transfers, batch jobs) land
// here; plain deposits and withdrawals live on their account's history alone.
func (b *Bank) Transactions() []*domain.Transaction {
	out := make([]*domain.Transaction, len(b.transactions))
	copy(out, b.transactions)
	return out
}

// CreateUser registers a new customer under a fresh ID.
func (b *Bank) CreateUser(name, email, phone string) *domain.User {
	userID := b.gen.NewID(userIDPrefix)
	user := domain.NewUser(userID, name, email, phone)
	b.users[userID] = user

	b.logger.Info("user created", "user_id", userID, "name", name)
	return user
}

func (b *Bank) GetUser(userID string) (*domain.User, error) {
	user, ok := b.users[userID]
	if !ok {
		return nil, errors.ErrUserNotFound
	}
	return user, nil
}

func (b *Bank) GetAccount(accountID string) (*domain.Account, error) {
	account, ok := b.accounts[accountID]
	if !ok {
		return nil, errors.ErrAccountNotFound
	}
	return account, nil
}

// CreateCheckingAccount opens a checking account for an existing user. The
// initial deposit is recorded as the opening balance without validation, so a
// negative opening balance is accepted as-is.
func (b *Bank) CreateCheckingAccount(userID string, initialDeposit, overdraftLimit decimal.Decimal) (*domain.Account, error) {
	user, err := b.GetUser(userID)
	if err != nil {
		return nil, err
	}

	accountID := b.gen.NewID(accountIDPrefix)
	account := domain.NewCheckingAccount(accountID, userID, initialDeposit, overdraftLimit, b.gen)
	b.accounts[accountID] = account
	user.AddAccount(account)

	b.logger.Info("checking account created",
		"account_id", accountID,
		"user_id", userID,
		"balance", initialDeposit,
		"overdraft_limit", overdraftLimit)
	return account, nil
}

// CreateSavingsAccount opens a savings account for an existing user, with the
// same unvalidated opening balance as CreateCheckingAccount.
func (b *Bank) CreateSavingsAccount(userID string, initialDeposit, interestRate decimal.Decimal) (*domain.Account, error) {
	user, err := b.GetUser(userID)
	if err != nil {
		return nil, err
	}

	accountID := b.gen.NewID(accountIDPrefix)
	account := domain.NewSavingsAccount(accountID, userID, initialDeposit, interestRate, b.gen)
	b.accounts[accountID] = account
	user.AddAccount(account)

	b.logger.Info("savings account created",
		"account_id", accountID,
		"user_id", userID,
		"balance", initialDeposit,
		"interest_rate", interestRate)
	return account, nil
}

// Transfer moves amount between two registered accounts. The check is against
// the source's raw balance only: a checking account's overdraft room is not
// usable for transfers. Both balances are adjusted directly, and one transfer
// transaction is shared by reference between the source history, the
// destination history and the bank log.
func (b *Bank) Transfer(fromAccountID, toAccountID string, amount decimal.Decimal) (*domain.Transaction, error) {
	if !amount.IsPositive() {
		return nil, errors.ErrInvalidAmount
	}

	from, err := b.GetAccount(fromAccountID)
	if err != nil {
		return nil, err
	}
	to, err := b.GetAccount(toAccountID)
	if err != nil {
		return nil, err
	}

	if from.Balance().LessThan(amount) {
		return nil, errors.ErrInsufficientFunds
	}

	from.Debit(amount)
	to.Credit(amount)

	tx := domain.NewTransaction(b.gen.NewID(txnIDPrefix), domain.TypeTransfer, amount,
		fromAccountID, toAccountID, "Transfer between accounts")
	from.Record(tx)
	to.Record(tx)
	b.transactions = append(b.transactions, tx)

	b.logger.Info("transfer completed",
		"transaction_id", tx.ID(),
		"from_account_id", fromAccountID,
		"to_account_id", toAccountID,
		"amount", amount)
	return tx, nil
}

func (b *Bank) GetUserAccounts(userID string) ([]*domain.Account, error) {
	user, err := b.GetUser(userID)
	if err != nil {
		return nil, err
	}
	return user.Accounts(), nil
}

// ApplyInterestToAllSavingsAccounts runs the monthly interest credit on every
// savings account and records the resulting transactions in the bank log.
// Order across accounts is map order and carries no guarantee.
func (b *Bank) ApplyInterestToAllSavingsAccounts() []*domain.Transaction {
	var applied []*domain.Transaction
	for _, account := range b.accounts {
		if account.Kind() != domain.KindSavings {
			continue
		}
		tx, err := account.ApplyInterest()
		if err != nil {
			b.logger.Error("interest application failed", "account_id", account.ID(), "error", err)
			continue
		}
		applied = append(applied, tx)
		b.transactions = append(b.transactions, tx)
	}

	b.logger.Info("interest applied to savings accounts", "count", len(applied))
	return applied
}

// ApplyMonthlyFeeToAllCheckingAccounts charges the maintenance fee on every
// checking account and records the fee transactions in the bank log.
func (b *Bank) ApplyMonthlyFeeToAllCheckingAccounts() []*domain.Transaction {
	var applied []*domain.Transaction
	for _, account := range b.accounts {
		if account.Kind() != domain.KindChecking {
			continue
		}
		tx, err := account.ApplyMonthlyFee()
		if err != nil {
			b.logger.Error("fee application failed", "account_id", account.ID(), "error", err)
			continue
		}
		applied = append(applied, tx)
		b.transactions = append(b.transactions, tx)
	}

	b.logger.Info("monthly fee applied to checking accounts", "count", len(applied))
	return applied
}

// ResetAllSavingsAccountWithdrawalLimits zeroes every savings account's
// withdrawal counter. Invoked by an external monthly schedule.
func (b *Bank) ResetAllSavingsAccountWithdrawalLimits() {
	for _, account := range b.accounts {
		if account.Kind() == domain.KindSavings {
			account.ResetMonthlyWithdrawals()
		}
	}

	b.logger.Info("savings withdrawal counters reset")
}
