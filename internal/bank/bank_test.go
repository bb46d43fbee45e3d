package bank_test

import (
	"io"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"banking-ledger/internal/bank"
	"banking-ledger/internal/domain"
	"banking-ledger/internal/errors"
	"banking-ledger/internal/idgen"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type BankTestSuite struct {
	suite.Suite
	bank *bank.Bank
	john *domain.User
	jane *domain.User
}

func (s *BankTestSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.bank = bank.New("Modern Bank", idgen.NewSequence(), logger)
	s.john = s.bank.CreateUser("John Doe", "john@example.com", "555-123-4567")
	s.jane = s.bank.CreateUser("Jane Smith", "jane@example.com", "555-765-4321")
}

func (s *BankTestSuite) TestCreateUserAndLookup() {
	got, err := s.bank.GetUser(s.john.ID())
	s.Require().NoError(err)
	s.Same(s.john, got)
	s.NotEqual(s.john.ID(), s.jane.ID())

	_, err = s.bank.GetUser("USER-unknown")
	s.ErrorIs(err, errors.ErrUserNotFound)
}

func (s *BankTestSuite) TestCreateAccounts() {
	checking, err := s.bank.CreateCheckingAccount(s.john.ID(), dec("1000"), dec("200"))
	s.Require().NoError(err)
	savings, err := s.bank.CreateSavingsAccount(s.john.ID(), dec("5000"), dec("1.25"))
	s.Require().NoError(err)

	s.Equal(domain.KindChecking, checking.Kind())
	s.Equal(domain.KindSavings, savings.Kind())
	s.NotEqual(checking.ID(), savings.ID())
	s.Equal(s.john.ID(), checking.UserID())

	got, err := s.bank.GetAccount(checking.ID())
	s.Require().NoError(err)
	s.Same(checking, got)

	accounts, err := s.bank.GetUserAccounts(s.john.ID())
	s.Require().NoError(err)
	s.Require().Len(accounts, 2)
	s.Same(checking, accounts[0])
	s.Same(savings, accounts[1])
}

func (s *BankTestSuite) TestCreateAccountNegativeOpeningBalance() {
	// Opening balances are taken as-is, negative included.
	a, err := s.bank.CreateCheckingAccount(s.john.ID(), dec("-50"), dec("0"))
	s.Require().NoError(err)
	s.Equal("-50", a.Balance().String())
}

func (s *BankTestSuite) TestCreateAccountUnknownUser() {
	_, err := s.bank.CreateCheckingAccount("USER-unknown", dec("1000"), dec("0"))
	s.ErrorIs(err, errors.ErrUserNotFound)

	_, err = s.bank.CreateSavingsAccount("USER-unknown", dec("1000"), dec("1.25"))
	s.ErrorIs(err, errors.ErrUserNotFound)

	accounts, err := s.bank.GetUserAccounts(s.john.ID())
	s.Require().NoError(err)
	s.Empty(accounts)
}

func (s *BankTestSuite) TestGetAccountNotFound() {
	_, err := s.bank.GetAccount("ACCT-unknown")
	s.ErrorIs(err, errors.ErrAccountNotFound)

	_, err = s.bank.GetUserAccounts("USER-unknown")
	s.ErrorIs(err, errors.ErrUserNotFound)
}

func (s *BankTestSuite) TestTransferSharesOneTransaction() {
	from, err := s.bank.CreateSavingsAccount(s.john.ID(), dec("5000"), dec("1.25"))
	s.Require().NoError(err)
	to, err := s.bank.CreateCheckingAccount(s.jane.ID(), dec("2500"), dec("0"))
	s.Require().NoError(err)

	tx, err := s.bank.Transfer(from.ID(), to.ID(), dec("1500"))
	s.Require().NoError(err)

	s.Equal("3500", from.Balance().String())
	s.Equal("4000", to.Balance().String())
	s.Equal(domain.TypeTransfer, tx.Type())
	s.Equal(from.ID(), tx.FromAccountID())
	s.Equal(to.ID(), tx.ToAccountID())

	// One shared record, visible once in each of the three logs.
	s.Equal(1, countTx(from.History(), tx))
	s.Equal(1, countTx(to.History(), tx))
	s.Equal(1, countTx(s.bank.Transactions(), tx))
}

func (s *BankTestSuite) TestTransferInsufficientFunds() {
	from, err := s.bank.CreateSavingsAccount(s.john.ID(), dec("100"), dec("1.25"))
	s.Require().NoError(err)
	to, err := s.bank.CreateCheckingAccount(s.jane.ID(), dec("2500"), dec("0"))
	s.Require().NoError(err)

	_, err = s.bank.Transfer(from.ID(), to.ID(), dec("150"))
	s.ErrorIs(err, errors.ErrInsufficientFunds)

	s.Equal("100", from.Balance().String())
	s.Equal("2500", to.Balance().String())
	s.Empty(from.History())
	s.Empty(to.History())
	s.Empty(s.bank.Transactions())
}

func (s *BankTestSuite) TestTransferIgnoresOverdraft() {
	// A checking source cannot fund a transfer from its overdraft room.
	from, err := s.bank.CreateCheckingAccount(s.john.ID(), dec("100"), dec("200"))
	s.Require().NoError(err)
	to, err := s.bank.CreateCheckingAccount(s.jane.ID(), dec("0"), dec("0"))
	s.Require().NoError(err)

	_, err = s.bank.Transfer(from.ID(), to.ID(), dec("150"))
	s.ErrorIs(err, errors.ErrInsufficientFunds)
}

func (s *BankTestSuite) TestTransferValidation() {
	from, err := s.bank.CreateCheckingAccount(s.john.ID(), dec("1000"), dec("0"))
	s.Require().NoError(err)

	_, err = s.bank.Transfer(from.ID(), "ACCT-unknown", dec("0"))
	s.ErrorIs(err, errors.ErrInvalidAmount, "amount validation runs before lookups")

	_, err = s.bank.Transfer("ACCT-unknown", from.ID(), dec("10"))
	s.ErrorIs(err, errors.ErrAccountNotFound)

	_, err = s.bank.Transfer(from.ID(), "ACCT-unknown", dec("10"))
	s.ErrorIs(err, errors.ErrAccountNotFound)
	s.Equal("1000", from.Balance().String())
}

func (s *BankTestSuite) TestApplyInterestToAllSavingsAccounts() {
	savings1, err := s.bank.CreateSavingsAccount(s.john.ID(), dec("1000"), dec("1.25"))
	s.Require().NoError(err)
	savings2, err := s.bank.CreateSavingsAccount(s.jane.ID(), dec("2400"), dec("5"))
	s.Require().NoError(err)
	checking, err := s.bank.CreateCheckingAccount(s.jane.ID(), dec("500"), dec("0"))
	s.Require().NoError(err)

	applied := s.bank.ApplyInterestToAllSavingsAccounts()
	s.Require().Len(applied, 2)

	s.Equal("1001.0417", savings1.Balance().String())
	s.Equal("2410", savings2.Balance().String())
	s.Equal("500", checking.Balance().String(), "checking accounts earn no interest")

	bankLog := s.bank.Transactions()
	s.Require().Len(bankLog, 2)
	for _, tx := range applied {
		s.Equal(domain.TypeInterest, tx.Type())
		s.Equal(1, countTx(bankLog, tx))
	}
}

func (s *BankTestSuite) TestApplyMonthlyFeeToAllCheckingAccounts() {
	checking, err := s.bank.CreateCheckingAccount(s.john.ID(), dec("100"), dec("0"))
	s.Require().NoError(err)
	savings, err := s.bank.CreateSavingsAccount(s.john.ID(), dec("100"), dec("1.25"))
	s.Require().NoError(err)

	applied := s.bank.ApplyMonthlyFeeToAllCheckingAccounts()
	s.Require().Len(applied, 1)

	s.Equal("95", checking.Balance().String())
	s.Equal("100", savings.Balance().String())
	s.Equal(domain.TypeFee, applied[0].Type())
	s.Equal(1, countTx(s.bank.Transactions(), applied[0]))
}

func (s *BankTestSuite) TestResetAllSavingsAccountWithdrawalLimits() {
	savings, err := s.bank.CreateSavingsAccount(s.john.ID(), dec("5000"), dec("1.25"))
	s.Require().NoError(err)

	for i := 0; i < savings.MonthlyWithdrawalLimit(); i++ {
		_, err := savings.Withdraw(dec("1"))
		s.Require().NoError(err)
	}
	_, err = savings.Withdraw(dec("1"))
	s.ErrorIs(err, errors.ErrWithdrawalLimitReached)

	s.bank.ResetAllSavingsAccountWithdrawalLimits()
	s.Equal(0, savings.WithdrawalsThisMonth())

	_, err = savings.Withdraw(dec("1"))
	s.NoError(err)
}

// TestWalkthrough replays the full demo scenario end to end and checks the
// resulting balances and logs.
func (s *BankTestSuite) TestWalkthrough() {
	johnsChecking, err := s.bank.CreateCheckingAccount(s.john.ID(), dec("1000"), dec("200"))
	s.Require().NoError(err)
	johnsSavings, err := s.bank.CreateSavingsAccount(s.john.ID(), dec("5000"), dec("1.25"))
	s.Require().NoError(err)
	janesChecking, err := s.bank.CreateCheckingAccount(s.jane.ID(), dec("2500"), dec("0"))
	s.Require().NoError(err)

	_, err = johnsChecking.Deposit(dec("500"))
	s.Require().NoError(err)
	s.Equal("1500", johnsChecking.Balance().String())

	_, err = johnsSavings.Withdraw(dec("1000"))
	s.Require().NoError(err)
	s.Equal("4000", johnsSavings.Balance().String())

	_, err = s.bank.Transfer(johnsSavings.ID(), janesChecking.ID(), dec("1500"))
	s.Require().NoError(err)
	s.Equal("2500", johnsSavings.Balance().String())
	s.Equal("4000", janesChecking.Balance().String())

	applied := s.bank.ApplyInterestToAllSavingsAccounts()
	s.Require().Len(applied, 1)
	s.Equal("2.6042", applied[0].Amount().String())
	s.Equal("2502.6042", johnsSavings.Balance().String())

	// Savings history: withdrawal, shared transfer, interest.
	s.Len(johnsSavings.History(), 3)
	s.Equal(3, johnsSavings.Info().TransactionCount)

	// Balance invariant across every account.
	for _, a := range []*domain.Account{johnsChecking, johnsSavings, janesChecking} {
		net := decimal.Zero
		for _, tx := range a.History() {
			net = net.Add(tx.SignedAmountFor(a.ID()))
		}
		s.True(a.Info().Balance.Sub(net).Equal(openingBalanceOf(a.ID())), "account %s", a.ID())
	}
}

func openingBalanceOf(accountID string) decimal.Decimal {
	openings := map[string]decimal.Decimal{
		"ACCT-000003": dec("1000"), // johns checking
		"ACCT-000004": dec("5000"), // johns savings
		"ACCT-000005": dec("2500"), // janes checking
	}
	return openings[accountID]
}

func countTx(log []*domain.Transaction, target *domain.Transaction) int {
	n := 0
	for _, tx := range log {
		if tx == target {
			n++
		}
	}
	return n
}

func TestBankTestSuite(t *testing.T) {
	suite.Run(t, new(BankTestSuite))
}
