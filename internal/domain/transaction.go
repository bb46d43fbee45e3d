package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TypeDeposit    TransactionType = "deposit"
	TypeWithdrawal TransactionType = "withdrawal"
	TypeTransfer   TransactionType = "transfer"
	TypeFee        TransactionType = "fee"
	TypeInterest   TransactionType = "interest"
)

// StatusCompleted is the only transaction status. There is no pending/failed
// lifecycle: a Transaction exists only once its money movement has happened.
const StatusCompleted = "completed"

// Transaction is an immutable record of one money movement. Fields are set at
// construction and never change; a single Transaction may be referenced from
// several histories (the transfer case).
type Transaction struct {
	id          string
	txType      TransactionType
	amount      decimal.Decimal
	fromAccount string
	toAccount   string
	description string
	createdAt   time.Time
	status      string
}

// NewTransaction builds a completed transaction. Amount is always positive;
// direction is carried by the type and the from/to account IDs, where an empty
// string means "no account on that side".
func NewTransaction(id string, txType TransactionType, amount decimal.Decimal, fromAccount, toAccount, description string) *Transaction {
	return &Transaction{
		id:          id,
		txType:      txType,
		amount:      amount,
		fromAccount: fromAccount,
		toAccount:   toAccount,
		description: description,
		createdAt:   time.Now(),
		status:      StatusCompleted,
	}
}

func (t *Transaction) ID() string { return t.id }
func (t *Transaction) Type() TransactionType { return t.txType }
func (t *Transaction) Amount() decimal.Decimal { return t.amount }
func (t *Transaction) FromAccountID() string { return t.fromAccount }
func (t *Transaction) ToAccountID() string { return t.toAccount }
func (t *Transaction) Description() string { return t.description }
func (t *Transaction) CreatedAt() time.Time { return t.createdAt }
func (t *Transaction) Status() string { return t.status }

type TransactionDetails struct {
	ID            string          `json:"id"`
	Type          TransactionType `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	FromAccountID string          `json:"from_account_id,omitempty"`
	ToAccountID   string          `json:"to_account_id,omitempty"`
	Description   string          `json:"description"`
	CreatedAt     time.Time       `json:"created_at"`
	Status        string          `json:"status"`
}

// Details returns a snapshot of every field.
func (t *Transaction) Details() TransactionDetails {
	return TransactionDetails{
		ID:            t.id,
		Type:          t.txType,
		Amount:        t.amount,
		FromAccountID: t.fromAccount,
		ToAccountID:   t.toAccount,
		Description:   t.description,
		CreatedAt:     t.createdAt,
		Status:        t.status,
	}
}

// SignedAmountFor reports how this transaction moved the given account's
// balance: positive for money in, negative for money out, zero when the
// account is not a party.
func (t *Transaction) SignedAmountFor(accountID string) decimal.Decimal {
	switch accountID {
	case t.toAccount:
		return t.amount
	case t.fromAccount:
		return t.amount.Neg()
	default:
		return decimal.Zero
	}
}
