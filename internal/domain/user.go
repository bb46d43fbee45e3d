package domain

import "time"

// User is a bank customer and the owning side of its accounts. The bank also
// indexes every account by ID; the user just holds references for enumeration.
type User struct {
	id        string
	name      string
	email     string
	phone     string
	accounts  []*Account
	createdAt time.Time
}

func NewUser(id, name, email, phone string) *User {
	return &User{
		id:        id,
		name:      name,
		email:     email,
		phone:     phone,
		createdAt: time.Now(),
	}
}

func (u *User) ID() string { return u.id }
func (u *User) Name() string { return u.name }
func (u *User) Email() string { return u.email }
func (u *User) Phone() string { return u.phone }
func (u *User) CreatedAt() time.Time { return u.createdAt }

// AddAccount appends unconditionally. Adding the same account twice lists it
// twice; callers own deduplication if they need it.
func (u *User) AddAccount(a *Account) {
	u.accounts = append(u.accounts, a)
}

// Accounts returns the live account list in the order accounts were added.
func (u *User) Accounts() []*Account {
	return u.accounts
}

type UserInfo struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	AccountCount int       `json:"account_count"`
	CreatedAt    time.Time `json:"created_at"`
}

func (u *User) Info() UserInfo {
	return UserInfo{
		ID:           u.id,
		Name:         u.name,
		Email:        u.email,
		Phone:        u.phone,
		AccountCount: len(u.accounts),
		CreatedAt:    u.createdAt,
	}
}
