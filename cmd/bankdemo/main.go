// Command bankdemo walks through the banking ledger: users, checking and
// savings accounts, deposits, withdrawals, transfers, the monthly batch jobs
// and the error paths.
package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/shopspring/decimal"

	"banking-ledger/internal/bank"
	"banking-ledger/internal/idgen"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	myBank := bank.New("Modern Bank", idgen.NewRandom(), logger)
	fmt.Printf("Welcome to %s!\n", myBank.Name())

	fmt.Println("\n--- Creating Users ---")
	john := myBank.CreateUser("John Doe", "john@example.com", "555-123-4567")
	jane := myBank.CreateUser("Jane Smith", "jane@example.com", "555-765-4321")
	fmt.Printf("Created user: %s with ID: %s\n", john.Name(), john.ID())
	fmt.Printf("Created user: %s with ID: %s\n", jane.Name(), jane.ID())

	fmt.Println("\n--- Creating Accounts ---")
	johnsChecking, err := myBank.CreateCheckingAccount(john.ID(), dec(1000), dec(200))
	if err != nil {
		fatal(err)
	}
	johnsSavings, err := myBank.CreateSavingsAccount(john.ID(), dec(5000), decimal.NewFromFloat(1.25))
	if err != nil {
		fatal(err)
	}
	janesChecking, err := myBank.CreateCheckingAccount(jane.ID(), dec(2500), dec(0))
	if err != nil {
		fatal(err)
	}
	fmt.Printf("Created checking account for %s: %s, Balance: $%s\n", john.Name(), johnsChecking.ID(), johnsChecking.Balance())
	fmt.Printf("Created savings account for %s: %s, Balance: $%s\n", john.Name(), johnsSavings.ID(), johnsSavings.Balance())
	fmt.Printf("Created checking account for %s: %s, Balance: $%s\n", jane.Name(), janesChecking.ID(), janesChecking.Balance())

	fmt.Println("\n--- Performing Transactions ---")
	deposit, err := johnsChecking.Deposit(dec(500))
	if err != nil {
		fatal(err)
	}
	fmt.Printf("Deposited $%s into %s's checking account\n", deposit.Amount(), john.Name())
	fmt.Printf("New Balance: $%s\n", johnsChecking.Balance())

	withdrawal, err := johnsSavings.Withdraw(dec(1000))
	if err != nil {
		fmt.Printf("Error: %v\n", err)
	} else {
		fmt.Printf("Withdrew $%s from %s's savings account\n", withdrawal.Amount(), john.Name())
		fmt.Printf("New Balance: $%s\n", johnsSavings.Balance())
	}

	transfer, err := myBank.Transfer(johnsSavings.ID(), janesChecking.ID(), dec(1500))
	if err != nil {
		fmt.Printf("Error: %v\n", err)
	} else {
		fmt.Printf("Transferred $%s from %s's savings to %s's checking\n", transfer.Amount(), john.Name(), jane.Name())
		fmt.Printf("%s's savings balance: $%s\n", john.Name(), johnsSavings.Balance())
		fmt.Printf("%s's checking balance: $%s\n", jane.Name(), janesChecking.Balance())
	}

	fmt.Println("\n--- Monthly Batch Jobs ---")
	interest := myBank.ApplyInterestToAllSavingsAccounts()
	for _, tx := range interest {
		fmt.Printf("Applied interest of $%s to account %s\n", tx.Amount(), tx.ToAccountID())
	}
	fees := myBank.ApplyMonthlyFeeToAllCheckingAccounts()
	for _, tx := range fees {
		fmt.Printf("Charged fee of $%s to account %s\n", tx.Amount(), tx.FromAccountID())
	}
	myBank.ResetAllSavingsAccountWithdrawalLimits()

	fmt.Println("\n--- Account Information ---")
	printJSON(johnsChecking.Info())
	printJSON(johnsSavings.Info())

	fmt.Println("\n--- Transaction History ---")
	for _, tx := range johnsSavings.History() {
		printJSON(tx.Details())
	}

	fmt.Println("\n--- Error Handling Demo ---")
	if _, err := johnsChecking.Withdraw(dec(10000)); err != nil {
		fmt.Printf("Expected error: %v\n", err)
	}
	for i := 0; i < 10; i++ {
		if _, err := johnsSavings.Withdraw(dec(1)); err != nil {
			fmt.Printf("Expected error: %v\n", err)
			break
		}
	}

	fmt.Println("\nBank System Demo Completed!")
}

func dec(n int64) decimal.Decimal {
	return decimal.NewFromInt(n)
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fatal(err)
	}
	fmt.Println(string(out))
}

func fatal(err error) {
	slog.Error("demo failed", "error", err)
	os.Exit(1)
}
