package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/tyjen/plaid-go/internal/config"
	"github.com/tyjen/plaid-go/internal/log"
	"github.com/tyjen/plaid-go/plaid"
)

const usage = `usage: plaidcli <command> [args]

commands:
  categories                 list all transaction categories
  category <id>              look up one category
  institutions               list all supported institutions
  institution <id>           look up one institution
  balance <access-token>     fetch account balances
  transactions <access-token> [account-id]
                             fetch transactions

PLAID_CLIENT_ID and PLAID_SECRET must be set; PLAID_ENV selects
tartan (default) or production.`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "plaidcli: %v\n", err)
		os.Exit(1)
	}

	logger := log.New("plaidcli", cfg.LogLevel)
	defer logger.Sync()

	client, err := plaid.New(cfg.ServiceURL, cfg.PlaidClientID, cfg.PlaidSecret,
		plaid.WithLogger(logger.Logger()))
	if err != nil {
		fmt.Fprintf(os.Stderr, "plaidcli: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := run(ctx, client, os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintf(os.Stderr, "plaidcli: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, client plaid.PlaidClient, command string, args []string) error {
	switch command {
	case "categories":
		result, err := client.GetCategories(ctx)
		if err != nil {
			return err
		}
		return printResult(result.Value, result.Err)

	case "category":
		if len(args) != 1 {
			return fmt.Errorf("category: expected <id>")
		}
		result, err := client.GetCategory(ctx, args[0])
		if err != nil {
			return err
		}
		return printResult(result.Value, result.Err)

	case "institutions":
		result, err := client.GetInstitutions(ctx)
		if err != nil {
			return err
		}
		return printResult(result.Value, result.Err)

	case "institution":
		if len(args) != 1 {
			return fmt.Errorf("institution: expected <id>")
		}
		result, err := client.GetInstitution(ctx, args[0])
		if err != nil {
			return err
		}
		return printResult(result.Value, result.Err)

	case "balance":
		if len(args) != 1 {
			return fmt.Errorf("balance: expected <access-token>")
		}
		result, err := client.GetAccountBalance(ctx, plaid.AccessToken(args[0]))
		if err != nil {
			return err
		}
		return printResult(result.Value, result.Err)

	case "transactions":
		if len(args) < 1 || len(args) > 2 {
			return fmt.Errorf("transactions: expected <access-token> [account-id]")
		}
		var opts *plaid.TransactionOptions
		if len(args) == 2 {
			opts = &plaid.TransactionOptions{AccountID: args[1]}
		}
		result, err := client.GetTransactions(ctx, plaid.AccessToken(args[0]), opts)
		if err != nil {
			return err
		}
		if result.IsError() {
			return result.Err
		}
		return printResult(result.Transactions, nil)

	default:
		fmt.Fprintln(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

func printResult(value any, remoteErr *plaid.Error) error {
	if remoteErr != nil {
		return remoteErr
	}
	out, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
