// Command fintrack signs in to an expense tracker server and prints a
// spending summary computed from the user's expenses and budgets.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"expense_tracker/internal/aggregate"
	"expense_tracker/internal/client"
	"expense_tracker/internal/clientstate"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"
)

func main() {
	_ = godotenv.Load()

	server := flag.String("server", envOr("FINTRACK_SERVER", "http://localhost:5000"), "API base URL")
	email := flag.String("email", os.Getenv("FINTRACK_EMAIL"), "account email")
	password := flag.String("password", "", "account password, prompted when empty")
	rangeName := flag.String("range", "month", "window: all, today, week, month, year or custom")
	date := flag.String("date", "", "day for -range custom (YYYY-MM-DD)")
	month := flag.String("month", "", "budget month to compare against (YYYY-MM)")
	analyze := flag.Bool("analyze", false, "also request AI spending advice")
	timeout := flag.Duration("timeout", 2*time.Minute, "overall deadline")
	flag.Parse()

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if *email == "" {
		logrus.Fatal("-email is required")
	}
	if *password == "" {
		p, err := promptPassword()
		if err != nil {
			logrus.Fatalf("read password: %v", err)
		}
		*password = p
	}

	r, err := aggregate.ParseRange(*rangeName, *date)
	if err != nil {
		logrus.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	c := client.New(*server, nil)
	state, err := load(ctx, c, *email, *password)
	if err != nil {
		reportFailure(err)
		os.Exit(1)
	}

	d := aggregate.Build(state.Expenses.Items, state.Budgets.Items, r, *month, time.Now().UTC())
	printDashboard(os.Stdout, state.Auth, d)

	if *analyze {
		a, err := c.Analyze(ctx)
		if err != nil {
			reportFailure(err)
			os.Exit(1)
		}
		printAnalysis(os.Stdout, a)
	}
}

// load signs in and fetches both collections, recording each step in the client state
func load(ctx context.Context, c *client.Client, email, password string) (clientstate.State, error) {
	var s clientstate.State

	session, err := c.Login(ctx, email, password)
	if err != nil {
		return s, err
	}
	s = clientstate.Reduce(s, clientstate.LoggedIn{Token: session.Token, User: &session.User})

	s = clientstate.Reduce(s, clientstate.RequestStarted{Slice: clientstate.SliceExpenses})
	expenses, err := c.ListExpenses(ctx)
	if err != nil {
		s = clientstate.Reduce(s, clientstate.RequestFailed{Slice: clientstate.SliceExpenses, Message: err.Error()})
		return s, err
	}
	s = clientstate.Reduce(s, clientstate.ExpensesLoaded{Expenses: expenses})

	s = clientstate.Reduce(s, clientstate.RequestStarted{Slice: clientstate.SliceBudgets})
	budgets, err := c.ListBudgets(ctx)
	if err != nil {
		s = clientstate.Reduce(s, clientstate.RequestFailed{Slice: clientstate.SliceBudgets, Message: err.Error()})
		return s, err
	}
	return clientstate.Reduce(s, clientstate.BudgetsLoaded{Budgets: budgets}), nil
}

func promptPassword() (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errors.New("stdin is not a terminal, pass -password")
	}
	fmt.Fprint(os.Stderr, "Password: ")
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

func reportFailure(err error) {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		logrus.WithFields(logrus.Fields{"status": apiErr.Status, "details": apiErr.Details}).Error(apiErr.Message)
		return
	}
	logrus.Error(err)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
