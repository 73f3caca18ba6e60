package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/lenddesk/loanledger/internal/infrastructure/postgres"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "loanledger-cli",
		Short: "Loan ledger CLI tool",
		Long:  `A command line interface for the loan ledger API and its database migrations.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the loan ledger API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(loanCmd(), reminderCmd(), ledgerCmd(), migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func loanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "loan",
		Short: "Loan operations",
	}

	var userID string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List loans",
		Run: func(cmd *cobra.Command, args []string) {
			path := "/api/v1/loans/"
			if userID != "" {
				path += "?user_id=" + url.QueryEscape(userID)
			}
			getJSON(path)
		},
	}
	listCmd.Flags().StringVar(&userID, "user", "", "Filter by borrower ID")

	getCmd := &cobra.Command{
		Use:   "get <loan-id>",
		Short: "Show one loan",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/loans/" + url.PathEscape(args[0]))
		},
	}

	approveCmd := &cobra.Command{
		Use:   "approve <loan-id>",
		Short: "Approve a pending loan",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			postJSON("/api/v1/loans/"+url.PathEscape(args[0])+"/approve", nil)
		},
	}

	paymentsCmd := &cobra.Command{
		Use:   "payments <loan-id>",
		Short: "List a loan's payments",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/loans/" + url.PathEscape(args[0]) + "/payments")
		},
	}

	cmd.AddCommand(listCmd, getCmd, approveCmd, paymentsCmd)
	return cmd
}

func reminderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reminders",
		Short: "Due-window queries",
	}

	var date string
	upcomingCmd := &cobra.Command{
		Use:   "upcoming",
		Short: "Loans due on a target day",
		Run: func(cmd *cobra.Command, args []string) {
			path := "/api/v1/reminders/upcoming"
			if date != "" {
				path += "?date=" + url.QueryEscape(date)
			}
			getJSON(path)
		},
	}
	upcomingCmd.Flags().StringVar(&date, "date", "", "Target day (YYYY-MM-DD)")

	overdueCmd := &cobra.Command{
		Use:   "overdue",
		Short: "Loans with a missed due date",
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/reminders/overdue")
		},
	}

	cmd.AddCommand(upcomingCmd, overdueCmd)
	return cmd
}

func ledgerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Ledger operations",
	}

	consistencyCmd := &cobra.Command{
		Use:   "consistency",
		Short: "Check that loan totals match their payment records",
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/ledger/consistency")
		},
	}

	cmd.AddCommand(consistencyCmd)
	return cmd
}

func migrateCmd() *cobra.Command {
	var databaseURL, migrationsPath string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migrations",
	}
	cmd.PersistentFlags().StringVar(&databaseURL, "database-url", os.Getenv("DATABASE_URL"), "Postgres connection URL")
	cmd.PersistentFlags().StringVar(&migrationsPath, "path", "migrations", "Migrations directory")

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return postgres.RunMigrations(databaseURL, migrationsPath)
		},
	}

	downCmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back the last migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return postgres.RunMigrationsDown(databaseURL, migrationsPath)
		},
	}

	cmd.AddCommand(upCmd, downCmd)
	return cmd
}

func getJSON(path string) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	printResponse(resp)
}

func postJSON(path string, body io.Reader) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Post(baseURL+path, "application/json", body)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	printResponse(resp)
}

func printResponse(resp *http.Response) {
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode >= 400 {
		fmt.Printf("Request FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, truncate(string(body), 500))
		os.Exit(1)
	}

	var result any
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	printJSON(result)
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("Failed to render: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
