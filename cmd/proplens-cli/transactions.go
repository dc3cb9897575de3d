package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/proplens/proplens/config"
	"github.com/proplens/proplens/engine"
	"github.com/proplens/proplens/extractor"
	"github.com/proplens/proplens/models"
	"github.com/proplens/proplens/scraper"
)

var transactionsCmd = &cobra.Command{
	Use:   "transactions",
	Short: "Scrape a listing's full transaction history",
	Long: `Loads the listing page, pages through its transaction table and writes
every extracted record to the output file as JSON.`,
	Example: `  # Scrape all transactions from a listing page
  proplens-cli transactions --url https://example.com/project/123 --out txns.json

  # Watch the browser work
  proplens-cli transactions --url https://example.com/project/123 --out txns.json --headless=false`,
	RunE: runTransactions,
}

func runTransactions(cmd *cobra.Command, args []string) error {
	if err := validateFlags(); err != nil {
		return err
	}

	cfg := config.Load()
	cfg.Browser.Headless = flagHeadless

	fleet, err := engine.Launch(1, cfg.Browser)
	if err != nil {
		return fmt.Errorf("browser launch failed: %w", err)
	}
	defer fleet.Close()

	pager, err := scraper.NewSession(fleet.Browser(0), cfg.Crawler, extractor.DefaultProfile())
	if err != nil {
		return fmt.Errorf("page session failed: %w", err)
	}
	defer pager.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
	defer cancel()

	emit := func(status models.ProgressStatus, message string) {
		fmt.Fprintf(os.Stderr, "[%s] %s\n", status, message)
	}
	res, err := scraper.NewPaginator(pager, emit).Run(ctx, flagURL)
	if err != nil {
		return fmt.Errorf("crawl failed: %w", err)
	}

	out := models.CrawlResult{
		URL:               flagURL,
		Success:           true,
		ScrapedAt:         time.Now().UTC(),
		TotalTransactions: len(res.Transactions),
		TotalPages:        res.TotalPages,
		Transactions:      res.Transactions,
	}
	if err := writeJSON(flagOut, out); err != nil {
		return err
	}

	fmt.Printf("Scraped %d transactions across %d pages → %s\n",
		len(res.Transactions), res.TotalPages, flagOut)
	preview(res.Transactions)
	return nil
}

// preview prints the first few records so a quick run needs no file open.
func preview(txns []models.Transaction) {
	const max = 3
	for i, tx := range txns {
		if i >= max {
			fmt.Printf("  … and %d more\n", len(txns)-max)
			return
		}
		fields := []string{}
		if tx.Date != "" {
			fields = append(fields, tx.Date)
		}
		if tx.Bedrooms != "" {
			fields = append(fields, tx.Bedrooms)
		}
		if tx.Price != "" {
			fields = append(fields, tx.Price)
		}
		fmt.Printf("  %d. %s\n", i+1, strings.Join(fields, " | "))
	}
}

func validateFlags() error {
	if flagURL == "" {
		return fmt.Errorf("--url is required")
	}
	if !strings.HasPrefix(flagURL, "http://") && !strings.HasPrefix(flagURL, "https://") {
		return fmt.Errorf("invalid URL: must start with http:// or https://")
	}
	if flagOut == "" {
		return fmt.Errorf("--out is required")
	}
	return nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
