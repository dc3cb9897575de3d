package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/proplens/proplens/config"
	"github.com/proplens/proplens/engine"
	"github.com/proplens/proplens/extractor"
	"github.com/proplens/proplens/scraper"
)

var flagClass string

var elementsCmd = &cobra.Command{
	Use:   "elements",
	Short: "Extract all elements carrying a CSS class from a rendered page",
	Long: `Loads the page in a browser, waits for it to settle and writes every
element carrying the given class to the output file: text, outer HTML,
tag name and attributes.`,
	Example: `  # Grab all price tags from a page
  proplens-cli elements --url https://example.com/project/123 --class price-tag --out prices.json`,
	RunE: runElements,
}

func init() {
	elementsCmd.Flags().StringVar(&flagClass, "class", "", "CSS class to match (required)")
}

func runElements(cmd *cobra.Command, args []string) error {
	if err := validateFlags(); err != nil {
		return err
	}
	if flagClass == "" {
		return fmt.Errorf("--class is required")
	}

	cfg := config.Load()
	cfg.Browser.Headless = flagHeadless

	fleet, err := engine.Launch(1, cfg.Browser)
	if err != nil {
		return fmt.Errorf("browser launch failed: %w", err)
	}
	defer fleet.Close()

	sess, err := scraper.NewSession(fleet.Browser(0), cfg.Crawler, extractor.DefaultProfile())
	if err != nil {
		return fmt.Errorf("page session failed: %w", err)
	}
	defer sess.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
	defer cancel()

	if err := sess.Navigate(ctx, flagURL); err != nil {
		return fmt.Errorf("navigation failed: %w", err)
	}

	html, err := sess.HTML()
	if err != nil {
		return fmt.Errorf("page snapshot failed: %w", err)
	}

	elements, err := extractor.ByClass(html, flagClass)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	if err := writeJSON(flagOut, elements); err != nil {
		return err
	}

	fmt.Printf("Extracted %d elements with class %q → %s\n", len(elements), flagClass, flagOut)
	for i, el := range elements {
		if i >= 3 {
			fmt.Printf("  … and %d more\n", len(elements)-3)
			break
		}
		text := el.Text
		if len(text) > 60 {
			text = text[:60] + "…"
		}
		fmt.Printf("  %d. <%s> %s\n", i+1, el.Tag, text)
	}
	return nil
}
