package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/julienpequegnot/rssgen/internal/config"
	"github.com/julienpequegnot/rssgen/internal/feed"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <feed-url>",
	Short: "Fetch a feed and show what it contains",
	Long:  `Downloads and parses an RSS, Atom or JSON feed and prints its title and newest items.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

var inspectItems int

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().IntVarP(&inspectItems, "items", "n", 5, "Number of items to show")
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	timeout := time.Duration(cfg.Fetch.TimeoutSeconds) * time.Second
	fetcher := feed.NewFetcher(timeout, cfg.Fetch.MaxBodyBytes)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	summary, err := fetcher.Inspect(ctx, strings.TrimSpace(args[0]))
	if err != nil {
		return err
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	dateStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	urlStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Underline(true)
	divider := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(strings.Repeat("━", 70))

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, divider)
	fmt.Fprintln(out, titleStyle.Render(summary.Title))
	fmt.Fprintln(out, divider)

	fmt.Fprintf(out, "%s %s\n", labelStyle.Render("Type:"), summary.FeedType)
	if summary.Link != "" {
		fmt.Fprintf(out, "%s %s\n", labelStyle.Render("Site:"), urlStyle.Render(summary.Link))
	}
	fmt.Fprintf(out, "%s %d\n\n", labelStyle.Render("Items:"), len(summary.Items))

	for i, item := range summary.Items {
		if i >= inspectItems {
			break
		}
		date := "-"
		if item.PublishedAt != nil {
			date = item.PublishedAt.Format("2006-01-02")
		}
		fmt.Fprintf(out, " %s  %s\n", dateStyle.Render(fmt.Sprintf("%-10s", date)), item.Title)
		if item.URL != "" {
			fmt.Fprintf(out, "             %s\n", urlStyle.Render(item.URL))
		}
	}

	return nil
}
