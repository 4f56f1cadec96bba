// cmd/history.go
package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/julienpequegnot/rssgen/internal/config"
	"github.com/julienpequegnot/rssgen/internal/database"
	"github.com/julienpequegnot/rssgen/internal/history"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded resolutions",
	Long:  `Display resolutions recorded with --record (or history.enabled in config), newest first.`,
	RunE:  runHistory,
}

var (
	historyLimit int
	historySite  string
	historyJSON  bool
)

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Number of entries to show")
	historyCmd.Flags().StringVar(&historySite, "site", "", "Only show entries for this site URL")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "Print entries as JSON")
}

func runHistory(cmd *cobra.Command, args []string) error {
	db, err := database.New(config.DBPath())
	if err != nil {
		return err
	}
	defer db.Close()

	repo := history.NewRepository(db)

	var entries []history.Entry
	if historySite != "" {
		entries, err = repo.ForSite(strings.TrimSpace(historySite))
	} else {
		entries, err = repo.List(historyLimit)
	}
	if err != nil {
		return err
	}

	if historyJSON {
		out, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	}

	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No resolutions recorded. Run with --record to keep a history.")
		return nil
	}

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	dateStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	okStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	failStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	urlStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("14"))

	fmt.Fprintln(cmd.OutOrStdout(), headerStyle.Render(fmt.Sprintf(" %-16s  %-9s  %-35s  %s", "WHEN", "TYPE", "SITE", "FEED / ERROR")))
	fmt.Fprintln(cmd.OutOrStdout(), strings.Repeat("─", 100))

	for _, e := range entries {
		siteURL := e.SiteURL
		if len(siteURL) > 35 {
			siteURL = siteURL[:32] + "..."
		}

		result := okStyle.Render(e.FeedURL)
		if !e.Succeeded() {
			result = failStyle.Render(e.Failure)
		}

		fmt.Fprintf(cmd.OutOrStdout(), " %s  %-9s  %s  %s\n",
			dateStyle.Render(e.ResolvedAt.Format("2006-01-02 15:04")),
			e.Category,
			urlStyle.Render(fmt.Sprintf("%-35s", siteURL)),
			result,
		)
	}

	return nil
}
