package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/julienpequegnot/rssgen/internal/site"
	"github.com/spf13/cobra"
)

var classifyCmd = &cobra.Command{
	Use:   "classify <url>...",
	Short: "Show which resolver handles each URL",
	Long:  `Prints the site category detected for every URL without touching the network.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runClassify,
}

func init() {
	rootCmd.AddCommand(classifyCmd)
}

func runClassify(cmd *cobra.Command, args []string) error {
	categoryStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	unknownStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	urlStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("14"))

	for _, arg := range args {
		u := strings.TrimSpace(arg)
		category := site.Classify(u)

		style := categoryStyle
		if category == site.Unrecognized {
			style = unknownStyle
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n",
			style.Render(fmt.Sprintf("%-9s", category)),
			urlStyle.Render(u),
		)
	}
	return nil
}
