package noteshub

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// PrintSummary writes the end of build report: the page count, where the
// site was written and, when there were any, the files that were skipped.
func PrintSummary(w io.Writer, result *BuildResult) {
	green := color.New(color.FgGreen)
	cyan := color.New(color.FgCyan)
	yellow := color.New(color.FgYellow, color.Bold)

	green.Fprintf(w, "✅ Generated %d note page(s)\n", result.Pages)
	cyan.Fprintf(w, "📦 Output: %s\n", result.OutputDir)
	if len(result.Errors) == 0 {
		return
	}
	yellow.Fprintln(w, "⚠️ Skipped files:")
	for _, fe := range result.Errors {
		fmt.Fprintf(w, " - %s\n", fe.Error())
	}
}
