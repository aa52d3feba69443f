package importer

import (
	"fmt"
	"strings"

	"github.com/fanbe-group/leads-cli/internal/model"
)

// FormatResult renders an ImportResult as a human-readable summary for the
// terminal.
func FormatResult(res *model.ImportResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Import complete: %d imported, %d duplicates, %d errors\n",
		res.Success, res.Duplicates, res.Errors)

	if len(res.Details) > 0 {
		b.WriteString("\nErrors:\n")
		for _, detail := range res.Details {
			fmt.Fprintf(&b, "  %s\n", detail)
		}
		if res.Errors > len(res.Details) {
			fmt.Fprintf(&b, "  ... and %d more\n", res.Errors-len(res.Details))
		}
	}

	return b.String()
}
