package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/kwalter/shipit/internal/publish"
)

// renderPlan prints the dry-run summary as an aligned label/value table.
func renderPlan(out io.Writer, res *publish.Result) {
	pkg := res.Package
	if pkg == "" {
		pkg = "."
	}
	exported := "(removed)"
	if res.ExportDir != "" {
		exported = res.ExportDir
	}
	rows := [][2]string{
		{"head", res.Head},
		{"package", pkg},
		{"command", strings.Join(res.Command, " ")},
		{"export dir", exported},
	}

	width := 0
	for _, row := range rows {
		if w := runewidth.StringWidth(row[0]); w > width {
			width = w
		}
	}

	fmt.Fprintln(out, "dry run; would publish:")
	for _, row := range rows {
		pad := strings.Repeat(" ", width-runewidth.StringWidth(row[0]))
		fmt.Fprintf(out, "  %s%s  %s\n", row[0], pad, row[1])
	}
}
