package commands

import (
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
)

func newTableWriter() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(os.Stdout)
	return t
}
