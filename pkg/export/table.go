package export

import (
	"io"

	prettytable "github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// writeTable renders a boxed text preview. Header cells keep their case.
func writeTable(w io.Writer, header, body [][]string) error {
	tw := prettytable.NewWriter()

	style := prettytable.StyleLight
	style.Format.Header = text.FormatDefault
	tw.SetStyle(style)

	for _, record := range header {
		tw.AppendHeader(row(record))
	}
	for _, record := range body {
		tw.AppendRow(row(record))
	}

	_, err := io.WriteString(w, tw.Render()+"\n")
	return err
}

func row(record []string) prettytable.Row {
	r := make(prettytable.Row, len(record))
	for i, field := range record {
		r[i] = field
	}
	return r
}
