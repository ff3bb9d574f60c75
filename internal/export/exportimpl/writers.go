package exportimpl

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"html"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/orgball2608/insta-post-exporter/internal/domain"
	"github.com/xuri/excelize/v2"
)

const (
	sheetName = "Posts"
	tableCSS  = "instagram-posts"
)

func writeJSON(w io.Writer, records []domain.PostRecord) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

func writeCSV(w io.Writer, records []domain.PostRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(headers()); err != nil {
		return err
	}
	for i := range records {
		if err := cw.Write(texts(&records[i])); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

const htmlDocument = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>%[1]s</title>
<style>
table.%[2]s { border-collapse: collapse; font-family: sans-serif; font-size: 13px; }
table.%[2]s th, table.%[2]s td { border: 1px solid #ccc; padding: 4px 8px; vertical-align: top; }
table.%[2]s th { background: #f3f3f3; }
</style>
</head>
<body>
<h1>%[1]s</h1>
%[3]s
</body>
</html>
`

func writeHTML(w io.Writer, title string, records []domain.PostRecord) error {
	t := table.NewWriter()
	t.Style().Format.Header = text.FormatDefault
	t.Style().HTML.CSSClass = tableCSS
	t.Style().HTML.EscapeText = true

	header := make(table.Row, 0, len(columns))
	for _, name := range headers() {
		header = append(header, name)
	}
	t.AppendHeader(header)

	for i := range records {
		row := make(table.Row, 0, len(columns))
		for _, v := range texts(&records[i]) {
			row = append(row, v)
		}
		t.AppendRow(row)
	}

	_, err := fmt.Fprintf(w, htmlDocument, html.EscapeString(title), tableCSS, t.RenderHTML())
	return err
}

func writeExcel(path string, records []domain.PostRecord) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		return err
	}

	header := make([]any, 0, len(columns))
	for _, name := range headers() {
		header = append(header, name)
	}
	if err := sw.SetRow("A1", header, excelize.RowOpts{StyleID: bold}); err != nil {
		return err
	}

	for i := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, values(&records[i])); err != nil {
			return err
		}
	}

	if err := sw.Flush(); err != nil {
		return err
	}
	return f.SaveAs(path)
}
