package export

import (
	"strings"

	"github.com/orgball2608/insta-post-exporter/internal/domain"
	"github.com/orgball2608/insta-post-exporter/pkg/errors"
)

type Format string

const (
	FormatJSON  Format = "json"
	FormatCSV   Format = "csv"
	FormatExcel Format = "excel"
	FormatHTML  Format = "html"
)

var extensions = map[Format]string{
	FormatJSON:  "json",
	FormatCSV:   "csv",
	FormatExcel: "xlsx",
	FormatHTML:  "html",
}

// Extension is the file extension written for the format, without the dot.
func (f Format) Extension() string {
	return extensions[f]
}

// ParseFormat maps a format tag to a Format. "xlsx" is an alias of "excel".
func ParseFormat(tag string) (Format, error) {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if tag == "xlsx" {
		return FormatExcel, nil
	}
	f := Format(tag)
	if _, ok := extensions[f]; !ok {
		return "", errors.Newf(errors.ErrInvalidInput,
			"unsupported output format '%s', expected one of json, csv, excel, xlsx, html", tag)
	}
	return f, nil
}

// ParseFormats parses every tag, dropping repeats while keeping first-seen order.
func ParseFormats(tags []string) ([]Format, error) {
	formats := make([]Format, 0, len(tags))
	seen := make(map[Format]bool, len(tags))
	for _, tag := range tags {
		if strings.TrimSpace(tag) == "" {
			continue
		}
		f, err := ParseFormat(tag)
		if err != nil {
			return nil, err
		}
		if seen[f] {
			continue
		}
		seen[f] = true
		formats = append(formats, f)
	}
	if len(formats) == 0 {
		return nil, errors.Newf(errors.ErrInvalidInput, "at least one output format is required")
	}
	return formats, nil
}

// BaseName is the file name, without extension, used for a profile's export.
func BaseName(username string) string {
	return username + "_posts"
}

//go:generate go run go.uber.org/mock/mockgen -source=export.go -destination=mocks/mock.go
type Exporter interface {
	// Export writes records to dir/base.<ext> for every format and returns the
	// written path per format. The directory is created when missing.
	Export(records []domain.PostRecord, dir, base string, formats []Format) (map[Format]string, error)
}
