package exportimpl

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/orgball2608/insta-post-exporter/internal/domain"
	"github.com/orgball2608/insta-post-exporter/internal/export"
	"github.com/orgball2608/insta-post-exporter/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Logger logger.Logger
}

type ExporterImpl struct {
	logger logger.Logger
}

func New(opts Opts) *ExporterImpl {
	return &ExporterImpl{
		logger: opts.Logger.WithComponent("Exporter"),
	}
}

var _ export.Exporter = (*ExporterImpl)(nil)

func (e *ExporterImpl) Export(records []domain.PostRecord, dir, base string, formats []export.Format) (map[export.Format]string, error) {
	if records == nil {
		records = []domain.PostRecord{}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory %s: %w", dir, err)
	}

	paths := make(map[export.Format]string, len(formats))
	for _, format := range formats {
		path := filepath.Join(dir, base+"."+format.Extension())

		var err error
		switch format {
		case export.FormatJSON:
			err = writeFile(path, func(w io.Writer) error { return writeJSON(w, records) })
		case export.FormatCSV:
			err = writeFile(path, func(w io.Writer) error { return writeCSV(w, records) })
		case export.FormatHTML:
			err = writeFile(path, func(w io.Writer) error { return writeHTML(w, base, records) })
		case export.FormatExcel:
			err = writeExcel(path, records)
		default:
			err = fmt.Errorf("unsupported format %q", format)
		}
		if err != nil {
			return nil, fmt.Errorf("export %s: %w", format, err)
		}

		e.logger.Info("Exported posts", "format", string(format), "path", path, "records", len(records))
		paths[format] = path
	}
	return paths, nil
}

func writeFile(path string, write func(w io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	bw := bufio.NewWriter(f)
	if err := write(bw); err != nil {
		return err
	}
	return bw.Flush()
}
