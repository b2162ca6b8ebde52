package dataprocessing

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"salespulse/pkg/contracts/domain"
)

// Format selects the parser applied to a dataset source.
type Format string

const (
	FormatAuto Format = "auto"
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// Loader ingests a dataset from a local file or an HTTP URL and turns it
// into canonical rows. The loader owns no state between calls; cancellation
// and staleness are the caller's concern (see services.DashboardService).
type Loader struct {
	logger *slog.Logger
	client *http.Client
}

// NewLoader creates a loader with a bounded HTTP client for URL sources.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		logger: logger.With(slog.String("component", "loader")),
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

// Load reads the source, parses it with the requested (or detected) format,
// and normalizes every usable record. Records with at most one populated
// cell never reach the normalizer.
func (l *Loader) Load(ctx context.Context, source string, format Format) ([]domain.Row, error) {
	start := time.Now()

	rc, err := l.open(ctx, source)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	records, err := l.parse(rc, resolveFormat(source, format))
	if err != nil {
		return nil, fmt.Errorf("parse dataset %s: %w", source, err)
	}

	rows := NormalizeAll(records)
	l.logger.InfoContext(ctx, "dataset loaded",
		slog.String("source", source),
		slog.Int("raw_records", len(records)),
		slog.Int("rows", len(rows)),
		slog.Duration("elapsed", time.Since(start)))
	return rows, nil
}

func (l *Loader) open(ctx context.Context, source string) (io.ReadCloser, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
		if err != nil {
			return nil, fmt.Errorf("build dataset request: %w", err)
		}
		resp, err := l.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("fetch dataset %s: %w", source, err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("fetch dataset %s: unexpected status %d", source, resp.StatusCode)
		}
		return resp.Body, nil
	}

	f, err := os.Open(source)
	if err != nil {
		return nil, fmt.Errorf("open dataset %s: %w", source, err)
	}
	return f, nil
}

func (l *Loader) parse(r io.Reader, format Format) ([]RawRecord, error) {
	switch format {
	case FormatXLSX:
		return ReadXLSX(r)
	default:
		return ReadCSV(r)
	}
}

func resolveFormat(source string, format Format) Format {
	if format != FormatAuto && format != "" {
		return format
	}
	switch strings.ToLower(filepath.Ext(source)) {
	case ".xlsx", ".xlsm", ".xls":
		return FormatXLSX
	default:
		return FormatCSV
	}
}

// ReadCSV parses comma-separated text. The first row is the header and
// defines record keys; ragged rows are tolerated.
func ReadCSV(r io.Reader) ([]RawRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty dataset: no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	var records []RawRecord
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(records)+2, err)
		}
		records = append(records, NewRawRecord(header, row))
	}
	return records, nil
}

// ReadXLSX parses the first sheet of an Excel workbook the same way: first
// row as header, remaining rows as records. Excelize renders cells as text,
// so typed date/number cells arrive pre-formatted and flow through the same
// coercers as CSV input.
func ReadXLSX(r io.Reader) ([]RawRecord, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("empty dataset: no header row")
	}

	header := rows[0]
	records := make([]RawRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		records = append(records, NewRawRecord(header, row))
	}
	return records, nil
}
