// Package feed downloads the supplier's remnants archive and turns the
// spreadsheet inside it into raw records for reconciliation.
package feed

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"

	"github.com/sh1m0r1an1n/seller-apis/internal/domain/offers"
)

// Spreadsheet column titles as the supplier publishes them.
const (
	colCode     = "Код"
	colQuantity = "Количество"
	colPrice    = "Цена"
)

// DefaultHeaderRows is the preamble height above the column header row.
const DefaultHeaderRows = 17

type Source struct {
	URL        string
	HC         *http.Client
	HeaderRows int
}

func NewSource(url string, headerRows int) *Source {
	if headerRows < 0 {
		headerRows = DefaultHeaderRows
	}
	return &Source{
		URL: url,
		HC: &http.Client{
			Timeout: 60 * time.Second,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{Timeout: 5 * time.Second}).DialContext,
				MaxIdleConns: 10, IdleConnTimeout: 90 * time.Second,
			},
		},
		HeaderRows: headerRows,
	}
}

func (s *Source) Name() string { return "feed" }

// Fetch downloads the zip, extracts the first spreadsheet and parses rows
// after the preamble. Rows with an empty code cell are skipped.
func (s *Source) Fetch(ctx context.Context) ([]offers.RawRecord, error) {
	data, err := s.download(ctx)
	if err != nil {
		return nil, err
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: feed archive: %v", offers.ErrUpstream, err)
	}
	name, raw, err := firstSpreadsheet(zr)
	if err != nil {
		return nil, err
	}
	return s.parse(name, raw)
}

func (s *Source) download(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, err
	}
	res, err := s.HC.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: download feed: %v", offers.ErrUpstream, err)
	}
	defer res.Body.Close()
	if res.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: download feed: http %d", offers.ErrUpstream, res.StatusCode)
	}
	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: download feed: %v", offers.ErrUpstream, err)
	}
	return data, nil
}

func firstSpreadsheet(zr *zip.Reader) (string, []byte, error) {
	for _, f := range zr.File {
		name := strings.ToLower(f.Name)
		if !strings.HasSuffix(name, ".xlsx") && !strings.HasSuffix(name, ".xls") {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", nil, fmt.Errorf("%w: feed archive: %v", offers.ErrUpstream, err)
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			return "", nil, fmt.Errorf("%w: feed archive: %v", offers.ErrUpstream, err)
		}
		return f.Name, data, nil
	}
	return "", nil, fmt.Errorf("%w: feed archive has no spreadsheet", offers.ErrUpstream)
}

func (s *Source) parse(name string, raw []byte) ([]offers.RawRecord, error) {
	rows, err := sheetRows(name, raw)
	if err != nil {
		return nil, err
	}
	if len(rows) <= s.HeaderRows {
		return nil, fmt.Errorf("%w: spreadsheet shorter than its preamble", offers.ErrUpstream)
	}

	cols, err := columnIndex(rows[s.HeaderRows])
	if err != nil {
		return nil, err
	}

	out := make([]offers.RawRecord, 0, len(rows)-s.HeaderRows-1)
	for _, row := range rows[s.HeaderRows+1:] {
		code := cell(row, cols[colCode])
		if code == "" {
			continue
		}
		out = append(out, offers.RawRecord{
			Code:     code,
			Quantity: cell(row, cols[colQuantity]),
			Price:    cell(row, cols[colPrice]),
		})
	}
	return out, nil
}

// sheetRows picks the reader by the member's extension: the supplier has
// published both the legacy binary workbook (ostatki.xls) and the zip-based
// one, and excelize only understands the latter.
func sheetRows(name string, raw []byte) ([][]string, error) {
	if strings.HasSuffix(strings.ToLower(name), ".xlsx") {
		return xlsxRows(raw)
	}
	return xlsRows(raw)
}

func xlsxRows(raw []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: open spreadsheet: %v", offers.ErrUpstream, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: spreadsheet has no sheets", offers.ErrUpstream)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: read spreadsheet: %v", offers.ErrUpstream, err)
	}
	return rows, nil
}

func xlsRows(raw []byte) ([][]string, error) {
	wb, err := xls.OpenReader(bytes.NewReader(raw), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("%w: open spreadsheet: %v", offers.ErrUpstream, err)
	}
	sh := wb.GetSheet(0)
	if sh == nil {
		return nil, fmt.Errorf("%w: spreadsheet has no sheets", offers.ErrUpstream)
	}
	rows := make([][]string, 0, int(sh.MaxRow)+1)
	for i := 0; i <= int(sh.MaxRow); i++ {
		r := sh.Row(i)
		if r == nil {
			rows = append(rows, nil)
			continue
		}
		cells := make([]string, r.LastCol())
		for j := r.FirstCol(); j < r.LastCol(); j++ {
			cells[j] = r.Col(j)
		}
		rows = append(rows, cells)
	}
	return rows, nil
}

func columnIndex(header []string) (map[string]int, error) {
	cols := make(map[string]int, 3)
	for i, h := range header {
		switch strings.TrimSpace(h) {
		case colCode, colQuantity, colPrice:
			cols[strings.TrimSpace(h)] = i
		}
	}
	for _, want := range []string{colCode, colQuantity, colPrice} {
		if _, ok := cols[want]; !ok {
			return nil, fmt.Errorf("%w: spreadsheet column %q not found", offers.ErrUpstream, want)
		}
	}
	return cols, nil
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// Ping checks that the feed host answers without pulling the archive.
func (s *Source) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, s.URL, nil)
	if err != nil {
		return err
	}
	res, err := s.HC.Do(req)
	if err != nil {
		return err
	}
	_, _ = io.Copy(io.Discard, res.Body)
	return res.Body.Close()
}
