// Package loader reads gazetteer records from CSV files such as the 住所.jp zenkoku.csv.
package loader

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"address-normalizer/internal/models"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Supported file encodings. zenkoku.csv is distributed in Windows-31J.
const (
	EncodingUTF8     = "utf-8"
	EncodingShiftJIS = "shift_jis"
)

// Source produces the raw gazetteer records handed to gazetteer.Build.
type Source interface {
	LoadEntries(ctx context.Context) ([]models.GazetteerEntry, error)
}

// column names recognised in a header row, Japanese as in zenkoku.csv or English
var headerAliases = map[string]string{
	"都道府県":         "prefecture",
	"市区町村":         "municipality",
	"町域":           "town_area",
	"字丁目":          "chome",
	"京都通り名":        "street",
	"prefecture":   "prefecture",
	"municipality": "municipality",
	"city":         "municipality",
	"town_area":    "town_area",
	"townarea":     "town_area",
	"chome":        "chome",
	"street":       "street",
}

// positional layout used when the file has no header: prefecture, municipality, town-area,
// chome, street
var defaultColumns = map[string]int{
	"prefecture":   0,
	"municipality": 1,
	"town_area":    2,
	"chome":        3,
	"street":       4,
}

// CSVSource loads gazetteer records from a CSV file.
type CSVSource struct {
	path     string
	encoding string
}

// NewCSVSource returns a source reading path in the given encoding.
func NewCSVSource(path, encoding string) *CSVSource {
	return &CSVSource{path: path, encoding: encoding}
}

// LoadEntries implements Source.
func (s *CSVSource) LoadEntries(ctx context.Context) ([]models.GazetteerEntry, error) {
	file, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("loader: failed to open file: %w", err)
	}
	defer file.Close()

	return ReadEntries(ctx, file, s.encoding)
}

// ReadEntries decodes r and parses it as gazetteer CSV. A first row naming the prefecture and
// municipality columns is taken as a header; otherwise the positional layout applies.
func ReadEntries(ctx context.Context, r io.Reader, encoding string) ([]models.GazetteerEntry, error) {
	decoded, err := decode(r, encoding)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(decoded)
	reader.FieldsPerRecord = -1 // Allow variable number of fields
	reader.LazyQuotes = true

	columns := defaultColumns
	var entries []models.GazetteerEntry
	for n := 1; ; n++ {
		record, err := reader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("loader: failed to read record: %w", err)
		}
		if n%10000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		if n == 1 {
			if header, ok := parseHeader(record); ok {
				columns = header
				continue
			}
		}

		if len(record) < 2 {
			return nil, fmt.Errorf("loader: invalid record length in record %d: %d, expected at least 2 columns", n, len(record))
		}

		entries = append(entries, models.GazetteerEntry{
			Prefecture:   field(record, columns, "prefecture"),
			Municipality: field(record, columns, "municipality"),
			Street:       field(record, columns, "street"),
			TownArea:     field(record, columns, "town_area"),
			Chome:        field(record, columns, "chome"),
		})
	}

	return entries, nil
}

func decode(r io.Reader, encoding string) (io.Reader, error) {
	switch strings.ToLower(strings.ReplaceAll(encoding, "-", "_")) {
	case "", "utf_8", "utf8":
		return transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder())), nil
	case "shift_jis", "sjis", "windows_31j", "cp932":
		return transform.NewReader(r, japanese.ShiftJIS.NewDecoder()), nil
	case "euc_jp":
		return transform.NewReader(r, japanese.EUCJP.NewDecoder()), nil
	default:
		return nil, fmt.Errorf("loader: unsupported encoding %q", encoding)
	}
}

func parseHeader(record []string) (map[string]int, bool) {
	columns := make(map[string]int)
	for i, name := range record {
		if key, ok := headerAliases[strings.ToLower(strings.TrimSpace(name))]; ok {
			if _, seen := columns[key]; !seen {
				columns[key] = i
			}
		}
	}
	_, hasPref := columns["prefecture"]
	_, hasMuni := columns["municipality"]
	return columns, hasPref && hasMuni
}

func field(record []string, columns map[string]int, name string) string {
	i, ok := columns[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}
