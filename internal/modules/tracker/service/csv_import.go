package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"jobtrack/internal/modules/tracker/domain"
	"jobtrack/internal/platform/civil"
	apperrors "jobtrack/internal/platform/errors"
)

const (
	FieldCompany     = "company"
	FieldRole        = "role"
	FieldDateApplied = "date_applied"
	FieldStatus      = "status"
)

var importFields = []string{FieldCompany, FieldRole, FieldDateApplied, FieldStatus}

var headerAliases = map[string][]string{
	FieldCompany:     {"company", "company name", "employer", "organization", "organisation"},
	FieldRole:        {"role", "title", "job title", "position", "job"},
	FieldDateApplied: {"date applied", "applied", "applied on", "applied date", "application date", "date"},
	FieldStatus:      {"status", "stage", "state"},
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

type ImportResult struct {
	BatchID         string
	Inserted        int
	Skipped         int
	InvalidDates    int
	UnknownStatuses []string
	Delimiter       rune
	Encoding        string
}

type csvTable struct {
	header    []string
	rows      [][]string
	delimiter rune
	encoding  string
}

// Import reads a CSV export from a spreadsheet and stores every usable row
// under a fresh batch id. Rows with an empty company or role, an unparseable
// date or an unknown status are skipped and logged.
func (s *ApplicationService) Import(ctx context.Context, r io.Reader, mapping map[string]string) (ImportResult, error) {
	table, err := readCSV(r)
	if err != nil {
		return ImportResult{}, err
	}
	columns, err := resolveColumns(table.header, mapping)
	if err != nil {
		return ImportResult{}, err
	}

	result := ImportResult{
		BatchID:   s.idGen.New(),
		Delimiter: table.delimiter,
		Encoding:  table.encoding,
	}
	now := s.clock.Now().UTC()
	unknown := make(map[string]struct{})
	apps := make([]domain.Application, 0, len(table.rows))

	for i, row := range table.rows {
		line := i + 2
		company := strings.TrimSpace(field(row, columns[FieldCompany]))
		role := strings.TrimSpace(field(row, columns[FieldRole]))
		if company == "" || role == "" {
			result.Skipped++
			s.logger.Debug("skipped row", "line", line, "reason", "missing company or role")
			continue
		}
		rawDate := field(row, columns[FieldDateApplied])
		day, err := civil.Parse(rawDate)
		if err != nil {
			result.Skipped++
			result.InvalidDates++
			s.logger.Debug("skipped row", "line", line, "reason", "unparseable date", "value", rawDate)
			continue
		}
		status := domain.StatusApplied
		if idx, ok := columns[FieldStatus]; ok {
			rawStatus := strings.TrimSpace(field(row, idx))
			status, err = domain.NormalizeStatus(rawStatus, s.aliases)
			if err != nil {
				result.Skipped++
				unknown[rawStatus] = struct{}{}
				s.logger.Debug("skipped row", "line", line, "reason", "unknown status", "value", rawStatus)
				continue
			}
		}
		apps = append(apps, domain.Application{
			Company:     company,
			Role:        role,
			DateApplied: civil.Format(day),
			Status:      status,
			ImportBatch: result.BatchID,
			CreatedAt:   now,
		})
	}

	result.UnknownStatuses = make([]string, 0, len(unknown))
	for raw := range unknown {
		result.UnknownStatuses = append(result.UnknownStatuses, raw)
	}
	sort.Strings(result.UnknownStatuses)
	if len(result.UnknownStatuses) > 0 {
		s.logger.Warn("unknown statuses in import", "values", strings.Join(result.UnknownStatuses, ", "))
	}

	if len(apps) == 0 {
		return result, fmt.Errorf("%w: %d rows skipped", apperrors.ErrEmptyImport, result.Skipped)
	}
	inserted, err := s.store.InsertBatch(ctx, apps)
	if err != nil {
		return ImportResult{}, err
	}
	result.Inserted = inserted
	s.logger.Info("imported applications", "batch", result.BatchID, "inserted", inserted, "skipped", result.Skipped, "encoding", result.Encoding)
	return result, nil
}

func readCSV(r io.Reader) (csvTable, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return csvTable{}, fmt.Errorf("read csv: %w", err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)
	encoding := "utf-8"
	if !utf8.Valid(data) {
		decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
		if err != nil {
			return csvTable{}, fmt.Errorf("decode csv: %w", err)
		}
		data = decoded
		encoding = "windows-1252"
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return csvTable{}, fmt.Errorf("%w: file is empty", apperrors.ErrEmptyImport)
	}

	delimiter := sniffDelimiter(data)
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return csvTable{}, fmt.Errorf("%w: parse csv: %v", apperrors.ErrInvalidInput, err)
	}
	if len(records) < 2 {
		return csvTable{}, fmt.Errorf("%w: no data rows", apperrors.ErrEmptyImport)
	}
	return csvTable{header: records[0], rows: records[1:], delimiter: delimiter, encoding: encoding}, nil
}

// sniffDelimiter picks the candidate occurring most often outside quotes on
// the header line. Ties prefer the earlier candidate.
func sniffDelimiter(data []byte) rune {
	line := data
	if idx := bytes.IndexByte(data, '\n'); idx >= 0 {
		line = data[:idx]
	}
	candidates := []rune{',', ';', '\t', '|'}
	counts := make(map[rune]int, len(candidates))
	quoted := false
	for _, r := range string(line) {
		if r == '"' {
			quoted = !quoted
			continue
		}
		if !quoted {
			counts[r]++
		}
	}
	best := ','
	for _, c := range candidates {
		if counts[c] > counts[best] {
			best = c
		}
	}
	return best
}

// resolveColumns maps each import field to a header index. Explicit mapping
// entries win over header aliases. Company, role and date are required and
// no two fields may share a column.
func resolveColumns(header []string, mapping map[string]string) (map[string]int, error) {
	byExact := make(map[string]int, len(header))
	byNorm := make(map[string]int, len(header))
	for i, h := range header {
		if _, ok := byExact[h]; !ok {
			byExact[h] = i
		}
		if _, ok := byNorm[normalizeHeader(h)]; !ok {
			byNorm[normalizeHeader(h)] = i
		}
	}

	columns := make(map[string]int, len(importFields))
	for target, source := range mapping {
		target = strings.ToLower(strings.TrimSpace(target))
		if _, ok := headerAliases[target]; !ok {
			return nil, fmt.Errorf("%w: unknown import field %q (want one of %s)", apperrors.ErrInvalidInput, target, strings.Join(importFields, ", "))
		}
		idx, ok := byExact[source]
		if !ok {
			idx, ok = byNorm[normalizeHeader(source)]
		}
		if !ok {
			return nil, fmt.Errorf("%w: column %q not found in CSV", apperrors.ErrInvalidInput, source)
		}
		columns[target] = idx
	}

	for _, target := range importFields {
		if _, ok := columns[target]; ok {
			continue
		}
		for _, alias := range headerAliases[target] {
			if idx, ok := byNorm[alias]; ok {
				columns[target] = idx
				break
			}
		}
	}

	for _, required := range []string{FieldCompany, FieldRole, FieldDateApplied} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("%w: no column found for %s (use a mapping)", apperrors.ErrInvalidInput, required)
		}
	}
	owner := make(map[int]string, len(columns))
	for _, target := range importFields {
		idx, ok := columns[target]
		if !ok {
			continue
		}
		if prev, taken := owner[idx]; taken {
			return nil, fmt.Errorf("%w: %s and %s map to the same CSV column", apperrors.ErrInvalidInput, prev, target)
		}
		owner[idx] = target
	}
	return columns, nil
}

func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	h = strings.NewReplacer("_", " ", "-", " ").Replace(h)
	return strings.Join(strings.Fields(h), " ")
}

func field(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
