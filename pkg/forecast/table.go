package forecast

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// LoadYieldTable starts from DefaultYieldTable and applies overrides from a
// CSV file and then an XLSX file; empty paths are skipped. Both need a crop
// column and a kg/ha column, matched by header aliases.
func LoadYieldTable(csvPath, xlsxPath string) (map[string]float64, error) {
	table := make(map[string]float64, len(DefaultYieldTable))
	for k, v := range DefaultYieldTable {
		table[k] = v
	}
	if csvPath != "" {
		if err := loadYieldCSV(csvPath, table); err != nil {
			return nil, fmt.Errorf("yield csv %s: %w", csvPath, err)
		}
	}
	if xlsxPath != "" {
		if err := loadYieldXLSX(xlsxPath, table); err != nil {
			return nil, fmt.Errorf("yield xlsx %s: %w", xlsxPath, err)
		}
	}
	return table, nil
}

func loadYieldCSV(path string, table map[string]float64) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1
	var rows [][]string
	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}
		rows = append(rows, rec)
	}
	return applyRows(rows, table)
}

func loadYieldXLSX(path string, table map[string]float64) error {
	x, err := excelize.OpenFile(path)
	if err != nil {
		return err
	}
	defer x.Close()

	sheets := x.GetSheetList()
	if len(sheets) == 0 {
		return errors.New("workbook has no sheets")
	}
	rows, err := x.GetRows(sheets[0])
	if err != nil {
		return err
	}
	return applyRows(rows, table)
}

func applyRows(rows [][]string, table map[string]float64) error {
	if len(rows) == 0 {
		return errors.New("empty table")
	}
	norm := func(s string) string {
		s = strings.TrimSpace(s)
		s = strings.TrimPrefix(s, "\uFEFF")
		s = strings.ToLower(s)
		s = strings.ReplaceAll(s, " ", "")
		s = strings.ReplaceAll(s, "-", "")
		s = strings.ReplaceAll(s, "_", "")
		return s
	}
	hmap := map[string]int{}
	for i, h := range rows[0] {
		hmap[norm(h)] = i
	}
	findAny := func(keys ...string) int {
		for _, k := range keys {
			if idx, ok := hmap[norm(k)]; ok {
				return idx
			}
		}
		return -1
	}

	cCrop := findAny("crop", "crop_name", "name")
	cYield := findAny("yield_kg_per_ha", "kg_per_ha", "base_yield", "yield")
	if cCrop == -1 || cYield == -1 {
		return fmt.Errorf("missing required columns, found headers %v; need crop and yield_kg_per_ha", rows[0])
	}

	for _, rec := range rows[1:] {
		get := func(idx int) string {
			if idx >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[idx])
		}
		name := strings.ToLower(get(cCrop))
		v, err := strconv.ParseFloat(get(cYield), 64)
		if name == "" || err != nil || v <= 0 {
			continue
		}
		table[name] = v
	}
	return nil
}
