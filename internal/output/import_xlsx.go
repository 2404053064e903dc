package output

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/mattabott/beyblade-x-collection/internal/domain"
)

// ImportPartsXLSX reads "Category | Name" rows from the first sheet. A
// leading header row is skipped; rows with an unknown category or no name are
// reported in skipped rather than failing the import.
func ImportPartsXLSX(path string) (refs []domain.PartRef, skipped []string, err error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open xlsx %q: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, fmt.Errorf("xlsx %q: no sheets", path)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", sheets[0], err)
	}

	for i, row := range rows {
		var catCell, nameCell string
		if len(row) > 0 {
			catCell = strings.TrimSpace(row[0])
		}
		if len(row) > 1 {
			nameCell = strings.TrimSpace(row[1])
		}
		if catCell == "" && nameCell == "" {
			continue
		}
		if i == 0 && strings.EqualFold(catCell, "category") {
			continue
		}

		cat, err := domain.ParseCategory(catCell)
		if err != nil {
			skipped = append(skipped, fmt.Sprintf("row %d: %v", i+1, err))
			continue
		}
		if nameCell == "" {
			skipped = append(skipped, fmt.Sprintf("row %d: empty name", i+1))
			continue
		}
		refs = append(refs, domain.PartRef{Category: cat, Name: nameCell})
	}
	return refs, skipped, nil
}
