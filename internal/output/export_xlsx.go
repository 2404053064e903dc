package output

import (
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/mattabott/beyblade-x-collection/internal/analysis"
	"github.com/mattabott/beyblade-x-collection/internal/config"
	"github.com/mattabott/beyblade-x-collection/internal/domain"
)

// Source is the read side of a collection needed for an export.
type Source interface {
	Parts(cat domain.Category) []domain.Part
	DeckNames() []string
	Deck(name string) (domain.Deck, error)
}

func colName(n int) string {
	// 1-indexed: 1 -> A, 26 -> Z, 27 -> AA
	if n <= 0 {
		return ""
	}
	out := ""
	for n > 0 {
		n--
		out = string(rune('A'+(n%26))) + out
		n /= 26
	}
	return out
}

func cell(col, row int) string {
	return fmt.Sprintf("%s%d", colName(col), row)
}

// DefaultExportPath is <dir>/<yyyymmdd>_beyblade_collection.xlsx.
func DefaultExportPath(dir string, now time.Time) string {
	return filepath.Join(dir, fmt.Sprintf("%s_beyblade_collection.xlsx", now.Format("20060102")))
}

func sheetName(cat domain.Category) string {
	return Label(string(cat))
}

func statColumns(groups []analysis.Group) []string {
	seen := map[string]struct{}{}
	for _, g := range groups {
		for k := range g.Stats {
			if k != imageKey {
				seen[k] = struct{}{}
			}
		}
	}
	out := make([]string, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// ExportCollectionXLSX writes one sheet per category (name, count, stats) and
// a Decks sheet, creating the parent directory if needed.
func ExportCollectionXLSX(path string, src Source) (string, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	headerStyleID, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return "", err
	}

	for i, cat := range domain.Categories {
		sheet := sheetName(cat)
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return "", err
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return "", err
		}

		groups := analysis.GroupCounts(src.Parts(cat))
		stats := statColumns(groups)

		f.SetCellValue(sheet, "A1", "Name")
		f.SetCellValue(sheet, "B1", "Count")
		for j, k := range stats {
			f.SetCellValue(sheet, cell(3+j, 1), Label(k))
		}
		if err := f.SetCellStyle(sheet, "A1", cell(2+len(stats), 1), headerStyleID); err != nil {
			return "", err
		}

		for r, g := range groups {
			row := r + 2
			f.SetCellValue(sheet, cell(1, row), g.Name)
			f.SetCellValue(sheet, cell(2, row), g.Count)
			for j, k := range stats {
				v, ok := g.Stats[k]
				if !ok {
					continue
				}
				switch v.Kind {
				case domain.StatNumber:
					f.SetCellValue(sheet, cell(3+j, row), v.Num)
				case domain.StatText, domain.StatOther:
					f.SetCellValue(sheet, cell(3+j, row), v.String())
				}
			}
		}
		_ = f.SetColWidth(sheet, "A", "A", 28)
	}

	if err := writeDecksSheet(f, src, headerStyleID); err != nil {
		return "", err
	}

	if _, err := config.EnsureDir(filepath.Dir(path)); err != nil {
		return "", err
	}
	if err := f.SaveAs(path); err != nil {
		return "", err
	}
	return path, nil
}

func writeDecksSheet(f *excelize.File, src Source, headerStyleID int) error {
	const sheet = "Decks"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	for i, h := range []string{"Deck", "Slot", "Blade", "Ratchet", "Bit"} {
		f.SetCellValue(sheet, cell(i+1, 1), h)
	}
	if err := f.SetCellStyle(sheet, "A1", "E1", headerStyleID); err != nil {
		return err
	}

	row := 2
	for _, name := range src.DeckNames() {
		d, err := src.Deck(name)
		if err != nil {
			return err
		}
		for i, bey := range d.Slots {
			f.SetCellValue(sheet, cell(1, row), name)
			f.SetCellValue(sheet, cell(2, row), domain.SlotIDs[i])
			for j, cat := range domain.Categories {
				if p := bey.Role(cat); p != nil {
					f.SetCellValue(sheet, cell(3+j, row), *p)
				}
			}
			row++
		}
	}
	return nil
}
