package app

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mattabott/beyblade-x-collection/internal/analysis"
	"github.com/mattabott/beyblade-x-collection/internal/domain"
	"github.com/mattabott/beyblade-x-collection/internal/output"
)

// categoriesArg returns the single category named by args, or all of them.
func categoriesArg(args []string) ([]domain.Category, error) {
	if len(args) == 0 {
		return domain.Categories, nil
	}
	cat, err := parseCategoryArg(args[0])
	if err != nil {
		return nil, err
	}
	return []domain.Category{cat}, nil
}

func (a *App) newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [category]",
		Short: "List owned parts with copy counts",
		Args:  usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			cats, err := categoriesArg(args)
			if err != nil {
				return err
			}
			for _, cat := range cats {
				output.PrintParts(a.out, cat, a.mgr.Parts(cat), a.mgr.Database())
			}
			return nil
		},
	}
}

func (a *App) newCompareCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compare <category> <part-a> <part-b>",
		Short: "Compare the stats of two owned parts",
		Long: `The compare command shows every stat of two owned parts and the
difference A - B.

Example:
  beyx_collection compare blades "Dran Sword" "Hells Scythe"`,
		Args: usageArgs(cobra.ExactArgs(3)),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := parseCategoryArg(args[0])
			if err != nil {
				return err
			}
			cmp, err := analysis.Compare(a.mgr.Parts(cat), args[1], args[2])
			if err != nil {
				return err
			}
			output.PrintComparison(a.out, cmp)
			return nil
		},
	}
}

func (a *App) newRankCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rank <category> <stat>",
		Short: "Rank owned parts by one stat",
		Args:  usageArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := parseCategoryArg(args[0])
			if err != nil {
				return err
			}
			output.PrintRanking(a.out, cat, args[1], analysis.Rank(a.mgr.Parts(cat), args[1]))
			return nil
		},
	}
}

func (a *App) newSuggestCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "suggest <attack|defense|stamina|balance>",
		Short:     "Suggest the strongest owned combo for a play style",
		Args:      usageArgs(cobra.ExactArgs(1)),
		ValidArgs: analysis.ComboTypes,
		RunE: func(cmd *cobra.Command, args []string) error {
			combo, err := analysis.SuggestCombo(
				a.mgr.Parts(domain.Blades),
				a.mgr.Parts(domain.Ratchets),
				a.mgr.Parts(domain.Bits),
				args[0],
			)
			if err != nil {
				return err
			}
			output.PrintCombo(a.out, combo)
			return nil
		},
	}
}

func (a *App) newDBCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "db [category]",
		Short: "Show the reference parts database",
		Args:  usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			cats, err := categoriesArg(args)
			if err != nil {
				return err
			}
			for _, cat := range cats {
				output.PrintDatabase(a.out, cat, a.mgr.Database())
			}
			return nil
		},
	}
}

func (a *App) newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [file.xlsx]",
		Short: "Export the collection and decks to a spreadsheet",
		Long: `The export command writes one sheet per category (name, copies, stats)
and a Decks sheet. Without a file name it writes
<export_dir>/<yyyymmdd>_beyblade_collection.xlsx.`,
		Args: usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := output.DefaultExportPath(a.settings.ExportDir, time.Now())
			if len(args) == 1 {
				path = args[0]
			}
			written, err := output.ExportCollectionXLSX(path, a.mgr)
			if err != nil {
				return fmt.Errorf("export: %w", err)
			}
			fmt.Fprintf(a.out, "Exported to %s\n", written)
			return nil
		},
	}
}
