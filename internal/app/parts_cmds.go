package app

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mattabott/beyblade-x-collection/internal/domain"
	"github.com/mattabott/beyblade-x-collection/internal/output"
)

func (a *App) newAddCmd() *cobra.Command {
	var noDuplicates bool
	cmd := &cobra.Command{
		Use:   "add <category> <name...>",
		Short: "Add one part to the collection",
		Long: `The add command resolves the name against the reference database
(exact, abbreviation in parentheses, prefix, then closest match) and adds
one copy. Unknown names are kept as typed, without stats.

Example:
  beyx_collection add blades Dran Sword
  beyx_collection add bits MN
  beyx_collection add b Wizard Arrow --no-duplicates`,
		Args: usageArgs(cobra.MinimumNArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := parseCategoryArg(args[0])
			if err != nil {
				return err
			}
			res, err := a.mgr.AddPart(cat, strings.Join(args[1:], " "), !noDuplicates)
			if err != nil {
				return err
			}
			output.PrintAdded(a.out, cat, res)
			return a.mgr.Save(false)
		},
	}
	cmd.Flags().BoolVar(&noDuplicates, "no-duplicates", false, "Refuse the add if the part is already owned")
	return cmd
}

const forceUsage = "Allow saving an empty collection over the existing file"

// allowEmpty lifts the empty-collection save guard for --force. The manager
// refuses when the collection file failed to load.
func (a *App) allowEmpty(force bool) error {
	if !force {
		return nil
	}
	return a.mgr.AllowEmptySave()
}

func (a *App) newRemoveCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "remove <category> <name...>",
		Short: "Remove one copy of a part",
		Long: `The remove command removes the most recently added copy of a part.
A name that is not owned falls back to the closest owned name.

An empty collection is never written over a non-empty file, so removing the
last owned part fails unless --force is given. --force is refused when the
collection file could not be read.

Example:
  beyx_collection remove blades Dran Sword
  beyx_collection remove bits F --force`,
		Args: usageArgs(cobra.MinimumNArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := parseCategoryArg(args[0])
			if err != nil {
				return err
			}
			if err := a.allowEmpty(force); err != nil {
				return err
			}
			removed, err := a.mgr.RemovePart(cat, strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Removed %s %q (owned: %d).\n", cat.Singular(), removed.Name, a.mgr.Count(cat, removed.Name))
			return a.mgr.Save(false)
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, forceUsage)
	return cmd
}

func parseRefs(args []string) ([]domain.PartRef, error) {
	refs := make([]domain.PartRef, 0, len(args))
	for _, s := range args {
		ref, err := domain.ParsePartRef(s)
		if err != nil {
			return nil, ExitWithError(codeUsage, err)
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

func (a *App) newBatchAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "batch-add <type:name>...",
		Short: "Add several parts at once",
		Long: `The batch-add command adds every listed part and saves once at the end.
Each part is written as b:<blade>, r:<ratchet> or t:<bit>.

Example:
  beyx_collection batch-add "b:Dran Sword" r:3-60 t:F`,
		Args: usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			refs, err := parseRefs(args)
			if err != nil {
				return err
			}
			res, err := a.mgr.BatchAdd(refs)
			output.PrintBatch(a.out, "Added", res)
			return err
		},
	}
}

func (a *App) newBatchRemoveCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "batch-remove <type:name>...",
		Short: "Remove several parts at once",
		Long: `The batch-remove command removes one copy of every listed part and saves
once at the end. Emptying the collection needs --force, as with remove.`,
		Args: usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			refs, err := parseRefs(args)
			if err != nil {
				return err
			}
			if err := a.allowEmpty(force); err != nil {
				return err
			}
			res, err := a.mgr.BatchRemove(refs)
			output.PrintBatch(a.out, "Removed", res)
			return err
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, forceUsage)
	return cmd
}

func (a *App) newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.xlsx>",
		Short: "Batch-add parts listed in a spreadsheet",
		Long: `The import command reads "Category | Name" rows from the first sheet of
an XLSX file and adds every part, saving once at the end.`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			refs, skipped, err := output.ImportPartsXLSX(args[0])
			if err != nil {
				return err
			}
			for _, s := range skipped {
				fmt.Fprintf(a.out, "  skip %s\n", s)
			}
			if len(refs) == 0 {
				fmt.Fprintln(a.out, "Nothing to import.")
				return nil
			}
			res, err := a.mgr.BatchAdd(refs)
			output.PrintBatch(a.out, "Imported", res)
			return err
		},
	}
}

func (a *App) newFixStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fix-stats",
		Short: "Fill in stats for parts added before they were in the database",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			fixed, err := a.mgr.FixMissingStats()
			if err != nil {
				return err
			}
			if fixed == 0 {
				fmt.Fprintln(a.out, "No parts to fix.")
				return nil
			}
			fmt.Fprintf(a.out, "Fixed %d parts.\n", fixed)
			return nil
		},
	}
}
