package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mattabott/beyblade-x-collection/internal/output"
)

func (a *App) newDeckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deck",
		Short: "Create and edit three-slot decks",
		Long: `A deck holds three beyblades (beyblade1..beyblade3). Every part must be
owned, and a blade, ratchet or bit used in one slot cannot be used again in
the same role of another slot.`,
	}
	cmd.AddCommand(
		a.newDeckCreateCmd(),
		a.newDeckAddCmd(),
		a.newDeckShowCmd(),
		a.newDeckListCmd(),
		a.newDeckDeleteCmd(),
	)
	return cmd
}

func (a *App) newDeckCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create <deck>",
		Short: "Create an empty deck",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.mgr.CreateDeck(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Deck %q created.\n", args[0])
			return nil
		},
	}
}

func (a *App) newDeckAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <deck> <slot> <blade> <ratchet> <bit>",
		Short: "Fill a deck slot",
		Long: `The deck add command replaces one slot with a blade/ratchet/bit triple.
The slot is beyblade1, beyblade2, beyblade3 or just 1, 2, 3.

Example:
  beyx_collection deck add Main 1 "Dran Sword" 3-60 "Flat (F)"`,
		Args: usageArgs(cobra.ExactArgs(5)),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.mgr.AddToDeck(args[0], args[1], args[2], args[3], args[4]); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Deck %q updated.\n", args[0])
			return nil
		},
	}
}

func (a *App) newDeckShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <deck>",
		Short: "Show the slots of a deck",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.mgr.Deck(args[0])
			if err != nil {
				return err
			}
			output.PrintDeck(a.out, args[0], d)
			return nil
		},
	}
}

func (a *App) newDeckListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List deck names",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			output.PrintDecks(a.out, a.mgr.DeckNames())
			return nil
		},
	}
}

func (a *App) newDeckDeleteCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <deck>",
		Short: "Delete a deck",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.mgr.Deck(args[0]); err != nil {
				return err
			}
			if !yes && !a.confirm(fmt.Sprintf("Delete deck %q?", args[0])) {
				return a.declined()
			}
			if err := a.mgr.DeleteDeck(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Deck %q deleted.\n", args[0])
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Don't prompt for confirmation")
	return cmd
}
