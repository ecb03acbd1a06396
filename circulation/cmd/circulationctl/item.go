package main

import (
	"github.com/spf13/cobra"
)

func newItemCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item",
		Short: "Register items and inspect their availability",
	}

	cmd.AddCommand(newItemRegisterCmd(a), newItemVisibilityCmd(a), newItemAvailabilityCmd(a))

	return cmd
}

func newItemRegisterCmd(a *app) *cobra.Command {
	var (
		title  string
		copies int
		hidden bool
	)

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register an item with a number of copies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.circulation(cmd.Context())
			if err != nil {
				return err
			}

			itemID, err := svc.RegisterItem(cmd.Context(), title, copies, !hidden)
			if err != nil {
				return err
			}

			a.ok("registered %q with %d copies", title, copies)
			a.field("item", itemID)

			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Title of the item")
	cmd.Flags().IntVar(&copies, "copies", 1, "Number of copies")
	cmd.Flags().BoolVar(&hidden, "hidden", false, "Register the item as not visible")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func newItemVisibilityCmd(a *app) *cobra.Command {
	var visible bool

	cmd := &cobra.Command{
		Use:   "visibility <item-id>",
		Short: "Show or hide an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			itemID, err := uuidArg(args[0], "item-id")
			if err != nil {
				return err
			}

			svc, err := a.circulation(cmd.Context())
			if err != nil {
				return err
			}

			if err = svc.ChangeItemVisibility(cmd.Context(), itemID, visible); err != nil {
				return err
			}

			a.ok("item %s visible: %t", itemID, visible)

			return nil
		},
	}

	cmd.Flags().BoolVar(&visible, "visible", true, "Whether patrons can borrow and reserve the item")

	return cmd
}

func newItemAvailabilityCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "availability <item-id>",
		Short: "Show copy counts of an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			itemID, err := uuidArg(args[0], "item-id")
			if err != nil {
				return err
			}

			svc, err := a.circulation(cmd.Context())
			if err != nil {
				return err
			}

			availability, err := svc.ItemAvailability(cmd.Context(), itemID)
			if err != nil {
				return err
			}

			a.header("%s", availability.Title)
			a.field("item", availability.ItemID)
			a.field("visible", availability.Visible)
			a.field("total copies", availability.TotalCopies)
			a.field("available copies", availability.AvailableCopies)
			a.field("open loans", availability.OpenLoans)
			a.field("open reservations", availability.OpenReservations)
			a.field("pending withdrawals", availability.PendingWithdrawals)

			return nil
		},
	}
}
