package main

import (
	"github.com/spf13/cobra"
)

func newReservationCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reservation",
		Short: "Reserve unavailable items and manage the queue",
	}

	cmd.AddCommand(newReservationCreateCmd(a), newReservationCancelCmd(a), newReservationListCmd(a))

	return cmd
}

func newReservationCreateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "create <patron-id> <item-id>",
		Short: "Reserve an item that has no copy available",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			patronID, err := uuidArg(args[0], "patron-id")
			if err != nil {
				return err
			}

			itemID, err := uuidArg(args[1], "item-id")
			if err != nil {
				return err
			}

			svc, err := a.circulation(cmd.Context())
			if err != nil {
				return err
			}

			reservationID, err := svc.Reserve(cmd.Context(), patronID, itemID)
			if err != nil {
				return err
			}

			a.ok("item reserved")
			a.field("reservation", reservationID)

			return nil
		},
	}
}

func newReservationCancelCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <patron-id> <item-id>",
		Short: "Cancel the reservation of a patron for an item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			patronID, err := uuidArg(args[0], "patron-id")
			if err != nil {
				return err
			}

			itemID, err := uuidArg(args[1], "item-id")
			if err != nil {
				return err
			}

			svc, err := a.circulation(cmd.Context())
			if err != nil {
				return err
			}

			if err = svc.CancelReservation(cmd.Context(), patronID, itemID); err != nil {
				return err
			}

			a.ok("reservation canceled")

			return nil
		},
	}
}

func newReservationListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list <item-id>",
		Short: "List the open reservations of an item, oldest first",
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

			reservations, err := svc.ReservationsForItem(cmd.Context(), itemID)
			if err != nil {
				return err
			}

			a.header("%d open reservations", reservations.Count)
			for _, reservation := range reservations.Reservations {
				a.field(reservation.PatronID, reservation.ReservedAt.Format("2006-01-02 15:04"))
			}

			return nil
		},
	}
}
