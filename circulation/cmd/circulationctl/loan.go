package main

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newLoanCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "loan",
		Short: "Issue, return and renew loans, collect and project fines",
	}

	cmd.AddCommand(
		newLoanIssueCmd(a),
		newLoanReturnCmd(a),
		newLoanRenewCmd(a),
		newLoanCollectFineCmd(a),
		newLoanFineCmd(a),
		newLoanActiveCmd(a),
		newLoanOverdueCmd(a),
	)

	return cmd
}

func newLoanIssueCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "issue <patron-id> <item-id>",
		Short: "Lend one copy of an item to a patron",
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

			issued, err := svc.Issue(cmd.Context(), patronID, itemID)
			if err != nil {
				return err
			}

			a.ok("loan issued")
			a.field("loan", issued.LoanID)
			a.field("due", formatDate(issued.DueDate))
			if issued.ReservationFulfilled {
				a.field("reservation", "fulfilled")
			}

			return nil
		},
	}
}

func newLoanReturnCmd(a *app) *cobra.Command {
	var observedAt string

	cmd := &cobra.Command{
		Use:   "return <loan-id>",
		Short: "Return a loan and compute its final fine",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loanID, err := uuidArg(args[0], "loan-id")
			if err != nil {
				return err
			}

			observed, err := timeFlag(observedAt, "observed-at")
			if err != nil {
				return err
			}

			svc, err := a.circulation(cmd.Context())
			if err != nil {
				return err
			}

			var observedPtr *time.Time
			if !observed.IsZero() {
				observedPtr = &observed
			}

			returned, err := svc.Return(cmd.Context(), loanID, observedPtr)
			if err != nil {
				return err
			}

			a.ok("loan returned")
			a.field("returned at", returned.ReturnedAt)
			a.field("fine", returned.Fine.StringFixed(2))

			return nil
		},
	}

	cmd.Flags().StringVar(&observedAt, "observed-at", "", "Return time (RFC 3339), defaults to now")

	return cmd
}

func newLoanRenewCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "renew <loan-id>",
		Short: "Extend the due date of a loan that is not overdue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loanID, err := uuidArg(args[0], "loan-id")
			if err != nil {
				return err
			}

			svc, err := a.circulation(cmd.Context())
			if err != nil {
				return err
			}

			dueDate, err := svc.Renew(cmd.Context(), loanID)
			if err != nil {
				return err
			}

			a.ok("loan renewed")
			a.field("due", formatDate(dueDate))

			return nil
		},
	}
}

func newLoanCollectFineCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "collect-fine <loan-id> <amount>",
		Short: "Record a fine payment for a loan",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			loanID, err := uuidArg(args[0], "loan-id")
			if err != nil {
				return err
			}

			amount, err := decimal.NewFromString(args[1])
			if err != nil {
				return err
			}

			svc, err := a.circulation(cmd.Context())
			if err != nil {
				return err
			}

			if err = svc.CollectFine(cmd.Context(), loanID, amount); err != nil {
				return err
			}

			a.ok("collected %s for loan %s", amount.StringFixed(2), loanID)

			return nil
		},
	}
}

func newLoanFineCmd(a *app) *cobra.Command {
	var asOf string

	cmd := &cobra.Command{
		Use:   "fine <loan-id>",
		Short: "Project the fine of a loan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loanID, err := uuidArg(args[0], "loan-id")
			if err != nil {
				return err
			}

			at, err := timeFlag(asOf, "as-of")
			if err != nil {
				return err
			}

			svc, err := a.circulation(cmd.Context())
			if err != nil {
				return err
			}

			projection, err := svc.CurrentFineProjection(cmd.Context(), loanID, at)
			if err != nil {
				return err
			}

			a.header("loan %s", projection.LoanID)
			a.field("state", projection.State)
			a.field("due", formatDate(projection.DueDate))
			a.field("fine", projection.Fine.StringFixed(2))
			a.field("final", projection.Final)

			return nil
		},
	}

	cmd.Flags().StringVar(&asOf, "as-of", "", "Projection time (RFC 3339), defaults to now")

	return cmd
}

func newLoanActiveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "active <patron-id>",
		Short: "List the open loans of a patron",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			patronID, err := uuidArg(args[0], "patron-id")
			if err != nil {
				return err
			}

			svc, err := a.circulation(cmd.Context())
			if err != nil {
				return err
			}

			active, err := svc.ActiveLoansForPatron(cmd.Context(), patronID)
			if err != nil {
				return err
			}

			a.header("%d open loans", active.Count)
			for _, loan := range active.Loans {
				a.field(loan.LoanID, "item "+loan.ItemID+" due "+formatDate(loan.DueDate)+overdueMarker(loan.Overdue))
			}

			return nil
		},
	}
}

func newLoanOverdueCmd(a *app) *cobra.Command {
	var asOf string

	cmd := &cobra.Command{
		Use:   "overdue",
		Short: "List all overdue loans with their accrued fines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			at, err := timeFlag(asOf, "as-of")
			if err != nil {
				return err
			}

			svc, err := a.circulation(cmd.Context())
			if err != nil {
				return err
			}

			overdue, err := svc.OverdueLoans(cmd.Context(), at)
			if err != nil {
				return err
			}

			a.header("%d overdue loans", overdue.Count)
			for _, loan := range overdue.Loans {
				a.field(loan.LoanID, "patron "+loan.PatronID+" fine "+loan.AccruedFine.StringFixed(2))
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&asOf, "as-of", "", "Reference time (RFC 3339), defaults to now")

	return cmd
}

func overdueMarker(overdue bool) string {
	if overdue {
		return " (overdue)"
	}

	return ""
}
