package main

import (
	"strings"

	"github.com/spf13/cobra"
)

func newConditionCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "condition",
		Short: "Report lost or damaged copies and track their records",
	}

	cmd.AddCommand(newReportLostCmd(a), newReportDamagedCmd(a), newUpdateStatusCmd(a))

	return cmd
}

func newReportLostCmd(a *app) *cobra.Command {
	var details string

	cmd := &cobra.Command{
		Use:   "report-lost <item-id>",
		Short: "Report a copy as lost, which withdraws it from availability",
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

			recordID, err := svc.ReportLost(cmd.Context(), itemID, details)
			if err != nil {
				return err
			}

			a.ok("loss reported")
			a.field("record", recordID)

			return nil
		},
	}

	cmd.Flags().StringVar(&details, "details", "", "Free text details")

	return cmd
}

func newReportDamagedCmd(a *app) *cobra.Command {
	var (
		details    string
		level      string
		repairable bool
	)

	cmd := &cobra.Command{
		Use:   "report-damaged <item-id>",
		Short: "Report a damaged copy, SEVERE damage withdraws it from availability",
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

			recordID, err := svc.ReportDamaged(cmd.Context(), itemID, details, strings.ToUpper(level), repairable)
			if err != nil {
				return err
			}

			a.ok("damage reported")
			a.field("record", recordID)

			return nil
		},
	}

	cmd.Flags().StringVar(&details, "details", "", "Free text details")
	cmd.Flags().StringVar(&level, "level", "", "MINOR, MODERATE or SEVERE")
	cmd.Flags().BoolVar(&repairable, "repairable", true, "Whether the copy can be repaired")
	_ = cmd.MarkFlagRequired("level")

	return cmd
}

func newUpdateStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "update-status <record-id> <status>",
		Short: "Move a lost or damaged record to a new status",
		Long: `Lost records end in FOUND, REPLACED or CLOSED. Damaged records end in REPAIRED,
IRREPARABLE, REPLACED or CLOSED. Both may pass through INVESTIGATING first.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			recordID, err := uuidArg(args[0], "record-id")
			if err != nil {
				return err
			}

			svc, err := a.circulation(cmd.Context())
			if err != nil {
				return err
			}

			status := strings.ToUpper(args[1])
			if err = svc.UpdateLostDamagedStatus(cmd.Context(), recordID, status); err != nil {
				return err
			}

			a.ok("record %s is %s", recordID, status)

			return nil
		},
	}
}
