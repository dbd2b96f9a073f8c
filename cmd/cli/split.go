package main

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/iho/splitledger/internal/adapter/http/dto"
	"github.com/iho/splitledger/internal/domain"
)

func splitCmd() *cobra.Command {
	var (
		walletID   string
		value      string
		percentage string
	)

	cmd := &cobra.Command{
		Use:   "split",
		Short: "Compute the fixed split of a gross value locally",
		RunE: func(cmd *cobra.Command, args []string) error {
			gross, err := decimal.NewFromString(value)
			if err != nil {
				return fmt.Errorf("invalid --value %q: %w", value, err)
			}
			pct, err := decimal.NewFromString(percentage)
			if err != nil {
				return fmt.Errorf("invalid --percentage %q: %w", percentage, err)
			}

			rule, err := domain.ComputeNetSplit(walletID, gross, pct)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(dto.SplitFromDomain(rule))
		},
	}

	cmd.Flags().StringVar(&walletID, "wallet", "", "Destination wallet id")
	cmd.Flags().StringVar(&value, "value", "", "Gross payment value")
	cmd.Flags().StringVar(&percentage, "percentage", fmt.Sprint(domain.DefaultSplitPercentage), "Share of the gross value for the wallet")
	_ = cmd.MarkFlagRequired("wallet")
	_ = cmd.MarkFlagRequired("value")

	return cmd
}
