package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zekikos/builder-relayer-client/pkg/types"
)

func newStatusCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "status <transaction-id>",
		Short: "Show the relayer's record for a submitted transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(v, false)
			if err != nil {
				return err
			}

			records, err := client.GetTransaction(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if len(records) == 0 {
				color.Yellow("transaction %s is not known to the relayer yet", args[0])
				return nil
			}
			printRecord(records[0])
			return nil
		},
	}
}

func newListCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "txs",
		Short: "List the builder's transactions (requires builder credentials)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := newClient(v, false)
			if err != nil {
				return err
			}

			records, err := client.GetTransactions(cmd.Context())
			if err != nil {
				return err
			}
			for _, record := range records {
				fmt.Printf("%s  %-16s  %s\n", record.TransactionID, record.State, record.TransactionHash)
			}
			return nil
		},
	}
}

func printRecord(record types.RelayerTransaction) {
	fmt.Printf("id:      %s\n", record.TransactionID)
	fmt.Printf("type:    %s\n", record.Type)
	fmt.Printf("from:    %s\n", record.From)
	fmt.Printf("to:      %s\n", record.To)
	fmt.Printf("nonce:   %s\n", record.Nonce)
	fmt.Printf("hash:    %s\n", record.TransactionHash)
	switch record.State {
	case string(types.StateFailed), string(types.StateInvalid):
		color.Red("state:   %s", record.State)
	case string(types.StateMined), string(types.StateConfirmed):
		color.Green("state:   %s", record.State)
	default:
		fmt.Printf("state:   %s\n", record.State)
	}
}
