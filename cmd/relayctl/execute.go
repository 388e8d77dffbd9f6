package main

import (
	"fmt"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	relay "github.com/zekikos/builder-relayer-client"
	"github.com/zekikos/builder-relayer-client/pkg/types"
)

func newExecuteCmd(v *viper.Viper) *cobra.Command {
	var (
		tos      []string
		datas    []string
		values   []string
		metadata string
		wait     bool
	)

	cmd := &cobra.Command{
		Use:   "execute",
		Short: "Submit a batch of transactions through the relayer",
		Long: `Submit a batch of transactions through the relayer.

Repeat --to/--data (and optionally --value) once per transaction; the i-th
occurrences of each flag form one transaction. Order is preserved on-chain.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if len(tos) == 0 {
				return types.ErrEmptyBatch
			}
			if len(datas) != len(tos) {
				return fmt.Errorf("got %d --to flags but %d --data flags", len(tos), len(datas))
			}

			batch := lo.Map(tos, func(to string, i int) types.Transaction {
				tx := types.Transaction{To: to, Data: datas[i]}
				if i < len(values) {
					tx.Value = values[i]
				}
				return tx
			})

			client, err := newClient(v, true)
			if err != nil {
				return err
			}

			handle, err := client.Execute(cmd.Context(), batch, metadata)
			if err != nil {
				return err
			}
			fmt.Printf("submitted: id=%s state=%s\n", handle.TransactionID, handle.State)

			if !wait {
				return nil
			}
			return waitAndReport(cmd, handle)
		},
	}

	cmd.Flags().StringArrayVar(&tos, "to", nil, "call target address (repeatable)")
	cmd.Flags().StringArrayVar(&datas, "data", nil, "call data, hex (repeatable)")
	cmd.Flags().StringArrayVar(&values, "value", nil, "call value in wei (repeatable, defaults to 0)")
	cmd.Flags().StringVar(&metadata, "metadata", "", "free-form metadata attached to the submission")
	cmd.Flags().BoolVar(&wait, "wait", true, "poll until the transaction is mined or confirmed")
	return cmd
}

// waitAndReport polls the handle to a terminal state with a spinner and
// prints the outcome. A nil record with no error means the relayer had not
// resolved the transaction within the polling budget.
func waitAndReport(cmd *cobra.Command, handle *relay.TransactionHandle) error {
	spin := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	spin.Suffix = " waiting for confirmation..."
	spin.Start()
	record, err := handle.Wait(cmd.Context())
	spin.Stop()

	if err != nil {
		return err
	}
	if record == nil {
		color.Yellow("no terminal state within the polling budget; check later with: relayctl status %s", handle.TransactionID)
		return nil
	}
	color.Green("transaction %s: %s (hash %s)", handle.TransactionID, record.State, record.TransactionHash)
	return nil
}
