package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newDeployCmd(v *viper.Viper) *cobra.Command {
	var wait bool

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Deploy the signer's Safe (refuses if already deployed)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := newClient(v, true)
			if err != nil {
				return err
			}

			safe, err := client.ExpectedSafe()
			if err != nil {
				return err
			}
			fmt.Printf("deploying safe %s\n", safe)

			handle, err := client.Deploy(cmd.Context())
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

	cmd.Flags().BoolVar(&wait, "wait", true, "poll until the deployment is mined or confirmed")
	return cmd
}
