package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	relay "github.com/zekikos/builder-relayer-client"
)

func newDeriveCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "derive <owner-address>",
		Short: "Derive the Safe and proxy wallet addresses for an owner",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			chainID := v.GetInt64("chain-id")

			safe, err := relay.DeriveSafeAddress(chainID, args[0])
			if err != nil {
				return err
			}
			fmt.Printf("safe:  %s\n", safe)

			proxy, err := relay.DeriveProxyAddress(chainID, args[0])
			if err != nil {
				// Some chains only carry the Safe scheme.
				fmt.Printf("proxy: unavailable (%v)\n", err)
				return nil
			}
			fmt.Printf("proxy: %s\n", proxy)
			return nil
		},
	}
}
