package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	relay "github.com/zekikos/builder-relayer-client"
	"github.com/zekikos/builder-relayer-client/pkg/log"
	"github.com/zekikos/builder-relayer-client/pkg/signer"
	"github.com/zekikos/builder-relayer-client/pkg/types"
)

const envPrefix = "RELAY"

// NewRootCmd builds the relayctl command tree. Every flag can also be set
// through the environment as RELAY_<FLAG> (dashes become underscores).
func NewRootCmd() *cobra.Command {
	v := viper.New()

	root := &cobra.Command{
		Use:           "relayctl",
		Short:         "Submit gasless transaction batches through a relayer",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			v.SetEnvPrefix(envPrefix)
			v.AutomaticEnv()
			return v.BindPFlags(cmd.Flags())
		},
	}

	root.PersistentFlags().String("relayer-url", "", "base URL of the relayer")
	root.PersistentFlags().Int64("chain-id", 137, "chain id")
	root.PersistentFlags().String("scheme", "SAFE", "submission scheme (SAFE or PROXY)")
	root.PersistentFlags().String("private-key", "", "hex private key of the signer")
	root.PersistentFlags().String("builder-key", "", "builder API key")
	root.PersistentFlags().String("builder-secret", "", "builder API secret (base64)")
	root.PersistentFlags().String("builder-passphrase", "", "builder API passphrase")
	root.PersistentFlags().String("log-level", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(
		newExecuteCmd(v),
		newDeployCmd(v),
		newStatusCmd(v),
		newListCmd(v),
		newDeriveCmd(v),
	)
	return root
}

func newLogger(v *viper.Viper) (log.Logger, error) {
	var level zapcore.Level
	if err := level.Set(v.GetString("log-level")); err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	return log.NewZapLogger(level, true)
}

// newClient assembles a relay client from flags and environment. The signer
// is optional: read-only commands pass needSigner=false.
func newClient(v *viper.Viper, needSigner bool) (*relay.Client, error) {
	relayerURL := v.GetString("relayer-url")
	if relayerURL == "" {
		return nil, fmt.Errorf("--relayer-url (or %s_RELAYER_URL) is required", envPrefix)
	}

	logger, err := newLogger(v)
	if err != nil {
		return nil, err
	}

	opts := []relay.Option{relay.WithLogger(logger)}

	if key := v.GetString("private-key"); key != "" {
		s, err := signer.NewPrivateKeySigner(key)
		if err != nil {
			return nil, err
		}
		opts = append(opts, relay.WithSigner(s))
	} else if needSigner {
		return nil, types.ErrSignerUnavailable
	}

	if v.GetString("builder-key") != "" {
		opts = append(opts, relay.WithBuilderAuth(&relay.BuilderAuth{
			Local: &relay.BuilderCredentials{
				Key:        v.GetString("builder-key"),
				Secret:     v.GetString("builder-secret"),
				Passphrase: v.GetString("builder-passphrase"),
			},
		}))
	}

	return relay.New(relayerURL, v.GetInt64("chain-id"), types.Scheme(v.GetString("scheme")), opts...)
}
