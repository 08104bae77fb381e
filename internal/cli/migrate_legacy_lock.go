package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type migrateLegacyLockOptions struct {
	LockFile string
}

func newMigrateLegacyLockCommand() *cobra.Command {
	opts := migrateLegacyLockOptions{}
	cmd := &cobra.Command{
		Use:   "migrate-legacy-lock",
		Short: "Translate an APT/pip lock file into spk package request shorthand",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMigrateLegacyLock(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.LockFile, "lock", "", "Legacy lock file path")
	_ = viper.BindPFlag("lock", cmd.Flags().Lookup("lock"))
	return cmd
}

func runMigrateLegacyLock(cmd *cobra.Command, opts migrateLegacyLockOptions) error {
	service := newAppService()
	requests, err := service.MigrateLegacyLock(resolveString(cmd, opts.LockFile, "lock", "lock"))
	if err != nil {
		return err
	}
	for _, r := range requests {
		fmt.Println(r)
	}
	return nil
}
