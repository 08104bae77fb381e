package cli

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func resolveString(cmd *cobra.Command, value string, key string, flagName string) string {
	if flagChanged(cmd, flagName) {
		return value
	}
	if v := viper.GetString(key); v != "" {
		return v
	}
	return value
}

func resolveStrings(cmd *cobra.Command, values []string, key string, flagName string) []string {
	if flagChanged(cmd, flagName) {
		return values
	}
	if v := viper.GetStringSlice(key); len(v) > 0 {
		return v
	}
	return values
}

func flagChanged(cmd *cobra.Command, name string) bool {
	if cmd == nil || strings.TrimSpace(name) == "" {
		return false
	}
	if flag := cmd.Flags().Lookup(name); flag != nil {
		return flag.Changed
	}
	if flag := cmd.PersistentFlags().Lookup(name); flag != nil {
		return flag.Changed
	}
	return false
}
