package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type validateOptions struct {
	SpecFile string
}

func newValidateCommand() *cobra.Command {
	opts := validateOptions{}
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a package spec file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runValidate(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.SpecFile, "spec", "", "Spec file path")
	_ = viper.BindPFlag("spec", cmd.Flags().Lookup("spec"))
	return cmd
}

func runValidate(cmd *cobra.Command, opts validateOptions) error {
	service := newAppService()
	spec, err := service.Validate(resolveString(cmd, opts.SpecFile, "spec", "spec"))
	if err != nil {
		return err
	}
	fmt.Printf("valid: %s\n", spec.Pkg.String())
	return nil
}
