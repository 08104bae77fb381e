package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"avular-packages/internal/app"
)

type envOptions struct {
	resolveOptions
	Prefix string
}

func newEnvCommand() *cobra.Command {
	opts := envOptions{}
	cmd := &cobra.Command{
		Use:   "env",
		Short: "Resolve package requests and print them as environment bindings",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEnv(cmd, opts, args)
		},
	}
	addResolveFlags(cmd, &opts.resolveOptions)
	cmd.Flags().StringVar(&opts.Prefix, "prefix", "", "Active prefix (defaults to /spfs)")
	return cmd
}

func runEnv(cmd *cobra.Command, opts envOptions, args []string) error {
	resolveReq, err := buildResolveRequest(cmd, opts.resolveOptions, args)
	if err != nil {
		return err
	}
	service := newAppService()
	vars, err := service.Env(cmd.Context(), app.EnvRequest{Resolve: resolveReq, Prefix: opts.Prefix})
	if err != nil {
		return err
	}
	for _, v := range vars {
		fmt.Printf("%s=%s\n", v.Key, v.Value)
	}
	return nil
}
