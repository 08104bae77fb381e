package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"avular-packages/internal/app"
)

type resolveOptions struct {
	Repos       []string
	RepoURLs    []string
	PkgRequests []string
	VarRequests []string
	Options     map[string]string
}

func newResolveCommand() *cobra.Command {
	opts := resolveOptions{}
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve package requests against one or more repositories",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd, opts, args)
		},
	}
	addResolveFlags(cmd, &opts)
	return cmd
}

func addResolveFlags(cmd *cobra.Command, opts *resolveOptions) {
	cmd.Flags().StringSliceVar(&opts.Repos, "repo", nil, "Repository directory as name=path (repeatable)")
	cmd.Flags().StringSliceVar(&opts.RepoURLs, "repo-url", nil, "Repository HTTP base URL as name=url (repeatable)")
	cmd.Flags().StringSliceVar(&opts.VarRequests, "opt", nil, "Var request as name=value (repeatable)")
	cmd.Flags().StringToStringVar(&opts.Options, "option", nil, "User option as key=value (repeatable)")
	_ = viper.BindPFlag("repo", cmd.Flags().Lookup("repo"))
	_ = viper.BindPFlag("repo_url", cmd.Flags().Lookup("repo-url"))
	_ = viper.BindPFlag("opt", cmd.Flags().Lookup("opt"))
}

func buildResolveRequest(cmd *cobra.Command, opts resolveOptions, args []string) (app.ResolveRequest, error) {
	repos, err := parseRepoSources(
		resolveStrings(cmd, opts.Repos, "repo", "repo"),
		resolveStrings(cmd, opts.RepoURLs, "repo_url", "repo-url"),
	)
	if err != nil {
		return app.ResolveRequest{}, err
	}
	return app.ResolveRequest{
		Repos:       repos,
		PkgRequests: args,
		VarRequests: resolveStrings(cmd, opts.VarRequests, "opt", "opt"),
		Options:     opts.Options,
	}, nil
}

func runResolve(cmd *cobra.Command, opts resolveOptions, args []string) error {
	req, err := buildResolveRequest(cmd, opts, args)
	if err != nil {
		return err
	}
	service := newAppService()
	result, err := service.Resolve(cmd.Context(), req)
	if err != nil {
		return err
	}
	for _, solved := range result.Solution.Requests {
		fmt.Printf("%s\n", solved.Spec.Pkg.String())
	}
	return nil
}
