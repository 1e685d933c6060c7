package cmd

import (
	"fmt"
	"runtime"

	"github.com/deppfellow/campus-portal/internal/config"
	"github.com/spf13/cobra"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s\n", config.InstitutionName)
			fmt.Fprintf(out, "Version:    %s\n", config.Version)
			fmt.Fprintf(out, "Git commit: %s\n", config.GitCommit)
			fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
			fmt.Fprintf(out, "Platform:   %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}
