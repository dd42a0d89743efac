package app

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

var version string
var commit string

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version info",
		Run: func(cmd *cobra.Command, args []string) {
			v := version
			if v == "" {
				v = "dev"
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(),
				"Version:", v,
				"Commit:", commit,
				"Go compiler:", runtime.Version(),
			)
		},
	}
}
