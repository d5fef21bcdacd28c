package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// AppName 程序名称
const AppName = "docform"

// Version 构建时通过 -ldflags "-X .../internal/cmd.Version=x.y.z" 注入
var Version = "dev"

func newVersionCommand(env *environment) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "显示版本信息",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(env.out, "%s %s (%s, %s/%s)\n", AppName, Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
			return nil
		},
	}
}
