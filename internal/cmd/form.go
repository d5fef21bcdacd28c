package cmd

import (
	"github.com/spf13/cobra"

	"github.com/allanpk716/docform/internal/app"
	"github.com/allanpk716/docform/internal/logging"
	"github.com/allanpk716/docform/internal/processor"
	"github.com/allanpk716/docform/internal/ui"
)

func newFormCommand(env *environment) *cobra.Command {
	return &cobra.Command{
		Use:   "form",
		Short: "打开交互式表单",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// 表单占用终端，不输出日志
			logger := logging.Discard()
			proc := processor.NewTemplateProcessor(logger)
			ctrl := app.NewController(proc, logger, env.settings.OutputSuffix)
			return ui.Run(cmd.Context(), ctrl)
		},
	}
}
