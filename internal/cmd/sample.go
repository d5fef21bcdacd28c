package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/allanpk716/docform/pkg/docx"
)

func newSampleCommand(env *environment) *cobra.Command {
	return &cobra.Command{
		Use:   "sample [output.docx]",
		Short: "生成包含占位符的示例模板",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := "sample_template.docx"
			if len(args) == 1 {
				output = args[0]
			}
			if err := docx.CreateSample(output); err != nil {
				return err
			}
			env.logger.Info("示例模板已生成", "path", output)
			fmt.Fprintf(env.out, "%s (%s)\n", output, strings.Join(docx.SamplePlaceholders, ", "))
			return nil
		},
	}
}
