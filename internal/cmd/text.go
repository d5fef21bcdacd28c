package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTextCommand(env *environment) *cobra.Command {
	var numbered bool

	cmd := &cobra.Command{
		Use:   "text <document.docx>",
		Short: "按遍历顺序输出每个段落的文本",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			texts, err := env.processor().ExtractText(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			for i, text := range texts {
				if numbered {
					fmt.Fprintf(env.out, "%d: %s\n", i+1, text)
				} else {
					fmt.Fprintln(env.out, text)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&numbered, "number", "n", false, "输出段落序号")
	return cmd
}
