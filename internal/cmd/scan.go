package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func newScanCommand(env *environment) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "scan <template.docx>",
		Short: "列出模板中的占位符",
		Long:  `扫描正文、表格单元格以及各节页眉页脚，按字母顺序输出去重后的占位符名称。`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := env.processor().ScanDocument(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if asJSON {
				if names == nil {
					names = []string{}
				}
				return writeJSON(env.out, names)
			}
			if len(names) == 0 {
				env.logger.Info("模板中没有占位符", "path", args[0])
				return nil
			}
			for _, name := range names {
				fmt.Fprintln(env.out, name)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "以 JSON 数组输出")
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
