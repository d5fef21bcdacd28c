package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/allanpk716/docform/internal/app"
)

type fillOptions struct {
	valuesFile  string
	assignments []string
	output      string
	allowEmpty  bool
}

func newFillCommand(env *environment) *cobra.Command {
	opts := &fillOptions{}

	cmd := &cobra.Command{
		Use:   "fill <template.docx>",
		Short: "用取值填充模板并生成新文档",
		Long: `用取值文件（JSON/YAML）和 --set 参数填充模板中的 {{NAME}} 占位符，
模板本身不会被修改。未指定 --output 时输出为 <模板名>_processed.docx，
后缀可通过配置项 output_suffix 修改。`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := loadFillValues(opts.valuesFile, opts.assignments)
			if err != nil {
				return err
			}

			ctrl := app.NewController(env.processor(), env.logger, env.settings.OutputSuffix)
			if _, err := ctrl.SelectTemplate(cmd.Context(), args[0]); err != nil {
				return err
			}

			if err := checkEmptyValues(ctrl.EmptyValues(values), opts.allowEmpty || env.settings.AllowEmpty); err != nil {
				return err
			}

			return runFill(cmd, env, ctrl, opts, values)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.valuesFile, "values", "", "取值文件 (.json, .yaml)")
	f.StringArrayVar(&opts.assignments, "set", nil, "设置占位符取值 KEY=VALUE，可重复")
	f.StringVarP(&opts.output, "output", "o", "", "输出文件路径")
	f.BoolVar(&opts.allowEmpty, "allow-empty", false, "允许空取值")
	return cmd
}

// checkEmptyValues 模板中取值为空白或未提供的占位符默认视为错误
func checkEmptyValues(empty []string, allowEmpty bool) error {
	if allowEmpty || len(empty) == 0 {
		return nil
	}
	return fmt.Errorf("以下占位符的取值为空或未提供: %s（使用 --allow-empty 继续）", strings.Join(empty, ", "))
}

func runFill(cmd *cobra.Command, env *environment, ctrl *app.Controller, opts *fillOptions, values map[string]string) error {
	result, err := ctrl.Fill(cmd.Context(), values, opts.output)
	if err != nil {
		return err
	}

	fmt.Fprintf(env.out, "已生成: %s\n", result.OutputPath)
	fmt.Fprintf(env.out, "改写段落: %d\n", result.ChangedParagraphs)
	if len(result.Missing) > 0 {
		fmt.Fprintf(env.out, "未提供取值: %s\n", strings.Join(result.Missing, ", "))
	}
	return nil
}
