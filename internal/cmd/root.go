// Package cmd 实现 docform 命令行。
//
// 配置来源优先级（高到低）：命令行参数、DOCFORM_* 环境变量、
// --config 或 DOCFORM_CONFIG_FILE 指定的文件、当前目录的 docform.yaml。
package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/allanpk716/docform/internal/config"
	"github.com/allanpk716/docform/internal/domain"
	"github.com/allanpk716/docform/internal/logging"
	"github.com/allanpk716/docform/internal/processor"
)

// environment 各子命令共享的运行环境，在 PersistentPreRunE 中初始化
type environment struct {
	cfgFile  string
	viper    *viper.Viper
	settings *config.Settings
	logger   *slog.Logger
	out      io.Writer
	errOut   io.Writer
}

func (e *environment) processor() domain.TemplateProcessor {
	return processor.NewTemplateProcessor(e.logger)
}

// NewRootCommand 创建根命令，out/errOut 分别接收结果与日志
func NewRootCommand(out, errOut io.Writer) *cobra.Command {
	env := &environment{out: out, errOut: errOut}

	root := &cobra.Command{
		Use:   AppName,
		Short: "填充 DOCX 模板占位符并编辑 DOCX/PDF 文档元数据",
		Long: `docform 检测 Word 模板中的 {{NAME}} 占位符并生成填充后的副本，
也可以读取、修改、清除 DOCX 与 PDF 文档的标题、作者、描述和分类。

示例:
  docform scan template.docx
  docform fill template.docx --set NAME=Ana --set CITY=Lisbon
  docform fill template.docx --values values.yaml -o out.docx
  docform meta read report.pdf
  docform meta write report.docx --title "Q3" --creator Ana
  docform form`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return env.init(cmd)
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	flags := root.PersistentFlags()
	flags.StringVar(&env.cfgFile, "config", "", "配置文件（默认 ./docform.yaml，也可使用 DOCFORM_CONFIG_FILE）")
	flags.StringP("log-level", "l", "", "日志级别 (debug, info, warn, error)")
	flags.String("log-format", "", "日志格式 (text, json)")

	root.AddCommand(
		newScanCommand(env),
		newFillCommand(env),
		newMetaCommand(env),
		newTextCommand(env),
		newSampleCommand(env),
		newFormCommand(env),
		newVersionCommand(env),
	)
	return root
}

func (e *environment) init(cmd *cobra.Command) error {
	e.viper = config.NewViper(e.cfgFile)
	flags := cmd.Root().PersistentFlags()
	if f := flags.Lookup("log-level"); f != nil && f.Changed {
		e.viper.Set("log_level", f.Value.String())
	}
	if f := flags.Lookup("log-format"); f != nil && f.Changed {
		e.viper.Set("log_format", f.Value.String())
	}

	settings, err := config.LoadSettings(e.viper)
	if err != nil {
		return err
	}
	e.settings = settings

	logCfg := settings.LoggingConfig()
	logCfg.Output = e.errOut
	logger, err := logging.New(logCfg)
	if err != nil {
		return err
	}
	e.logger = logger
	return nil
}

// Execute 运行命令行，返回进程退出码
func Execute(ctx context.Context) int {
	root := NewRootCommand(os.Stdout, os.Stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		root.PrintErrln("错误:", err)
		return 1
	}
	return 0
}
