package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/allanpk716/docform/internal/logging"
)

const (
	// EnvPrefix 环境变量前缀，例如 DOCFORM_LOG_LEVEL
	EnvPrefix = "DOCFORM"
	// ConfigFileEnv 指定配置文件路径的环境变量
	ConfigFileEnv = "DOCFORM_CONFIG_FILE"
	// DefaultOutputSuffix 未指定输出路径时追加到模板文件名后的后缀
	DefaultOutputSuffix = "_processed"
)

// Settings 应用设置
type Settings struct {
	LogLevel     string `mapstructure:"log_level"`
	LogFormat    string `mapstructure:"log_format"`
	OutputSuffix string `mapstructure:"output_suffix"`
	AllowEmpty   bool   `mapstructure:"allow_empty"`
}

// NewViper 创建设置加载器。
// 优先级：显式 configFile > DOCFORM_CONFIG_FILE > 当前目录的 docform.yaml；
// DOCFORM_* 环境变量覆盖文件中的值。
func NewViper(configFile string) *viper.Viper {
	v := viper.New()

	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("output_suffix", DefaultOutputSuffix)
	v.SetDefault("allow_empty", false)

	if configFile == "" {
		configFile = os.Getenv(ConfigFileEnv)
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName("docform")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// LoadSettings 读取配置文件（默认位置不存在时忽略）并解析为 Settings
func LoadSettings(v *viper.Viper) (*Settings, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return &settings, nil
}

// Validate 验证设置的有效性
func (s *Settings) Validate() error {
	if _, err := logging.ParseLevel(s.LogLevel); err != nil {
		return err
	}
	switch strings.ToLower(s.LogFormat) {
	case "", "text", "json":
	default:
		return fmt.Errorf("不支持的日志格式: %s", s.LogFormat)
	}
	if s.OutputSuffix == "" {
		return fmt.Errorf("输出文件后缀不能为空")
	}
	if strings.ContainsAny(s.OutputSuffix, `/\`) {
		return fmt.Errorf("输出文件后缀不能包含路径分隔符: %s", s.OutputSuffix)
	}
	return nil
}

// LoggingConfig 转换为日志配置
func (s *Settings) LoggingConfig() *logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = s.LogLevel
	cfg.Format = s.LogFormat
	return cfg
}
