package config

import _ "embed"

// DefaultConfigYAML 嵌入的默认配置，可被外部 config.yaml 或环境变量覆盖
//
//go:embed default_config.yaml
var DefaultConfigYAML []byte
