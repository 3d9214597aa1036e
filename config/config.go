package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultPath 配置文件默认放在运行目录下
const DefaultPath = "config.yaml"

// Config 结构体：对应 config.yaml 的内容
type Config struct {
	Sprites          []string `yaml:"sprites"`           // 候选动图，启动时随机挑一个
	IconPath         string   `yaml:"icon_path"`         // 托盘图标
	Lines            []string `yaml:"lines"`             // 点击时随机说的话
	WindowX          int      `yaml:"window_x"`          // 启动位置
	WindowY          int      `yaml:"window_y"`          // 启动位置
	ASCIIMode        bool     `yaml:"ascii_mode"`        // 是否画成字符画
	ASCIIWidth       int      `yaml:"ascii_width"`       // 字符画宽度（字符数）
	ShowMonitor      bool     `yaml:"show_monitor"`      // 是否显示 CPU/内存
	IdleTPS          int      `yaml:"idle_tps"`          // 没人理它时的 TPS
	RememberPosition bool     `yaml:"remember_position"` // 退出时是否记住位置
}

// NewDefault 生成一份默认配置
// 当找不到配置文件时，用这个“保底”
func NewDefault() *Config {
	return &Config{
		Sprites:    []string{"assets/image1.gif", "assets/image2.gif"},
		IconPath:   "assets/icon.png",
		Lines:      []string{"Hello", "I am your desktop pet!", "I can do many things."},
		WindowX:    200,
		WindowY:    200,
		ASCIIWidth: 50,
		IdleTPS:    10,
	}
}

// applyDefaults 没写的字段用默认值补上
func applyDefaults(cfg *Config) {
	def := NewDefault()
	if len(cfg.Sprites) == 0 {
		cfg.Sprites = def.Sprites
	}
	if cfg.IconPath == "" {
		cfg.IconPath = def.IconPath
	}
	if len(cfg.Lines) == 0 {
		cfg.Lines = def.Lines
	}
	if cfg.ASCIIWidth <= 0 {
		cfg.ASCIIWidth = def.ASCIIWidth
	}
	if cfg.IdleTPS <= 0 {
		cfg.IdleTPS = def.IdleTPS
	}
}

// Load 从硬盘读取配置
func Load(filename string) (*Config, error) {
	// 1. 读文件，不存在就用默认配置，不算报错
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return NewDefault(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// 2. 解析 YAML
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}
	applyDefaults(cfg)
	return cfg, nil
}

// Save 把当前配置写入硬盘
func Save(cfg *Config, filename string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
