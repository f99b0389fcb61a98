package config

import "fmt"

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Whisper  WhisperConfig  `yaml:"whisper"`
	Pipeline PipelineConfig `yaml:"pipeline"`
	Gemini   GeminiConfig   `yaml:"gemini"`
	Paths    PathsConfig    `yaml:"paths"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type WhisperConfig struct {
	ModelPath  string `yaml:"model_path"`
	BinaryPath string `yaml:"binary_path"`
	Language   string `yaml:"language"`
	Threads    int    `yaml:"threads"`
}

type PipelineConfig struct {
	ChunkSeconds     int     `yaml:"chunk_seconds"`
	ParagraphSeconds float64 `yaml:"paragraph_seconds"`
	MaxConcurrent    int     `yaml:"max_concurrent"`
}

type GeminiConfig struct {
	Model string `yaml:"model"`
}

type PathsConfig struct {
	Uploads string `yaml:"uploads"`
	Watch   string `yaml:"watch"`
	Output  string `yaml:"output"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func (c *Config) Validate() error {
	if c.Whisper.ModelPath == "" {
		return fmt.Errorf("whisper.model_path is required")
	}
	if c.Whisper.BinaryPath == "" {
		return fmt.Errorf("whisper.binary_path is required")
	}
	if c.Whisper.Language == "" {
		return fmt.Errorf("whisper.language is required")
	}
	if c.Paths.Uploads == "" {
		return fmt.Errorf("paths.uploads is required")
	}

	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 5000
	}
	if c.Whisper.Threads == 0 {
		c.Whisper.Threads = 4
	}
	if c.Pipeline.ChunkSeconds == 0 {
		c.Pipeline.ChunkSeconds = 600
	}
	if c.Pipeline.ParagraphSeconds == 0 {
		c.Pipeline.ParagraphSeconds = 30
	}
	if c.Pipeline.MaxConcurrent == 0 {
		c.Pipeline.MaxConcurrent = 2
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}
	if c.Paths.Output == "" {
		c.Paths.Output = "data/output"
	}

	return nil
}
