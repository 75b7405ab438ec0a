package config

import (
	"errors"
	"os"

	"gopkg.in/yaml.v3"
)

// Settings are the deployment-tunable knobs. Anything left at the zero value
// falls back to the corresponding constant.
type Settings struct {
	ListenAddr string `yaml:"listen_addr"`

	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
	} `yaml:"redis"`

	Qdrant struct {
		Host   string `yaml:"host"`
		Port   int    `yaml:"port"`
		UseTLS bool   `yaml:"use_tls"`
	} `yaml:"qdrant"`

	Loader struct {
		SupportedFormats []string `yaml:"supported_formats"`
	} `yaml:"loader"`

	Splitter struct {
		ChunkSize int `yaml:"chunk_size"`
		Overlap   int `yaml:"overlap"`
	} `yaml:"splitter"`
}

// LoadSettings reads a YAML settings file. A missing file is not an error, the
// defaults apply.
func LoadSettings(path string) (*Settings, error) {
	s := defaultSettings()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, err
	}
	applyDefaults(s)
	return s, nil
}

func defaultSettings() *Settings {
	s := &Settings{}
	applyDefaults(s)
	return s
}

func applyDefaults(s *Settings) {
	if s.ListenAddr == "" {
		s.ListenAddr = ServerListenAddr
	}
	if s.Redis.Addr == "" {
		s.Redis.Addr = RedisAddr
	}
	if s.Qdrant.Host == "" {
		s.Qdrant.Host = QdrantHost
	}
	if s.Qdrant.Port == 0 {
		s.Qdrant.Port = QdrantGrpcPort
	}
	if len(s.Loader.SupportedFormats) == 0 {
		s.Loader.SupportedFormats = DefaultSupportedFormats
	}
	if s.Splitter.ChunkSize == 0 {
		s.Splitter.ChunkSize = MaxChunkSize
	}
	if s.Splitter.Overlap == 0 {
		s.Splitter.Overlap = ChunkOverlap
	}
}
