package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// AppConfig is the persisted CLI configuration: the defaults that -mode,
// -threshold, -min-members, and -port fall back to when unset on the
// command line.
type AppConfig struct {
	Input           string  `json:"input"`
	Mode            string  `json:"mode"`
	Threshold       float64 `json:"threshold"`
	MinGroupMembers int     `json:"min_group_members"`
	Port            int     `json:"port"`
}

func GetConfigPath() string {
	exePath, err := os.Executable()
	if err != nil {
		return "account-cluster-settings.json"
	}
	return filepath.Join(filepath.Dir(exePath), "account-cluster-settings.json")
}

func LoadConfig() (*AppConfig, error) {
	path := GetConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		return &AppConfig{
			Mode:            "quick",
			Threshold:       0.856,
			MinGroupMembers: 2,
			Port:            8080,
		}, err
	}

	var cfg AppConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func SaveConfig(cfg *AppConfig) error {
	path := GetConfigPath()
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
