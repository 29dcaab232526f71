// Package config loads the perfmetrics configuration: built-in defaults, overlaid by an
// optional YAML file, overlaid by PERFMETRICS_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DefaultSpreadsheet = "1kvHv1OBCzr9GnFxRu9RTJC7jjQjc9M4rAiDnhyak2Sg"
	DefaultCredentials = "./gsheet/creds.json"
	DefaultMachineType = "n2-standard-96"
	DefaultMountRoot   = "/mnt/disks/bucket1"
	SpreadsheetsScope  = "https://www.googleapis.com/auth/spreadsheets"
)

type Config struct {
	Sheets   SheetsConfig   `yaml:"sheets"`
	Workload WorkloadConfig `yaml:"workload"`
	Log      LogConfig      `yaml:"log"`
}

type SheetsConfig struct {
	Credentials         string            `yaml:"credentials"`
	Scopes              []string          `yaml:"scopes"`
	MachineTypeVariable string            `yaml:"machine-type-variable"`
	Spreadsheets        map[string]string `yaml:"spreadsheets"`
}

type WorkloadConfig struct {
	MountRoot string `yaml:"mount-root"`
	Bucket    string `yaml:"bucket"`
	Prefix    string `yaml:"prefix"`
	Files     int    `yaml:"files"`
	ChunkSize int64  `yaml:"chunk-size"`
	DropCache bool   `yaml:"drop-cache"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func Default() Config {
	return Config{
		Sheets: SheetsConfig{
			Credentials:         DefaultCredentials,
			Scopes:              []string{SpreadsheetsScope},
			MachineTypeVariable: "MACHINE_TYPE",
			Spreadsheets: map[string]string{
				DefaultMachineType: DefaultSpreadsheet,
			},
		},
		Workload: WorkloadConfig{
			MountRoot: DefaultMountRoot,
			Files:     20,
			ChunkSize: 1024 * 1024,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load returns the defaults overlaid with the YAML file at path (if path is not blank) and
// then with any PERFMETRICS_* environment variables.
func Load(path string) (*Config, error) {
	c := Default()

	if strings.TrimSpace(path) != "" {
		b, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		} else if err == nil {
			if err := yaml.Unmarshal(b, &c); err != nil {
				return nil, fmt.Errorf("invalid configuration file %s (%w)", path, err)
			}
		}
	}

	if err := c.overlay(os.Getenv); err != nil {
		return nil, err
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return &c, nil
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Sheets.MachineTypeVariable) == "" {
		return fmt.Errorf("machine-type-variable is required")
	}

	if len(c.Sheets.Scopes) == 0 {
		return fmt.Errorf("at least one Sheets scope is required")
	}

	if c.Workload.Files < 1 {
		return fmt.Errorf("invalid workload file count (%v)", c.Workload.Files)
	}

	if c.Workload.ChunkSize < 1 {
		return fmt.Errorf("invalid workload chunk size (%v)", c.Workload.ChunkSize)
	}

	return nil
}

func (c *Config) overlay(getenv func(string) string) error {
	if v := getenv("PERFMETRICS_CREDENTIALS"); v != "" {
		c.Sheets.Credentials = v
	}

	if v := getenv("PERFMETRICS_MACHINE_TYPE_VARIABLE"); v != "" {
		c.Sheets.MachineTypeVariable = v
	}

	// PERFMETRICS_SPREADSHEETS=n2-standard-96=<id>,c3-standard-176=<id>
	if v := getenv("PERFMETRICS_SPREADSHEETS"); v != "" {
		spreadsheets := map[string]string{}
		for _, pair := range strings.Split(v, ",") {
			label, id, ok := strings.Cut(strings.TrimSpace(pair), "=")
			if !ok || label == "" || id == "" {
				return fmt.Errorf("invalid PERFMETRICS_SPREADSHEETS entry '%s'", pair)
			}
			spreadsheets[label] = id
		}
		c.Sheets.Spreadsheets = spreadsheets
	}

	if v := getenv("PERFMETRICS_MOUNT_ROOT"); v != "" {
		c.Workload.MountRoot = v
	}

	if v := getenv("PERFMETRICS_BUCKET"); v != "" {
		c.Workload.Bucket = v
	}

	if v := getenv("PERFMETRICS_FILES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PERFMETRICS_FILES '%s' (%w)", v, err)
		}
		c.Workload.Files = n
	}

	if v := getenv("PERFMETRICS_CHUNK_SIZE"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid PERFMETRICS_CHUNK_SIZE '%s' (%w)", v, err)
		}
		c.Workload.ChunkSize = n
	}

	if v := getenv("PERFMETRICS_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}

	if v := getenv("PERFMETRICS_LOG_FORMAT"); v != "" {
		c.Log.Format = v
	}

	return nil
}
