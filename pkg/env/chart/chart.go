package chart

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/app-sre/chartcsv/pkg/env"
	"github.com/app-sre/chartcsv/pkg/export"
)

const (
	dataPathFormat = "%s/api/v1/chart/%d/data/?format=json&type=full"
	healthPath     = "/health"
)

type Env struct {
	Endpoint  string        `yaml:"endpoint"`
	Format    export.Format `yaml:"format"`
	Delimiter string        `yaml:"delimiter"`
	Index     bool          `yaml:"index"`
}

func NewChartEnv() *Env {
	return &Env{}
}

// Populate loads CONFIG_FILE_PATH when set, then lets the environment
// override each setting.
func (c *Env) Populate() error {
	if path := os.Getenv("CONFIG_FILE_PATH"); path != "" {
		content, err := os.ReadFile(filepath.Clean(path))
		if err != nil {
			return fmt.Errorf("unable to read config file: %w", err)
		}
		if err := yaml.Unmarshal(content, c); err != nil {
			return fmt.Errorf("unable to unmarshal config file: %w", err)
		}
	}

	if endpoint := os.Getenv("CHART_ENDPOINT"); endpoint != "" {
		c.Endpoint = endpoint
	}
	c.Endpoint = strings.TrimRight(strings.TrimSpace(c.Endpoint), "/")
	if c.Endpoint == "" {
		return &env.Error{Name: "CHART_ENDPOINT"}
	}

	if format := os.Getenv("EXPORT_FORMAT"); format != "" {
		c.Format = export.Format(format)
	}
	f, err := export.ParseFormat(string(c.Format))
	if err != nil {
		return &env.TypeError{Name: "EXPORT_FORMAT"}
	}
	c.Format = f

	if delimiter := os.Getenv("CSV_DELIMITER"); delimiter != "" {
		c.Delimiter = delimiter
	}
	if c.Delimiter != "" && utf8.RuneCountInString(c.Delimiter) != 1 {
		return &env.TypeError{Name: "CSV_DELIMITER"}
	}

	if s := os.Getenv("CSV_INDEX"); s != "" {
		index, err := strconv.ParseBool(s)
		if err != nil {
			return &env.TypeError{Name: "CSV_INDEX"}
		}
		c.Index = index
	}

	return nil
}

// DataURL returns the chart endpoint URL serving the data of chart id.
func (c *Env) DataURL(id int) string {
	return fmt.Sprintf(dataPathFormat, c.Endpoint, id)
}

func (c *Env) HealthURL() string {
	return c.Endpoint + healthPath
}

// ExportOptions returns the serializer options the settings translate to for
// format f. The configured delimiter only applies to CSV.
func (c *Env) ExportOptions(f export.Format) []export.Option {
	options := []export.Option{export.WithIndex(c.Index)}
	if f == export.CSV && c.Delimiter != "" {
		r, _ := utf8.DecodeRuneInString(c.Delimiter)
		options = append(options, export.WithDelimiter(r))
	}
	return options
}
