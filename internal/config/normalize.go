package config

import "strings"

func (c *Config) normalize() error {
	var err error
	if c.Paths.DataDir, err = ExpandPath(valueOr(c.Paths.DataDir, defaultDataDir)); err != nil {
		return err
	}
	if c.Paths.LogDir, err = ExpandPath(valueOr(c.Paths.LogDir, defaultLogDir)); err != nil {
		return err
	}
	if strings.TrimSpace(c.Paths.LibraryExport) != "" {
		if c.Paths.LibraryExport, err = ExpandPath(c.Paths.LibraryExport); err != nil {
			return err
		}
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(valueOr(c.Logging.Format, defaultLogFormat)))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(valueOr(c.Logging.Level, defaultLogLevel)))
	return nil
}

func valueOr(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
