package config

import (
	"github.com/spf13/pflag"
)

// BindFlags registers the config flags on fs with c's values as defaults.
func (c *Config) BindFlags(fs *pflag.FlagSet) {
	fs.String("log-level", c.LogLevel, "Log level (debug, info, warn, error, off)")
	fs.Int("max-errors", c.MaxErrors, "Stop reporting after this many errors (0 = no limit)")
	fs.String("format", c.GraphFormat, "Graph format (dot or mermaid)")
	fs.Bool("color", c.Color, "Colour diagnostics")
	fs.Bool("metrics", c.Metrics, "Print resolver metrics in Prometheus format")
	fs.Int("max-import-depth", c.MaxDepth, "Maximum import depth (0 = no limit)")
	fs.String("root", c.Root, "Directory tree files and imports are read from")
}

// ApplyFlags copies the flags that were set on the command line.  Flags that
// were not registered on fs are ignored.
func (c *Config) ApplyFlags(fs *pflag.FlagSet) error {
	var err error
	set := func(name string, apply func() error) {
		if err == nil && fs.Lookup(name) != nil && fs.Changed(name) {
			err = apply()
		}
	}
	set("log-level", func() (e error) { c.LogLevel, e = fs.GetString("log-level"); return })
	set("max-errors", func() (e error) { c.MaxErrors, e = fs.GetInt("max-errors"); return })
	set("format", func() (e error) { c.GraphFormat, e = fs.GetString("format"); return })
	set("color", func() (e error) { c.Color, e = fs.GetBool("color"); return })
	set("metrics", func() (e error) { c.Metrics, e = fs.GetBool("metrics"); return })
	set("max-import-depth", func() (e error) { c.MaxDepth, e = fs.GetInt("max-import-depth"); return })
	set("root", func() (e error) { c.Root, e = fs.GetString("root"); return })
	return err
}
