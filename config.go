package bpfisa

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds the CLI-layer defaults read from .ebpfasm.yaml (or
// EBPFASM_* environment variables), separate from the pure core above
// it in the package so the core stays side-effect-free and testable
// without touching the filesystem.
//
// Defaults are set before ReadInConfig, with environment variables
// layered on top as an override.
type Config struct {
	// Verbose is the default for --verbose on disassemble when the flag
	// isn't explicitly passed.
	Verbose bool
	// OutputFormat holds the "output_format" setting (default "text").
	// The ebpfasm commands do not read it; disassemble always prints text.
	OutputFormat string
}

// LoadConfig reads CLI defaults from .ebpfasm.yaml in the current
// directory (if present) and from EBPFASM_-prefixed environment
// variables, falling back to built-in defaults when neither is set.
func LoadConfig() (Config, error) {
	v := viper.New()
	v.SetDefault("verbose", false)
	v.SetDefault("output_format", "text")

	v.SetConfigName(".ebpfasm")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("EBPFASM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return Config{}, err
		}
	}

	return Config{
		Verbose:      v.GetBool("verbose"),
		OutputFormat: v.GetString("output_format"),
	}, nil
}
