package cmd

import (
	"encoding/json"
	"io"
	"os"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

var stdout io.Writer = os.Stdout

// writeOutput encodes v to stdout as YAML, or as indented JSON when --json is set
func writeOutput(v any) error {
	if viper.GetBool(keyJSONOutput) {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}

	enc := yaml.NewEncoder(stdout)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
