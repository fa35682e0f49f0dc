package cli

import _ "embed"

const embeddedConfigurationTypeConstant = "yaml"

//go:embed default_config.yaml
var embeddedDefaultConfiguration []byte

// EmbeddedDefaultConfiguration returns the configuration written by --init and applied beneath any file on disk.
func EmbeddedDefaultConfiguration() ([]byte, string) {
	return append([]byte{}, embeddedDefaultConfiguration...), embeddedConfigurationTypeConstant
}
