package cli

import (
	"fmt"
	"io"

	"github.com/atharvakonge/gold-tracker/internal/config"
)

// LoadConfig reads .env and the environment. goldctl only needs the backend
// URL, so an invalid setting is reported on errOut and the rest is kept.
func LoadConfig(errOut io.Writer, files ...string) config.Config {
	cfg, _, err := config.Load(files...)
	if err != nil {
		fmt.Fprintf(errOut, "warning: %v\n", err)
	}
	return cfg
}
