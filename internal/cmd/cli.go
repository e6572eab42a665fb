package cmd

import (
	"github.com/Alia5/matrixfw/internal/log"
)

// CLI is the root command line of matrixfw.
type CLI struct {
	Config string     `help:"Configuration file (json, yaml or toml)" env:"MATRIXFW_CONFIG"`
	Log    log.Config `embed:"" prefix:"log."`

	Run      Run           `cmd:"" help:"Run the firmware against a simulated switch matrix"`
	Keymap   Keymap        `cmd:"" help:"Print the reference layout"`
	Describe Describe      `cmd:"" help:"Print the USB descriptors of the keyboard"`
	Cfg      ConfigCommand `cmd:"" name:"config" help:"Configuration helpers"`
}
