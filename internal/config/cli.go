// Package config declares the command line and configuration file surface.
package config

import "github.com/Alia5/remapper/internal/cmd"

// Log configures logging for every command.
type Log struct {
	Level   string `help:"Log level" enum:"trace,debug,info,warn,error" default:"info" env:"REMAPPER_LOG_LEVEL"`
	File    string `help:"Also write logs to this file" env:"REMAPPER_LOG_FILE"`
	RawFile string `help:"Write emitted HID reports to this file" env:"REMAPPER_LOG_RAW_FILE"`
	Format  string `help:"Log record format" enum:"auto,text,json" default:"auto" env:"REMAPPER_LOG_FORMAT"`
}

// CLI is the root command.
type CLI struct {
	Config string `help:"Configuration file (json, yaml or toml)" type:"path" env:"REMAPPER_CONFIG"`
	Log    Log    `embed:"" prefix:"log."`

	Check    cmd.Check         `cmd:"" help:"Validate rule files"`
	Match    cmd.Match         `cmd:"" help:"Test modifier preconditions against pressed modifiers"`
	Simulate cmd.Simulate      `cmd:"" help:"Show the events a rule file sends for a key press"`
	Cfg      cmd.ConfigCommand `cmd:"" name:"config" help:"Configuration file helpers"`
}
