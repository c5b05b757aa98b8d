// Command picker lets a user choose an office by country, state and city,
// remembers the choice, and hands off to the office's content page.
package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
)

// CLI is the command-line interface. Settings come from the environment;
// flags only select the command and the optional .env file.
type CLI struct {
	EnvFile string `name:"env-file" help:"Load environment variables from this file when it exists" default:".env" type:"path"`

	Run      RunCmd      `cmd:"" default:"1" help:"Choose an office, or open the remembered one"`
	Show     ShowCmd     `cmd:"" help:"Print the remembered office"`
	Reset    ResetCmd    `cmd:"" help:"Forget the remembered office so the next run shows the chooser"`
	Validate ValidateCmd `cmd:"" help:"Load locations and offices and report data problems"`
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("picker"),
		kong.Description("Office picker: choose an office and open its content."),
		kong.UsageOnError(),
	)

	if err := kctx.Run(&cli); err != nil {
		slog.Error("command failed", "command", kctx.Command(), "error", err)
		os.Exit(1)
	}
}
