// Command weatherctl runs the dashboard pipeline once from a terminal
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("weatherctl"),
		kong.Description("Query the weather dashboard pipeline from the command line."),
		kong.UsageOnError(),
	)

	cli.out = os.Stdout
	cli.errOut = os.Stderr
	if err := ctx.Run(&cli.Globals); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
