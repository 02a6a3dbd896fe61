// Command feedreader reads RSS and Atom feeds in a browser page or a terminal.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
)

// CLI is the command-line surface.
type CLI struct {
	Globals

	Serve ServeCmd `cmd:"" help:"Serve the reader page over HTTP."`
	TUI   TUICmd   `cmd:"" name:"tui" help:"Open the terminal reader."`
	Feeds FeedsCmd `cmd:"" help:"Manage feed subscriptions."`
	Load  LoadCmd  `cmd:"" help:"Load one feed and print the rendered entries."`
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cli := CLI{Globals: Globals{Stdout: stdout, Stderr: stderr}}
	parser, err := kong.New(&cli,
		kong.Name("feedreader"),
		kong.Description("A small RSS/Atom feed reader."),
		kong.Writers(stdout, stderr),
		kong.UsageOnError(),
	)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 1
	}

	ctx, err := parser.Parse(args)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "feedreader: %v\n", err)
		return 2
	}
	if err := ctx.Run(&cli.Globals); err != nil {
		_, _ = fmt.Fprintf(stderr, "feedreader: %v\n", err)
		return 1
	}
	return 0
}
