package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: substack2remarkable <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert    Convert HTML articles to Markdown and PDF (default)")
	fmt.Fprintln(w, "  serve      Preview converted articles in a browser")
	fmt.Fprintln(w, "  doctor     Check the environment for conversion readiness")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'substack2remarkable help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: substack2remarkable convert [root] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert HTML articles under <root>/*/src/html/ to Markdown and PDF.")
	fmt.Fprintln(w, "Outputs land in the sibling dist/md/ and dist/pdf/ directories.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  root    Directory to scan (default: current directory)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -c, --config <path>    Config file path (default: ./substack2remarkable.yaml)")
	fmt.Fprintln(w, "  -w, --workers <n>      Parallel converters (1 = sequential, 0 = auto)")
	fmt.Fprintln(w, "  -t, --timeout <d>      PDF generation timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w, "      --style <path>     CSS file overriding the embedded PDF stylesheet")
	fmt.Fprintln(w, "      --md-only          Write Markdown only, skip PDF rendering")
	fmt.Fprintln(w, "  -q, --quiet            Only show errors")
	fmt.Fprintln(w, "  -v, --verbose          Show detailed timing")
}

// printServeUsage prints usage for the serve command.
func printServeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: substack2remarkable serve [root] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Serve converted Markdown articles as rendered HTML for preview.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  root    Directory holding the */dist/md/ trees (default: current directory)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -c, --config <path>    Config file path (default: ./substack2remarkable.yaml)")
	fmt.Fprintln(w, "  -p, --port <n>         Listen port (default 8000)")
	fmt.Fprintln(w, "  -q, --quiet            Only show errors")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "serve":
		printServeUsage(env.Stdout)
	case "doctor":
		fmt.Fprintln(env.Stdout, "Usage: substack2remarkable doctor [--json]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Check Chrome, optional tools, and the environment for conversion readiness.")
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: substack2remarkable version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: substack2remarkable help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
