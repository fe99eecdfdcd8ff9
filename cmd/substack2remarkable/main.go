package main

import (
	"fmt"
	"os"

	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))

	os.Exit(run(os.Args[1:], DefaultEnv()))
}

// run dispatches to a subcommand and returns the process exit code.
// A bare invocation (or one starting with flags or a path) converts the
// working directory tree.
func run(args []string, env *Environment) int {
	if len(args) == 0 {
		return runConvertCmd(nil, env)
	}

	switch args[0] {
	case "convert":
		return runConvertCmd(args[1:], env)
	case "serve":
		return runServeCmd(args[1:], env)
	case "doctor":
		return runDoctorCmd(args[1:], env)
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "substack2remarkable %s\n", Version)
		return ExitSuccess
	case "help", "-h", "--help":
		runHelp(args[1:], env)
		return ExitSuccess
	default:
		return runConvertCmd(args, env)
	}
}
