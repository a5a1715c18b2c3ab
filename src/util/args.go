package util

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/caarlos0/env/v6"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// Options defines the behaviour of a single compiler run. Command line flags
// take precedence over environment variables.
type Options struct {
	Src     string // Path to source file.
	Out     string // Path to output file for the textual IR. Empty means stdout.
	Verbose bool   `env:"MCLC_VERBOSE"` // Set true if compiler should log progress to stdout.
	NoRun   bool   `env:"MCLC_NO_RUN"`  // Set true to skip execution after emission.
	DumpAST bool   // Set true if compiler should print the syntax tree and exit.
}

// ---------------------
// ----- Constants -----
// ---------------------

const appVersion = "mcl compiler 1.0"

// ---------------------
// ----- functions -----
// ---------------------

// ParseArgs parses command line arguments into an Options structure.
// The first positional argument is the source file, the optional second
// positional argument is the IR output file.
func ParseArgs(args []string) (Options, error) {
	opt := Options{}
	if err := env.Parse(&opt); err != nil {
		return opt, fmt.Errorf("could not read environment: %s", err)
	}
	pos := make([]string, 0, 2)
	for i1 := 0; i1 < len(args); i1++ {
		switch args[i1] {
		case "-h", "--h", "-help", "--help":
			// Help and usage.
			printHelp(os.Stdout)
			os.Exit(0)
		case "-v", "--v", "-version", "--version":
			// Application version.
			fmt.Println(appVersion)
			os.Exit(0)
		case "-vb":
			// Verbose mode.
			opt.Verbose = true
		case "-ast":
			// Print syntax tree and exit.
			opt.DumpAST = true
		case "-no-run":
			// Emit IR only, skip execution.
			opt.NoRun = true
		default:
			if strings.HasPrefix(args[i1], "-") {
				return opt, fmt.Errorf("unexpected flag: %s", args[i1])
			}
			if len(pos) == 2 {
				return opt, fmt.Errorf("unexpected argument: %s", args[i1])
			}
			pos = append(pos, args[i1])
		}
	}
	if len(pos) > 0 {
		opt.Src = pos[0]
	}
	if len(pos) > 1 {
		opt.Out = pos[1]
	}
	return opt, nil
}

// printHelp prints a helpful usage message.
func printHelp(f *os.File) {
	_, _ = fmt.Fprintln(f, "usage: mclc [<flag>...] <source-file> [<out-file>]")
	w := tabwriter.NewWriter(f, 6, 1, 1, 0, 0)
	_, _ = fmt.Fprintln(w, "-h, -help\tPrints this help message and exits the application.")
	_, _ = fmt.Fprintln(w, "--h, --help")
	_, _ = fmt.Fprintln(w, "-ast\tPrint the syntax tree of the source code and exit.")
	_, _ = fmt.Fprintln(w, "-no-run\tEmit the intermediate representation without executing it.")
	_, _ = fmt.Fprintln(w, "-v, -version\tPrints application version and exits the application.")
	_, _ = fmt.Fprintln(w, "--v, --version")
	_, _ = fmt.Fprintln(w, "-vb\tVerbose mode: print compiler progress to stdout.")
	_ = w.Flush()
}
