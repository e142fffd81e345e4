// p2c - Python-like to C translator
//
// Reads one source file and writes the generated C program to one output
// file. Uses manual argument parsing like the rest of the tool family.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/0xoc/P2C"
	"github.com/0xoc/P2C/internal/logger"
)

// version is set at build time via -ldflags.
// For development builds, it will be "dev".
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const (
	shortUsage = "usage: p2c [-v] [-q] [-d] [-da] [-type T] [-no-format] input output\n" +
		"       p2c -run [-type T] [-set name=value ...] input"
	longUsage = `Arguments:
  input             source file ('-' reads standard input)
  output            C file to write ('-' writes standard output)

Running:
  -run              execute the translation and print the final variables
  -set name=value   give a variable a value before running (multiple allowed)

Translation options:
  -type T           C type of every variable (default "float")
  -no-format        keep one instruction per line without indentation

Logging:
  -v                log each translation phase to stderr
  -q                do not report warnings

Debugging arguments:
  -d                print the parse tree to stderr and exit
  -da               print the instruction listing to stderr and exit

Other:
  -h, --help        show this help message
  -version          show p2c version and exit
`
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the command line and returns the exit status.
//
//nolint:gocyclo,funlen // CLI argument parsing is inherently complex
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	verbose := false
	quiet := false
	debug := false
	debugAsm := false
	noFormat := false
	numericType := ""
	runProg := false
	var sets []string

	var i int
	for i = 0; i < len(args); i++ {
		// Stop on explicit end of args or first arg not prefixed with "-"
		arg := args[i]
		if arg == "--" {
			i++
			break
		}
		if arg == "-" || !strings.HasPrefix(arg, "-") {
			break
		}

		switch arg {
		case "-v":
			verbose = true
		case "-q":
			quiet = true
		case "-d":
			debug = true
		case "-da":
			debugAsm = true
		case "-no-format", "--no-format":
			noFormat = true
		case "-run", "--run":
			runProg = true
		case "-set", "--set":
			if i+1 >= len(args) {
				return errorf(stderr, "flag needs an argument: %s", arg)
			}
			i++
			sets = append(sets, args[i])
		case "-type", "--type":
			if i+1 >= len(args) {
				return errorf(stderr, "flag needs an argument: %s", arg)
			}
			i++
			numericType = args[i]
		case "-h", "--help":
			fmt.Fprintf(stdout, "p2c %s - Python-like to C translator\n\n%s\n\n%s", version, shortUsage, longUsage)
			return 0
		case "-version", "--version":
			fmt.Fprintf(stdout, "p2c version %s\n", version)
			fmt.Fprintf(stdout, "  commit: %s\n", commit)
			fmt.Fprintf(stdout, "  built:  %s\n", date)
			return 0
		default:
			// Handle -type=T
			if value, ok := strings.CutPrefix(arg, "-type="); ok {
				numericType = value
				continue
			}
			return errorf(stderr, "flag provided but not defined: %s", arg)
		}
	}

	rest := args[i:]
	wantArgs := 2
	if runProg {
		wantArgs = 1
	}
	if len(rest) != wantArgs {
		return errorf(stderr, shortUsage)
	}
	inPath := rest[0]

	inputs := make(map[string]float64, len(sets))
	for _, set := range sets {
		name, value, ok := strings.Cut(set, "=")
		if !ok || name == "" {
			return errorf(stderr, "invalid variable assignment: %s (expected name=value)", set)
		}
		n, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return errorf(stderr, "invalid value for %s: %s", name, value)
		}
		inputs[name] = n
	}

	logConfig := logger.DefaultConfig()
	logConfig.Output = stderr
	switch {
	case verbose:
		logConfig.Level = logger.LevelDebug
		logger.Init(logConfig)
	case quiet:
		logger.Disable()
	default:
		logConfig.Level = logger.LevelWarn
		logger.Init(logConfig)
	}
	defer logger.Disable()

	src, err := readSource(inPath, stdin)
	if err != nil {
		return errorf(stderr, "cannot read %s: %v", inPath, err)
	}

	config := &p2c.Config{NumericType: numericType}
	if inPath != "-" {
		config.Filename = inPath
	}
	if noFormat {
		f := false
		config.Format = &f
	}

	prog, err := p2c.Compile(string(src), config)
	if err != nil {
		return errorf(stderr, "%v", err)
	}

	// Debug output modes
	if debug {
		fmt.Fprintln(stderr, prog.AST())
		return 0
	}
	if debugAsm {
		fmt.Fprint(stderr, prog.Disassemble())
		return 0
	}

	if runProg {
		res, err := prog.Run(context.Background(), &p2c.RunConfig{Inputs: inputs})
		if err != nil {
			return errorf(stderr, "%v", err)
		}
		fmt.Fprint(stdout, res)
		return 0
	}

	outPath := rest[1]
	if outPath == "-" {
		if _, err := prog.WriteTo(stdout); err != nil {
			return errorf(stderr, "%v", err)
		}
		return 0
	}
	if err := writeFile(outPath, prog); err != nil {
		return errorf(stderr, "cannot write %s: %v", outPath, err)
	}
	return 0
}

func readSource(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

// writeFile writes prog to a temporary file next to path and renames it
// into place, so a failed write never leaves a partial output file.
func writeFile(path string, prog *p2c.Program) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".p2c-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err = prog.WriteTo(tmp); err != nil {
		return err
	}
	if err = tmp.Chmod(0o644); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// errorf prints a formatted error message and returns exit status 1.
func errorf(stderr io.Writer, format string, args ...any) int {
	fmt.Fprintf(stderr, "p2c: "+format+"\n", args...)
	return 1
}
