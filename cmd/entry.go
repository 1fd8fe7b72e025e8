package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"slices"
	"strings"

	"monkey/ast"
	"monkey/internals"
	"monkey/interpreter"
	"monkey/lexer"
	"monkey/object"
	"monkey/parser"
	"monkey/repl"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

type (
	CommandFunc func(ctx *Context, args []string) error

	FlagInfo struct {
		Name        string
		Description string
	}

	CommandInfo struct {
		Description string
		Function    CommandFunc
		Flags       []FlagInfo
	}
)

// Context carries what every command needs: the loaded config, a logger and
// the standard streams.
type Context struct {
	Config internals.Config
	Logger *slog.Logger
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// errReported marks failures whose details were already printed.
var errReported = errors.New("failed")

// usageError is a mistake on the command line, it exits with exitUsage.
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

func usagef(format string, a ...interface{}) error {
	return &usageError{msg: fmt.Sprintf(format, a...)}
}

var commands map[string]CommandInfo

var globalFlags = []FlagInfo{
	{
		Name:        "-config",
		Description: "path of the YAML config file, defaults to " + internals.DefaultConfigFile,
	},
	{
		Name:        "-debug",
		Description: "log parser and interpreter traces to stderr",
	},
}

var fileFlag = FlagInfo{
	Name:        "-f",
	Description: "program file path, - reads stdin",
}

func init() {
	commands = map[string]CommandInfo{
		"run": {
			Description: "Takes the filepath of program, and executes it",
			Function:    Run,
			Flags:       []FlagInfo{fileFlag},
		},
		"repl": {
			Description: "Starts an interactive session, bindings persist between lines",
			Function:    Repl,
			Flags:       []FlagInfo{},
		},
		"tokens": {
			Description: "Prints the tokens of a program, one per line",
			Function:    Tokens,
			Flags:       []FlagInfo{fileFlag},
		},
		"parse": {
			Description: "Parses a program and prints its canonical form",
			Function:    Parse,
			Flags:       []FlagInfo{fileFlag},
		},
		"help": {
			Description: "Prints the usage of all commands",
			Function:    Help,
			Flags:       []FlagInfo{},
		},
	}
}

func Help(ctx *Context, args []string) error {
	if len(args) < 1 {
		// show the whole help catalog
		printResult := "\n\033[1;35mUsage:\033[0m monkey [-config <path>] [-debug] <command> [flags]\n"
		printResult += "\n\033[1;35mGlobal Flags:\033[0m\n"
		for _, flag := range globalFlags {
			printResult += fmt.Sprintf("  \033[1;33m%v\033[0m - \033[0;37m%v\033[0m\n", flag.Name, flag.Description)
		}
		printResult += "\n\033[1;35mSupported Commands:\033[0m\n\n"

		for _, name := range slices.Sorted(maps.Keys(commands)) {
			printResult += describeCommand(name, commands[name], "  ")
			printResult += "\n"
		}

		fmt.Fprint(ctx.Stdout, printResult)
		return nil
	}

	// print the help of the specified command
	cmdName := args[0]

	cmd, ok := commands[cmdName]
	if !ok {
		return usagef("unknown command %v, check help for manual", cmdName)
	}

	fmt.Fprint(ctx.Stdout, "\n"+describeCommand(cmdName, cmd, ""))
	return nil
}

func describeCommand(name string, cmd CommandInfo, indent string) string {
	printResult := fmt.Sprintf("%s\033[1;36m%v\033[0m\n", indent, name)
	printResult += fmt.Sprintf("%s  \033[1;37mDescription:\033[0m \033[0;37m%v\033[0m\n", indent, cmd.Description)

	if len(cmd.Flags) > 0 {
		printResult += indent + "  \033[1;37mFlags:\033[0m\n"
		for _, flag := range cmd.Flags {
			printResult += fmt.Sprintf("%s    \033[1;33m%v\033[0m - \033[0;37m%v\033[0m\n", indent, flag.Name, flag.Description)
		}
	} else {
		printResult += indent + "  \033[0;37m(No flags available)\033[0m\n"
	}
	return printResult
}

// Run executes a program file. Output of puts goes to stdout, syntax and
// runtime errors to stderr.
func Run(ctx *Context, args []string) error {
	path, content, err := ctx.readProgram(args)
	if err != nil {
		return err
	}

	program, err := ctx.parse(path, content)
	if err != nil {
		return err
	}

	interp := interpreter.New(
		interpreter.WithOutput(ctx.Stdout),
		interpreter.WithLogger(ctx.Logger),
		interpreter.WithMaxCallDepth(ctx.Config.MaxCallDepth),
	)
	if _, err := interp.Evaluate(program, object.NewEnvironment(nil)); err != nil {
		fmt.Fprintf(ctx.Stderr, "ERROR: %v\n", err)
		return errReported
	}
	return nil
}

func Repl(ctx *Context, args []string) error {
	if len(args) != 0 {
		return usagef("repl takes no arguments")
	}

	interp := interpreter.New(
		interpreter.WithOutput(ctx.Stdout),
		interpreter.WithLogger(ctx.Logger),
		interpreter.WithMaxCallDepth(ctx.Config.MaxCallDepth),
	)

	return repl.Start(ctx.Stdin, ctx.Stdout, repl.Options{
		Prompt:      ctx.Config.Prompt,
		Color:       ctx.Config.Color,
		ParserOpts:  ctx.parserOptions(),
		Interpreter: interp,
	})
}

func Tokens(ctx *Context, args []string) error {
	path, content, err := ctx.readProgram(args)
	if err != nil {
		return err
	}

	for _, tok := range lexer.NewLexer(path, content).Tokenize() {
		fmt.Fprintf(ctx.Stdout, "%d:%d\t%s\t%q\n", tok.Pos.Row, tok.Pos.Col, tok.Kind, tok.Text)
	}
	return nil
}

func Parse(ctx *Context, args []string) error {
	path, content, err := ctx.readProgram(args)
	if err != nil {
		return err
	}

	program, err := ctx.parse(path, content)
	if err != nil {
		return err
	}

	fmt.Fprintln(ctx.Stdout, program.String())
	return nil
}

// readProgram resolves the -f flag to a file name and its content.
func (ctx *Context) readProgram(args []string) (string, string, error) {
	if len(args) != 2 || args[0] != "-f" {
		return "", "", usagef("provide the filepath flag -f to assign the path to it")
	}

	fileTarget := args[1]
	if len(fileTarget) <= 0 {
		return "", "", usagef("provide a valid filepath")
	}

	if fileTarget == "-" {
		byteContent, err := io.ReadAll(ctx.Stdin)
		if err != nil {
			return "", "", fmt.Errorf("read stdin: %w", err)
		}
		return "", string(byteContent), nil
	}

	byteContent, err := os.ReadFile(fileTarget)
	if err != nil {
		return "", "", fmt.Errorf("read program: %w", err)
	}
	return fileTarget, string(byteContent), nil
}

// parse prints every syntax error on its own line.
func (ctx *Context) parse(path, content string) (*ast.Program, error) {
	program, errs := parser.ParseSource(path, content, ctx.parserOptions()...)
	if len(errs) == 0 {
		return program, nil
	}

	for _, err := range errs {
		fmt.Fprintln(ctx.Stderr, err)
	}
	ctx.Logger.Debug("parse failed", slog.String("file", path), slog.Int("errors", len(errs)))
	return nil, errReported
}

func (ctx *Context) parserOptions() []parser.Option {
	var opts []parser.Option
	if ctx.Config.FailFast {
		opts = append(opts, parser.WithFailFast())
	}
	if ctx.Logger.Enabled(context.Background(), slog.LevelDebug) {
		opts = append(opts, parser.WithTrace(ctx.Logger))
	}
	return opts
}

// splitGlobalFlags takes the global flags off the front of args.
func splitGlobalFlags(args []string) (configPath string, debug bool, rest []string, err error) {
	for len(args) > 0 {
		switch {
		case args[0] == "-debug":
			debug = true
			args = args[1:]
		case args[0] == "-config":
			if len(args) < 2 {
				return "", false, nil, usagef("-config needs a path")
			}
			configPath = args[1]
			args = args[2:]
		case strings.HasPrefix(args[0], "-config="):
			configPath = strings.TrimPrefix(args[0], "-config=")
			args = args[1:]
		default:
			return configPath, debug, args, nil
		}
	}
	return configPath, debug, args, nil
}

// Main runs the command line args and returns the process exit code.
func Main(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	configPath, debug, args, err := splitGlobalFlags(args)
	if err != nil {
		fmt.Fprintf(stderr, "ERROR: %v\n", err)
		return exitUsage
	}

	if len(args) < 1 {
		fmt.Fprintln(stderr, "ERROR: at least provide command name to kick off the cli")
		return exitUsage
	}

	cfg, err := internals.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(stderr, "ERROR: %v\n", err)
		return exitError
	}

	level, _ := internals.ParseLevel(cfg.LogLevel)
	if debug {
		level = slog.LevelDebug
	}

	ctx := &Context{
		Config: cfg,
		Logger: internals.NewLogger(stderr, level),
		Stdin:  stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	name := args[0]
	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(stderr, "ERROR: unknown command %v, check help for manual.\n", name)
		return exitUsage
	}

	ctx.Logger.Debug("run command", slog.String("command", name), slog.Any("args", args[1:]))

	err = cmd.Function(ctx, args[1:])
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errReported):
		return exitError
	case errors.As(err, new(*usageError)):
		fmt.Fprintf(stderr, "ERROR: %v\n", err)
		return exitUsage
	default:
		fmt.Fprintf(stderr, "ERROR: %v\n", err)
		return exitError
	}
}

func Execute() {
	os.Exit(Main(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
