package repl

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"monkey/ast"
	"monkey/internals"
	"monkey/interpreter"
	"monkey/object"
	"monkey/parser"
)

const PROMPT = ">> "

const (
	colorRed   = "\033[1;31m"
	colorReset = "\033[0m"
)

type Options struct {
	Prompt string
	// one of internals.ColorAuto, ColorAlways, ColorNever
	Color       string
	ParserOpts  []parser.Option
	Interpreter *interpreter.Interpreter
}

type session struct {
	out         io.Writer
	prompt      string
	color       bool
	parserOpts  []parser.Option
	interpreter *interpreter.Interpreter
	env         *object.Environment
}

// Start reads one line at a time from in and evaluates it. Bindings persist
// from one line to the next. The prompt is only shown when in is a terminal.
func Start(in io.Reader, out io.Writer, opts Options) error {
	s := session{
		out:        out,
		prompt:     opts.Prompt,
		color:      useColor(opts.Color, out),
		parserOpts: opts.ParserOpts,
		env:        object.NewEnvironment(nil),
	}

	if s.prompt == "" {
		s.prompt = PROMPT
	}
	if !isTerminal(in) {
		s.prompt = ""
	}

	s.interpreter = opts.Interpreter
	if s.interpreter == nil {
		s.interpreter = interpreter.New(interpreter.WithOutput(out))
	}

	scanner := bufio.NewScanner(in)
	for {
		io.WriteString(out, s.prompt)
		if !scanner.Scan() {
			break
		}
		s.eval(scanner.Text())
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("repl: read input: %w", err)
	}
	return nil
}

func (s *session) eval(line string) {
	program, errs := parser.ParseSource("", line, s.parserOpts...)
	if len(errs) != 0 {
		for _, err := range errs {
			s.printError(err.Error())
		}
		return
	}

	evaluated, err := s.interpreter.Evaluate(program, s.env)
	if err != nil {
		s.printError("ERROR: " + err.Error())
		return
	}

	if quiet(program) {
		return
	}
	io.WriteString(s.out, evaluated.Inspect())
	io.WriteString(s.out, "\n")
}

func (s *session) printError(msg string) {
	if s.color {
		msg = colorRed + msg + colorReset
	}
	io.WriteString(s.out, msg)
	io.WriteString(s.out, "\n")
}

// blank lines and lines ending in a let print nothing
func quiet(program *ast.Program) bool {
	if len(program.Statements) == 0 {
		return true
	}
	_, ok := program.Statements[len(program.Statements)-1].(*ast.LetStatement)
	return ok
}

func isTerminal(stream any) bool {
	file, ok := stream.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}

func useColor(mode string, out io.Writer) bool {
	switch mode {
	case internals.ColorAlways:
		return true
	case internals.ColorNever:
		return false
	default:
		return isTerminal(out)
	}
}
