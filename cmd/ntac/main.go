package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/xyproto/env/v2"

	"github.com/agenthands/ntac/pkg/compiler"
	"github.com/agenthands/ntac/pkg/compiler/ast"
	"github.com/agenthands/ntac/pkg/tac"
	"github.com/agenthands/ntac/pkg/vm"
)

const usage = "Usage: ntac [emit|ast|run] <source> [flags]"

func main() {
	if len(os.Args) < 2 {
		fmt.Println(usage)
		os.Exit(1)
	}

	switch os.Args[1] {
	case "emit":
		runEmit(os.Args[2:])
	case "ast":
		runAST(os.Args[2:])
	case "run":
		runProgram(os.Args[2:])
	default:
		fmt.Println("Unknown command:", os.Args[1])
		fmt.Println(usage)
		os.Exit(1)
	}
}

// splitArgs separates the optional leading source path from flags.
func splitArgs(args []string) (path string, rest []string) {
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		return args[0], args[1:]
	}
	return "", args
}

func readSource(path string) []byte {
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("Error reading file: %v\n", err)
		os.Exit(1)
	}
	return src
}

func runEmit(args []string) {
	emitCmd := flag.NewFlagSet("emit", flag.ExitOnError)
	showAST := emitCmd.Bool("ast", env.Bool("NTAC_AST"), "Print the syntax tree before the code")

	path, rest := splitArgs(args)
	emitCmd.Parse(rest)

	if path != "" {
		if err := emit(os.Stdout, readSource(path), *showAST); err != nil {
			fmt.Printf("Compilation Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := emitLines(os.Stdin, os.Stdout, *showAST); err != nil {
		fmt.Printf("Compilation Error: %v\n", err)
		os.Exit(1)
	}
}

// emitLines compiles one program per line until an empty line or end of
// input, stopping at the first program that fails.
func emitLines(r io.Reader, w io.Writer, showAST bool) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), " \t\r")
		if line == "" {
			break
		}
		if err := emit(w, []byte(line), showAST); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// emit writes the code for src to w. Code generated before a semantic
// error is still written.
func emit(w io.Writer, src []byte, showAST bool) error {
	if showAST {
		prog, err := compiler.Parse(src)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, prog); err != nil {
			return err
		}
	}

	code, err := compiler.Compile(src)
	if _, werr := code.WriteTo(w); werr != nil {
		return werr
	}
	return err
}

func runAST(args []string) {
	astCmd := flag.NewFlagSet("ast", flag.ExitOnError)
	postfix := astCmd.Bool("postfix", false, "Print expression statements in postfix order")

	path, rest := splitArgs(args)
	astCmd.Parse(rest)
	if path == "" {
		fmt.Println("Usage: ntac ast <source> [-postfix]")
		os.Exit(1)
	}

	prog, err := compiler.Parse(readSource(path))
	if err != nil {
		fmt.Printf("Compilation Error: %v\n", err)
		os.Exit(1)
	}

	if !*postfix {
		fmt.Println(prog)
		return
	}
	printPostfix(prog.Body)
}

func printPostfix(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.Block:
		if n.Body != nil {
			printPostfix(n.Body)
		}
	case *ast.Seq:
		for ; n != nil; n = n.Rest {
			printPostfix(n.First)
		}
	case *ast.Eval:
		fmt.Println(ast.Postfix(n.X))
	case *ast.While:
		fmt.Println("while", ast.Postfix(n.Cond))
		printPostfix(n.Body)
	case *ast.If:
		fmt.Println("if", ast.Postfix(n.Cond))
		printPostfix(n.Body)
	}
}

func runProgram(args []string) {
	runCmd := flag.NewFlagSet("run", flag.ExitOnError)
	gasLimit := runCmd.Int("gas", env.Int("NTAC_GAS", 1000000), "Maximum instruction limit")
	trace := runCmd.Bool("trace", false, "Print each instruction as it executes")
	dump := runCmd.Bool("env", env.Bool("NTAC_ENV"), "Print variable bindings after the run")

	path, rest := splitArgs(args)
	runCmd.Parse(rest)
	if path == "" {
		fmt.Println("Usage: ntac run <source> [-gas limit] [-trace] [-env]")
		os.Exit(1)
	}

	code, err := compiler.Compile(readSource(path))
	if err != nil {
		fmt.Printf("Compilation Error: %v\n", err)
		os.Exit(1)
	}

	m := vm.GetMachine()
	defer vm.PutMachine(m)
	if *trace {
		m.Trace = os.Stdout
	}
	if err := m.Load(code); err != nil {
		fmt.Printf("Load Error: %v\n", err)
		os.Exit(1)
	}

	if err := m.Run(*gasLimit); err != nil {
		fmt.Printf("Runtime Error: %v\n", err)
		os.Exit(1)
	}

	if *dump {
		for _, name := range m.Names() {
			if tac.IsTemp(name) {
				continue
			}
			v, _ := m.Get(name)
			fmt.Printf("%s = %v\n", name, v)
		}
	}
}
