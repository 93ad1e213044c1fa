package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/aretw0/hexsim"
	"github.com/aretw0/hexsim/pkg/domain"
	"github.com/aretw0/hexsim/pkg/program"
	"github.com/aretw0/hexsim/pkg/registry"
)

const replHelp = `Enter numbers, unknowns and action names separated by spaces.
  13 8.5        push known doubles
  ? / unknown   push an unknown double
  ?v            push an unknown vector
  add dup ...   apply actions to every live branch
  :show         print the branches
  :actions      list actions
  :reset        start again from an empty stack
  :quit         leave`

// REPL is an interactive session over a single StackManager.
type REPL struct {
	in   io.Reader
	out  io.Writer
	reg  *registry.Registry
	opts []hexsim.Option
	mgr  *hexsim.StackManager
}

// NewREPL creates a REPL starting from an empty stack.
func NewREPL(in io.Reader, out io.Writer, reg *registry.Registry, opts ...hexsim.Option) *REPL {
	r := &REPL{in: in, out: out, reg: reg, opts: opts}
	r.reset()
	return r
}

func (r *REPL) reset() {
	r.mgr = hexsim.Start(domain.NewStackState(nil, nil), r.opts...)
}

// Manager returns the current simulation.
func (r *REPL) Manager() *hexsim.StackManager { return r.mgr }

// Run reads lines until EOF, :quit or cancellation.
func (r *REPL) Run(ctx context.Context) error {
	scanner := bufio.NewScanner(r.in)
	for {
		fmt.Fprint(r.out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(r.out)
			return handleExecutionError(scanner.Err())
		}
		if err := ctx.Err(); err != nil {
			return handleExecutionError(err)
		}

		line, err := program.Sanitize(scanner.Text())
		if err != nil {
			fmt.Fprintf(r.out, "Error: %v\n", err)
			continue
		}
		line = strings.TrimSpace(line)
		switch line {
		case "":
			continue
		case ":quit", ":q", "quit", "exit":
			return nil
		case ":help":
			fmt.Fprintln(r.out, replHelp)
			continue
		case ":actions":
			fmt.Fprintln(r.out, strings.Join(r.reg.Names(), " "))
			continue
		case ":reset":
			r.reset()
			printSystemMessage(r.out, "Stack cleared.")
			continue
		case ":show":
			fmt.Fprintln(r.out, r.mgr.String())
			continue
		}

		if err := r.Eval(ctx, line); err != nil {
			if isInterrupted(err) {
				return nil
			}
			fmt.Fprintf(r.out, "Error: %v\n", err)
			continue
		}
		fmt.Fprintln(r.out, r.mgr.String())
	}
}

// Eval applies every token of line in order. Tokens before a failing one stay applied.
func (r *REPL) Eval(ctx context.Context, line string) error {
	for _, tok := range strings.Fields(line) {
		action, err := r.resolve(tok)
		if err != nil {
			return err
		}
		if err := r.mgr.ApplyAction(ctx, action); err != nil {
			return err
		}
	}
	return nil
}

func (r *REPL) resolve(tok string) (domain.Action, error) {
	switch strings.ToLower(tok) {
	case "?", "unknown":
		return push(domain.UnknownDouble()), nil
	case "?v":
		return push(domain.UnknownVector(false)), nil
	}
	if f, err := strconv.ParseFloat(tok, 64); err == nil {
		return push(domain.KnownDouble(f)), nil
	}
	return r.reg.Lookup(tok)
}

func push(v domain.Iota) domain.Action {
	return domain.ActionFunc{
		ActionName: "push",
		Fn: func(s domain.StackState) *domain.StackHolder {
			return domain.SingleState(s.Push(v))
		},
	}
}
