// Package console is the interactive stdin conversation driver.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"faq-agent/engine"

	"go.uber.org/zap"
)

const (
	banner  = "Hello! I have knowledge about chat bots. Type 'goodbye' when you wish to end the conversation."
	parting = "It was pleasant interacting with you!"
)

// Driver reads utterances line by line and relays the engine's replies.
type Driver struct {
	engine *engine.Engine
	logger *zap.Logger
	in     io.Reader
	out    io.Writer
}

func NewDriver(eng *engine.Engine, logger *zap.Logger, in io.Reader, out io.Writer) *Driver {
	return &Driver{
		engine: eng,
		logger: logger,
		in:     in,
		out:    out,
	}
}

// Run loops until the user says goodbye, input ends, or the context is
// cancelled. Each utterance is handled to completion before the next
// line is read.
func (d *Driver) Run(ctx context.Context) error {
	fmt.Fprintln(d.out, banner)
	fmt.Fprintln(d.out)

	scanner := bufio.NewScanner(d.in)
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		fmt.Fprint(d.out, ">>> ")
		if !scanner.Scan() {
			break
		}

		result := d.engine.HandleUtterance(ctx, scanner.Text())
		fmt.Fprintln(d.out, result.Reply)
		fmt.Fprintln(d.out)

		if result.Done {
			fmt.Fprintln(d.out, parting)
			return nil
		}
	}
	return scanner.Err()
}
