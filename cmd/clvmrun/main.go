// Copyright 2026 The clvm-go Authors
// This file is part of clvm-go.
//
// clvm-go is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// clvm-go is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with clvm-go. If not, see <http://www.gnu.org/licenses/>.

// Command clvmrun is a thin urfave/cli/v2 driver over the core clvm-go
// library: one subcommand per core entry point, no reduction logic of
// its own (spec.md §1 Non-goals).
package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/chia-network/clvm-go/arena"
	"github.com/chia-network/clvm-go/clvmerrors"
	"github.com/chia-network/clvm-go/eval"
	clvmlog "github.com/chia-network/clvm-go/log"
	"github.com/chia-network/clvm-go/params"
	"github.com/chia-network/clvm-go/serialize"
	"github.com/chia-network/clvm-go/treehash"
)

var flagsFlag = &cli.StringFlag{
	Name:  "flags",
	Usage: "comma-separated flag names: strict,keccak,bls,secp,minimal-encoding,softfork-ext",
}

func main() {
	app := &cli.App{
		Name:  "clvmrun",
		Usage: "run and inspect CLVM programs",
		Commands: []*cli.Command{
			runCommand,
			treehashCommand,
			dumpCommand,
		},
	}
	if err := app.Run(os.Args); err != nil {
		clvmlog.Error("clvmrun failed", "err", err)
		os.Exit(1)
	}
}

// readArg resolves a "hex" or "@file" CLI argument to raw bytes,
// accepting either an inline hex blob or a path to one.
func readArg(s string) ([]byte, error) {
	if strings.HasPrefix(s, "@") {
		data, err := os.ReadFile(s[1:])
		if err != nil {
			return nil, err
		}
		s = strings.TrimSpace(string(data))
	}
	s = strings.TrimPrefix(s, "0x")
	return hex.DecodeString(s)
}

var runCommand = &cli.Command{
	Name:  "run",
	Usage: "run a program against an environment and report its cost and result",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "program", Required: true},
		&cli.StringFlag{Name: "env", Required: true},
		&cli.Uint64Flag{Name: "max-cost", Required: true},
		flagsFlag,
	},
	Action: func(c *cli.Context) error {
		programBytes, err := readArg(c.String("program"))
		if err != nil {
			return fmt.Errorf("reading --program: %w", err)
		}
		envBytes, err := readArg(c.String("env"))
		if err != nil {
			return fmt.Errorf("reading --env: %w", err)
		}
		flags, err := params.ParseFlags(c.String("flags"))
		if err != nil {
			return err
		}

		a := arena.New()
		program, err := serialize.ParseExact(a, programBytes)
		if err != nil {
			return fmt.Errorf("parsing --program: %w", err)
		}
		env, err := serialize.ParseExact(a, envBytes)
		if err != nil {
			return fmt.Errorf("parsing --env: %w", err)
		}

		ev := eval.New(a, c.Uint64("max-cost"), flags)
		result, runErr := ev.Run(program, env)
		if ev.UnknownOpCount() > 0 {
			clvmlog.Warn("soft-fork extension fallback", "unknown_ops", ev.UnknownOpCount())
		}
		execCost := ev.Cost()
		var ce *clvmerrors.Error
		if runErr != nil && errors.As(runErr, &ce) && ce.HasCost {
			execCost = ce.Cost
		}
		// Input-byte cost is charged by the caller, not the core
		// (spec.md §6): it widens the reported total to what a full
		// transaction-validating caller would see, without affecting
		// the evaluator's own max_cost accounting.
		inputCost := uint64(len(programBytes)+len(envBytes)) * params.DefaultCostPerSerializedInputByte
		totalCost := execCost + inputCost

		clvmlog.Debug("run finished", "dispatch_count", ev.DispatchCount(), "exec_cost", execCost, "input_cost", inputCost, "ok", runErr == nil)
		if runErr != nil {
			fmt.Fprintf(c.App.Writer, "cost=%d error=%v\n", totalCost, runErr)
			return runErr
		}
		fmt.Fprintf(c.App.Writer, "cost=%d result=%s\n", totalCost, hex.EncodeToString(serialize.Serialize(a, result)))
		return nil
	},
}

var treehashCommand = &cli.Command{
	Name:      "treehash",
	Usage:     "print the tree hash of a serialized node",
	ArgsUsage: "<hex|@file>",
	Action: func(c *cli.Context) error {
		if c.Args().Len() != 1 {
			return fmt.Errorf("treehash: exactly one argument required")
		}
		data, err := readArg(c.Args().First())
		if err != nil {
			return err
		}
		sum, err := treehash.HashBytes(data)
		if err != nil {
			return err
		}
		fmt.Fprintln(c.App.Writer, hex.EncodeToString(sum[:]))
		return nil
	},
}

var dumpCommand = &cli.Command{
	Name:      "dump",
	Usage:     "pretty-print a serialized node as (a . b) notation",
	ArgsUsage: "<hex|@file>",
	Action: func(c *cli.Context) error {
		if c.Args().Len() != 1 {
			return fmt.Errorf("dump: exactly one argument required")
		}
		data, err := readArg(c.Args().First())
		if err != nil {
			return err
		}
		a := arena.New()
		root, err := serialize.ParseExact(a, data)
		if err != nil {
			return err
		}
		fmt.Fprintln(c.App.Writer, dumpNode(a, root))
		return nil
	},
}

// dumpNode renders a node in classic s-expression dotted-pair
// notation. Programs fed to the CLI by hand are small; this does not
// need the non-recursive discipline the core codec enforces against
// adversarial input.
func dumpNode(a *arena.Arena, h arena.Handle) string {
	if a.IsAtom(h) {
		b := a.Atom(h)
		if len(b) == 0 {
			return "()"
		}
		if isPrintable(b) {
			return strconv.Quote(string(b))
		}
		return "0x" + hex.EncodeToString(b)
	}
	first, rest := a.Pair(h)
	return "(" + dumpNode(a, first) + " . " + dumpNode(a, rest) + ")"
}

func isPrintable(b []byte) bool {
	for _, c := range b {
		if c < 0x20 || c > 0x7E {
			return false
		}
	}
	return true
}
