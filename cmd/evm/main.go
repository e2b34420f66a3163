// Copyright 2024 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

// Command evm runs EVM bytecode outside of a full blockchain: a thin CLI
// over core/vm/runtime for trying out contract code, the same role
// go-ethereum's own cmd/evm tool plays for geth.
package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/holiman/uint256"
	"github.com/urfave/cli/v2"

	"github.com/evmforge/evmcore/core/vm"
	"github.com/evmforge/evmcore/core/vm/runtime"
	"github.com/evmforge/evmcore/log"
	"github.com/evmforge/evmcore/params"
)

var (
	codeFlag = &cli.StringFlag{
		Name:     "code",
		Usage:    "EVM bytecode to run, as a hex string (0x-prefixed or not)",
		Required: true,
	}
	inputFlag = &cli.StringFlag{
		Name:  "input",
		Usage: "Calldata passed to the code, as a hex string",
	}
	gasFlag = &cli.Uint64Flag{
		Name:  "gas",
		Usage: "Gas limit for the call",
		Value: 10_000_000,
	}
	valueFlag = &cli.Uint64Flag{
		Name:  "value",
		Usage: "Wei value sent with the call",
	}
	verboseFlag = &cli.BoolFlag{
		Name:  "verbose",
		Usage: "Trace every executed opcode",
	}
	chainConfigFlag = &cli.StringFlag{
		Name:  "chainconfig",
		Usage: "Path to a YAML chain config file (defaults to a fully-activated mainnet config)",
	}
)

func loadChainConfig(c *cli.Context) (*params.ChainConfig, error) {
	path := c.String("chainconfig")
	if path == "" {
		return params.MainnetChainConfig, nil
	}
	return params.LoadChainConfigYAML(path)
}

func main() {
	app := &cli.App{
		Name:  "evm",
		Usage: "run EVM bytecode in isolation",
		Commands: []*cli.Command{
			runCommand,
			createCommand,
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error: %v", err))
		os.Exit(1)
	}
}

var runCommand = &cli.Command{
	Name:  "run",
	Usage: "execute bytecode as deployed contract code",
	Flags: []cli.Flag{codeFlag, inputFlag, gasFlag, valueFlag, verboseFlag, chainConfigFlag},
	Action: func(c *cli.Context) error {
		runID := uuid.New().String()
		logger := log.Default().Module("cmd/evm").With("run", runID)

		code, err := decodeHex(c.String("code"))
		if err != nil {
			return fmt.Errorf("--code: %w", err)
		}
		input, err := decodeHex(c.String("input"))
		if err != nil {
			return fmt.Errorf("--input: %w", err)
		}
		chainConfig, err := loadChainConfig(c)
		if err != nil {
			return fmt.Errorf("--chainconfig: %w", err)
		}

		cfg := &runtime.Config{
			ChainConfig: chainConfig,
			GasLimit:    c.Uint64("gas"),
			Value:       uint256.NewInt(c.Uint64("value")),
		}
		if c.Bool("verbose") {
			cfg.OnStep = traceStep(logger)
		}

		logger.Info("executing", "codeSize", len(code), "inputSize", len(input), "gas", cfg.GasLimit)
		ret, gasUsed, err := runtime.Execute(code, input, cfg)
		if err != nil {
			logger.Error("execution failed", "err", err, "gasUsed", gasUsed)
			return err
		}
		logger.Info("execution succeeded", "gasUsed", gasUsed, "returnData", hex.EncodeToString(ret))
		fmt.Println(color.GreenString("return: 0x%s", hex.EncodeToString(ret)))
		fmt.Printf("gas used: %d\n", gasUsed)
		return nil
	},
}

var createCommand = &cli.Command{
	Name:  "create",
	Usage: "deploy bytecode as initcode and report the resulting address",
	Flags: []cli.Flag{codeFlag, gasFlag, valueFlag, chainConfigFlag},
	Action: func(c *cli.Context) error {
		runID := uuid.New().String()
		logger := log.Default().Module("cmd/evm").With("run", runID)

		code, err := decodeHex(c.String("code"))
		if err != nil {
			return fmt.Errorf("--code: %w", err)
		}
		chainConfig, err := loadChainConfig(c)
		if err != nil {
			return fmt.Errorf("--chainconfig: %w", err)
		}

		cfg := &runtime.Config{
			ChainConfig: chainConfig,
			GasLimit:    c.Uint64("gas"),
			Value:       uint256.NewInt(c.Uint64("value")),
		}

		logger.Info("deploying", "initcodeSize", len(code), "gas", cfg.GasLimit)
		ret, addr, gasUsed, err := runtime.Create(code, cfg)
		if err != nil {
			logger.Error("create failed", "err", err, "gasUsed", gasUsed)
			return err
		}
		logger.Info("create succeeded", "address", addr.String(), "gasUsed", gasUsed)
		fmt.Println(color.GreenString("address: %s", addr.String()))
		fmt.Printf("runtime code: 0x%s\n", hex.EncodeToString(ret))
		fmt.Printf("gas used: %d\n", gasUsed)
		return nil
	},
}

func traceStep(logger *log.Logger) func(vm.StepEvent) error {
	return func(ev vm.StepEvent) error {
		logger.Info("step", "pc", ev.PC, "op", ev.Op.String(), "gas", ev.Gas, "cost", ev.Cost, "depth", ev.Depth)
		return nil
	}
}

func decodeHex(s string) ([]byte, error) {
	s = strings.TrimPrefix(s, "0x")
	if s == "" {
		return nil, nil
	}
	return hex.DecodeString(s)
}
