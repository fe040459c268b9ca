// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ava-labs/hypercounter/codec"
	"github.com/ava-labs/hypercounter/instructions"
	"github.com/ava-labs/hypercounter/program"
)

func newInvokeCmd(c *cli) *cobra.Command {
	var raw bool
	cmd := &cobra.Command{
		Use:   "invoke <id> <increment|decrement|reset|update> [value]",
		Short: "Run one instruction against an account",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseAccountID(args[0])
			if err != nil {
				return err
			}
			var data []byte
			if raw {
				data, err = codec.LoadHex(args[1], -1)
				if err != nil {
					return fmt.Errorf("%w: instruction bytes: %w", ErrInvalidArgs, err)
				}
			} else {
				ins, err := parseInstruction(args[1:])
				if err != nil {
					return err
				}
				data = instructions.Marshal(ins)
			}

			counter, err := c.host.Invoke(cmd.Context(), id, data)
			if err != nil {
				return fmt.Errorf("code=%s: %w", program.CodeName(program.ErrorCode(err)), err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d\n", counter)
			return nil
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "treat the second argument as hex encoded instruction bytes")
	return cmd
}

func parseInstruction(args []string) (instructions.Instruction, error) {
	var value uint32
	if len(args) > 1 {
		v, err := strconv.ParseUint(args[1], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: value %q: %w", ErrInvalidArgs, args[1], err)
		}
		value = uint32(v)
	}
	return instructions.New(args[0], value)
}
