// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"crypto/rand"
	"fmt"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/spf13/cobra"
)

func newAccountCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage counter accounts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	var size int
	create := &cobra.Command{
		Use:   "create [id]",
		Short: "Provision a new account holding counter 0",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := generateRandomID()
			if err != nil {
				return err
			}
			if len(args) == 1 {
				id, err = parseAccountID(args[0])
				if err != nil {
					return err
				}
			}
			if size == 0 {
				size = c.cfg.AccountSize
			}
			if err := c.host.CreateAccount(cmd.Context(), id, size); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", id)
			return nil
		},
	}
	create.Flags().IntVar(&size, "size", 0, "region size in bytes (defaults to config accountSize)")

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Print the counter held by an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseAccountID(args[0])
			if err != nil {
				return err
			}
			counter, err := c.host.Counter(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d\n", counter)
			return nil
		},
	}

	closeCmd := &cobra.Command{
		Use:   "close <id>",
		Short: "Deallocate an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseAccountID(args[0])
			if err != nil {
				return err
			}
			return c.host.CloseAccount(cmd.Context(), id)
		},
	}

	cmd.AddCommand(create, get, closeCmd)
	return cmd
}

func parseAccountID(s string) (ids.ID, error) {
	id, err := ids.FromString(s)
	if err != nil {
		return ids.Empty, fmt.Errorf("%w: account id %q: %w", ErrInvalidArgs, s, err)
	}
	return id, nil
}

func generateRandomID() (ids.ID, error) {
	b := make([]byte, ids.IDLen)
	if _, err := rand.Read(b); err != nil {
		return ids.Empty, err
	}
	return ids.ToID(b)
}
