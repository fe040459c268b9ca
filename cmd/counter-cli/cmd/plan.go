// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v2"

	"github.com/ava-labs/hypercounter/codec"
	"github.com/ava-labs/hypercounter/host"
	"github.com/ava-labs/hypercounter/instructions"
	"github.com/ava-labs/hypercounter/program"
)

type Plan struct {
	// The name of the plan.
	Name string `yaml:"name"`
	// A description of the plan.
	Description string `yaml:"description"`
	// Accounts created before the first step, referenced by name.
	Accounts []PlanAccount `yaml:"accounts"`
	// Steps to perform during the run.
	Steps []Step `yaml:"steps"`
}

type PlanAccount struct {
	Name string `yaml:"name"`
	// Region size in bytes. Zero uses the configured account size.
	Size int `yaml:"size,omitempty"`
}

type Step struct {
	Description string `yaml:"description"`
	// Name of the account the instruction targets. (required)
	Account string `yaml:"account"`
	// Instruction name. Ignored when Data is set.
	Instruction string `yaml:"instruction,omitempty"`
	Value       uint32 `yaml:"value,omitempty"`
	// Hex encoded instruction bytes, sent unchanged.
	Data string `yaml:"data,omitempty"`
	// Assertions against the outcome of this step.
	Require *Require `yaml:"require,omitempty"`
}

type Require struct {
	Counter *uint32 `yaml:"counter,omitempty"`
	// Expected error code. Defaults to success.
	Code uint32 `yaml:"code,omitempty"`
}

// Response is printed as one JSON line per step.
type Response struct {
	ID      int    `json:"id"`
	Account string `json:"account"`
	// Counter held by the account after the step. Failed steps leave it
	// unchanged.
	Counter uint32 `json:"counter"`
	Code    uint32 `json:"code"`
	Error   string `json:"error,omitempty"`
}

func (r *Response) Print(w io.Writer) error {
	b, err := json.Marshal(r)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

func unmarshalPlan(b []byte) (*Plan, error) {
	var p Plan
	if err := yaml.Unmarshal(b, &p); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPlan, err)
	}
	return &p, nil
}

func (p *Plan) Verify() error {
	if len(p.Steps) == 0 {
		return fmt.Errorf("%w: no steps found", ErrInvalidPlan)
	}
	accounts := make(map[string]struct{}, len(p.Accounts))
	for _, account := range p.Accounts {
		if _, ok := accounts[account.Name]; ok {
			return fmt.Errorf("%w: duplicate account %q", ErrInvalidPlan, account.Name)
		}
		accounts[account.Name] = struct{}{}
	}
	for i, step := range p.Steps {
		if _, ok := accounts[step.Account]; !ok {
			return fmt.Errorf("%w %d: %w: %q", ErrInvalidStep, i, ErrUnknownAccount, step.Account)
		}
		if _, err := step.instruction(); err != nil {
			return fmt.Errorf("%w %d: %w", ErrInvalidStep, i, err)
		}
	}
	return nil
}

func (s *Step) instruction() ([]byte, error) {
	if s.Data != "" {
		return codec.LoadHex(s.Data, -1)
	}
	ins, err := instructions.New(s.Instruction, s.Value)
	if err != nil {
		return nil, err
	}
	return instructions.Marshal(ins), nil
}

type runner struct {
	log         logging.Logger
	host        *host.Host
	accountSize int
	out         io.Writer

	accounts map[string]ids.ID
}

func newRunner(log logging.Logger, h *host.Host, accountSize int, out io.Writer) *runner {
	return &runner{
		log:         log,
		host:        h,
		accountSize: accountSize,
		out:         out,
		accounts:    make(map[string]ids.ID),
	}
}

// Run executes [plan] and returns the responses of every step it reached. It
// stops at the first failed assertion.
func (r *runner) Run(ctx context.Context, plan *Plan) ([]*Response, error) {
	if err := plan.Verify(); err != nil {
		return nil, err
	}
	r.log.Info("running plan",
		zap.String("name", plan.Name),
		zap.String("description", plan.Description),
	)

	for _, account := range plan.Accounts {
		id, err := generateRandomID()
		if err != nil {
			return nil, err
		}
		size := account.Size
		if size == 0 {
			size = r.accountSize
		}
		if err := r.host.CreateAccount(ctx, id, size); err != nil {
			return nil, err
		}
		r.accounts[account.Name] = id
	}

	responses := make([]*Response, 0, len(plan.Steps))
	for i, step := range plan.Steps {
		r.log.Info("step",
			zap.Int("step", i),
			zap.String("description", step.Description),
			zap.String("account", step.Account),
			zap.String("instruction", step.Instruction),
		)

		// Verify has already decoded every step.
		data, _ := step.instruction()
		counter, err := r.host.Invoke(ctx, r.accounts[step.Account], data)
		resp := &Response{
			ID:      i,
			Account: step.Account,
			Counter: counter,
			Code:    program.ErrorCode(err),
		}
		if err != nil {
			resp.Error = err.Error()
		}
		responses = append(responses, resp)
		if err := resp.Print(r.out); err != nil {
			return responses, err
		}

		if err := checkRequire(step.Require, resp); err != nil {
			return responses, fmt.Errorf("step %d: %w", i, err)
		}
	}
	return responses, nil
}

func checkRequire(req *Require, resp *Response) error {
	if req == nil {
		if resp.Code != program.CodeOK {
			return fmt.Errorf("%w: unexpected failure: %s", ErrAssertionFailed, resp.Error)
		}
		return nil
	}
	if resp.Code != req.Code {
		return fmt.Errorf("%w: code %s != %s", ErrAssertionFailed, program.CodeName(resp.Code), program.CodeName(req.Code))
	}
	if req.Counter != nil && resp.Counter != *req.Counter {
		return fmt.Errorf("%w: counter %d != %d", ErrAssertionFailed, resp.Counter, *req.Counter)
	}
	return nil
}

func newRunCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "run <path|->",
		Short: "Run a YAML plan of counter instructions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				b   []byte
				err error
			)
			if args[0] == "-" {
				b, err = io.ReadAll(cmd.InOrStdin())
			} else {
				b, err = os.ReadFile(args[0])
			}
			if err != nil {
				return err
			}
			plan, err := unmarshalPlan(b)
			if err != nil {
				return err
			}
			_, err = newRunner(c.log, c.host, c.cfg.AccountSize, cmd.OutOrStdout()).Run(cmd.Context(), plan)
			return err
		},
	}
}
