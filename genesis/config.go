// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"fmt"
	"math/big"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/vechain/econ/builtin"
	"github.com/vechain/econ/builtin/params"
	"github.com/vechain/econ/econ"
)

// Amount is a token amount written as a decimal string, or 0x prefixed hex.
type Amount struct {
	*big.Int
}

func (a *Amount) UnmarshalText(text []byte) error {
	v, ok := new(big.Int).SetString(string(text), 0)
	if !ok || v.Sign() < 0 {
		return fmt.Errorf("invalid amount %q", text)
	}
	a.Int = v
	return nil
}

func (a Amount) MarshalText() ([]byte, error) {
	if a.Int == nil {
		return []byte("0"), nil
	}
	return []byte(a.String()), nil
}

type Periods struct {
	RewardPeriod    uint64 `yaml:"rewardPeriod"`
	DeltaPeriod     uint64 `yaml:"deltaPeriod"`
	CheckTime       uint64 `yaml:"checkTime"`
	LaunchTimestamp uint64 `yaml:"launchTimestamp"`
}

type Validator struct {
	Name             string        `yaml:"name"`
	Controller       econ.Address  `yaml:"controller"`
	RewardAddress    *econ.Address `yaml:"rewardAddress,omitempty"`
	MeetsRequirement bool          `yaml:"meetsRequirement"`
	// Nodes is the number of nodes created for the validator at launch.
	Nodes int `yaml:"nodes"`
}

type Group struct {
	PartOfNode uint64   `yaml:"partOfNode"`
	Members    []uint64 `yaml:"members"`
}

type Allocation struct {
	Address econ.Address `yaml:"address"`
	Amount  Amount       `yaml:"amount"`
}

// Config is the user supplied genesis.
type Config struct {
	Owner          econ.Address   `yaml:"owner"`
	Admins         []econ.Address `yaml:"admins"`
	Periods        *Periods       `yaml:"periods,omitempty"`
	AllowedPeriods []uint64       `yaml:"allowedPeriods,omitempty"`
	Validators     []Validator    `yaml:"validators"`
	Groups         []Group        `yaml:"groups"`
	Balances       []Allocation   `yaml:"balances"`
	Purchased      []Allocation   `yaml:"purchased"`
	// ReductionEnabled turns on the bounty reduction for validators below requirements.
	ReductionEnabled bool `yaml:"reductionEnabled"`
}

// Load reads and validates a yaml genesis file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read genesis")
	}
	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "decode genesis")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Owner.IsZero() {
		return errors.New("owner must be set")
	}
	nodes := 0
	for i, v := range c.Validators {
		if v.Controller.IsZero() {
			return fmt.Errorf("validators[%d]: controller must be set", i)
		}
		if v.Nodes < 0 {
			return fmt.Errorf("validators[%d]: negative node count", i)
		}
		nodes += v.Nodes
	}
	for i, g := range c.Groups {
		if len(g.Members) == 0 {
			return fmt.Errorf("groups[%d]: no members", i)
		}
		for _, m := range g.Members {
			if m >= uint64(nodes) {
				return fmt.Errorf("groups[%d]: unknown node %d", i, m)
			}
		}
	}
	for i, a := range c.Balances {
		if a.Amount.Int == nil || a.Amount.Sign() == 0 {
			return fmt.Errorf("balances[%d]: amount must be positive", i)
		}
	}
	for i, a := range c.Purchased {
		if a.Amount.Int == nil || a.Amount.Sign() == 0 {
			return fmt.Errorf("purchased[%d]: amount must be positive", i)
		}
	}
	return nil
}

func (c *Config) periods() params.Periods {
	p := params.DefaultPeriods()
	if c.Periods == nil {
		return p
	}
	if c.Periods.RewardPeriod != 0 {
		p.RewardPeriod = c.Periods.RewardPeriod
	}
	if c.Periods.DeltaPeriod != 0 {
		p.DeltaPeriod = c.Periods.DeltaPeriod
	}
	if c.Periods.CheckTime != 0 {
		p.CheckTime = c.Periods.CheckTime
	}
	p.LaunchTimestamp = c.Periods.LaunchTimestamp
	return p
}

// Builder translates the config into genesis state processes. Nodes are created
// at the launch timestamp, and pricing takes its baseline from the initial topology.
func (c *Config) Builder() *Builder {
	periods := c.periods()
	launch := periods.LaunchTimestamp

	return new(Builder).
		Timestamp(launch).
		State(func(ctr *builtin.Contracts) error {
			if err := ctr.Roles.Init(c.Owner); err != nil {
				return errors.Wrap(err, "owner")
			}
			for _, a := range c.Admins {
				if err := ctr.Roles.GrantAdmin(c.Owner, a); err != nil {
					return errors.Wrapf(err, "admin %s", a)
				}
			}
			if err := ctr.Params.InitPeriods(periods); err != nil {
				return errors.Wrap(err, "periods")
			}
			if len(c.AllowedPeriods) > 0 {
				if err := ctr.Delegation.SetAllowedPeriods(c.Owner, c.AllowedPeriods); err != nil {
					return errors.Wrap(err, "allowed periods")
				}
			}
			if c.ReductionEnabled {
				if err := ctr.Bounty.EnableBountyReduction(c.Owner); err != nil {
					return errors.Wrap(err, "bounty reduction")
				}
			}
			return nil
		}).
		State(func(ctr *builtin.Contracts) error {
			for i, v := range c.Validators {
				var reward econ.Address
				if v.RewardAddress != nil {
					reward = *v.RewardAddress
				}
				id, err := ctr.Nodes.RegisterValidator(v.Controller, reward, v.Name)
				if err != nil {
					return errors.Wrapf(err, "validators[%d]", i)
				}
				if v.MeetsRequirement {
					if err := ctr.Nodes.SetRequirementMet(c.Owner, id, true); err != nil {
						return errors.Wrapf(err, "validators[%d]", i)
					}
				}
				for range v.Nodes {
					if _, err := ctr.Nodes.CreateNode(v.Controller, id, launch); err != nil {
						return errors.Wrapf(err, "validators[%d] node", i)
					}
				}
			}
			for i, g := range c.Groups {
				if _, err := ctr.Nodes.CreateGroup(c.Owner, g.PartOfNode, g.Members); err != nil {
					return errors.Wrapf(err, "groups[%d]", i)
				}
			}
			return ctr.Pricing.InitNodes(c.Owner, launch)
		}).
		State(func(ctr *builtin.Contracts) error {
			for _, a := range c.Balances {
				if err := ctr.Token.Mint(a.Address, a.Amount.Int); err != nil {
					return errors.Wrapf(err, "balance of %s", a.Address)
				}
			}
			for _, a := range c.Purchased {
				if err := ctr.Delegation.Sold(c.Owner, a.Address, a.Amount.Int); err != nil {
					return errors.Wrapf(err, "purchase of %s", a.Address)
				}
			}
			return nil
		})
}
