// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package pricing adjusts the network price toward an optimal node load.
package pricing

import (
	"math"

	"github.com/ethereum/go-ethereum/event"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/vechain/econ/builtin/params"
	"github.com/vechain/econ/builtin/reverts"
	"github.com/vechain/econ/builtin/solidity"
	"github.com/vechain/econ/econ"
	"github.com/vechain/econ/log"
	"github.com/vechain/econ/state"
)

const (
	MinPrice              = 1_000_000
	InitialPrice          = 5_000_000
	AdjustmentSpeed       = 1000
	OptimalLoadPercentage = 80

	// fixed point denominator of the adjustment formula
	adjustmentDenominator = 1_000_000
	// weight of a full node membership
	nodeShares = 128
)

var (
	logger = log.WithContext("pkg", "pricing")

	slotState = econ.BytesToBytes32([]byte("pricing-state"))
)

func SetLogger(l log.Logger) {
	logger = l
}

// Topology exposes the resource layout the load is derived from.
type Topology interface {
	ActiveNodeIDs() ([]uint64, error)
	// Memberships returns the partOfNode of every group the node serves.
	Memberships(nodeID uint64) ([]uint64, error)
	IsExited(nodeID uint64) (bool, error)
}

type Roles interface {
	IsAdmin(addr econ.Address) (bool, error)
	IsOwner(addr econ.Address) (bool, error)
}

type Periods interface {
	Periods() (*params.Periods, error)
}

// Pricing binder of the pricing contract.
type Pricing struct {
	sctx     *solidity.Context
	state    *solidity.Raw[*State]
	topology Topology
	roles    Roles
	periods  Periods

	feed event.Feed
}

func New(addr econ.Address, state *state.State, topology Topology, roles Roles, periods Periods) *Pricing {
	sctx := solidity.NewContext(addr, state)
	return &Pricing{
		sctx:     sctx,
		state:    solidity.NewRaw[*State](sctx, slotState),
		topology: topology,
		roles:    roles,
		periods:  periods,
	}
}

// SubscribePriceChanged receivers will receive every price adjustment.
func (p *Pricing) SubscribePriceChanged(ch chan<- *PriceChanged) event.Subscription {
	return p.feed.Subscribe(ch)
}

// State returns the pricing state, zero valued before initialization.
func (p *Pricing) State() (*State, error) {
	s, err := p.state.Get()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get pricing state")
	}
	if s == nil {
		s = &State{}
	}
	if s.Price == nil {
		s.Price = new(uint256.Int)
	}
	return s, nil
}

// Price returns the current price.
func (p *Pricing) Price() (*uint256.Int, error) {
	s, err := p.State()
	if err != nil {
		return nil, err
	}
	return s.Price, nil
}

// TotalLoadPercentage returns floor(100 * shares / (128 * activeNodes)).
func (p *Pricing) TotalLoadPercentage() (uint64, error) {
	_, load, err := p.sample()
	return load, err
}

func (p *Pricing) sample() (count uint64, load uint64, err error) {
	ids, err := p.topology.ActiveNodeIDs()
	if err != nil {
		return 0, 0, errors.Wrap(err, "failed to list active nodes")
	}
	var sum uint64
	for _, id := range ids {
		exited, err := p.topology.IsExited(id)
		if err != nil {
			return 0, 0, err
		}
		if exited {
			continue
		}
		count++
		parts, err := p.topology.Memberships(id)
		if err != nil {
			return 0, 0, err
		}
		for _, part := range parts {
			if part != 0 {
				sum += nodeShares / part
			}
		}
	}
	if count == 0 {
		return 0, 0, nil
	}
	return count, sum * 100 / (nodeShares * count), nil
}

func (p *Pricing) requireAdmin(caller econ.Address) error {
	admin, err := p.roles.IsAdmin(caller)
	if err != nil {
		return err
	}
	if admin {
		return nil
	}
	owner, err := p.roles.IsOwner(caller)
	if err != nil {
		return err
	}
	if !owner {
		return reverts.New(reverts.Unauthorized, "Caller is not an admin")
	}
	return nil
}

// InitNodes snapshots the active node count and load as the adjustment
// baseline. The first call also sets the initial price.
func (p *Pricing) InitNodes(caller econ.Address, now uint64) error {
	if err := p.requireAdmin(caller); err != nil {
		return err
	}
	var s *State
	err := p.sctx.Atomic(func() (err error) {
		if s, err = p.State(); err != nil {
			return err
		}
		if s.IsEmpty() {
			s.Price = uint256.NewInt(InitialPrice)
			s.LastUpdated = now
		}
		if s.TotalNodes, s.LastLoad, err = p.sample(); err != nil {
			return err
		}
		return p.state.Upsert(s)
	})
	if err != nil {
		return err
	}
	metricPrice().Set(clampInt64(s.Price))
	logger.Info("pricing baseline set", "nodes", s.TotalNodes, "load", s.LastLoad, "price", s.Price)
	return nil
}

// AdjustPrice moves the price by AdjustmentSpeed per elapsed CheckTime window
// in the direction of the load deviation from OptimalLoadPercentage.
func (p *Pricing) AdjustPrice(now uint64) (*uint256.Int, error) {
	var ev *PriceChanged
	err := p.sctx.Atomic(func() error {
		var err error
		ev, err = p.adjust(now)
		return err
	})
	if err != nil {
		switch {
		case reverts.Is(err, reverts.TooSoon):
			recordAdjustment("too_soon")
		case reverts.Is(err, reverts.NoChange):
			recordAdjustment("no_change")
		default:
			recordAdjustment("error")
		}
		logger.Debug("adjust price rejected", "now", now, "error", err)
		return nil, err
	}
	recordAdjustment("ok")
	metricPrice().Set(clampInt64(ev.New))
	logger.Info("price adjusted", "old", ev.Old, "new", ev.New)
	p.feed.Send(ev)
	return ev.New, nil
}

func (p *Pricing) adjust(now uint64) (*PriceChanged, error) {
	s, err := p.State()
	if err != nil {
		return nil, err
	}
	if s.IsEmpty() {
		return nil, reverts.New(reverts.InvalidState, "pricing is not initialized")
	}
	periods, err := p.periods.Periods()
	if err != nil {
		return nil, err
	}
	cooldown := periods.CheckTime
	if cooldown == 0 {
		return nil, reverts.New(reverts.InvalidState, "check time is not set")
	}
	if now < s.LastUpdated || now-s.LastUpdated < cooldown {
		return nil, reverts.New(reverts.TooSoon, "It's not a time to update a price")
	}
	count, load, err := p.sample()
	if err != nil {
		return nil, err
	}
	metricLoad().Observe(int64(load))
	if count == s.TotalNodes && load == s.LastLoad {
		return nil, reverts.New(reverts.NoChange, "No any changes on nodes")
	}
	windows := uint256.NewInt((now - s.LastUpdated) / cooldown)

	price := s.Price
	next := new(uint256.Int).Set(price)
	if load != OptimalLoadPercentage {
		var deviation uint64
		if load < OptimalLoadPercentage {
			deviation = OptimalLoadPercentage - load
		} else {
			deviation = load - OptimalLoadPercentage
		}
		change, overflow := new(uint256.Int).MulOverflow(uint256.NewInt(AdjustmentSpeed), price)
		if overflow {
			return nil, reverts.New(reverts.ArithmeticOverflow, "price change overflow")
		}
		if _, overflow = change.MulOverflow(change, uint256.NewInt(deviation)); overflow {
			return nil, reverts.New(reverts.ArithmeticOverflow, "price change overflow")
		}
		change.Div(change, uint256.NewInt(adjustmentDenominator))

		total, overflow := new(uint256.Int).MulOverflow(change, windows)
		if overflow {
			return nil, reverts.New(reverts.ArithmeticOverflow, "price change overflow")
		}
		if load < OptimalLoadPercentage {
			if total.Gt(price) {
				return nil, reverts.New(reverts.Underflow, "price change exceeds price")
			}
			next.Sub(price, total)
			if next.Lt(uint256.NewInt(MinPrice)) {
				next.SetUint64(MinPrice)
			}
		} else if _, overflow = next.AddOverflow(price, total); overflow {
			return nil, reverts.New(reverts.ArithmeticOverflow, "price overflow")
		}
	}

	s.Price = next
	s.LastUpdated = now
	s.TotalNodes = count
	s.LastLoad = load
	if err := p.state.Upsert(s); err != nil {
		return nil, errors.Wrap(err, "failed to set pricing state")
	}
	return &PriceChanged{Old: price, New: new(uint256.Int).Set(next), Time: now}, nil
}

func clampInt64(v *uint256.Int) int64 {
	if !v.IsUint64() || v.Uint64() > math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(v.Uint64())
}
