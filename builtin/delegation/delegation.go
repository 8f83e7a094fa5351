// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package delegation tracks token holders delegating to validators, and the
// amounts locked by delegations and token sales.
package delegation

import (
	"math/big"
	"slices"

	"github.com/ethereum/go-ethereum/event"
	"github.com/pkg/errors"

	"github.com/vechain/econ/builtin/reverts"
	"github.com/vechain/econ/builtin/solidity"
	"github.com/vechain/econ/econ"
	"github.com/vechain/econ/log"
	"github.com/vechain/econ/state"
)

var (
	logger = log.WithContext("pkg", "delegation")

	slotDelegations = econ.BytesToBytes32([]byte("delegations"))
	slotCounter     = econ.BytesToBytes32([]byte("delegations-counter"))
	slotHolders     = econ.BytesToBytes32([]byte("delegation-holders"))
	slotValidators  = econ.BytesToBytes32([]byte("delegation-validators"))
	slotPeriods     = econ.BytesToBytes32([]byte("delegation-periods"))

	// DefaultAllowedPeriods are the delegation periods, in epochs, accepted until changed by the owner.
	DefaultAllowedPeriods = []uint64{3, 6, 12}
)

func SetLogger(l log.Logger) {
	logger = l
}

type Validators interface {
	Exists(validatorID uint64) (bool, error)
	IsController(validatorID uint64, addr econ.Address) (bool, error)
}

type Balances interface {
	BalanceOf(addr econ.Address) (*big.Int, error)
}

type Roles interface {
	IsOwner(addr econ.Address) (bool, error)
	IsAdmin(addr econ.Address) (bool, error)
}

type Clock interface {
	EpochAt(now uint64) (uint64, error)
}

// Service binder of the delegation contract.
type Service struct {
	sctx       *solidity.Context
	validators Validators
	balances   Balances
	roles      Roles
	clock      Clock

	delegations    *solidity.Mapping[solidity.Uint64, *Delegation]
	counter        *solidity.Raw[uint64]
	holders        *solidity.Mapping[econ.Address, *holder]
	validatorIndex *solidity.Mapping[solidity.Uint64, *validatorIndex]
	periods        *solidity.Raw[[]uint64]

	feed event.Feed
}

func New(addr econ.Address, state *state.State, validators Validators, balances Balances, roles Roles, clock Clock) *Service {
	sctx := solidity.NewContext(addr, state)
	return &Service{
		sctx:           sctx,
		validators:     validators,
		balances:       balances,
		roles:          roles,
		clock:          clock,
		delegations:    solidity.NewMapping[solidity.Uint64, *Delegation](sctx, slotDelegations),
		counter:        solidity.NewRaw[uint64](sctx, slotCounter),
		holders:        solidity.NewMapping[econ.Address, *holder](sctx, slotHolders),
		validatorIndex: solidity.NewMapping[solidity.Uint64, *validatorIndex](sctx, slotValidators),
		periods:        solidity.NewRaw[[]uint64](sctx, slotPeriods),
	}
}

// SubscribeStateChanged receivers will receive explicit transitions.
func (s *Service) SubscribeStateChanged(ch chan<- *StateChanged) event.Subscription {
	return s.feed.Subscribe(ch)
}

//
// Getters - no state change
//

// GetDelegation returns the delegation, NotFound for unknown ids.
func (s *Service) GetDelegation(id uint64) (*Delegation, error) {
	d, err := s.delegations.Get(solidity.Uint64(id))
	if err != nil {
		return nil, errors.Wrap(err, "failed to get delegation")
	}
	if d.IsEmpty() {
		return nil, reverts.Newf(reverts.NotFound, "Delegation %d does not exist", id)
	}
	return d, nil
}

// GetState returns the state of the delegation at now.
func (s *Service) GetState(id uint64, now uint64) (State, error) {
	d, err := s.GetDelegation(id)
	if err != nil {
		return 0, err
	}
	epoch, err := s.clock.EpochAt(now)
	if err != nil {
		return 0, err
	}
	return d.StateAt(epoch), nil
}

// DelegationCount returns the number of delegations ever created.
func (s *Service) DelegationCount() (uint64, error) {
	n, err := s.counter.Get()
	if err != nil {
		return 0, errors.Wrap(err, "failed to get delegation counter")
	}
	return n, nil
}

func (s *Service) getHolder(addr econ.Address) (*holder, error) {
	h, err := s.holders.Get(addr)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get holder")
	}
	return h, nil
}

// DelegationsByHolder returns the ids of the delegations created by holder.
func (s *Service) DelegationsByHolder(addr econ.Address) ([]uint64, error) {
	h, err := s.getHolder(addr)
	if err != nil {
		return nil, err
	}
	return h.Delegations, nil
}

// DelegatedToValidator sums the amounts actively delegated to the validator at now.
func (s *Service) DelegatedToValidator(validatorID uint64, now uint64) (*big.Int, error) {
	idx, err := s.validatorIndex.Get(solidity.Uint64(validatorID))
	if err != nil {
		return nil, errors.Wrap(err, "failed to get validator delegations")
	}
	return s.sum(idx.Delegations, now, State.Delegates)
}

func (s *Service) sum(ids []uint64, now uint64, match func(State) bool) (*big.Int, error) {
	epoch, err := s.clock.EpochAt(now)
	if err != nil {
		return nil, err
	}
	total := new(big.Int)
	for _, id := range ids {
		d, err := s.GetDelegation(id)
		if err != nil {
			return nil, err
		}
		if match(d.StateAt(epoch)) {
			total.Add(total, d.Amount)
		}
	}
	return total, nil
}

// CalculateDelegatedAmount sums the holder's delegations in Delegated or EndingDelegated.
func (s *Service) CalculateDelegatedAmount(addr econ.Address, now uint64) (*big.Int, error) {
	h, err := s.getHolder(addr)
	if err != nil {
		return nil, err
	}
	return s.sum(h.Delegations, now, State.Delegates)
}

func (s *Service) delegationLocked(h *holder, now uint64) (*big.Int, error) {
	return s.sum(h.Delegations, now, State.Locks)
}

// CalculateLockedAmount returns the amount of the holder's balance that cannot move,
// the larger of the delegation lock and the remaining token sale lock.
func (s *Service) CalculateLockedAmount(addr econ.Address, now uint64) (*big.Int, error) {
	h, err := s.getHolder(addr)
	if err != nil {
		return nil, err
	}
	locked, err := s.delegationLocked(h, now)
	if err != nil {
		return nil, err
	}
	purchase, err := s.purchaseLocked(h, now)
	if err != nil {
		return nil, err
	}
	if purchase.Cmp(locked) > 0 {
		return purchase, nil
	}
	return locked, nil
}

// AllowedPeriods returns the accepted delegation periods.
func (s *Service) AllowedPeriods() ([]uint64, error) {
	periods, err := s.periods.Get()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get allowed periods")
	}
	if len(periods) == 0 {
		return slices.Clone(DefaultAllowedPeriods), nil
	}
	return periods, nil
}

//
// Setters - state change
//

// Delegate proposes a delegation of amount to the validator for period epochs.
// The amount is locked from the proposal on.
func (s *Service) Delegate(addr econ.Address, validatorID uint64, amount *big.Int, period uint64, info string, now uint64) (uint64, error) {
	var id uint64
	err := s.sctx.Atomic(func() (err error) {
		id, err = s.delegate(addr, validatorID, amount, period, info, now)
		return err
	})
	if err != nil {
		logger.Debug("delegate rejected", "holder", addr, "validator", validatorID, "error", err)
		return 0, err
	}
	logger.Info("delegation proposed", "id", id, "holder", addr, "validator", validatorID, "amount", amount, "period", period)
	return id, nil
}

func (s *Service) delegate(addr econ.Address, validatorID uint64, amount *big.Int, period uint64, info string, now uint64) (uint64, error) {
	if addr.IsZero() {
		return 0, reverts.New(reverts.InvalidState, "Holder address is empty")
	}
	if amount == nil || amount.Sign() <= 0 {
		return 0, reverts.New(reverts.InvalidState, "Amount should be positive")
	}
	exists, err := s.validators.Exists(validatorID)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, reverts.Newf(reverts.InvalidState, "Validator %d does not exist", validatorID)
	}
	allowed, err := s.AllowedPeriods()
	if err != nil {
		return 0, err
	}
	if !slices.Contains(allowed, period) {
		return 0, reverts.Newf(reverts.InvalidState, "Period %d is not allowed", period)
	}

	h, err := s.getHolder(addr)
	if err != nil {
		return 0, err
	}
	balance, err := s.balances.BalanceOf(addr)
	if err != nil {
		return 0, err
	}
	// purchased tokens may be delegated, only delegations are subtracted
	locked, err := s.delegationLocked(h, now)
	if err != nil {
		return 0, err
	}
	if new(big.Int).Sub(balance, locked).Cmp(amount) < 0 {
		return 0, reverts.New(reverts.InsufficientBalance, "Delegator does not have enough tokens to delegate")
	}

	epoch, err := s.clock.EpochAt(now)
	if err != nil {
		return 0, err
	}
	id, err := s.counter.Get()
	if err != nil {
		return 0, errors.Wrap(err, "failed to get delegation counter")
	}
	if err := s.counter.Upsert(id + 1); err != nil {
		return 0, errors.Wrap(err, "failed to set delegation counter")
	}
	d := &Delegation{
		Holder:       addr,
		ValidatorID:  validatorID,
		Amount:       new(big.Int).Set(amount),
		Period:       period,
		Info:         info,
		Created:      now,
		CreatedEpoch: epoch,
	}
	if err := s.delegations.Set(solidity.Uint64(id), d); err != nil {
		return 0, errors.Wrap(err, "failed to set delegation")
	}
	h.Delegations = append(h.Delegations, id)
	if err := s.holders.Set(addr, h); err != nil {
		return 0, errors.Wrap(err, "failed to set holder")
	}
	idx, err := s.validatorIndex.Get(solidity.Uint64(validatorID))
	if err != nil {
		return 0, errors.Wrap(err, "failed to get validator delegations")
	}
	idx.Delegations = append(idx.Delegations, id)
	if err := s.validatorIndex.Set(solidity.Uint64(validatorID), idx); err != nil {
		return 0, errors.Wrap(err, "failed to set validator delegations")
	}
	return id, nil
}

// transition loads the delegation, checks its state at now and applies mutate.
func (s *Service) transition(
	id uint64,
	now uint64,
	from State,
	to State,
	authorize func(*Delegation) error,
	mutate func(d *Delegation, epoch uint64),
	rejection string,
) error {
	err := s.sctx.Atomic(func() error {
		d, err := s.GetDelegation(id)
		if err != nil {
			return err
		}
		if err := authorize(d); err != nil {
			return err
		}
		epoch, err := s.clock.EpochAt(now)
		if err != nil {
			return err
		}
		if current := d.StateAt(epoch); current != from {
			return reverts.Newf(reverts.InvalidState, "%s: delegation is %s", rejection, current)
		}
		mutate(d, epoch)
		if err := s.delegations.Set(solidity.Uint64(id), d); err != nil {
			return errors.Wrap(err, "failed to set delegation")
		}
		return nil
	})
	if err != nil {
		logger.Debug("delegation transition rejected", "id", id, "to", to, "error", err)
		return err
	}
	recordTransition(from, to)
	logger.Info("delegation state changed", "id", id, "from", from, "to", to)
	s.feed.Send(&StateChanged{ID: id, From: from, To: to, Time: now})
	return nil
}

func requireHolder(caller econ.Address) func(*Delegation) error {
	return func(d *Delegation) error {
		if d.Holder != caller {
			return reverts.New(reverts.Unauthorized, "Only token holders can perform this action")
		}
		return nil
	}
}

// CancelPendingDelegation withdraws a proposal. Holder only.
func (s *Service) CancelPendingDelegation(caller econ.Address, id uint64, now uint64) error {
	return s.transition(id, now, StateProposed, StateCanceled,
		requireHolder(caller),
		func(d *Delegation, _ uint64) { d.Canceled = true },
		"Can't cancel delegation request",
	)
}

// AcceptPendingDelegation accepts a proposal during the epoch it was made in.
// The delegation starts at the next epoch. Validator controller only.
func (s *Service) AcceptPendingDelegation(caller econ.Address, id uint64, now uint64) error {
	authorize := func(d *Delegation) error {
		ok, err := s.validators.IsController(d.ValidatorID, caller)
		if err != nil {
			return err
		}
		if !ok {
			return reverts.New(reverts.Unauthorized, "No permissions to accept request")
		}
		return nil
	}
	return s.transition(id, now, StateProposed, StateAccepted,
		authorize,
		func(d *Delegation, epoch uint64) {
			started := epoch + 1
			d.Started = &started
		},
		"Can't set state to accepted",
	)
}

// RequestUndelegation ends an active delegation after its period. Holder only.
func (s *Service) RequestUndelegation(caller econ.Address, id uint64, now uint64) error {
	return s.transition(id, now, StateDelegated, StateEndingDelegated,
		requireHolder(caller),
		func(d *Delegation, epoch uint64) {
			finished := epoch + d.Period
			d.Finished = &finished
		},
		"Can't request undelegation",
	)
}

// SetAllowedPeriods replaces the accepted delegation periods. Owner only.
func (s *Service) SetAllowedPeriods(caller econ.Address, periods []uint64) error {
	ok, err := s.roles.IsOwner(caller)
	if err != nil {
		return err
	}
	if !ok {
		return reverts.New(reverts.Unauthorized, "Caller is not the owner")
	}
	if len(periods) == 0 || slices.Contains(periods, 0) {
		return reverts.New(reverts.InvalidState, "periods must be positive")
	}
	sorted := slices.Clone(periods)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)
	if err := s.periods.Upsert(sorted); err != nil {
		return errors.Wrap(err, "failed to set allowed periods")
	}
	logger.Info("allowed periods updated", "periods", sorted)
	return nil
}
