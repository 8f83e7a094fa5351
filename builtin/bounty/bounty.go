// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package bounty pays nodes their share of the epoch emission.
package bounty

import (
	"math/big"

	"github.com/ethereum/go-ethereum/event"
	"github.com/pkg/errors"

	"github.com/vechain/econ/builtin/params"
	"github.com/vechain/econ/builtin/reverts"
	"github.com/vechain/econ/builtin/solidity"
	"github.com/vechain/econ/econ"
	"github.com/vechain/econ/log"
	"github.com/vechain/econ/state"
)

// ReductionCoefficient divides the share of nodes whose validator falls
// below the requirements while reduction is enabled.
const ReductionCoefficient = 2

var (
	logger = log.WithContext("pkg", "bounty")

	slotReduction  = econ.BytesToBytes32([]byte("bounty-reduction"))
	slotNextReward = econ.BytesToBytes32([]byte("bounty-next-reward"))
	slotRecords    = econ.BytesToBytes32([]byte("bounty-records"))
	slotEpochs     = econ.BytesToBytes32([]byte("bounty-epochs"))
	slotTotalPaid  = econ.BytesToBytes32([]byte("bounty-total-paid"))

	errNotOwner = reverts.New(reverts.Unauthorized, "Caller is not the owner")
)

func SetLogger(l log.Logger) {
	logger = l
}

type Node struct {
	ValidatorID uint64
	Created     uint64
	Exited      bool
}

type Nodes interface {
	// LookupNode returns nil for unknown nodes.
	LookupNode(nodeID uint64) (*Node, error)
	ActiveNodeCount() (uint64, error)
}

type Validators interface {
	IsController(validatorID uint64, addr econ.Address) (bool, error)
	RewardAddress(validatorID uint64) (econ.Address, error)
	CanMaintainNode(validatorID, nodeID uint64) (bool, error)
}

type Minter interface {
	Mint(to econ.Address, amount *big.Int) error
}

type Roles interface {
	IsOwner(addr econ.Address) (bool, error)
}

type Clock interface {
	Periods() (*params.Periods, error)
	EpochAt(now uint64) (uint64, error)
}

// Bounty binder of the bounty contract.
type Bounty struct {
	sctx       *solidity.Context
	nodes      Nodes
	validators Validators
	minter     Minter
	roles      Roles
	clock      Clock
	policy     EmissionPolicy

	reduction  *solidity.Raw[bool]
	nextReward *solidity.Mapping[solidity.Uint64, uint64]
	records    *solidity.Mapping[solidity.Pair[solidity.Uint64, solidity.Uint64], *Record]
	epochs     *solidity.Mapping[solidity.Uint64, *EpochStats]
	totalPaid  *solidity.Uint256

	feed event.Feed
}

type Options struct {
	Nodes      Nodes
	Validators Validators
	Minter     Minter
	Roles      Roles
	Clock      Clock
	// Policy defaults to DefaultSchedule.
	Policy EmissionPolicy
}

func New(addr econ.Address, state *state.State, opts Options) *Bounty {
	sctx := solidity.NewContext(addr, state)
	policy := opts.Policy
	if policy == nil {
		policy = DefaultSchedule()
	}
	return &Bounty{
		sctx:       sctx,
		nodes:      opts.Nodes,
		validators: opts.Validators,
		minter:     opts.Minter,
		roles:      opts.Roles,
		clock:      opts.Clock,
		policy:     policy,
		reduction:  solidity.NewRaw[bool](sctx, slotReduction),
		nextReward: solidity.NewMapping[solidity.Uint64, uint64](sctx, slotNextReward),
		records:    solidity.NewMapping[solidity.Pair[solidity.Uint64, solidity.Uint64], *Record](sctx, slotRecords),
		epochs:     solidity.NewMapping[solidity.Uint64, *EpochStats](sctx, slotEpochs),
		totalPaid:  solidity.NewUint256(sctx, slotTotalPaid),
	}
}

func recordKey(nodeID, epoch uint64) solidity.Pair[solidity.Uint64, solidity.Uint64] {
	return solidity.Pair[solidity.Uint64, solidity.Uint64]{First: solidity.Uint64(nodeID), Second: solidity.Uint64(epoch)}
}

// SubscribeBountyPaid receivers will receive every successful claim.
func (b *Bounty) SubscribeBountyPaid(ch chan<- *BountyPaid) event.Subscription {
	return b.feed.Subscribe(ch)
}

//
// Getters - no state change
//

func (b *Bounty) ReductionEnabled() (bool, error) {
	enabled, err := b.reduction.Get()
	if err != nil {
		return false, errors.Wrap(err, "failed to get reduction flag")
	}
	return enabled, nil
}

// Record returns the claim of the node in the epoch, nil if none.
func (b *Bounty) Record(nodeID, epoch uint64) (*Record, error) {
	key := recordKey(nodeID, epoch)
	exists, err := b.records.Exists(key)
	if err != nil {
		return nil, errors.Wrap(err, "failed to check record")
	}
	if !exists {
		return nil, nil
	}
	r, err := b.records.Get(key)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get record")
	}
	return r, nil
}

func (b *Bounty) EpochStats(epoch uint64) (*EpochStats, error) {
	s, err := b.epochs.Get(solidity.Uint64(epoch))
	if err != nil {
		return nil, errors.Wrap(err, "failed to get epoch stats")
	}
	s.Paid = s.paid()
	return s, nil
}

func (b *Bounty) TotalPaid() (*big.Int, error) {
	paid, err := b.totalPaid.Get()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get total paid")
	}
	return paid, nil
}

// NextRewardDate returns the schedule pointer of the node, initially its creation time.
func (b *Bounty) NextRewardDate(nodeID uint64) (uint64, error) {
	node, err := b.existingNode(nodeID)
	if err != nil {
		return 0, err
	}
	return b.nextRewardDate(nodeID, node)
}

func (b *Bounty) nextRewardDate(nodeID uint64, node *Node) (uint64, error) {
	exists, err := b.nextReward.Exists(solidity.Uint64(nodeID))
	if err != nil {
		return 0, errors.Wrap(err, "failed to check next reward date")
	}
	if !exists {
		return node.Created, nil
	}
	next, err := b.nextReward.Get(solidity.Uint64(nodeID))
	if err != nil {
		return 0, errors.Wrap(err, "failed to get next reward date")
	}
	return next, nil
}

// NextClaimTime returns the earliest time the node may claim.
func (b *Bounty) NextClaimTime(nodeID uint64) (uint64, error) {
	next, err := b.NextRewardDate(nodeID)
	if err != nil {
		return 0, err
	}
	periods, err := b.clock.Periods()
	if err != nil {
		return 0, err
	}
	at := next + periods.RewardPeriod + periods.DeltaPeriod
	return max(at, periods.LaunchTimestamp), nil
}

// EstimateBounty returns the share the node would receive at now, without
// any claim gate applied.
func (b *Bounty) EstimateBounty(nodeID uint64, now uint64) (*big.Int, error) {
	node, err := b.existingNode(nodeID)
	if err != nil {
		return nil, err
	}
	epoch, err := b.clock.EpochAt(now)
	if err != nil {
		return nil, err
	}
	return b.share(nodeID, node, epoch)
}

func (b *Bounty) existingNode(nodeID uint64) (*Node, error) {
	node, err := b.nodes.LookupNode(nodeID)
	if err != nil {
		return nil, err
	}
	if node == nil {
		return nil, reverts.Newf(reverts.InvalidState, "node %d does not exist", nodeID)
	}
	return node, nil
}

func (b *Bounty) share(nodeID uint64, node *Node, epoch uint64) (*big.Int, error) {
	periods, err := b.clock.Periods()
	if err != nil {
		return nil, err
	}
	stats, err := b.EpochStats(epoch)
	if err != nil {
		return nil, err
	}
	active, err := b.nodes.ActiveNodeCount()
	if err != nil {
		return nil, err
	}

	remaining := b.policy.EpochPool(epoch, periods.RewardPeriod)
	remaining.Sub(remaining, stats.Paid)
	if remaining.Sign() <= 0 {
		return new(big.Int), nil
	}
	claimants := uint64(1)
	if active > stats.Claims {
		claimants = active - stats.Claims
	}
	share := remaining.Div(remaining, new(big.Int).SetUint64(claimants))

	paid, err := b.TotalPaid()
	if err != nil {
		return nil, err
	}
	left := new(big.Int).Sub(b.policy.TotalPool(), paid)
	if left.Sign() <= 0 {
		return new(big.Int), nil
	}
	if share.Cmp(left) > 0 {
		share = left
	}

	enabled, err := b.ReductionEnabled()
	if err != nil {
		return nil, err
	}
	if enabled {
		ok, err := b.validators.CanMaintainNode(node.ValidatorID, nodeID)
		if err != nil {
			return nil, err
		}
		if !ok {
			share.Div(share, big.NewInt(ReductionCoefficient))
		}
	}
	return share, nil
}

//
// Setters - state change
//

// GetBounty pays the node its share of the current epoch, minted to the
// reward address of its validator.
func (b *Bounty) GetBounty(caller econ.Address, nodeID uint64, now uint64) (*big.Int, error) {
	var ev *BountyPaid
	err := b.sctx.Atomic(func() (err error) {
		ev, err = b.claim(caller, nodeID, now)
		return err
	})
	if err != nil {
		metricClaims().AddWithLabel(1, map[string]string{"result": resultOf(err)})
		logger.Debug("get bounty rejected", "node", nodeID, "error", err)
		return nil, err
	}
	metricClaims().AddWithLabel(1, map[string]string{"result": "ok"})
	metricPaidTokens().Add(new(big.Int).Div(ev.Amount, econ.Ether).Int64())
	logger.Info("bounty paid", "node", nodeID, "epoch", ev.Epoch, "amount", ev.Amount, "to", ev.To)
	b.feed.Send(ev)
	return ev.Amount, nil
}

func resultOf(err error) string {
	var rerr *reverts.Error
	if errors.As(err, &rerr) {
		return rerr.Kind.String()
	}
	return "error"
}

func (b *Bounty) claim(caller econ.Address, nodeID uint64, now uint64) (*BountyPaid, error) {
	node, err := b.existingNode(nodeID)
	if err != nil {
		return nil, err
	}
	ok, err := b.validators.IsController(node.ValidatorID, caller)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, reverts.New(reverts.Unauthorized, "Caller is not the node validator")
	}
	if node.Exited {
		return nil, reverts.Newf(reverts.InvalidState, "node %d exited", nodeID)
	}

	periods, err := b.clock.Periods()
	if err != nil {
		return nil, err
	}
	if now < periods.LaunchTimestamp {
		return nil, reverts.New(reverts.NotTimeYet, "Bounty is locked")
	}
	next, err := b.nextRewardDate(nodeID, node)
	if err != nil {
		return nil, err
	}
	if now < next+periods.RewardPeriod+periods.DeltaPeriod {
		return nil, reverts.New(reverts.NotTimeYet, "Not time for bounty")
	}
	epoch, err := b.clock.EpochAt(now)
	if err != nil {
		return nil, err
	}
	key := recordKey(nodeID, epoch)
	claimed, err := b.records.Exists(key)
	if err != nil {
		return nil, errors.Wrap(err, "failed to check record")
	}
	if claimed {
		return nil, reverts.Newf(reverts.NotTimeYet, "bounty of epoch %d already claimed", epoch)
	}

	amount, err := b.share(nodeID, node, epoch)
	if err != nil {
		return nil, err
	}

	if err := b.records.Set(key, &Record{Amount: amount, Time: now}); err != nil {
		return nil, errors.Wrap(err, "failed to set record")
	}
	stats, err := b.EpochStats(epoch)
	if err != nil {
		return nil, err
	}
	stats.Paid.Add(stats.Paid, amount)
	stats.Claims++
	if err := b.epochs.Set(solidity.Uint64(epoch), stats); err != nil {
		return nil, errors.Wrap(err, "failed to set epoch stats")
	}
	if err := b.totalPaid.Add(amount); err != nil {
		return nil, errors.Wrap(err, "failed to set total paid")
	}
	if err := b.nextReward.Set(solidity.Uint64(nodeID), next+periods.RewardPeriod); err != nil {
		return nil, errors.Wrap(err, "failed to set next reward date")
	}

	to, err := b.validators.RewardAddress(node.ValidatorID)
	if err != nil {
		return nil, err
	}
	if err := b.minter.Mint(to, amount); err != nil {
		return nil, err
	}
	return &BountyPaid{
		NodeID:      nodeID,
		ValidatorID: node.ValidatorID,
		Epoch:       epoch,
		Amount:      amount,
		To:          to,
		Time:        now,
	}, nil
}

func (b *Bounty) requireOwner(caller econ.Address) error {
	ok, err := b.roles.IsOwner(caller)
	if err != nil {
		return err
	}
	if !ok {
		return errNotOwner
	}
	return nil
}

func (b *Bounty) setReduction(caller econ.Address, enabled bool) error {
	if err := b.requireOwner(caller); err != nil {
		return err
	}
	if err := b.reduction.Upsert(enabled); err != nil {
		return errors.Wrap(err, "failed to set reduction flag")
	}
	logger.Info("bounty reduction updated", "enabled", enabled)
	return nil
}

func (b *Bounty) EnableBountyReduction(caller econ.Address) error {
	return b.setReduction(caller, true)
}

func (b *Bounty) DisableBountyReduction(caller econ.Address) error {
	return b.setReduction(caller, false)
}
