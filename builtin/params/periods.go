// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package params

import (
	"github.com/vechain/econ/builtin/reverts"
	"github.com/vechain/econ/econ"
)

// Periods is the global period configuration.
type Periods struct {
	RewardPeriod    uint64 // length of an epoch, in seconds
	DeltaPeriod     uint64 // grace window after each reward period
	CheckTime       uint64 // minimum interval between price adjustments
	LaunchTimestamp uint64
}

// DefaultPeriods returns the configuration used until genesis sets one.
func DefaultPeriods() Periods {
	return Periods{
		RewardPeriod: econ.InitialRewardPeriod,
		DeltaPeriod:  econ.InitialDeltaPeriod,
		CheckTime:    econ.InitialCheckTime,
	}
}

// Clock maps unix time to epoch numbers. Epoch n covers
// [AnchorTime + (n-AnchorEpoch)*RewardPeriod, AnchorTime + (n-AnchorEpoch+1)*RewardPeriod).
type Clock struct {
	RewardPeriod uint64
	AnchorTime   uint64
	AnchorEpoch  uint64
}

// EpochAt returns the epoch in progress at t. Times before the anchor map to the anchor epoch.
func (c Clock) EpochAt(t uint64) uint64 {
	if t < c.AnchorTime {
		return c.AnchorEpoch
	}
	return c.AnchorEpoch + (t-c.AnchorTime)/c.RewardPeriod
}

// EpochStart returns the start time of epoch. Epochs before the anchor start at the anchor time.
func (c Clock) EpochStart(epoch uint64) uint64 {
	if epoch <= c.AnchorEpoch {
		return c.AnchorTime
	}
	return c.AnchorTime + (epoch-c.AnchorEpoch)*c.RewardPeriod
}

// Periods returns the current period configuration.
// An unset reward period means genesis never ran, and defaults apply.
func (p *Params) Periods() (*Periods, error) {
	reward, err := p.getUint64(econ.KeyRewardPeriod)
	if err != nil {
		return nil, err
	}
	if reward == 0 {
		def := DefaultPeriods()
		launch, err := p.getUint64(econ.KeyLaunchTimestamp)
		if err != nil {
			return nil, err
		}
		def.LaunchTimestamp = launch
		return &def, nil
	}
	out := &Periods{RewardPeriod: reward}
	if out.DeltaPeriod, err = p.getUint64(econ.KeyDeltaPeriod); err != nil {
		return nil, err
	}
	if out.CheckTime, err = p.getUint64(econ.KeyCheckTime); err != nil {
		return nil, err
	}
	if out.LaunchTimestamp, err = p.getUint64(econ.KeyLaunchTimestamp); err != nil {
		return nil, err
	}
	return out, nil
}

// Clock returns the epoch clock.
func (p *Params) Clock() (Clock, error) {
	periods, err := p.Periods()
	if err != nil {
		return Clock{}, err
	}
	anchorTime, err := p.getUint64(econ.KeyEpochAnchorTime)
	if err != nil {
		return Clock{}, err
	}
	anchorEpoch, err := p.getUint64(econ.KeyEpochAnchor)
	if err != nil {
		return Clock{}, err
	}
	if anchorTime == 0 && anchorEpoch == 0 {
		anchorTime = periods.LaunchTimestamp
	}
	return Clock{RewardPeriod: periods.RewardPeriod, AnchorTime: anchorTime, AnchorEpoch: anchorEpoch}, nil
}

// EpochAt returns the epoch in progress at now.
func (p *Params) EpochAt(now uint64) (uint64, error) {
	clock, err := p.Clock()
	if err != nil {
		return 0, err
	}
	return clock.EpochAt(now), nil
}

func (p *Params) writePeriods(periods *Periods) error {
	if err := p.setUint64(econ.KeyRewardPeriod, periods.RewardPeriod); err != nil {
		return err
	}
	if err := p.setUint64(econ.KeyDeltaPeriod, periods.DeltaPeriod); err != nil {
		return err
	}
	if err := p.setUint64(econ.KeyCheckTime, periods.CheckTime); err != nil {
		return err
	}
	return p.setUint64(econ.KeyLaunchTimestamp, periods.LaunchTimestamp)
}

func (p *Params) writeAnchor(anchorTime, anchorEpoch uint64) error {
	if err := p.setUint64(econ.KeyEpochAnchorTime, anchorTime); err != nil {
		return err
	}
	return p.setUint64(econ.KeyEpochAnchor, anchorEpoch)
}

func validatePeriods(periods *Periods) error {
	if periods.RewardPeriod == 0 {
		return reverts.New(reverts.InvalidState, "reward period must be positive")
	}
	if periods.CheckTime == 0 {
		return reverts.New(reverts.InvalidState, "check time must be positive")
	}
	return nil
}

// InitPeriods writes the genesis configuration and anchors epoch 0 at the launch timestamp.
func (p *Params) InitPeriods(periods Periods) error {
	if err := validatePeriods(&periods); err != nil {
		return err
	}
	return p.sctx.Atomic(func() error {
		if err := p.writePeriods(&periods); err != nil {
			return err
		}
		return p.writeAnchor(periods.LaunchTimestamp, 0)
	})
}

// update applies mutate to the period configuration. Epochs that have already begun keep
// their numbers: the clock is re-anchored at the start of the epoch in progress at now.
func (p *Params) update(caller econ.Address, now uint64, mutate func(*Periods)) error {
	if err := p.requireOwner(caller); err != nil {
		return err
	}
	return p.sctx.Atomic(func() error {
		periods, err := p.Periods()
		if err != nil {
			return err
		}
		clock, err := p.Clock()
		if err != nil {
			return err
		}
		next := *periods
		mutate(&next)
		if err := validatePeriods(&next); err != nil {
			return err
		}

		epoch := clock.EpochAt(now)
		if err := p.writeAnchor(clock.EpochStart(epoch), epoch); err != nil {
			return err
		}
		if err := p.writePeriods(&next); err != nil {
			return err
		}
		logger.Info("periods updated",
			"rewardPeriod", next.RewardPeriod,
			"deltaPeriod", next.DeltaPeriod,
			"checkTime", next.CheckTime,
			"anchorEpoch", epoch,
		)
		return nil
	})
}

// SetPeriods changes the reward and delta periods. Owner only.
func (p *Params) SetPeriods(caller econ.Address, rewardPeriod, deltaPeriod, now uint64) error {
	return p.update(caller, now, func(periods *Periods) {
		periods.RewardPeriod = rewardPeriod
		periods.DeltaPeriod = deltaPeriod
	})
}

// SetCheckTime changes the price adjustment cooldown. Owner only.
func (p *Params) SetCheckTime(caller econ.Address, checkTime, now uint64) error {
	return p.update(caller, now, func(periods *Periods) {
		periods.CheckTime = checkTime
	})
}

// SetLaunchTimestamp moves the launch. Owner only, and only while the network is not launched yet.
// Epoch 0 is re-anchored at the new launch.
func (p *Params) SetLaunchTimestamp(caller econ.Address, launch, now uint64) error {
	if err := p.requireOwner(caller); err != nil {
		return err
	}
	return p.sctx.Atomic(func() error {
		periods, err := p.Periods()
		if err != nil {
			return err
		}
		if periods.LaunchTimestamp != 0 && now >= periods.LaunchTimestamp {
			return reverts.New(reverts.InvalidState, "network is already launched")
		}
		periods.LaunchTimestamp = launch
		if err := p.writePeriods(periods); err != nil {
			return err
		}
		if err := p.writeAnchor(launch, 0); err != nil {
			return err
		}
		logger.Info("launch timestamp updated", "launch", launch)
		return nil
	})
}
