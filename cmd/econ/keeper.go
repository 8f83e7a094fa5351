// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/vechain/econ/builtin"
	"github.com/vechain/econ/builtin/reverts"
	"github.com/vechain/econ/log"
)

var keeperLogger = log.WithContext("pkg", "keeper")

// priceKeeper is the single writer of the live state. It adjusts the price
// every CheckTime and commits each successful adjustment.
type priceKeeper struct {
	contracts *builtin.Contracts
	now       func() uint64
}

func newPriceKeeper(contracts *builtin.Contracts) *priceKeeper {
	return &priceKeeper{
		contracts: contracts,
		now:       func() uint64 { return uint64(time.Now().Unix()) },
	}
}

func (k *priceKeeper) interval() (time.Duration, error) {
	periods, err := k.contracts.Params.Periods()
	if err != nil {
		return 0, err
	}
	return time.Duration(periods.CheckTime) * time.Second, nil
}

// Run adjusts at once, then on every CheckTime until ctx is done.
func (k *priceKeeper) Run(ctx context.Context) error {
	for {
		if err := k.tick(); err != nil {
			return err
		}
		interval, err := k.interval()
		if err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(interval):
		}
	}
}

// tick returns an error only when the state can no longer be trusted.
func (k *priceKeeper) tick() error {
	now := k.now()
	price, err := k.contracts.Pricing.AdjustPrice(now)
	switch {
	case err == nil:
	case reverts.Is(err, reverts.TooSoon), reverts.Is(err, reverts.NoChange):
		keeperLogger.Debug("price kept", "reason", err)
		return nil
	case reverts.IsRevertErr(err):
		keeperLogger.Warn("price adjustment rejected", "err", err)
		return nil
	default:
		return errors.WithMessage(err, "adjust price")
	}

	if err := k.contracts.State.Stage().Commit(); err != nil {
		return errors.WithMessage(err, "commit price")
	}
	keeperLogger.Info("price adjusted", "price", price, "time", now)
	return nil
}
