// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import (
	"context"

	"github.com/ethereum/go-ethereum/event"

	"github.com/vechain/econ/builtin/bounty"
	"github.com/vechain/econ/builtin/delegation"
	"github.com/vechain/econ/builtin/pricing"
	"github.com/vechain/econ/log"
)

var logger = log.WithContext("pkg", "logdb")

type (
	PriceFeed interface {
		SubscribePriceChanged(ch chan<- *pricing.PriceChanged) event.Subscription
	}
	BountyFeed interface {
		SubscribeBountyPaid(ch chan<- *bounty.BountyPaid) event.Subscription
	}
	StateFeed interface {
		SubscribeStateChanged(ch chan<- *delegation.StateChanged) event.Subscription
	}
)

// Record writes every event of the feeds until ctx is done.
func (db *LogDB) Record(ctx context.Context, prices PriceFeed, bounties BountyFeed, states StateFeed) error {
	var (
		priceCh  = make(chan *pricing.PriceChanged, 16)
		bountyCh = make(chan *bounty.BountyPaid, 16)
		stateCh  = make(chan *delegation.StateChanged, 16)
		scope    event.SubscriptionScope
	)
	defer scope.Close()

	priceSub := scope.Track(prices.SubscribePriceChanged(priceCh))
	bountySub := scope.Track(bounties.SubscribeBountyPaid(bountyCh))
	stateSub := scope.Track(states.SubscribeStateChanged(stateCh))

	for {
		var err error
		select {
		case <-ctx.Done():
			return nil
		case err = <-priceSub.Err():
			return err
		case err = <-bountySub.Err():
			return err
		case err = <-stateSub.Err():
			return err
		case ev := <-priceCh:
			err = db.WritePriceChanged(ev)
		case ev := <-bountyCh:
			err = db.WriteBountyPaid(ev)
		case ev := <-stateCh:
			err = db.WriteStateChanged(ev)
		}
		if err != nil {
			logger.Warn("failed to record event", "err", err)
		}
	}
}
