// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

import (
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/event"

	"github.com/vechain/econ/api/utils"
	"github.com/vechain/econ/builtin/pricing"
)

// PriceFeed is the source of price changes.
type PriceFeed interface {
	SubscribePriceChanged(ch chan<- *pricing.PriceChanged) event.Subscription
}

type PriceMessage struct {
	Old  *math.HexOrDecimal256 `json:"old"`
	New  *math.HexOrDecimal256 `json:"new"`
	Time uint64                `json:"time"`
}

func convertPrice(ev *pricing.PriceChanged) *PriceMessage {
	return &PriceMessage{
		Old:  utils.Amount(ev.Old.ToBig()),
		New:  utils.Amount(ev.New.ToBig()),
		Time: ev.Time,
	}
}
