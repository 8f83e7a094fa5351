// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package events

import (
	"net/http"
	"strings"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/pkg/errors"

	"github.com/vechain/econ/api/utils"
	"github.com/vechain/econ/econ"
	"github.com/vechain/econ/logdb"
)

type PriceChanged struct {
	Seq  uint64                `json:"seq"`
	Time uint64                `json:"time"`
	Old  *math.HexOrDecimal256 `json:"old"`
	New  *math.HexOrDecimal256 `json:"new"`
}

type BountyPaid struct {
	Seq         uint64                `json:"seq"`
	Time        uint64                `json:"time"`
	NodeID      uint64                `json:"nodeId"`
	ValidatorID uint64                `json:"validatorId"`
	Epoch       uint64                `json:"epoch"`
	Amount      *math.HexOrDecimal256 `json:"amount"`
	Recipient   econ.Address          `json:"recipient"`
}

type StateChanged struct {
	Seq          uint64 `json:"seq"`
	Time         uint64 `json:"time"`
	DelegationID uint64 `json:"delegationId"`
	From         string `json:"from"`
	To           string `json:"to"`
}

func convertPrice(p *logdb.Price) *PriceChanged {
	return &PriceChanged{
		Seq:  p.Seq,
		Time: p.Time,
		Old:  utils.Amount(p.Old.ToBig()),
		New:  utils.Amount(p.New.ToBig()),
	}
}

func convertBounty(b *logdb.Bounty) *BountyPaid {
	return &BountyPaid{
		Seq:         b.Seq,
		Time:        b.Time,
		NodeID:      b.NodeID,
		ValidatorID: b.ValidatorID,
		Epoch:       b.Epoch,
		Amount:      utils.Amount(b.Amount),
		Recipient:   b.Recipient,
	}
}

func convertStateChange(s *logdb.StateChange) *StateChanged {
	return &StateChanged{
		Seq:          s.Seq,
		Time:         s.Time,
		DelegationID: s.DelegationID,
		From:         s.From.String(),
		To:           s.To.String(),
	}
}

// parseFilter reads from, to, order, offset and limit from the query.
// The limit is capped at maxLimit and defaults to it.
func parseFilter(req *http.Request, maxLimit uint64) (*logdb.Filter, error) {
	query := req.URL.Query()
	f := &logdb.Filter{Order: logdb.ASC}

	parse := func(name string) (*uint64, error) {
		s := query.Get(name)
		if s == "" {
			return nil, nil
		}
		v, err := utils.ParseUint(s)
		if err != nil {
			return nil, utils.BadRequest(errors.WithMessage(err, name))
		}
		return &v, nil
	}

	from, err := parse("from")
	if err != nil {
		return nil, err
	}
	to, err := parse("to")
	if err != nil {
		return nil, err
	}
	switch {
	case to != nil:
		f.Range = &logdb.Range{To: *to}
		if from != nil {
			if *to < *from {
				return nil, utils.BadRequest(errors.New("to: less than from"))
			}
			f.Range.From = *from
		}
	case from != nil && *from > 0:
		// a To below From leaves the range open
		f.Range = &logdb.Range{From: *from}
	}

	switch order := strings.ToLower(query.Get("order")); order {
	case "", string(logdb.ASC):
	case string(logdb.DESC):
		f.Order = logdb.DESC
	default:
		return nil, utils.BadRequest(errors.Errorf("order: unknown %q", order))
	}

	offset, err := parse("offset")
	if err != nil {
		return nil, err
	}
	limit, err := parse("limit")
	if err != nil {
		return nil, err
	}
	f.Options = &logdb.Options{Limit: maxLimit}
	if offset != nil {
		f.Options.Offset = *offset
	}
	if limit != nil {
		if *limit > maxLimit {
			return nil, utils.BadRequest(errors.Errorf("limit: exceeds %d", maxLimit))
		}
		f.Options.Limit = *limit
	}
	return f, nil
}
