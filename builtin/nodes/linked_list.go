// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package nodes

import (
	"github.com/pkg/errors"

	"github.com/vechain/econ/builtin/solidity"
	"github.com/vechain/econ/econ"
)

var (
	slotHead = econ.Blake2b([]byte("head"))
	slotTail = econ.Blake2b([]byte("tail"))
)

// activeList links active nodes in insertion order.
type activeList struct {
	nodes *solidity.Mapping[solidity.Uint64, *Node]
	head  *solidity.Raw[*uint64]
	tail  *solidity.Raw[*uint64]
	count *solidity.Raw[uint64]
}

func newActiveList(sctx *solidity.Context, nodes *solidity.Mapping[solidity.Uint64, *Node]) *activeList {
	return &activeList{
		nodes: nodes,
		head:  solidity.NewRaw[*uint64](sctx, slotHead),
		tail:  solidity.NewRaw[*uint64](sctx, slotTail),
		count: solidity.NewRaw[uint64](sctx, econ.BytesToBytes32([]byte("active-count"))),
	}
}

func (l *activeList) get(id uint64) (*Node, error) {
	n, err := l.nodes.Get(solidity.Uint64(id))
	if err != nil {
		return nil, errors.Wrap(err, "failed to get node")
	}
	return n, nil
}

func (l *activeList) set(id uint64, n *Node) error {
	if err := l.nodes.Set(solidity.Uint64(id), n); err != nil {
		return errors.Wrap(err, "failed to set node")
	}
	return nil
}

// contains returns whether the node is in the list.
func (l *activeList) contains(id uint64, n *Node) (bool, error) {
	if n.IsLinked() {
		return true, nil
	}
	// if it's the only node, IsLinked will be false.
	// check whether it's the head.
	head, err := l.head.Get()
	if err != nil {
		return false, err
	}
	return head != nil && *head == id, nil
}

// add appends the node at the tail, storing n.
func (l *activeList) add(id uint64, n *Node) error {
	tail, err := l.tail.Get()
	if err != nil {
		return err
	}
	n.Prev = toLink(tail)
	n.Next = 0

	if err := l.tail.Upsert(&id); err != nil {
		return err
	}
	if tail == nil {
		if err := l.head.Upsert(&id); err != nil {
			return err
		}
	} else {
		tailNode, err := l.get(*tail)
		if err != nil {
			return err
		}
		tailNode.Next = toLink(&id)
		if err := l.set(*tail, tailNode); err != nil {
			return err
		}
	}
	if err := l.set(id, n); err != nil {
		return err
	}
	return l.adjustCount(1)
}

// remove unlinks the node, storing n with cleared links.
func (l *activeList) remove(id uint64, n *Node) error {
	prevID, nextID := n.PrevID(), n.NextID()
	if prevID == nil {
		if err := l.head.Upsert(nextID); err != nil {
			return err
		}
	} else {
		prev, err := l.get(*prevID)
		if err != nil {
			return err
		}
		prev.Next = n.Next
		if err := l.set(*prevID, prev); err != nil {
			return err
		}
	}

	if nextID == nil {
		if err := l.tail.Upsert(prevID); err != nil {
			return err
		}
	} else {
		next, err := l.get(*nextID)
		if err != nil {
			return err
		}
		next.Prev = n.Prev
		if err := l.set(*nextID, next); err != nil {
			return err
		}
	}

	n.Prev, n.Next = 0, 0
	if err := l.set(id, n); err != nil {
		return err
	}
	return l.adjustCount(-1)
}

func (l *activeList) adjustCount(delta int) error {
	c, err := l.count.Get()
	if err != nil {
		return err
	}
	if delta < 0 {
		c--
	} else {
		c++
	}
	return l.count.Upsert(c)
}

func (l *activeList) len() (uint64, error) {
	return l.count.Get()
}

// ids returns the ids in the list, from head to tail.
func (l *activeList) ids() ([]uint64, error) {
	var ids []uint64
	ptr, err := l.head.Get()
	if err != nil {
		return nil, err
	}
	for ptr != nil {
		id := *ptr
		ids = append(ids, id)
		n, err := l.get(id)
		if err != nil {
			return nil, err
		}
		ptr = n.NextID()
	}
	return ids, nil
}
