// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package nodes

import "github.com/vechain/econ/econ"

// Validator is an operator entity owning nodes.
type Validator struct {
	Name          string
	Controller    econ.Address
	RewardAddress econ.Address
	// MeetsRequirement is whether the validator currently satisfies the minimum stake
	// needed to maintain its nodes.
	MeetsRequirement bool
	NodeCount        uint64 // active nodes
}

// IsEmpty returns whether the entry can be treated as empty.
func (v *Validator) IsEmpty() bool {
	return v.Controller.IsZero()
}

// Node is a registered node. Exited nodes stay recorded but leave the active list.
type Node struct {
	ValidatorID uint64
	Created     uint64 // unix seconds
	Exited      bool
	Groups      []uint64

	// Prev and Next hold the linked node id plus one, zero meaning no link.
	Prev uint64
	Next uint64
}

// IsEmpty returns whether the entry can be treated as empty.
func (n *Node) IsEmpty() bool {
	return n.ValidatorID == 0
}

// IsLinked returns whether the node is linked with another in the active list.
func (n *Node) IsLinked() bool {
	return n.Prev != 0 || n.Next != 0
}

// PrevID returns the previous node in the active list, nil for the head.
func (n *Node) PrevID() *uint64 {
	return fromLink(n.Prev)
}

// NextID returns the next node in the active list, nil for the tail.
func (n *Node) NextID() *uint64 {
	return fromLink(n.Next)
}

func toLink(id *uint64) uint64 {
	if id == nil {
		return 0
	}
	return *id + 1
}

func fromLink(v uint64) *uint64 {
	if v == 0 {
		return nil
	}
	id := v - 1
	return &id
}

// Group is a resource group. A node member of the group dedicates 1/PartOfNode of its
// capacity to the group.
type Group struct {
	PartOfNode uint64
	Members    []uint64
}
