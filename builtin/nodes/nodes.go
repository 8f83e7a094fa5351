// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package nodes registers validators, their nodes and the resource groups nodes serve.
package nodes

import (
	"github.com/pkg/errors"

	"github.com/vechain/econ/builtin/reverts"
	"github.com/vechain/econ/builtin/solidity"
	"github.com/vechain/econ/econ"
	"github.com/vechain/econ/log"
	"github.com/vechain/econ/state"
)

var (
	logger = log.WithContext("pkg", "nodes")

	slotValidators       = econ.BytesToBytes32([]byte("validators"))
	slotValidatorCounter = econ.BytesToBytes32([]byte("validators-counter"))
	slotNodes            = econ.BytesToBytes32([]byte("nodes"))
	slotNodeCounter      = econ.BytesToBytes32([]byte("nodes-counter"))
	slotGroups           = econ.BytesToBytes32([]byte("groups"))
	slotGroupCounter     = econ.BytesToBytes32([]byte("groups-counter"))
)

func SetLogger(l log.Logger) {
	logger = l
}

// Roles is the admin check consumed by privileged operations.
type Roles interface {
	IsAdmin(addr econ.Address) (bool, error)
	IsOwner(addr econ.Address) (bool, error)
}

// Nodes binder of the nodes contract.
type Nodes struct {
	sctx  *solidity.Context
	roles Roles

	validators       *solidity.Mapping[solidity.Uint64, *Validator]
	validatorCounter *solidity.Raw[uint64]
	nodes            *solidity.Mapping[solidity.Uint64, *Node]
	nodeCounter      *solidity.Raw[uint64]
	groups           *solidity.Mapping[solidity.Uint64, *Group]
	groupCounter     *solidity.Raw[uint64]
	active           *activeList
}

func New(addr econ.Address, state *state.State, roles Roles) *Nodes {
	sctx := solidity.NewContext(addr, state)
	nodes := solidity.NewMapping[solidity.Uint64, *Node](sctx, slotNodes)
	return &Nodes{
		sctx:             sctx,
		roles:            roles,
		validators:       solidity.NewMapping[solidity.Uint64, *Validator](sctx, slotValidators),
		validatorCounter: solidity.NewRaw[uint64](sctx, slotValidatorCounter),
		nodes:            nodes,
		nodeCounter:      solidity.NewRaw[uint64](sctx, slotNodeCounter),
		groups:           solidity.NewMapping[solidity.Uint64, *Group](sctx, slotGroups),
		groupCounter:     solidity.NewRaw[uint64](sctx, slotGroupCounter),
		active:           newActiveList(sctx, nodes),
	}
}

func (n *Nodes) requireAdmin(caller econ.Address) error {
	admin, err := n.roles.IsAdmin(caller)
	if err != nil {
		return err
	}
	if admin {
		return nil
	}
	owner, err := n.roles.IsOwner(caller)
	if err != nil {
		return err
	}
	if !owner {
		return reverts.New(reverts.Unauthorized, "Caller is not an admin")
	}
	return nil
}

//
// Getters - no state change
//

// Validator returns the validator, nil if unknown.
func (n *Nodes) Validator(validatorID uint64) (*Validator, error) {
	v, err := n.validators.Get(solidity.Uint64(validatorID))
	if err != nil {
		return nil, errors.Wrap(err, "failed to get validator")
	}
	if v.IsEmpty() {
		return nil, nil
	}
	return v, nil
}

func (n *Nodes) existingValidator(validatorID uint64) (*Validator, error) {
	v, err := n.Validator(validatorID)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, reverts.Newf(reverts.NotFound, "validator %d", validatorID)
	}
	return v, nil
}

// Node returns the node, nil if unknown.
func (n *Nodes) Node(nodeID uint64) (*Node, error) {
	node, err := n.nodes.Get(solidity.Uint64(nodeID))
	if err != nil {
		return nil, errors.Wrap(err, "failed to get node")
	}
	if node.IsEmpty() {
		return nil, nil
	}
	return node, nil
}

func (n *Nodes) existingNode(nodeID uint64) (*Node, error) {
	node, err := n.Node(nodeID)
	if err != nil {
		return nil, err
	}
	if node == nil {
		return nil, reverts.Newf(reverts.NotFound, "node %d", nodeID)
	}
	return node, nil
}

// Group returns the resource group, nil if unknown.
func (n *Nodes) Group(groupID uint64) (*Group, error) {
	g, err := n.groups.Get(solidity.Uint64(groupID))
	if err != nil {
		return nil, errors.Wrap(err, "failed to get group")
	}
	if g.PartOfNode == 0 && len(g.Members) == 0 {
		return nil, nil
	}
	return g, nil
}

// ValidatorExists returns whether the validator is registered.
func (n *Nodes) ValidatorExists(validatorID uint64) (bool, error) {
	v, err := n.Validator(validatorID)
	return v != nil, err
}

// IsController returns whether addr controls the validator.
func (n *Nodes) IsController(validatorID uint64, addr econ.Address) (bool, error) {
	v, err := n.Validator(validatorID)
	if err != nil || v == nil {
		return false, err
	}
	return v.Controller == addr, nil
}

// RewardAddress returns the address receiving the validator's bounties.
func (n *Nodes) RewardAddress(validatorID uint64) (econ.Address, error) {
	v, err := n.existingValidator(validatorID)
	if err != nil {
		return econ.Address{}, err
	}
	return v.RewardAddress, nil
}

// CanMaintainNode returns whether the validator meets the requirement to run the node.
func (n *Nodes) CanMaintainNode(validatorID, nodeID uint64) (bool, error) {
	v, err := n.existingValidator(validatorID)
	if err != nil {
		return false, err
	}
	node, err := n.existingNode(nodeID)
	if err != nil {
		return false, err
	}
	return node.ValidatorID == validatorID && v.MeetsRequirement, nil
}

// ActiveNodeIDs returns the ids of non exited nodes, in creation order.
func (n *Nodes) ActiveNodeIDs() ([]uint64, error) {
	return n.active.ids()
}

// ActiveNodeCount returns the number of non exited nodes.
func (n *Nodes) ActiveNodeCount() (uint64, error) {
	return n.active.len()
}

// Memberships returns the partOfNode of every group the node belongs to.
func (n *Nodes) Memberships(nodeID uint64) ([]uint64, error) {
	node, err := n.existingNode(nodeID)
	if err != nil {
		return nil, err
	}
	parts := make([]uint64, 0, len(node.Groups))
	for _, gid := range node.Groups {
		g, err := n.Group(gid)
		if err != nil {
			return nil, err
		}
		if g != nil {
			parts = append(parts, g.PartOfNode)
		}
	}
	return parts, nil
}

// IsExited returns whether the node has exited. Unknown nodes are NotFound.
func (n *Nodes) IsExited(nodeID uint64) (bool, error) {
	node, err := n.existingNode(nodeID)
	if err != nil {
		return false, err
	}
	return node.Exited, nil
}

//
// Setters - state change
//

func nextID(counter *solidity.Raw[uint64], first uint64) (uint64, error) {
	next, err := counter.Get()
	if err != nil {
		return 0, err
	}
	if next < first {
		next = first
	}
	if err := counter.Upsert(next + 1); err != nil {
		return 0, err
	}
	return next, nil
}

// RegisterValidator registers a validator controlled by controller. Validator ids start at 1.
func (n *Nodes) RegisterValidator(controller, rewardAddress econ.Address, name string) (uint64, error) {
	if controller.IsZero() {
		return 0, reverts.New(reverts.InvalidState, "zero controller")
	}
	if rewardAddress.IsZero() {
		rewardAddress = controller
	}
	var id uint64
	err := n.sctx.Atomic(func() (err error) {
		if id, err = nextID(n.validatorCounter, 1); err != nil {
			return err
		}
		return n.validators.Set(solidity.Uint64(id), &Validator{
			Name:          name,
			Controller:    controller,
			RewardAddress: rewardAddress,
		})
	})
	if err != nil {
		return 0, err
	}
	logger.Info("validator registered", "id", id, "controller", controller)
	return id, nil
}

// SetRequirementMet records whether the validator satisfies the minimum stake requirement. Admin only.
func (n *Nodes) SetRequirementMet(caller econ.Address, validatorID uint64, met bool) error {
	if err := n.requireAdmin(caller); err != nil {
		return err
	}
	v, err := n.existingValidator(validatorID)
	if err != nil {
		return err
	}
	v.MeetsRequirement = met
	if err := n.validators.Set(solidity.Uint64(validatorID), v); err != nil {
		return errors.Wrap(err, "failed to set validator")
	}
	logger.Debug("validator requirement updated", "id", validatorID, "met", met)
	return nil
}

// CreateNode registers a node for the validator controlled by caller. Node ids start at 0.
func (n *Nodes) CreateNode(caller econ.Address, validatorID uint64, now uint64) (uint64, error) {
	var id uint64
	err := n.sctx.Atomic(func() error {
		v, err := n.existingValidator(validatorID)
		if err != nil {
			return err
		}
		if v.Controller != caller {
			return reverts.New(reverts.Unauthorized, "Caller is not the validator controller")
		}
		if id, err = nextID(n.nodeCounter, 0); err != nil {
			return err
		}
		if err := n.active.add(id, &Node{ValidatorID: validatorID, Created: now}); err != nil {
			return err
		}
		v.NodeCount++
		return n.validators.Set(solidity.Uint64(validatorID), v)
	})
	if err != nil {
		logger.Debug("create node failed", "validator", validatorID, "error", err)
		return 0, err
	}
	logger.Info("node created", "id", id, "validator", validatorID)
	return id, nil
}

// ExitNode marks the node exited and removes it from the active list.
// Callable by the validator controller or an admin.
func (n *Nodes) ExitNode(caller econ.Address, nodeID uint64) error {
	err := n.sctx.Atomic(func() error {
		node, err := n.existingNode(nodeID)
		if err != nil {
			return err
		}
		controller, err := n.IsController(node.ValidatorID, caller)
		if err != nil {
			return err
		}
		if !controller {
			if err := n.requireAdmin(caller); err != nil {
				return err
			}
		}
		if node.Exited {
			return reverts.Newf(reverts.InvalidState, "node %d already exited", nodeID)
		}
		node.Exited = true
		if err := n.active.remove(nodeID, node); err != nil {
			return err
		}
		v, err := n.existingValidator(node.ValidatorID)
		if err != nil {
			return err
		}
		v.NodeCount--
		return n.validators.Set(solidity.Uint64(node.ValidatorID), v)
	})
	if err != nil {
		logger.Debug("exit node failed", "node", nodeID, "error", err)
		return err
	}
	logger.Info("node exited", "id", nodeID)
	return nil
}

// CreateGroup creates a resource group served by members. Admin only.
func (n *Nodes) CreateGroup(caller econ.Address, partOfNode uint64, members []uint64) (uint64, error) {
	if err := n.requireAdmin(caller); err != nil {
		return 0, err
	}
	var id uint64
	err := n.sctx.Atomic(func() (err error) {
		if id, err = nextID(n.groupCounter, 0); err != nil {
			return err
		}
		seen := make(map[uint64]bool, len(members))
		for _, m := range members {
			if seen[m] {
				return reverts.Newf(reverts.InvalidState, "duplicate member %d", m)
			}
			seen[m] = true
			node, err := n.existingNode(m)
			if err != nil {
				return err
			}
			if node.Exited {
				return reverts.Newf(reverts.InvalidState, "node %d exited", m)
			}
			node.Groups = append(node.Groups, id)
			if err := n.nodes.Set(solidity.Uint64(m), node); err != nil {
				return errors.Wrap(err, "failed to set node")
			}
		}
		return n.groups.Set(solidity.Uint64(id), &Group{PartOfNode: partOfNode, Members: members})
	})
	if err != nil {
		return 0, err
	}
	logger.Info("group created", "id", id, "partOfNode", partOfNode, "members", len(members))
	return id, nil
}
