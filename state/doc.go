// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package state manages contract storage on top of a kv store.
//
// Every contract owns a storage space addressed by 32-byte slots. Writes are
// journaled in memory and can be reverted to a checkpoint; a Stage flushes the
// accumulated changes to the backing store atomically.
package state
