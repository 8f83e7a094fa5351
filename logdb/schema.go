// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

const priceTableSchema = `
create table if not exists price (
	seq integer primary key autoincrement,
	time integer not null,
	oldPrice blob,
	newPrice blob
);
create index if not exists priceTimeIndex on price(time);
`

const bountyTableSchema = `
create table if not exists bounty (
	seq integer primary key autoincrement,
	time integer not null,
	nodeID integer not null,
	validatorID integer not null,
	epoch integer not null,
	amount blob,
	recipient blob(20)
);
create index if not exists bountyNodeIndex on bounty(nodeID);
create index if not exists bountyTimeIndex on bounty(time);
`

const delegationTableSchema = `
create table if not exists delegation_state (
	seq integer primary key autoincrement,
	time integer not null,
	delegationID integer not null,
	fromState integer not null,
	toState integer not null
);
create index if not exists delegationIDIndex on delegation_state(delegationID);
`
