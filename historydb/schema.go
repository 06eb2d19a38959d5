// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package historydb

// create a table for position activity
const historyTableSchema = `
create table if not exists history (
	seq integer primary key autoincrement,
	principal text not null,
	kind text not null,
	blockNumber integer not null,
	amount integer not null,
	requestID text not null default '',
	stakedAfter integer not null,
	tier integer not null
);

CREATE INDEX if not exists principalBlockIndex on history(principal, blockNumber);
CREATE INDEX if not exists kindIndex on history(kind);
`

const insertHistory = "INSERT INTO history(principal, kind, blockNumber, amount, requestID, stakedAfter, tier) VALUES (?, ?, ?, ?, ?, ?, ?);"

const selectHistory = "SELECT seq, principal, kind, blockNumber, amount, requestID, stakedAfter, tier FROM history"
