// Copyright 2026 The Rai Authors
// This file is part of Rai.
//
// Rai is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Rai is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Rai. If not, see <http://www.gnu.org/licenses/>.

package ledger

import "errors"

// These are internal invariant violations (§7: store corruption is fatal),
// never part of the Code taxonomy: a Code is a legitimate outcome of a
// well-formed store, these mean the store itself is inconsistent.
var (
	errBalanceOverflow  = errors.New("ledger: balance exceeds 128-bit domain ceiling")
	errMissingRepBlock  = errors.New("ledger: account's rep_block is missing from the store")
	errRepBlockHasNoRep = errors.New("ledger: account's rep_block carries no representative field")
	errRollbackPastOpen = errors.New("ledger: rollback target not found on account's chain")
	errCascadeLimit     = errors.New("ledger: rollback cascade exceeded chain length, likely a store invariant violation")
)
