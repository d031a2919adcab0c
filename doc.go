// Package lendbook implements a personal lending ledger.
//
// The book tracks three kinds of counterparties around a single settlement
// account:
//   - people who hand money to the book owner for safekeeping or investment,
//   - investments funded with that money, split between contributors,
//   - borrowers the owner lends money to.
//
// Every movement of settlement funds is recorded twice: once on the entity it
// belongs to (a person's receipts, a loan's recoveries, ...) and once as a
// signed entry on the account log. Both records share the same transaction id,
// so any operation can later be reversed exactly.
//
// The package is the engine only. The cmd package is the surface that collects
// operations and renders the book; it holds no ledger logic of its own.
package lendbook
