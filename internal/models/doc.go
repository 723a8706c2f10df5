// Package models defines the core domain models for the utang ledger.
//
// # Models
//
//   - Setting: a key/value row (store name, password hash)
//   - Debtor: a customer with a running balance
//   - Item: one purchased line owed by a debtor
//   - Session: a server-side login session
//
// # Design Principles
//
//  1. **Derived values stay derived**: a debtor's status and total owed are computed
//     from its items on every read and never stored.
//  2. **Soft delete first**: debtors and items carry an IsDeleted flag; rows are only
//     erased by an explicit permanent delete of a trashed row.
//  3. **IDs over pointers**: items reference their debtor by DebtorID.
package models
