// Package models defines the core domain models for the chamaa ledger.
//
// # Models
//
//   - Admin: owner of one or more savings groups
//   - Group: a chamaa; holds an ordered, duplicate-free list of member IDs
//   - Member: a person who can belong to any number of groups
//   - Contribution: a single payment by a member into a group's pool
//
// # Design Principles
//
// 1. **IDs, not pointers**: relationships are ID strings, checked by the
// integrity package before anything is written.
// 2. **Server-assigned fields**: constructors take the ID and creation time
// from the caller (the ledger), never from request payloads.
// 3. **Local validation only**: constructors check presence and shape of
// fields. Cross-entity rules live in internal/integrity.
// 4. **Append-only history**: contributions are never updated or deleted;
// a group's member list only grows.
package models
