// Package order provides domain entities and business logic for pharmacy
// delivery orders. It implements the Order aggregate root with lifecycle
// management, staff assignment state, and the status transition machine.
//
// The package includes:
//   - Order: the aggregate root holding status, assignments, line items,
//     and milestone timestamps
//   - Status: a state machine that enforces valid lifecycle transitions
//   - DeliveryType: branch_to_branch, branch_to_customer, warehouse_to_branch
//   - Item: a line item with a derived total price
//   - Customer: the delivery block required for home deliveries
//   - HistoryEntry: one append-only record per status transition
//
// Key business rules:
//   - Orders are created in the pending status and mutate only through
//     validated transitions; terminal states (delivered, cancelled, returned)
//     have no outgoing edges
//   - Exactly one of destination branch / customer block is populated,
//     selected by the delivery type, which is immutable after creation
//   - Milestone timestamps (prepared_at, picked_up_at, delivered_at) are set
//     at most once, monotonically forward
//   - Item totals are always quantity times unit price
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are
// enforced.
package order
