// Package services provides domain services that orchestrate business
// operations across multiple domain entities in the pharmacy delivery
// system. It implements business rules that don't naturally belong to a
// single aggregate root.
//
// The package includes:
//   - TransitionPolicy: role and ownership gating for order status changes
//   - NotificationPlanner: computes the recipient fan-out for a committed
//     transition
//
// Domain services coordinate between aggregates, implementing business
// logic that spans multiple bounded contexts following Domain-Driven
// Design principles.
package services
