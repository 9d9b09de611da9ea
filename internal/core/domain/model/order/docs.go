// Package order provides domain entities and business logic for order lifecycle
// management. It implements the Order aggregate root with line items, derived
// totals, and status transitions.
//
// The package includes:
//   - Order: The aggregate root that manages order identity, items, and lifecycle
//   - Item: An order line item with product, quantity, and unit price
//   - Status: A state machine that enforces valid order status transitions
//
// Key business rules:
//   - Orders must have a valid unique identifier, a customer, and at least one item
//   - Order status follows a defined workflow: Pending -> Processing -> Shipped -> Completed
//   - Orders can be cancelled only while Pending or Processing
//   - The total amount is always derived from the current items, never stored
//   - Each lifecycle transition stamps its timestamp exactly once
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
