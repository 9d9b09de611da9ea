// Package services provides domain services that orchestrate business operations
// on domain entities in the orderflow system. It implements business workflows
// that don't naturally belong to a single aggregate root method.
//
// The package includes:
//   - OrderStatusTransitionService: The single entry point for order lifecycle changes
//
// Domain services keep command handlers free of state-machine knowledge,
// following Domain-Driven Design principles.
package services
