// Package accesspolicy implements role-scoped visibility and mutation rules
// for the campaign evidence workflow.
//
// Layering:
// - domain/entities: the Principal value and the closed role set
// - domain/services: pure decision functions, one per guarded action
// - domain/errors: the permission-denied failure mode
//
// Boundary notes:
// - This module holds no state and owns no adapters; every decision is a
//   pure function over the principal and scalar resource attributes.
// - Callers check a decision strictly before any write. A false decision
//   maps to errors.Denied with the attempted action and resource id.
package accesspolicy
