// Package campaignservice owns the campaign lifecycle: creation, mutable
// field updates, the status state machine, and contractor assignments.
//
// Layering:
// - domain: campaign/assignment entities, the transition table, errors
// - application: commands/queries using explicit ports; every operation
//   takes the acting Principal and consults the access policy before writes
// - ports: persistence boundaries with compare-and-set semantics
// - adapters: memory, postgres (gorm), and HTTP implementations
// - transport: module-private DTOs for HTTP contracts
//
// Boundary notes:
// - Keep this module self-contained under the campaign-workflow context.
// - Do not import other context adapters into domain/application; the
//   access policy is imported as a pure domain dependency only.
package campaignservice
