// Package aggregates defines domain-facing aggregate contracts.
//
// These contracts intentionally avoid persistence/transport implementation
// details and represent semantic write boundaries where invariants must be
// enforced atomically: a parent row and its owned child collection are
// created or destroyed together.
package aggregates
