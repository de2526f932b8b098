// Package subscription resolves the authoritative standing of a tenant's
// subscription from the stored billing record and the current time.
//
// The resolver is a pure function of stored state and clock: it never
// advances a subscription itself. Billing writes records out of band; this
// package only decides, per call, whether the tenant currently has access.
//
// Two temporal rules carry most of the weight:
//
//   - A subscription is not expired at period end. A 7-day grace window
//     follows currentPeriodEnd, and expiry is declared only once that full
//     window has elapsed.
//   - PAST_DUE keeps access only while inside the grace window, even though
//     the stored status string does not change when the window closes.
//
// Records are fetched through a short-TTL read-through cache (30 seconds by
// default) so bursts of authorization checks within one request chain hit
// the store once. The derived standing itself is never cached: it is always
// recomputed against a fresh clock, so cached records cannot report a stale
// "active" past expiry.
//
// Every failure path is fail-closed. A missing record, an unreachable store
// and a malformed row all resolve to the same no-access standing; errors are
// never readable as "assume active".
package subscription
