// Package http provides HTTP handlers and middleware for the booking API.
//
// The router exposes the following endpoints:
//   - GET /events, POST /events, GET /events/{id}, PUT /events/{id},
//     DELETE /events/{id}: booking management endpoints exchanging the
//     `eventDTO` payload defined in event_handler.go. Listing supports
//     trainer, status, type, explicit range, and day/week/month filters.
//   - POST /events/recurring: expands a daily or weekly slot template into
//     individual bookings. Occupied slots fail the batch unless
//     `"skip_conflicts": true` drops them instead.
//   - PUT /events/{id}/status: advances an event through its lifecycle.
//     Administrators may pass `"override": true` to correct terminal records.
//   - GET /events/overdue: confirmed events that already ended and await
//     close-out as completed or no-show.
//   - GET /availability: read-only conflict check for a proposed trainer slot.
//   - GET /trainers, POST /trainers, GET /trainers/{id}, PUT /trainers/{id},
//     DELETE /trainers/{id}: staff directory endpoints exchanging the
//     `trainerDTO` payload defined in trainer_handler.go. Listing is available
//     to any authenticated principal while mutations require admin privileges.
//   - GET /analytics: aggregate dashboard statistics, optionally narrowed by
//     trainer or period.
//
// The caller's identity arrives via the X-User-ID and X-User-Role headers set
// by the authenticating reverse proxy; see PrincipalFromHeaders.
//
// Request/response DTOs live alongside their respective handlers so tests and
// documentation share the same ground truth.
package http
