// Package party tracks team membership for a game shard.
//
// A [Manager] owns every team record, the player-to-team index and the
// applicant queues. It is not safe for concurrent use: all calls for one
// shard are expected to come from a single goroutine (see internal/shard).
//
// Failures are returned as sentinel errors. Each sentinel carries the
// numeric result code sent to game clients; use [CodeOf] to read it.
package party
