// Package sharding splits the serialized master key into Shamir shards.
//
// The polynomial arithmetic is delegated to github.com/hashicorp/vault/shamir.
// Shards are assigned deterministic x coordinates: participant i holds the
// share evaluated at x = i. This lets a quorum regenerate the exact share of a
// single participant (RecoverOne) without touching anyone else's.
//
// # Shard encoding
//
// A raw share is the evaluated bytes followed by its x coordinate, encoded in
// base58. Before encryption every shard is tagged with the threshold of its
// split, "<threshold>-<payload>", so shards from splits with different
// thresholds are never combined silently:
//
//	payloads, err := sharding.New().Split([]byte(serializedMaster), 2, 3)
//	tagged := interfaces.Shard{Threshold: 2, Payload: payloads[0]}.String() // "2-..."
//
// # Limits
//
// At most 255 participants (the x coordinate is one byte) and a non-empty secret.
package sharding
