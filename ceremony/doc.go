// Package ceremony drives the two operator flows of the tool.
//
// Generate creates a master key, splits it among the participating users and
// shows every user their own material on a screen of its own. Recover
// collects a quorum of encrypted shards from their holders, rebuilds the
// master key and re-issues one user's material together with a fresh copy of
// that user's shard.
//
// All interaction goes through interfaces.Console. Key handling is delegated
// to the KeySource, Splitter, Guard and Exporter ports so the flows can be
// exercised without real key material.
package ceremony
