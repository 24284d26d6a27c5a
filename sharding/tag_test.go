package sharding

import (
	"testing"

	"github.com/ruteri/failsafe/interfaces"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseShard(t *testing.T) {
	shard, err := ParseShard("2-shard1")
	require.NoError(t, err)
	assert.Equal(t, interfaces.Shard{Threshold: 2, Payload: "shard1"}, shard)
	assert.Equal(t, "2-shard1", shard.String())

	// only the first dash separates the tag
	shard, err = ParseShard(" 3-a-b\n")
	require.NoError(t, err)
	assert.Equal(t, interfaces.Shard{Threshold: 3, Payload: "a-b"}, shard)

	for _, bad := range []string{"", "shard1", "x-shard1", "0-shard1", "2-", "-shard1", "256-shard1"} {
		_, err := ParseShard(bad)
		assert.ErrorIs(t, err, interfaces.ErrFormat, "input %q", bad)
	}
}
