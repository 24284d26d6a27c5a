package sharding

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ruteri/failsafe/interfaces"
)

// ParseShard splits a tagged shard "<threshold>-<payload>" into its parts.
func ParseShard(tagged string) (interfaces.Shard, error) {
	prefix, payload, found := strings.Cut(strings.TrimSpace(tagged), "-")
	if !found || payload == "" {
		return interfaces.Shard{}, fmt.Errorf("%w: shard is missing its threshold tag", interfaces.ErrFormat)
	}

	threshold, err := strconv.Atoi(prefix)
	if err != nil || threshold < 1 || threshold > MaxParticipants {
		return interfaces.Shard{}, fmt.Errorf("%w: invalid shard threshold %q", interfaces.ErrFormat, prefix)
	}

	return interfaces.Shard{Threshold: threshold, Payload: payload}, nil
}
