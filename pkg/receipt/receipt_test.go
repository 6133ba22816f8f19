package receipt

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var receiptPattern = regexp.MustCompile(`^[a-z]+_\d{13}_[a-zA-Z0-9]{6}$`)

func TestNewFormat(t *testing.T) {
	for _, prefix := range []string{"evt", "crs", "cmp"} {
		id := New(prefix)
		assert.True(t, receiptPattern.MatchString(id), "unexpected receipt format: %s", id)
		assert.True(t, strings.HasPrefix(id, prefix+"_"))
	}
}

func TestNewUnique(t *testing.T) {
	seen := make(map[string]struct{}, 10000)
	for i := 0; i < 10000; i++ {
		id := New("evt")
		_, dup := seen[id]
		require.False(t, dup, "duplicate receipt id: %s", id)
		seen[id] = struct{}{}
	}
}
