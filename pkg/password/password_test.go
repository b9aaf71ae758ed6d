package password

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndCompare(t *testing.T) {
	hash, err := Hash("Str0ng!Pass")
	require.NoError(t, err)
	require.NotEqual(t, "Str0ng!Pass", hash)

	require.NoError(t, Compare(hash, "Str0ng!Pass"))
	require.ErrorIs(t, Compare(hash, "wrong"), ErrMismatch)

	err = Compare("not-a-bcrypt-hash", "Str0ng!Pass")
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrMismatch)
}
