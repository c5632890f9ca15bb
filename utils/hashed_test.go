package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashValueRoundTrip(t *testing.T) {
	hash, err := GenerateHashValue("s3cret-passphrase")
	require.NoError(t, err)
	require.NotEqual(t, "s3cret-passphrase", hash)

	require.NoError(t, VerifyHashValue("s3cret-passphrase", hash))
	require.Error(t, VerifyHashValue("wrong-passphrase", hash))
}
