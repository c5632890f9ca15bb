package activitylogs

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToInet(t *testing.T) {
	v4 := toInet("41.215.160.10")
	require.True(t, v4.Valid)
	require.Equal(t, "41.215.160.10", v4.IPNet.IP.String())
	ones, bits := v4.IPNet.Mask.Size()
	require.Equal(t, 32, ones)
	require.Equal(t, 32, bits)

	v6 := toInet("2001:db8::1")
	require.True(t, v6.Valid)
	ones, bits = v6.IPNet.Mask.Size()
	require.Equal(t, 128, ones)
	require.Equal(t, 128, bits)

	require.False(t, toInet("not-an-ip").Valid)
	require.False(t, toInet("").Valid)
}

func TestToNullInt64(t *testing.T) {
	require.False(t, toNullInt64(nil).Valid)

	// Ids past the int32 range must survive untouched.
	big := int64(1) << 40
	got := toNullInt64(&big)
	require.True(t, got.Valid)
	require.Equal(t, big, got.Int64)
}
