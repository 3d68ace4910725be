package wol

import (
	"net"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMagicPacket(t *testing.T) {
	hw, err := net.ParseMAC("aa:bb:cc:dd:ee:ff")
	require.NoError(t, err)

	packet := MagicPacket(hw)

	require.Len(t, packet, 102)
	for i := 0; i < 6; i++ {
		assert.Equal(t, byte(0xFF), packet[i])
	}
	for rep := 0; rep < 16; rep++ {
		offset := 6 + rep*6
		assert.Equal(t, []byte(hw), packet[offset:offset+6])
	}
}

func TestWakeInvalidMAC(t *testing.T) {
	err := Wake("not-a-mac")
	assert.Error(t, err)
}

func TestFindMAC(t *testing.T) {
	const arpTable = `IP address       HW type     Flags       HW address            Mask     Device
192.168.1.1      0x1         0x2         11:22:33:44:55:66     *        eth0
192.168.1.50     0x1         0x2         aa:bb:cc:dd:ee:ff     *        eth0
192.168.1.77     0x1         0x0         00:00:00:00:00:00     *        eth0
`

	t.Run("finds the entry for an IP", func(t *testing.T) {
		mac, err := findMAC(strings.NewReader(arpTable), "192.168.1.50")
		require.NoError(t, err)
		assert.Equal(t, "aa:bb:cc:dd:ee:ff", mac)
	})

	t.Run("skips incomplete zero entries", func(t *testing.T) {
		_, err := findMAC(strings.NewReader(arpTable), "192.168.1.77")
		assert.Error(t, err)
	})

	t.Run("missing IP is an error", func(t *testing.T) {
		_, err := findMAC(strings.NewReader(arpTable), "10.0.0.1")
		assert.Error(t, err)
	})
}
