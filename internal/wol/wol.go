// Package wol sends Wake-on-LAN magic packets. SmartCast TVs in deep sleep
// stop servicing the REST API, so power-on fires one of these first when the
// TV's MAC address is known.
package wol

import (
	"bufio"
	"fmt"
	"io"
	"net"
	"os"
	"strings"
)

const arpTablePath = "/proc/net/arp"

// MagicPacket builds the wake frame: 6 bytes of 0xFF followed by the target
// MAC repeated 16 times
func MagicPacket(hw net.HardwareAddr) []byte {
	packet := make([]byte, 0, 6+16*len(hw))
	for i := 0; i < 6; i++ {
		packet = append(packet, 0xFF)
	}
	for i := 0; i < 16; i++ {
		packet = append(packet, hw...)
	}
	return packet
}

// Wake broadcasts a magic packet for the given MAC address
func Wake(mac string) error {
	hw, err := net.ParseMAC(mac)
	if err != nil {
		return fmt.Errorf("invalid MAC address %q: %w", mac, err)
	}

	conn, err := net.Dial("udp", "255.255.255.255:9")
	if err != nil {
		return fmt.Errorf("failed to open broadcast socket: %w", err)
	}
	defer conn.Close()

	if _, err := conn.Write(MagicPacket(hw)); err != nil {
		return fmt.Errorf("failed to send magic packet: %w", err)
	}
	return nil
}

// MACFromARP looks up the MAC address the kernel has cached for an IP. Best
// effort: the entry only exists after recent traffic to the host.
func MACFromARP(ip string) (string, error) {
	f, err := os.Open(arpTablePath)
	if err != nil {
		return "", fmt.Errorf("failed to read ARP table: %w", err)
	}
	defer f.Close()

	return findMAC(f, ip)
}

// findMAC scans /proc/net/arp formatted data for the IP's hardware address
func findMAC(r io.Reader, ip string) (string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Scan() // header line

	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 4 || fields[0] != ip {
			continue
		}
		mac := fields[3]
		if mac == "00:00:00:00:00:00" {
			continue
		}
		if _, err := net.ParseMAC(mac); err != nil {
			continue
		}
		return mac, nil
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", fmt.Errorf("no ARP entry for %s", ip)
}
