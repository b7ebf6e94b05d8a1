// Package ntptest runs a local NTP responder for tests.
package ntptest

import (
	"encoding/binary"
	"net"
	"testing"
	"time"
)

const (
	ntpEpochOffset = 2208988800 // seconds between 1900-01-01 and 1970-01-01
	packetSize     = 48
)

// NewServer answers NTP client requests on a loopback UDP port with a clock
// running offset ahead of the local one. It returns the host:port to query
// and stops when the test ends.
func NewServer(t testing.TB, offset time.Duration) string {
	t.Helper()

	conn, err := net.ListenPacket("udp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("ntptest: listen: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	go serve(conn, offset)

	return conn.LocalAddr().String()
}

func serve(conn net.PacketConn, offset time.Duration) {
	buf := make([]byte, 512)
	for {
		n, addr, err := conn.ReadFrom(buf)
		if err != nil {
			return
		}
		if n < packetSize {
			continue
		}
		rx := time.Now().Add(offset)
		_, _ = conn.WriteTo(response(buf[:packetSize], rx), addr)
	}
}

func response(req []byte, rx time.Time) []byte {
	tx := rx.Add(time.Millisecond)

	buf := make([]byte, packetSize)
	buf[0] = 0<<6 | 4<<3 | 4                         // leap none, version 4, mode server
	buf[1] = 2                                       // stratum
	buf[2] = 6                                       // poll
	buf[3] = byte(0xEC)                              // precision -20
	binary.BigEndian.PutUint32(buf[4:], 100)         // root delay
	binary.BigEndian.PutUint32(buf[8:], 200)         // root dispersion
	binary.BigEndian.PutUint32(buf[12:], 0x7F000001) // reference id 127.0.0.1
	putTimestamp(buf[16:], rx.Add(-time.Second))     // reference time
	copy(buf[24:32], req[40:48])                     // origin = client transmit
	putTimestamp(buf[32:], rx)
	putTimestamp(buf[40:], tx)
	return buf
}

func putTimestamp(b []byte, t time.Time) {
	sec := uint32(t.Unix() + ntpEpochOffset)
	frac := uint32((uint64(t.Nanosecond()) << 32) / uint64(time.Second))
	binary.BigEndian.PutUint32(b[0:], sec)
	binary.BigEndian.PutUint32(b[4:], frac)
}
