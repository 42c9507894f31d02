package server

import (
	"net"
	"testing"
)

func TestListenPortFromAddr(t *testing.T) {
	if got := listenPortFromAddr(""); got != "4567" {
		t.Fatalf("expected default port 4567, got %q", got)
	}
	if got := listenPortFromAddr(":9000"); got != "9000" {
		t.Fatalf("expected :9000 to parse to 9000, got %q", got)
	}
	if got := listenPortFromAddr("127.0.0.1:7777"); got != "7777" {
		t.Fatalf("expected host:port to parse port 7777, got %q", got)
	}
	if got := listenPortFromAddr("not-a-port:"); got != "" {
		t.Fatalf("expected invalid addr parse to empty, got %q", got)
	}
}

func TestFilterAdvertiseIPs(t *testing.T) {
	addrs := []net.Addr{
		nil,
		&net.IPNet{IP: net.ParseIP("127.0.0.1"), Mask: net.CIDRMask(8, 32)},
		&net.IPNet{IP: net.ParseIP("169.254.0.5"), Mask: net.CIDRMask(16, 32)},
		&net.IPNet{IP: net.ParseIP("192.168.1.10"), Mask: net.CIDRMask(24, 32)},
		&net.IPNet{IP: net.ParseIP("192.168.1.10"), Mask: net.CIDRMask(24, 32)},
		&net.IPNet{IP: net.ParseIP("fd00::1"), Mask: net.CIDRMask(64, 128)},
	}
	got := filterAdvertiseIPs(addrs)
	if len(got) != 2 {
		t.Fatalf("expected loopback/link-local/duplicates filtered to 2 IPs, got %v", got)
	}
	if got[0].To4() == nil {
		t.Fatalf("expected IPv4 sorted first, got %v", got)
	}
	if filterAdvertiseIPs(nil) != nil {
		t.Fatalf("expected nil for empty input")
	}
}

func TestStartMDNSAdvertiserDisabled(t *testing.T) {
	t.Setenv("SEQUENCESERVER_MDNS_ENABLE", "false")
	shutdown := startMDNSAdvertiser("127.0.0.1:4567")
	// Should always be callable even when mDNS is disabled.
	shutdown()

	t.Setenv("SEQUENCESERVER_MDNS_ENABLE", "true")
	// Invalid listen addr should no-op and still return callable shutdown.
	shutdown = startMDNSAdvertiser("invalid:")
	shutdown()
}
