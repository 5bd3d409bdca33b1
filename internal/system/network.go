package system

import (
	"errors"
	"fmt"
	"net"
	"strconv"
)

var ErrNoNetwork = errors.New("no non-loopback IPv4 address")

// PrimaryIPv4 returns the first non-loopback IPv4 address of an interface
// that is up.
func PrimaryIPv4() (string, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return "", fmt.Errorf("list interfaces: %w", err)
	}
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}
		if ip := firstIPv4(addrs); ip != "" {
			return ip, nil
		}
	}
	return "", ErrNoNetwork
}

func firstIPv4(addrs []net.Addr) string {
	for _, addr := range addrs {
		ipNet, ok := addr.(*net.IPNet)
		if !ok {
			continue
		}
		if ip4 := ipNet.IP.To4(); ip4 != nil && !ip4.IsLoopback() {
			return ip4.String()
		}
	}
	return ""
}

// SiteURL builds the URL a visitor on the local network would open for a
// server listening on listenAddr.
func SiteURL(host, listenAddr string) string {
	_, port, err := net.SplitHostPort(listenAddr)
	if err != nil || port == "" || port == "80" {
		return "http://" + host
	}
	if _, err := strconv.Atoi(port); err != nil {
		return "http://" + host
	}
	return "http://" + net.JoinHostPort(host, port)
}
