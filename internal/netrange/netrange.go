// Package netrange parses network range expressions into host lists.
// Two forms are supported: CIDR (192.168.1.0/24) and octet spans
// (192.168.1.1-100, or the nmap style 192.6.1-8.1-50 with spans and
// comma lists in any octet).
package netrange

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/martinsuchenak/minerscan/pkg/model"
)

// Expand parses a network range expression and returns all host IPs in it.
// An empty or all-whitespace expression is rejected before format detection.
func Expand(expr string) ([]string, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, model.ErrEmptyRange
	}

	if strings.Contains(expr, "/") {
		return expandCIDR(expr)
	}
	if strings.Contains(expr, "-") {
		return expandSpans(expr)
	}

	return nil, fmt.Errorf("%w: %q: use CIDR (192.168.1.0/24) or range (192.168.1.1-100)", model.ErrInvalidRange, expr)
}

// Estimate returns the number of hosts in a range expression.
// It is a sizing hint only and returns 0 when the expression cannot be
// parsed, rather than propagating the error.
func Estimate(expr string) int {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return 0
	}

	if strings.Contains(expr, "/") {
		n, err := countCIDR(expr)
		if err != nil {
			return 0
		}
		return n
	}

	if strings.Contains(expr, "-") {
		octets, err := parseSpans(expr)
		if err != nil {
			return 0
		}
		n := 1
		for _, values := range octets {
			n *= len(values)
		}
		return n
	}

	return 0
}

// expandCIDR generates all host IPs in a CIDR range
func expandCIDR(cidr string) ([]string, error) {
	_, ipNet, err := net.ParseCIDR(cidr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrInvalidRange, err)
	}
	if ipNet.IP.To4() == nil {
		return nil, fmt.Errorf("%w: %q: only IPv4 ranges are supported", model.ErrInvalidRange, cidr)
	}

	var ips []string
	for ip := ipNet.IP.Mask(ipNet.Mask); ipNet.Contains(ip); inc(ip) {
		// Skip network and broadcast addresses for /30 and larger networks
		ones, _ := ipNet.Mask.Size()
		if ones <= 30 {
			// Skip first (network) address
			if ip.Equal(ipNet.IP) {
				continue
			}
			// Skip last (broadcast) address
			broadcast := make(net.IP, len(ipNet.IP))
			copy(broadcast, ipNet.IP)
			for i := range ipNet.Mask {
				broadcast[i] |= ^ipNet.Mask[i]
			}
			if ip.Equal(broadcast) {
				continue
			}
		}
		ips = append(ips, ip.String())
	}

	return ips, nil
}

// countCIDR returns the host count of a CIDR range without expanding it
func countCIDR(cidr string) (int, error) {
	_, ipNet, err := net.ParseCIDR(cidr)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", model.ErrInvalidRange, err)
	}
	if ipNet.IP.To4() == nil {
		return 0, fmt.Errorf("%w: %q: only IPv4 ranges are supported", model.ErrInvalidRange, cidr)
	}

	ones, bits := ipNet.Mask.Size()
	if ones > 30 {
		// /31 and /32 have no network/broadcast addresses to skip
		return 1 << (bits - ones), nil
	}
	return (1 << (bits - ones)) - 2, nil
}

// expandSpans generates all IPs described by an octet span expression.
// Each octet may be a single value, a span (1-8) or a comma list (1,5,9-12).
func expandSpans(expr string) ([]string, error) {
	octets, err := parseSpans(expr)
	if err != nil {
		return nil, err
	}

	var ips []string
	for _, a := range octets[0] {
		for _, b := range octets[1] {
			for _, c := range octets[2] {
				for _, d := range octets[3] {
					ips = append(ips, fmt.Sprintf("%d.%d.%d.%d", a, b, c, d))
				}
			}
		}
	}
	return ips, nil
}

// parseSpans parses an octet span expression into per-octet value lists
func parseSpans(expr string) ([4][]uint8, error) {
	var octets [4][]uint8

	parts := strings.Split(expr, ".")
	if len(parts) != 4 {
		return octets, fmt.Errorf("%w: %q: expected four octets", model.ErrInvalidRange, expr)
	}

	for i, part := range parts {
		values, err := parseOctet(part)
		if err != nil {
			return octets, fmt.Errorf("%w: %q: %v", model.ErrInvalidRange, expr, err)
		}
		octets[i] = values
	}

	return octets, nil
}

// parseOctet parses one octet expression ("5", "1-8" or "1,5,9-12")
func parseOctet(expr string) ([]uint8, error) {
	var values []uint8

	for _, item := range strings.Split(expr, ",") {
		if strings.Contains(item, "-") {
			bounds := strings.SplitN(item, "-", 2)
			start, err := parseOctetValue(bounds[0])
			if err != nil {
				return nil, err
			}
			end, err := parseOctetValue(bounds[1])
			if err != nil {
				return nil, err
			}
			if start > end {
				return nil, fmt.Errorf("span %s is reversed", item)
			}
			for v := int(start); v <= int(end); v++ {
				values = append(values, uint8(v))
			}
		} else {
			v, err := parseOctetValue(item)
			if err != nil {
				return nil, err
			}
			values = append(values, v)
		}
	}

	return values, nil
}

// parseOctetValue parses a single octet value in the 0-255 range
func parseOctetValue(s string) (uint8, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("octet %q is not a number", s)
	}
	if v < 0 || v > 255 {
		return 0, fmt.Errorf("octet %d is out of range", v)
	}
	return uint8(v), nil
}

// inc increments an IP address
func inc(ip net.IP) {
	for j := len(ip) - 1; j >= 0; j-- {
		ip[j]++
		if ip[j] > 0 {
			break
		}
	}
}
