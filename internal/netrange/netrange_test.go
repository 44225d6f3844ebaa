package netrange

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"pgregory.net/rapid"

	"github.com/martinsuchenak/minerscan/pkg/model"
)

func TestExpand(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want []string
	}{
		{
			name: "CIDR /30 skips network and broadcast",
			expr: "10.0.0.0/30",
			want: []string{"10.0.0.1", "10.0.0.2"},
		},
		{
			name: "CIDR /31 keeps both addresses",
			expr: "192.168.1.0/31",
			want: []string{"192.168.1.0", "192.168.1.1"},
		},
		{
			name: "CIDR /32 is a single host",
			expr: "192.168.1.5/32",
			want: []string{"192.168.1.5"},
		},
		{
			name: "last octet range",
			expr: "192.168.1.1-3",
			want: []string{"192.168.1.1", "192.168.1.2", "192.168.1.3"},
		},
		{
			name: "leading whitespace is trimmed",
			expr: "  192.168.1.5/32 ",
			want: []string{"192.168.1.5"},
		},
		{
			name: "nmap style span in middle octet",
			expr: "192.6.1-2.1-3",
			want: []string{
				"192.6.1.1", "192.6.1.2", "192.6.1.3",
				"192.6.2.1", "192.6.2.2", "192.6.2.3",
			},
		},
		{
			name: "comma list in last octet",
			expr: "10.0.0.1,3-4",
			want: []string{"10.0.0.1", "10.0.0.3", "10.0.0.4"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Expand(tt.expr)
			if err != nil {
				t.Fatalf("Expand(%q) error = %v", tt.expr, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Expand(%q) = %v, want %v", tt.expr, got, tt.want)
			}
		})
	}
}

func TestExpandErrors(t *testing.T) {
	tests := []struct {
		name    string
		expr    string
		wantErr error
	}{
		{"empty string", "", model.ErrEmptyRange},
		{"whitespace only", "   ", model.ErrEmptyRange},
		{"no recognizable format", "not a range", model.ErrInvalidRange},
		{"bare hyphen word", "not-a-range", model.ErrInvalidRange},
		{"three octets", "10.0.0/24x", model.ErrInvalidRange},
		{"bad prefix length", "10.0.0.0/33", model.ErrInvalidRange},
		{"IPv6 is not supported", "2001:db8::/64", model.ErrInvalidRange},
		{"octet above 255", "10.0.0.250-300", model.ErrInvalidRange},
		{"reversed span", "10.0.0.5-2", model.ErrInvalidRange},
		{"non-numeric octet", "10.0.x.1-5", model.ErrInvalidRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Expand(tt.expr)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expand(%q) error = %v, want %v", tt.expr, err, tt.wantErr)
			}
		})
	}
}

func TestEstimate(t *testing.T) {
	tests := []struct {
		expr string
		want int
	}{
		{"10.0.0.0/30", 2},
		{"10.0.0.0/24", 254},
		{"10.0.0.0/8", 16777214}, // counted arithmetically, not expanded
		{"192.168.1.0/31", 2},
		{"192.168.1.5/32", 1},
		{"192.168.1.1-100", 100},
		{"192.6.1-8.1-50", 400},
		{"", 0},
		{"garbage", 0},
		{"10.0.0.5-2", 0},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			if got := Estimate(tt.expr); got != tt.want {
				t.Errorf("Estimate(%q) = %d, want %d", tt.expr, got, tt.want)
			}
		})
	}
}

func TestEstimateMatchesExpand(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var expr string
		if rapid.Bool().Draw(t, "cidr") {
			ones := rapid.IntRange(22, 32).Draw(t, "ones")
			expr = fmt.Sprintf("%d.%d.%d.%d/%d",
				rapid.IntRange(1, 254).Draw(t, "a"),
				rapid.IntRange(0, 255).Draw(t, "b"),
				rapid.IntRange(0, 255).Draw(t, "c"),
				rapid.IntRange(0, 255).Draw(t, "d"),
				ones)
		} else {
			start := rapid.IntRange(0, 255).Draw(t, "start")
			end := rapid.IntRange(start, 255).Draw(t, "end")
			expr = fmt.Sprintf("%d.%d.%d.%d-%d",
				rapid.IntRange(1, 254).Draw(t, "a"),
				rapid.IntRange(0, 255).Draw(t, "b"),
				rapid.IntRange(0, 255).Draw(t, "c"),
				start, end)
		}

		ips, err := Expand(expr)
		if err != nil {
			t.Fatalf("Expand(%q) error = %v", expr, err)
		}
		if got := Estimate(expr); got != len(ips) {
			t.Errorf("Estimate(%q) = %d, but Expand returned %d hosts", expr, got, len(ips))
		}

		seen := make(map[string]bool, len(ips))
		for _, ip := range ips {
			if seen[ip] {
				t.Errorf("Expand(%q) returned duplicate host %s", expr, ip)
			}
			seen[ip] = true
		}
	})
}
