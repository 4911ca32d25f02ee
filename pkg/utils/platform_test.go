//go:build !mobile

package utils

import "testing"

// TestIsMobile_Desktop 测试桌面端编译时 IsMobile() 的取值
func TestIsMobile_Desktop(t *testing.T) {
	tests := []struct {
		env  string
		want bool
	}{
		{"", false},
		{"0", false},
		{"1", true},
	}

	for _, tt := range tests {
		t.Setenv("SKB_MOBILE_EMULATE", tt.env)
		if got := IsMobile(); got != tt.want {
			t.Errorf("SKB_MOBILE_EMULATE=%q: IsMobile() = %v, want %v", tt.env, got, tt.want)
		}
	}
}
