package game

import "testing"

// TestFontCacheFace 测试按字号缓存
func TestFontCacheFace(t *testing.T) {
	fc, err := NewFontCache()
	if err != nil {
		t.Fatalf("NewFontCache() error: %v", err)
	}

	a := fc.Face(18)
	b := fc.Face(18.1)
	if a != b {
		t.Error("sizes rounding to the same half point should share a face")
	}
	if a.Size != 18 {
		t.Errorf("Size = %v, want 18", a.Size)
	}

	fc.Face(24)
	if fc.Len() != 2 {
		t.Errorf("Len() = %d, want 2", fc.Len())
	}

	if got := fc.Face(0).Size; got != 1 {
		t.Errorf("Face(0).Size = %v, want 1", got)
	}
}

// TestFontCacheBadData 测试无效字体数据
func TestFontCacheBadData(t *testing.T) {
	if _, err := NewFontCacheFromTTF([]byte("not a font")); err == nil {
		t.Error("expected error for invalid font data")
	}
}
