package systems

import (
	"image"
	"testing"
)

// TestDirtyRegion 测试合并、设置和清空
func TestDirtyRegion(t *testing.T) {
	var d DirtyRegion
	if !d.IsEmpty() {
		t.Fatal("zero value should be empty")
	}

	d.Union(image.Rectangle{})
	if !d.IsEmpty() {
		t.Error("union with empty rect should keep region empty")
	}

	d.Union(image.Rect(0, 0, 50, 50))
	d.Union(image.Rect(50, 0, 100, 50))
	if got, want := d.Rect(), image.Rect(0, 0, 100, 50); got != want {
		t.Errorf("Rect = %v, want %v", got, want)
	}

	d.SetIfEmpty(image.Rect(0, 0, 1, 1))
	if got, want := d.Rect(), image.Rect(0, 0, 100, 50); got != want {
		t.Errorf("SetIfEmpty changed non-empty region to %v", got)
	}

	d.Clear()
	if !d.IsEmpty() {
		t.Error("Clear should empty the region")
	}
	d.SetIfEmpty(image.Rect(1, 2, 3, 4))
	if got, want := d.Rect(), image.Rect(1, 2, 3, 4); got != want {
		t.Errorf("SetIfEmpty = %v, want %v", got, want)
	}
}
