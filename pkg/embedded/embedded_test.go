package embedded

import (
	"testing"
	"testing/fstest"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"skb/qwerty.yaml": {Data: []byte("id: 1\n")},
		"skb/symbol.yaml": {Data: []byte("id: 2\n")},
	}
}

// TestIsInitialized 测试初始化状态检测
func TestIsInitialized(t *testing.T) {
	initialized = false

	if IsInitialized() {
		t.Error("Expected IsInitialized() to return false before Init()")
	}

	Init(testFS())

	if !IsInitialized() {
		t.Error("Expected IsInitialized() to return true after Init()")
	}

	initialized = false
}

// TestReadFileNotInitialized 测试未初始化时调用 ReadFile
func TestReadFileNotInitialized(t *testing.T) {
	initialized = false

	_, err := ReadFile("data/skb/qwerty.yaml")
	if err == nil {
		t.Fatal("Expected error when calling ReadFile() before Init()")
	}
	if err.Error() != "embedded package not initialized, call Init() first" {
		t.Errorf("Unexpected error message: %v", err)
	}
}

// TestReadFile 测试读取文件与路径前缀处理
func TestReadFile(t *testing.T) {
	Init(testFS())
	defer func() { initialized = false }()

	tests := []struct {
		path    string
		want    string
		wantErr bool
	}{
		{"data/skb/qwerty.yaml", "id: 1\n", false},
		{"./data/skb/symbol.yaml", "id: 2\n", false},
		{"assets/skb/qwerty.yaml", "", true},
		{"data/skb/missing.yaml", "", true},
	}

	for _, tt := range tests {
		got, err := ReadFile(tt.path)
		if (err != nil) != tt.wantErr {
			t.Errorf("ReadFile(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			continue
		}
		if string(got) != tt.want {
			t.Errorf("ReadFile(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

// TestExistsAndGlob 测试文件存在性与通配
func TestExistsAndGlob(t *testing.T) {
	Init(testFS())
	defer func() { initialized = false }()

	if !Exists("data/skb/qwerty.yaml") {
		t.Error("qwerty.yaml should exist")
	}
	if Exists("data/skb/none.yaml") {
		t.Error("none.yaml should not exist")
	}

	matches, err := Glob("data/skb/*.yaml")
	if err != nil {
		t.Fatalf("Glob failed: %v", err)
	}
	if len(matches) != 2 || matches[0] != "data/skb/qwerty.yaml" {
		t.Errorf("Glob = %v, want 2 matches starting with data/skb/qwerty.yaml", matches)
	}
}
