// validate_layouts 校验软键盘布局文件
//
// 用法：
//
//	go run ./cmd/validate_layouts                  # 校验内置布局
//	go run ./cmd/validate_layouts my_layout.yaml   # 校验指定文件
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/decker502/softkeyboard/data"
	"github.com/decker502/softkeyboard/pkg/components"
	"github.com/decker502/softkeyboard/pkg/config"
	"github.com/decker502/softkeyboard/pkg/embedded"
	"github.com/decker502/softkeyboard/pkg/entities"
)

func main() {
	flag.Parse()
	embedded.Init(data.FS)

	failed := 0
	builtin, builtinFailed := loadBuiltin(flag.NArg() == 0)
	failed += builtinFailed

	layouts := builtin
	if flag.NArg() > 0 {
		layouts = nil
		for _, path := range flag.Args() {
			skb, err := loadFromDisk(path)
			if !report(path, skb, err) {
				failed++
				continue
			}
			layouts = append(layouts, skb)
		}
	}

	failed += checkPopupReferences(layouts, append(builtin, layouts...))

	if failed > 0 {
		fmt.Printf("❌ 有 %d 个问题\n", failed)
		os.Exit(1)
	}
	fmt.Printf("✅ 所有布局校验通过\n")
}

// loadBuiltin 加载内置布局，verbose 为 true 时逐个输出结果
func loadBuiltin(verbose bool) ([]*components.SoftKeyboard, int) {
	paths, err := embedded.Glob("data/skb/*.yaml")
	if err != nil {
		fmt.Printf("❌ 读取内置布局列表失败: %v\n", err)
		os.Exit(1)
	}

	var layouts []*components.SoftKeyboard
	failed := 0
	for _, path := range paths {
		if strings.HasSuffix(path, "environment.yaml") {
			continue
		}
		skb, err := entities.LoadSoftKeyboard(path)
		if verbose {
			if !report(path, skb, err) {
				failed++
				continue
			}
		} else if err != nil {
			continue
		}
		layouts = append(layouts, skb)
	}
	return layouts, failed
}

func loadFromDisk(path string) (*components.SoftKeyboard, error) {
	cfg, err := config.LoadSkbLayoutConfig(path)
	if err != nil {
		return nil, err
	}
	return entities.NewSoftKeyboard(cfg)
}

func report(path string, skb *components.SoftKeyboard, err error) bool {
	if err != nil {
		fmt.Printf("❌ %s: %v\n", path, err)
		return false
	}
	fmt.Printf("✅ %s: id=%d name=%s rows=%d keys=%d\n",
		path, skb.SkbID, skb.Name, skb.RowNum(), len(skb.AllKeys()))
	return true
}

// checkPopupReferences 检查长按弹出引用的布局是否存在于 known 中
func checkPopupReferences(layouts, known []*components.SoftKeyboard) int {
	ids := make(map[int]bool, len(known))
	for _, skb := range known {
		ids[skb.SkbID] = true
	}

	missing := 0
	for _, skb := range layouts {
		for _, key := range skb.AllKeys() {
			if key.SupportsLongPressPopup() && !ids[key.PopupSkbID] {
				fmt.Printf("❌ %s: key %q references missing popup skb %d\n", skb.Name, key.Label, key.PopupSkbID)
				missing++
			}
		}
	}
	return missing
}
