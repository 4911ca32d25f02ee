package components

// 功能键按键码
// 字符键的按键码为其字符的 Unicode 码点，功能键使用负数避免冲突
const (
	KeyCodeNone      = 0
	KeyCodeShift     = -1
	KeyCodeDelete    = -5
	KeyCodeEnter     = -4
	KeyCodeSpace     = 32
	KeyCodeSymbol    = -2 // 切换到符号/数字键盘
	KeyCodeAlphabet  = -3 // 切换回字母键盘
	KeyCodeHideInput = -7
)

// keyCodeNames YAML 中可用的功能键名称
var keyCodeNames = map[string]int{
	"SHIFT":  KeyCodeShift,
	"DELETE": KeyCodeDelete,
	"ENTER":  KeyCodeEnter,
	"SPACE":  KeyCodeSpace,
	"SYMBOL": KeyCodeSymbol,
	"ABC":    KeyCodeAlphabet,
	"HIDE":   KeyCodeHideInput,
}

// ParseKeyCode 将按键名称解析为按键码
//
// 功能键名称（SHIFT, DELETE, ...）返回对应的负数码；
// 单个字符返回其码点；无法识别时返回 KeyCodeNone。
func ParseKeyCode(name string) int {
	if code, ok := keyCodeNames[name]; ok {
		return code
	}
	runes := []rune(name)
	if len(runes) == 1 {
		return int(runes[0])
	}
	return KeyCodeNone
}

// IsFunctionKeyCode 判断是否为功能键码（非字符输入）
func IsFunctionKeyCode(code int) bool {
	return code < 0
}
