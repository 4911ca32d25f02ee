// Package data 嵌入默认的软键盘布局与环境配置
//
// //go:embed 只能嵌入当前包目录及其子目录的文件，因此声明放在 data/ 目录下，
// 由 pkg/embedded 统一对外提供访问。
package data

import "embed"

//go:embed skb
var FS embed.FS
