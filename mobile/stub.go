//go:build !mobile

// Package mobile 是 ebitenmobile 绑定入口，只在 -tags mobile 时编译真实实现。
// 桌面构建只保留这个文件，使 go build ./... 不会因包内无文件而失败。
package mobile

// Dummy 桌面构建下的空导出，ebitenmobile bind 不会使用它
func Dummy() {}
