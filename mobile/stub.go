//go:build !mobile

// Package mobile 是 Plantation 的 gomobile 绑定入口
//
// 普通构建只编译本文件；SetGame 与嵌入资源在 mobile.go / embed.go 中，
// 需要 -tags mobile 才会参与编译。
package mobile

// Dummy 让普通构建下 go vet / go build ./... 仍能找到可编译的包
func Dummy() {}
