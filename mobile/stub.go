//go:build !mobile

// Package mobile 在桌面端构建时只提供占位函数
//
// 真正的绑定入口在 mobile.go，需要 -tags mobile
package mobile

// Dummy 让 ./... 在桌面端也能编译本包
func Dummy() {}
