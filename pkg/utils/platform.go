//go:build !mobile

package utils

import "os"

// MobileEmulateEnv 设置为 "1" 时在桌面端模拟移动端（触摸提示）
const MobileEmulateEnv = "PLANTATION_MOBILE_EMULATE"

// IsMobile 检测当前是否在移动设备上运行
// 桌面端编译时只看环境变量
func IsMobile() bool {
	return os.Getenv(MobileEmulateEnv) == "1"
}
