package timer

import "fmt"

// FormatDisplay 将秒数格式化为 MM:SS
// 两位补零只是最小宽度，超过 99 分钟时分钟部分不会被截断（6000 -> "100:00"）
// 负数按 0 处理
func FormatDisplay(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
