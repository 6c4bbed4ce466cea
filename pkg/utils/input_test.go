package utils

import "testing"

// TestShouldTrigger 测试按键重复触发的时机
func TestShouldTrigger(t *testing.T) {
	var fired []int
	for d := 0; d <= KeyRepeatDelay+2*KeyRepeatInterval; d++ {
		if ShouldTrigger(d) {
			fired = append(fired, d)
		}
	}

	want := []int{1, KeyRepeatDelay, KeyRepeatDelay + KeyRepeatInterval, KeyRepeatDelay + 2*KeyRepeatInterval}
	if len(fired) != len(want) {
		t.Fatalf("fired at %v, want %v", fired, want)
	}
	for i := range want {
		if fired[i] != want[i] {
			t.Errorf("fired at %v, want %v", fired, want)
			break
		}
	}
}
