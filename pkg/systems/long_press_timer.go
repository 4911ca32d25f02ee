package systems

import (
	"time"

	"github.com/decker502/softkeyboard/pkg/utils"
)

// 长按计时
const (
	// LongPressTimeout 首次触发长按的时长
	LongPressTimeout = 500 * time.Millisecond
	// LongPressRepeatTimeout 长按重复触发的间隔
	LongPressRepeatTimeout = 100 * time.Millisecond
)

// LongPressTimer 长按计时器
//
// 首次在 LongPressTimeout 后触发，处理函数返回 true 时每隔 LongPressRepeatTimeout 重复触发。
// 同一时刻只有一个待触发的计时。
type LongPressTimer struct {
	scheduler *utils.Scheduler
	task      utils.TaskID
	responses int

	// OnLongPress 长按触发，repeatCount 从 1 开始；返回是否继续重复
	OnLongPress func(repeatCount int) bool
}

// NewLongPressTimer 创建长按计时器
func NewLongPressTimer(scheduler *utils.Scheduler, onLongPress func(repeatCount int) bool) *LongPressTimer {
	return &LongPressTimer{
		scheduler:   scheduler,
		OnLongPress: onLongPress,
	}
}

// StartTimer 开始计时，之前的计时被取消
func (t *LongPressTimer) StartTimer() {
	t.RemoveTimer()
	t.responses = 0
	t.task = t.scheduler.Schedule(LongPressTimeout, t.fire)
}

// RemoveTimer 取消计时，可重复调用
func (t *LongPressTimer) RemoveTimer() {
	if t.task != 0 {
		t.scheduler.Cancel(t.task)
		t.task = 0
	}
}

// IsPending 是否有待触发的计时
func (t *LongPressTimer) IsPending() bool {
	return t.task != 0 && t.scheduler.IsPending(t.task)
}

// ResponseTimes 本次按下已触发的次数
func (t *LongPressTimer) ResponseTimes() int {
	return t.responses
}

func (t *LongPressTimer) fire() {
	t.task = 0
	t.responses++
	if t.OnLongPress == nil {
		return
	}
	if t.OnLongPress(t.responses) {
		t.task = t.scheduler.Schedule(LongPressRepeatTimeout, t.fire)
	}
}
