package utils

import (
	"sort"
	"time"
)

// TaskID 延迟任务 ID，0 表示无效
type TaskID uint64

type scheduledTask struct {
	id  TaskID
	due time.Duration
	fn  func()
}

// Scheduler 单线程延迟任务调度器
//
// 由游戏循环在 Update 中推进时间，到期任务在同一线程上按到期时间顺序执行
// （到期时间相同时按提交顺序）。不创建任何 goroutine。
type Scheduler struct {
	now    time.Duration
	nextID TaskID
	tasks  []*scheduledTask
}

// NewScheduler 创建调度器
func NewScheduler() *Scheduler {
	return &Scheduler{nextID: 1}
}

// Schedule 在 delay 之后执行 fn
// delay <= 0 的任务在下一次 Update 时执行
func (s *Scheduler) Schedule(delay time.Duration, fn func()) TaskID {
	if delay < 0 {
		delay = 0
	}
	id := s.nextID
	s.nextID++
	s.tasks = append(s.tasks, &scheduledTask{id: id, due: s.now + delay, fn: fn})
	return id
}

// Cancel 取消任务，任务不存在或已执行时什么也不做
// 返回任务是否确实被取消
func (s *Scheduler) Cancel(id TaskID) bool {
	for i, t := range s.tasks {
		if t.id == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return true
		}
	}
	return false
}

// IsPending 任务是否仍在等待执行
func (s *Scheduler) IsPending(id TaskID) bool {
	for _, t := range s.tasks {
		if t.id == id {
			return true
		}
	}
	return false
}

// PendingCount 等待中的任务数
func (s *Scheduler) PendingCount() int {
	return len(s.tasks)
}

// Update 按帧推进时间
// deltaTime 单位为秒，与场景 Update 的参数一致
func (s *Scheduler) Update(deltaTime float64) {
	s.Advance(time.Duration(deltaTime * float64(time.Second)))
}

// Advance 推进 d 并执行所有到期任务
//
// 任务执行过程中新提交且已到期的任务也会在本次调用中执行。
func (s *Scheduler) Advance(d time.Duration) {
	if d > 0 {
		s.now += d
	}

	for {
		due := s.popDue()
		if due == nil {
			return
		}
		due.fn()
	}
}

// Now 调度器当前时间
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// popDue 取出最早到期的任务
func (s *Scheduler) popDue() *scheduledTask {
	if len(s.tasks) == 0 {
		return nil
	}
	sort.SliceStable(s.tasks, func(i, j int) bool {
		return s.tasks[i].due < s.tasks[j].due
	})
	first := s.tasks[0]
	if first.due > s.now {
		return nil
	}
	s.tasks = s.tasks[1:]
	return first
}
