package systems

import (
	"container/heap"
	"math"
)

// TimerHandle 定时任务句柄，0 表示无效句柄
type TimerHandle uint64

// scheduledTask 一个等待恢复的延续
type scheduledTask struct {
	handle TimerHandle
	name   string
	due    float64 // 到期时间（调度器时钟，秒）
	seq    uint64  // 发出顺序，同一到期时间按发出顺序执行
	fn     func()
	index  int // 在堆中的位置
}

// taskQueue 按 (due, seq) 排序的最小堆
type taskQueue []*scheduledTask

func (q taskQueue) Len() int { return len(q) }

func (q taskQueue) Less(i, j int) bool {
	if q[i].due != q[j].due {
		return q[i].due < q[j].due
	}
	return q[i].seq < q[j].seq
}

func (q taskQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *taskQueue) Push(x interface{}) {
	task := x.(*scheduledTask)
	task.index = len(*q)
	*q = append(*q, task)
}

func (q *taskQueue) Pop() interface{} {
	old := *q
	n := len(old)
	task := old[n-1]
	old[n-1] = nil
	task.index = -1
	*q = old[:n-1]
	return task
}

// Scheduler 协作式计时队列
//
// 所有"等待一段时间后继续"的流程（生长步骤、可收获窗口、浇水特效、爆炸动画）
// 都注册为延续，由游戏循环每帧调用 Update 推进。
// 单线程运行，不使用锁；暂停即停止调用 Update。
type Scheduler struct {
	now     float64
	nextSeq uint64
	queue   taskQueue
	tasks   map[TimerHandle]*scheduledTask
}

// NewScheduler 创建调度器，时钟从 0 开始
func NewScheduler() *Scheduler {
	return &Scheduler{
		tasks: make(map[TimerHandle]*scheduledTask),
	}
}

// Now 返回调度器时钟（秒）
// 在延续执行期间返回该延续的到期时间
func (s *Scheduler) Now() float64 {
	return s.now
}

// After 注册一个在 delay 秒后执行的延续
// delay 为负或 NaN 时按 0 处理
//
// 参数：
//   - delay: 延迟（秒）
//   - name: 任务名称（仅用于调试）
//   - fn: 到期时执行的函数
//
// 返回：
//   - TimerHandle: 可用于 Cancel 的句柄
func (s *Scheduler) After(delay float64, name string, fn func()) TimerHandle {
	if delay < 0 || math.IsNaN(delay) {
		delay = 0
	}

	s.nextSeq++
	task := &scheduledTask{
		handle: TimerHandle(s.nextSeq),
		name:   name,
		due:    s.now + delay,
		seq:    s.nextSeq,
		fn:     fn,
	}
	heap.Push(&s.queue, task)
	s.tasks[task.handle] = task
	return task.handle
}

// Cancel 取消尚未执行的延续
//
// 返回：
//   - bool: 任务存在且被取消时返回 true
func (s *Scheduler) Cancel(handle TimerHandle) bool {
	task, ok := s.tasks[handle]
	if !ok {
		return false
	}
	delete(s.tasks, handle)
	heap.Remove(&s.queue, task.index)
	return true
}

// Pending 返回等待中的延续数量
func (s *Scheduler) Pending() int {
	return len(s.tasks)
}

// Clear 丢弃所有等待中的延续（场景销毁时使用）
func (s *Scheduler) Clear() {
	s.queue = s.queue[:0]
	s.tasks = make(map[TimerHandle]*scheduledTask)
}

// Update 推进时钟 deltaTime 秒，并按 (到期时间, 发出顺序) 执行所有到期的延续
//
// 执行延续时时钟被设置为该延续的到期时间，因此延续内注册的新延续
// 从精确的恢复时刻开始计时；若新延续在本帧内到期，也会在本帧执行。
func (s *Scheduler) Update(deltaTime float64) {
	if deltaTime < 0 || math.IsNaN(deltaTime) {
		deltaTime = 0
	}
	target := s.now + deltaTime

	for s.queue.Len() > 0 && s.queue[0].due <= target {
		task := heap.Pop(&s.queue).(*scheduledTask)
		delete(s.tasks, task.handle)
		if task.due > s.now {
			s.now = task.due
		}
		task.fn()
	}

	s.now = target
}
