package game

import (
	"container/heap"
	"log"
)

// TaskID 延迟任务的标识，0 表示无效任务
type TaskID uint64

// Scheduler 协作式调度器
//
// 所有"等待"（鱼钩收线前的延迟、道具持续时间、计分定时器）都通过它表达。
// 时间只在 Advance 时前进，回调在调用 Advance 的 goroutine 中同步执行，不需要加锁。
//
// 回调执行期间 Now() 返回该任务的到期时间；在 Advance 过程中新注册的任务
// 最早在下一次 Advance 时执行。
type Scheduler struct {
	now     float64
	nextID  TaskID
	nextSeq uint64
	queue   taskQueue
	tasks   map[TaskID]*scheduledTask

	advancing bool
	pending   []*scheduledTask
}

type scheduledTask struct {
	id        TaskID
	due       float64
	seq       uint64
	interval  float64 // > 0 表示周期任务
	fn        func()
	cancelled bool
	index     int
}

// NewScheduler 创建调度器，时钟从 0 开始
func NewScheduler() *Scheduler {
	return &Scheduler{
		nextID: 1,
		tasks:  make(map[TaskID]*scheduledTask),
	}
}

// Now 返回调度器当前时间（秒）
func (s *Scheduler) Now() float64 {
	return s.now
}

// After 在 delay 秒后执行一次 fn
//
// 参数：
//   - delay: 延迟（秒），负值按 0 处理
//   - fn: 回调
//
// 返回：
//   - TaskID: 可用于 Cancel 的任务标识
func (s *Scheduler) After(delay float64, fn func()) TaskID {
	if delay < 0 {
		delay = 0
	}
	return s.add(delay, 0, fn)
}

// Every 每隔 interval 秒执行一次 fn，首次执行在 interval 秒后
// interval 必须为正数，否则不注册并返回 0
func (s *Scheduler) Every(interval float64, fn func()) TaskID {
	if interval <= 0 {
		log.Printf("[Scheduler] Warning: ignoring periodic task with non-positive interval %.3f", interval)
		return 0
	}
	return s.add(interval, interval, fn)
}

// Cancel 取消任务，重复取消或取消未知任务都是空操作
func (s *Scheduler) Cancel(id TaskID) {
	t, ok := s.tasks[id]
	if !ok {
		return
	}
	t.cancelled = true
	delete(s.tasks, id)
}

// Pending 返回尚未执行（或周期性）且未取消的任务数量
func (s *Scheduler) Pending() int {
	return len(s.tasks)
}

// Advance 推进时钟 dt 秒，按（到期时间, 注册顺序）执行所有到期任务
func (s *Scheduler) Advance(dt float64) {
	if dt < 0 {
		dt = 0
	}
	target := s.now + dt

	s.advancing = true
	for s.queue.Len() > 0 {
		next := s.queue[0]
		if next.due > target {
			break
		}
		heap.Pop(&s.queue)
		if next.cancelled {
			continue
		}

		s.now = next.due
		if next.interval > 0 {
			next.due += next.interval
			next.seq = s.seq()
			heap.Push(&s.queue, next)
		} else {
			delete(s.tasks, next.id)
		}
		next.fn()
	}
	s.advancing = false
	s.now = target

	for _, t := range s.pending {
		if !t.cancelled {
			heap.Push(&s.queue, t)
		}
	}
	s.pending = s.pending[:0]
}

func (s *Scheduler) add(delay, interval float64, fn func()) TaskID {
	t := &scheduledTask{
		id:       s.nextID,
		due:      s.now + delay,
		seq:      s.seq(),
		interval: interval,
		fn:       fn,
	}
	s.nextID++
	s.tasks[t.id] = t

	if s.advancing {
		s.pending = append(s.pending, t)
	} else {
		heap.Push(&s.queue, t)
	}
	return t.id
}

func (s *Scheduler) seq() uint64 {
	s.nextSeq++
	return s.nextSeq
}

// taskQueue 按到期时间排序的最小堆，到期时间相同时按注册顺序
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
	t := x.(*scheduledTask)
	t.index = len(*q)
	*q = append(*q, t)
}

func (q *taskQueue) Pop() interface{} {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return t
}
