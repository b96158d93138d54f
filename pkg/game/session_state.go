package game

import (
	"log"
	"math"

	"github.com/gonewx/fishy-escape/pkg/config"
)

// SessionState 单局的分数、时间与里程碑
//
// 分数由调度器上的低频定时器累加（默认 100ms 一次），与渲染帧率无关。
// SetGameActive(false) 之后分数与时间不再变化，且不可恢复。
type SessionState struct {
	cfg       config.SessionConfig
	scheduler *Scheduler
	events    *SessionEvents

	score     int
	startTime float64
	elapsed   float64 // 秒
	active    bool
	ended     bool

	reached     map[int]bool
	onMilestone func(milestone int)
	tickTask    TaskID
}

// NewSessionState 创建会话状态并在调度器上注册计分定时器
//
// 参数：
//   - cfg: 计分配置
//   - scheduler: 会话调度器（会话开始时间取 scheduler.Now()）
//   - events: 分数更新的出口，可为 nil
//
// 返回：
//   - *SessionState: 处于活动状态的会话
func NewSessionState(cfg config.SessionConfig, scheduler *Scheduler, events *SessionEvents) *SessionState {
	s := &SessionState{
		cfg:       cfg,
		scheduler: scheduler,
		events:    events,
		startTime: scheduler.Now(),
		active:    true,
		reached:   make(map[int]bool, len(cfg.Milestones)),
	}
	s.tickTask = scheduler.Every(cfg.ScoreTick, s.tick)
	return s
}

// SetMilestoneHandler 设置里程碑回调，每个里程碑每局最多触发一次
func (s *SessionState) SetMilestoneHandler(fn func(milestone int)) {
	s.onMilestone = fn
}

func (s *SessionState) tick() {
	if !s.active {
		return
	}
	s.score += s.cfg.ScorePerTick
	s.elapsed = s.scheduler.Now() - s.startTime
	s.emitScore()
}

// AddScoreBonus 直接增加分数（如吃掉障碍物的奖励）
// n <= 0 或会话已结束时忽略
func (s *SessionState) AddScoreBonus(n int) {
	if !s.active || n <= 0 {
		return
	}
	s.score += n
	log.Printf("[SessionState] bonus +%d -> %d", n, s.score)
	s.emitScore()
}

func (s *SessionState) emitScore() {
	if s.events != nil {
		s.events.EmitScoreUpdate(s.score)
	}
	s.checkMilestones()
}

// checkMilestones 触发所有已达到或越过且尚未触发的里程碑
func (s *SessionState) checkMilestones() {
	for _, m := range s.cfg.Milestones {
		if s.score < m || s.reached[m] {
			continue
		}
		s.reached[m] = true
		log.Printf("[SessionState] milestone reached: %d", m)
		if s.onMilestone != nil {
			s.onMilestone(m)
		}
	}
}

// SetGameActive 设置活动状态
//
// 传入 false 时冻结分数和时间（时间在此刻最后采样一次）并停止计分定时器；
// 一旦冻结，再传入 true 也不会恢复。
func (s *SessionState) SetGameActive(active bool) {
	if active {
		if s.ended {
			log.Printf("[SessionState] ignoring reactivation of a finished session")
		}
		return
	}
	if s.ended {
		return
	}
	s.elapsed = s.scheduler.Now() - s.startTime
	s.active = false
	s.ended = true
	s.scheduler.Cancel(s.tickTask)
	log.Printf("[SessionState] frozen at score=%d elapsed=%dms", s.score, s.ElapsedMs())
}

// Score 返回当前分数
func (s *SessionState) Score() int {
	return s.score
}

// ElapsedMs 返回存活时间（毫秒）
func (s *SessionState) ElapsedMs() int {
	return int(math.Round(s.elapsed * 1000))
}

// IsActive 返回会话是否仍在进行
func (s *SessionState) IsActive() bool {
	return s.active
}

// ReachedMilestones 返回已触发的里程碑（升序）
func (s *SessionState) ReachedMilestones() []int {
	result := make([]int, 0, len(s.reached))
	for _, m := range s.cfg.Milestones {
		if s.reached[m] {
			result = append(result, m)
		}
	}
	return result
}
