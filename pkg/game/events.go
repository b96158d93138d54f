package game

import "log"

// GameOverEvent 游戏结束通知
type GameOverEvent struct {
	Score     int    // 最终分数
	Time      int    // 存活时间（毫秒）
	SessionID string // 会话标识
}

// SessionEvents 核心到表现层的事件出口
//
// 表现层（HUD、结算场景、事件桥）通过 OnScoreUpdate/OnGameOver 订阅，
// 返回的函数用于取消订阅。game-over 每个会话只发出一次。
type SessionEvents struct {
	nextID        int
	scoreHandlers []scoreSubscription
	overHandlers  []overSubscription
	gameOverSent  bool
}

type scoreSubscription struct {
	id int
	fn func(score int)
}

type overSubscription struct {
	id int
	fn func(GameOverEvent)
}

// NewSessionEvents 创建事件出口
func NewSessionEvents() *SessionEvents {
	return &SessionEvents{}
}

// OnScoreUpdate 订阅分数更新
//
// 返回：
//   - func(): 取消订阅，可重复调用
func (e *SessionEvents) OnScoreUpdate(fn func(score int)) func() {
	e.nextID++
	id := e.nextID
	e.scoreHandlers = append(e.scoreHandlers, scoreSubscription{id: id, fn: fn})
	return func() {
		for i, h := range e.scoreHandlers {
			if h.id == id {
				e.scoreHandlers = append(e.scoreHandlers[:i:i], e.scoreHandlers[i+1:]...)
				return
			}
		}
	}
}

// OnGameOver 订阅游戏结束
func (e *SessionEvents) OnGameOver(fn func(GameOverEvent)) func() {
	e.nextID++
	id := e.nextID
	e.overHandlers = append(e.overHandlers, overSubscription{id: id, fn: fn})
	return func() {
		for i, h := range e.overHandlers {
			if h.id == id {
				e.overHandlers = append(e.overHandlers[:i:i], e.overHandlers[i+1:]...)
				return
			}
		}
	}
}

// EmitScoreUpdate 通知所有订阅者当前分数
func (e *SessionEvents) EmitScoreUpdate(score int) {
	handlers := append([]scoreSubscription(nil), e.scoreHandlers...)
	for _, h := range handlers {
		h.fn(score)
	}
}

// EmitGameOver 通知游戏结束，重复调用被忽略
//
// 返回：
//   - bool: 本次调用是否实际发出了事件
func (e *SessionEvents) EmitGameOver(ev GameOverEvent) bool {
	if e.gameOverSent {
		return false
	}
	e.gameOverSent = true
	log.Printf("[SessionEvents] game-over: score=%d time=%dms session=%s", ev.Score, ev.Time, ev.SessionID)

	handlers := append([]overSubscription(nil), e.overHandlers...)
	for _, h := range handlers {
		h.fn(ev)
	}
	return true
}

// GameOverSent 返回 game-over 是否已发出
func (e *SessionEvents) GameOverSent() bool {
	return e.gameOverSent
}
