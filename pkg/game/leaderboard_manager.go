package game

import (
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// LeaderboardEntry 排行榜条目
type LeaderboardEntry struct {
	Time int    `yaml:"time"` // 存活时间（毫秒）
	Date string `yaml:"date"` // 记录日期
}

// 存储路径常量
const (
	leaderboardObject   = "leaderboard"
	leaderboardProperty = "top"

	// LeaderboardSize 排行榜保留的条目数
	LeaderboardSize = 5

	// LeaderboardDateLayout 条目日期格式
	LeaderboardDateLayout = "2006-01-02"
)

// LeaderboardManager 排行榜管理器
// 按存活时间降序保存前 LeaderboardSize 名
//
// 存储不可用时（gdataManager 为 nil 或读写失败）退化为内存排行榜，
// 不会向会话返回错误。
type LeaderboardManager struct {
	gdataManager *gdata.Manager // 可为 nil（降级模式）
	entries      []LeaderboardEntry
}

// NewLeaderboardManager 创建排行榜管理器并加载已保存的数据
//
// 参数：
//   - gdataManager: gdata 存储管理器，可为 nil（仅内存）
//
// 返回：
//   - *LeaderboardManager: 排行榜管理器实例
func NewLeaderboardManager(gdataManager *gdata.Manager) *LeaderboardManager {
	lm := &LeaderboardManager{gdataManager: gdataManager}
	if err := lm.Load(); err != nil {
		log.Printf("[LeaderboardManager] Warning: %v (starting with an empty leaderboard)", err)
	}
	return lm
}

// Load 从 gdata 加载排行榜
//
// 返回：
//   - error: 读取或反序列化失败时返回错误（排行榜被重置为空）
func (lm *LeaderboardManager) Load() error {
	lm.entries = nil
	if lm.gdataManager == nil {
		return nil
	}
	if !lm.gdataManager.ObjectPropExists(leaderboardObject, leaderboardProperty) {
		return nil
	}

	data, err := lm.gdataManager.LoadObjectProp(leaderboardObject, leaderboardProperty)
	if err != nil {
		return fmt.Errorf("failed to load leaderboard: %w", err)
	}

	var entries []LeaderboardEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("failed to unmarshal leaderboard: %w", err)
	}
	lm.entries = normalizeLeaderboard(entries)
	log.Printf("[LeaderboardManager] loaded %d entries", len(lm.entries))
	return nil
}

// Record 记录一局的存活时间
//
// 参数：
//   - timeMs: 存活时间（毫秒）
//   - date: 日期字符串
//
// 返回：
//   - int: 新条目的名次（0 为第一名），未进入排行榜返回 -1
func (lm *LeaderboardManager) Record(timeMs int, date string) int {
	// 插入到第一个更短的时间之前，时间相同时新记录排在后面
	rank := len(lm.entries)
	for i, e := range lm.entries {
		if e.Time < timeMs {
			rank = i
			break
		}
	}
	if rank >= LeaderboardSize {
		return -1
	}

	entry := LeaderboardEntry{Time: timeMs, Date: date}
	lm.entries = append(lm.entries, LeaderboardEntry{})
	copy(lm.entries[rank+1:], lm.entries[rank:])
	lm.entries[rank] = entry
	if len(lm.entries) > LeaderboardSize {
		lm.entries = lm.entries[:LeaderboardSize]
	}

	if err := lm.save(); err != nil {
		log.Printf("[LeaderboardManager] Warning: %v (kept in memory)", err)
	}
	return rank
}

// RecordNow 以当天日期记录存活时间
func (lm *LeaderboardManager) RecordNow(timeMs int) int {
	return lm.Record(timeMs, time.Now().Format(LeaderboardDateLayout))
}

// Entries 返回排行榜副本（降序）
func (lm *LeaderboardManager) Entries() []LeaderboardEntry {
	return append([]LeaderboardEntry(nil), lm.entries...)
}

// Best 返回最佳存活时间，排行榜为空时返回 0
func (lm *LeaderboardManager) Best() int {
	if len(lm.entries) == 0 {
		return 0
	}
	return lm.entries[0].Time
}

func (lm *LeaderboardManager) save() error {
	if lm.gdataManager == nil {
		return nil
	}
	data, err := yaml.Marshal(lm.entries)
	if err != nil {
		return fmt.Errorf("failed to marshal leaderboard: %w", err)
	}
	if err := lm.gdataManager.SaveObjectProp(leaderboardObject, leaderboardProperty, data); err != nil {
		return fmt.Errorf("failed to save leaderboard: %w", err)
	}
	return nil
}

// normalizeLeaderboard 按时间降序排序并截断
// 时间相同时保持原有顺序（先记录的排在前面）
func normalizeLeaderboard(entries []LeaderboardEntry) []LeaderboardEntry {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Time > entries[j].Time
	})
	if len(entries) > LeaderboardSize {
		entries = entries[:LeaderboardSize]
	}
	return entries
}
