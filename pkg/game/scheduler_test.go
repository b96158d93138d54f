package game

import (
	"reflect"
	"testing"
)

// TestSchedulerAfterOrdering 到期任务按到期时间执行，相同到期时间按注册顺序
func TestSchedulerAfterOrdering(t *testing.T) {
	s := NewScheduler()
	var order []string

	s.After(0.3, func() { order = append(order, "c") })
	s.After(0.1, func() { order = append(order, "a") })
	s.After(0.3, func() { order = append(order, "d") })
	s.After(0.2, func() { order = append(order, "b") })

	s.Advance(0.15)
	if !reflect.DeepEqual(order, []string{"a"}) {
		t.Fatalf("after 0.15s order = %v", order)
	}

	s.Advance(1)
	want := []string{"a", "b", "c", "d"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
	if s.Pending() != 0 {
		t.Errorf("expected no pending tasks, got %d", s.Pending())
	}
	t.Logf("✓ 任务按到期时间和注册顺序执行")
}

// TestSchedulerNowDuringCallback 回调中 Now() 返回任务到期时间
func TestSchedulerNowDuringCallback(t *testing.T) {
	s := NewScheduler()
	var seen float64
	s.After(0.25, func() { seen = s.Now() })

	s.Advance(1)
	if seen != 0.25 {
		t.Errorf("Now() in callback = %v, want 0.25", seen)
	}
	if s.Now() != 1 {
		t.Errorf("Now() after advance = %v, want 1", s.Now())
	}
}

// TestSchedulerEvery 周期任务在一次大的 Advance 中多次触发
func TestSchedulerEvery(t *testing.T) {
	s := NewScheduler()
	count := 0
	id := s.Every(0.1, func() { count++ })

	for i := 0; i < 10; i++ {
		s.Advance(0.1)
	}
	if count != 10 {
		t.Errorf("count after 10 ticks = %d, want 10", count)
	}

	s.Cancel(id)
	s.Cancel(id)
	s.Advance(1)
	if count != 10 {
		t.Errorf("cancelled task should not fire, count = %d", count)
	}

	if s.Every(0, func() {}) != 0 {
		t.Error("non-positive interval should be rejected")
	}
}

// TestSchedulerCancelBeforeDue 取消后不再执行
func TestSchedulerCancelBeforeDue(t *testing.T) {
	s := NewScheduler()
	fired := false
	id := s.After(0.5, func() { fired = true })
	s.Cancel(id)
	s.Cancel(TaskID(999))

	s.Advance(1)
	if fired {
		t.Error("cancelled task fired")
	}
}

// TestSchedulerNestedScheduling 回调中注册的零延迟任务在下一次 Advance 执行
func TestSchedulerNestedScheduling(t *testing.T) {
	s := NewScheduler()
	var order []string

	s.After(0.1, func() {
		order = append(order, "outer")
		s.After(0, func() { order = append(order, "inner") })
	})

	s.Advance(0.2)
	if !reflect.DeepEqual(order, []string{"outer"}) {
		t.Fatalf("inner task should wait for next advance, got %v", order)
	}

	s.Advance(0)
	if !reflect.DeepEqual(order, []string{"outer", "inner"}) {
		t.Errorf("order = %v", order)
	}
}

// TestSchedulerSelfCancel 周期任务可以在回调中取消自己
func TestSchedulerSelfCancel(t *testing.T) {
	s := NewScheduler()
	count := 0
	var id TaskID
	id = s.Every(0.1, func() {
		count++
		if count == 3 {
			s.Cancel(id)
		}
	})

	s.Advance(2)
	if count != 3 {
		t.Errorf("count = %d, want 3", count)
	}
}
