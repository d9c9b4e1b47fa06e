package game

import (
	"fmt"
	"log"
	"time"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// BestTimeRecord 最佳通关记录
type BestTimeRecord struct {
	Seconds    float64   `yaml:"seconds"`    // 通关用时（秒）
	FinalScore int       `yaml:"finalScore"` // 通关分数
	RecordedAt time.Time `yaml:"recordedAt"` // 记录时间
}

// BestTimeStore 最佳通关时间存储
// 只保存用时最短的一次记录
type BestTimeStore struct {
	gdataManager *gdata.Manager // 可为 nil（降级模式，仅内存）
	best         *BestTimeRecord
	now          func() time.Time
}

const (
	recordsObject  = "records"
	bestTimeRecord = "best_time"
)

// NewBestTimeStore 创建最佳时间存储并加载已有记录
// 加载失败不是致命错误，记录警告后视为没有记录
func NewBestTimeStore(gdataManager *gdata.Manager) *BestTimeStore {
	s := &BestTimeStore{
		gdataManager: gdataManager,
		now:          time.Now,
	}
	if err := s.load(); err != nil {
		log.Printf("[BestTimeStore] Warning: Failed to load best time: %v", err)
	}
	return s
}

func (s *BestTimeStore) load() error {
	if s.gdataManager == nil || !s.gdataManager.ObjectPropExists(recordsObject, bestTimeRecord) {
		return nil
	}

	data, err := s.gdataManager.LoadObjectProp(recordsObject, bestTimeRecord)
	if err != nil {
		return fmt.Errorf("failed to load best time: %w", err)
	}

	var record BestTimeRecord
	if err := yaml.Unmarshal(data, &record); err != nil {
		return fmt.Errorf("failed to unmarshal best time: %w", err)
	}
	s.best = &record
	return nil
}

// Best 返回当前最佳记录
//
// 返回：
//   - BestTimeRecord: 最佳记录
//   - bool: 是否存在记录
func (s *BestTimeStore) Best() (BestTimeRecord, bool) {
	if s.best == nil {
		return BestTimeRecord{}, false
	}
	return *s.best, true
}

// Record 提交一次通关用时，比已有记录更快时更新并持久化
//
// 返回：
//   - bool: 是否刷新了最佳记录
//   - error: 持久化失败时返回错误（内存中的记录仍会更新）
func (s *BestTimeStore) Record(seconds float64, finalScore int) (bool, error) {
	if s.best != nil && seconds >= s.best.Seconds {
		return false, nil
	}

	s.best = &BestTimeRecord{
		Seconds:    seconds,
		FinalScore: finalScore,
		RecordedAt: s.now(),
	}
	log.Printf("[BestTimeStore] New best time: %.2fs", seconds)

	if s.gdataManager == nil {
		return true, nil
	}

	data, err := yaml.Marshal(s.best)
	if err != nil {
		return true, fmt.Errorf("failed to marshal best time: %w", err)
	}
	if err := s.gdataManager.SaveObjectProp(recordsObject, bestTimeRecord, data); err != nil {
		return true, fmt.Errorf("failed to save best time: %w", err)
	}
	return true, nil
}
