package service

import (
	"io"
	"time"

	"riskassess/models"
)

// HistoryStore 会话内评估历史，只追加，按插入顺序保存
// 每个会话独享一个实例，本身不加锁
type HistoryStore struct {
	records []models.HistoryRecord
	now     func() time.Time
}

// NewHistoryStore 创建空历史
func NewHistoryStore() *HistoryStore {
	return &HistoryStore{now: time.Now}
}

// Append 追加一条记录，填写 Seq 与 EvaluatedAt 后返回
func (s *HistoryStore) Append(rec models.HistoryRecord) models.HistoryRecord {
	rec.Seq = len(s.records) + 1
	rec.EvaluatedAt = s.now()
	rec.Advice = cloneStrings(rec.Advice)
	s.records = append(s.records, rec)
	return rec
}

// All 返回全部记录的副本，最新一条在最后
func (s *HistoryStore) All() []models.HistoryRecord {
	out := make([]models.HistoryRecord, len(s.records))
	for i, r := range s.records {
		r.Advice = cloneStrings(r.Advice)
		out[i] = r
	}
	return out
}

// Len 记录条数
func (s *HistoryStore) Len() int {
	return len(s.records)
}

// Empty 是否没有记录
func (s *HistoryStore) Empty() bool {
	return len(s.records) == 0
}

// ExportCSV 导出为 CSV，空历史只输出表头
func (s *HistoryStore) ExportCSV(w io.Writer) error {
	return WriteHistoryCSV(w, s.records)
}

// ExportExcel 导出为 xlsx
func (s *HistoryStore) ExportExcel(w io.Writer) error {
	return WriteHistoryExcel(w, s.records)
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
