package analyzer

import (
	"encoding/json"
	"fmt"
	"io"
)

// LHR - та часть отчета Lighthouse, которая нужна для проверки порогов
type LHR struct {
	Categories   Categories       `json:"categories"`
	Audits       map[string]Audit `json:"audits"`
	RuntimeError *RuntimeError    `json:"runtimeError,omitempty"`
}

// RuntimeError - Lighthouse не смог загрузить страницу; метрики в таком отчете пустые
type RuntimeError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("lighthouse runtime error %s: %s", e.Code, e.Message)
}

// Categories - категории отчета; запрашивается только performance
type Categories struct {
	Performance *Category `json:"performance,omitempty"`
}

// Category - оценка категории в диапазоне 0..1, null если Lighthouse не смог ее посчитать
type Category struct {
	Score *float64 `json:"score"`
}

// Audit - один аудит отчета
type Audit struct {
	NumericValue *float64 `json:"numericValue,omitempty"`
}

// DecodeLHR - читает JSON-отчет Lighthouse
func DecodeLHR(r io.Reader) (*LHR, error) {
	var lhr LHR
	if err := json.NewDecoder(r).Decode(&lhr); err != nil {
		return nil, fmt.Errorf("failed to decode lighthouse report: %w", err)
	}
	return &lhr, nil
}

// PerformanceScore - оценка производительности в процентах, 0 при отсутствии
func (l *LHR) PerformanceScore() int {
	if l == nil || l.Categories.Performance == nil || l.Categories.Performance.Score == nil {
		return 0
	}
	return int(roundHalfUp(*l.Categories.Performance.Score * 100))
}

func (l *LHR) numericValue(auditID string) float64 {
	if l == nil {
		return 0
	}
	a, ok := l.Audits[auditID]
	if !ok || a.NumericValue == nil {
		return 0
	}
	return *a.NumericValue
}
