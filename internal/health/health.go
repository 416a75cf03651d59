package health

import (
	"context"
	"encoding/json"
	"io"
	"sort"
	"sync"
	"time"
)

// Status представляет статус компонента
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusUnhealthy Status = "unhealthy"
	StatusDegraded  Status = "degraded"
)

// DefaultCheckTimeout ограничивает одну проверку.
const DefaultCheckTimeout = 5 * time.Second

// Check представляет проверку здоровья компонента
type Check struct {
	Name       string `json:"name"`
	Status     Status `json:"status"`
	Message    string `json:"message,omitempty"`
	DurationMs int64  `json:"duration_ms"`
}

// Response представляет отчёт о состоянии
type Response struct {
	Status    Status           `json:"status"`
	Timestamp time.Time        `json:"timestamp"`
	Checks    map[string]Check `json:"checks,omitempty"`
	Version   string           `json:"version,omitempty"`
	Commit    string           `json:"commit,omitempty"`
	BuildDate string           `json:"build_date,omitempty"`
}

// Healthy сообщает, можно ли считать систему рабочей (degraded допускается).
func (r Response) Healthy() bool {
	return r.Status != StatusUnhealthy
}

// WriteJSON выводит отчёт в w с отступами.
func (r Response) WriteJSON(w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(r)
}

// Checker интерфейс для проверки здоровья компонента
type Checker interface {
	Check(ctx context.Context) Check
}

// Reporter собирает проверки компонентов в общий отчёт.
type Reporter struct {
	mu       sync.RWMutex
	checkers map[string]Checker
	version  string
	commit   string
	date     string
	timeout  time.Duration
}

// NewReporter создаёт пустой Reporter.
func NewReporter(version string) *Reporter {
	return &Reporter{
		checkers: make(map[string]Checker),
		version:  version,
		timeout:  DefaultCheckTimeout,
	}
}

// SetBuild добавляет в отчёт ревизию и дату сборки.
func (r *Reporter) SetBuild(commit, date string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commit = commit
	r.date = date
}

// RegisterChecker регистрирует проверку компонента
func (r *Reporter) RegisterChecker(name string, checker Checker) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.checkers[name] = checker
}

// Names возвращает имена зарегистрированных проверок по алфавиту.
func (r *Reporter) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.checkers))
	for name := range r.checkers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Report выполняет все проверки и вычисляет общий статус.
func (r *Reporter) Report(ctx context.Context) Response {
	r.mu.RLock()
	checkers := make(map[string]Checker, len(r.checkers))
	for k, v := range r.checkers {
		checkers[k] = v
	}
	commit, date := r.commit, r.date
	r.mu.RUnlock()

	checks := make(map[string]Check, len(checkers))
	overallStatus := StatusHealthy

	for name, checker := range checkers {
		checkCtx, cancel := context.WithTimeout(ctx, r.timeout)
		check := checker.Check(checkCtx)
		cancel()
		checks[name] = check

		if check.Status == StatusUnhealthy {
			overallStatus = StatusUnhealthy
		} else if check.Status == StatusDegraded && overallStatus == StatusHealthy {
			overallStatus = StatusDegraded
		}
	}

	return Response{
		Status:    overallStatus,
		Timestamp: time.Now().UTC(),
		Checks:    checks,
		Version:   r.version,
		Commit:    commit,
		BuildDate: date,
	}
}

// SimpleChecker простая проверка с функцией
type SimpleChecker struct {
	name     string
	checkFn  func(ctx context.Context) error
	optional bool
}

// NewSimpleChecker создаёт проверку, ошибка которой делает систему unhealthy.
func NewSimpleChecker(name string, checkFn func(ctx context.Context) error) *SimpleChecker {
	return &SimpleChecker{
		name:    name,
		checkFn: checkFn,
	}
}

// NewOptionalChecker создаёт проверку необязательного компонента: ошибка даёт degraded.
func NewOptionalChecker(name string, checkFn func(ctx context.Context) error) *SimpleChecker {
	return &SimpleChecker{
		name:     name,
		checkFn:  checkFn,
		optional: true,
	}
}

// Check выполняет проверку
func (c *SimpleChecker) Check(ctx context.Context) Check {
	start := time.Now()
	err := c.checkFn(ctx)
	duration := time.Since(start)

	if err != nil {
		status := StatusUnhealthy
		if c.optional {
			status = StatusDegraded
		}
		return Check{
			Name:       c.name,
			Status:     status,
			Message:    err.Error(),
			DurationMs: duration.Milliseconds(),
		}
	}

	return Check{
		Name:       c.name,
		Status:     StatusHealthy,
		DurationMs: duration.Milliseconds(),
	}
}
