// Package queue 固定數量 worker 的工作池，用於批次呼叫外部 API。
package queue

import (
	"context"
	"sync"
	"sync/atomic"

	"dinedecide/internal/pkg/common"

	"go.uber.org/zap"
)

// Task 單一工作
type Task func(ctx context.Context) error

// Status 工作池狀態
type Status struct {
	Pending   int `json:"pending"`
	Processed int `json:"processed"`
	Failed    int `json:"failed"`
	Workers   int `json:"workers"`
}

// Pool 工作池；同一個 Pool 可重複呼叫 Run
type Pool struct {
	workers   int
	pending   int64
	processed int64
	failed    int64
}

// NewPool 創建工作池；workers <= 0 時為 1
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	return &Pool{workers: workers}
}

type job struct {
	index int
	task  Task
}

// Run 執行所有工作並等待完成，回傳與 tasks 同順序的錯誤
// ctx 取消後尚未開始的工作不再執行，其錯誤為 ctx.Err()
func (p *Pool) Run(ctx context.Context, tasks []Task) []error {
	errs := make([]error, len(tasks))
	if len(tasks) == 0 {
		return errs
	}

	atomic.AddInt64(&p.pending, int64(len(tasks)))
	queue := make(chan job, len(tasks))
	for i, t := range tasks {
		queue <- job{index: i, task: t}
	}
	close(queue)

	workers := min(p.workers, len(tasks))
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for j := range queue {
				errs[j.index] = p.exec(ctx, j)
			}
		}()
	}
	wg.Wait()

	common.LogDebug("工作池完成",
		zap.Int("tasks", len(tasks)),
		zap.Int("workers", workers),
	)
	return errs
}

func (p *Pool) exec(ctx context.Context, j job) error {
	defer atomic.AddInt64(&p.pending, -1)

	if err := ctx.Err(); err != nil {
		atomic.AddInt64(&p.failed, 1)
		return err
	}
	err := j.task(ctx)
	if err != nil {
		atomic.AddInt64(&p.failed, 1)
	} else {
		atomic.AddInt64(&p.processed, 1)
	}
	return err
}

// GetStatus 獲取工作池狀態
func (p *Pool) GetStatus() Status {
	return Status{
		Pending:   int(atomic.LoadInt64(&p.pending)),
		Processed: int(atomic.LoadInt64(&p.processed)),
		Failed:    int(atomic.LoadInt64(&p.failed)),
		Workers:   p.workers,
	}
}
