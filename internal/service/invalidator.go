package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Khursands/Online-Pharmacy/pkg/logger"
)

// KeyDeleter 缓存删除能力
type KeyDeleter interface {
	Delete(ctx context.Context, keys ...string) error
}

type invalidateJob struct {
	keys  []string
	enqAt time.Time
}

// CacheInvalidator 本地异步缓存失效执行器；写路径只入队，不等待 Redis
type CacheInvalidator struct {
	cache     KeyDeleter
	ch        chan invalidateJob
	metricsCh chan time.Duration
}

func NewCacheInvalidator(cache KeyDeleter, queueSize int) *CacheInvalidator {
	if queueSize <= 0 {
		queueSize = 1024
	}
	return &CacheInvalidator{cache: cache, ch: make(chan invalidateJob, queueSize), metricsCh: make(chan time.Duration, 4096)}
}

// Start 启动 workers 个消费者，返回的函数停止消费并排空队列
func (r *CacheInvalidator) Start(workers int) func(context.Context) error {
	if workers <= 0 {
		workers = 2
	}
	stopCh := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case job := <-r.ch:
					r.handle(job)
				case <-stopCh:
					for {
						select {
						case job := <-r.ch:
							r.handle(job)
						default:
							return
						}
					}
				}
			}
		}()
	}
	return func(ctx context.Context) error {
		close(stopCh)
		done := make(chan struct{})
		go func() {
			wg.Wait()
			close(done)
		}()
		select {
		case <-done:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (r *CacheInvalidator) handle(job invalidateJob) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := r.cache.Delete(ctx, job.keys...); err != nil {
		logger.Warn("cache invalidation failed", zap.Strings("keys", job.keys), zap.Error(err))
	}
	select {
	case r.metricsCh <- time.Since(job.enqAt):
	default:
	}
}

// Enqueue 非阻塞入队；队列满时丢弃并告警，依赖 TTL 兜底
func (r *CacheInvalidator) Enqueue(keys ...string) {
	if r == nil || len(keys) == 0 {
		return
	}
	select {
	case r.ch <- invalidateJob{keys: keys, enqAt: time.Now()}:
	default:
		logger.Warn("invalidation queue full, drop", zap.Strings("keys", keys))
	}
}

// Metrics 返回失效落地耗时的只读通道（每处理一条发送一次 duration）。
func (r *CacheInvalidator) Metrics() <-chan time.Duration { return r.metricsCh }

// QueueLen 返回当前队列长度（采样值）。
func (r *CacheInvalidator) QueueLen() int { return len(r.ch) }
