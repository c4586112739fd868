package task

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/ithouph/Ejar-sub001/internal/service"
)

// CatalogTask 目录缓存预热/刷新任务
// 会话级别没有重试（加载失败的会话到销毁为止一直用兜底数据），
// 这里定期刷新进程级缓存，让"新开"的会话在数据库恢复后能拿到远程数据
type CatalogTask struct {
	catalogSvc *service.CatalogService
	Cron       *cron.Cron
}

func NewCatalogTask(catalogSvc *service.CatalogService) *CatalogTask {
	return &CatalogTask{
		catalogSvc: catalogSvc,
		Cron:       cron.New(cron.WithSeconds()), // 支持秒级控制
	}
}

// Start 启动定时任务
func (t *CatalogTask) Start() {
	// 首次执行：启动即预热
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		log.Println("[Task] 服务启动，正在预热目录缓存...")
		t.refreshJob(ctx)
	}()

	// 每 10 分钟刷新一次
	_, err := t.Cron.AddFunc("0 0/10 * * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		t.refreshJob(ctx)
	})
	if err != nil {
		log.Fatalf("无法启动目录刷新任务: %v", err)
	}

	t.Cron.Start()
	log.Println("目录刷新任务已启动 (每10分钟一次)")
}

// Stop 停止定时任务
func (t *CatalogTask) Stop() {
	if t.Cron != nil {
		t.Cron.Stop()
	}
}

func (t *CatalogTask) refreshJob(ctx context.Context) {
	bundle := t.catalogSvc.Refresh(ctx)
	if bundle.UsingFallback {
		log.Println("[Task] 目录刷新完成：远程数据仍不可用，保持兜底")
		return
	}
	log.Printf("[Task] 目录刷新完成：分类 %d 个，城市 %d 个",
		len(bundle.Categories), len(bundle.Cities))
}
