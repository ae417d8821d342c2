package e2e

import (
	"context"
	"sync"
	"testing"
	"time"

	"app/internal/domain/model"
	infrarepo "app/internal/infra/repository"
	"app/internal/usecase"
)

// 在庫5に対して-3の消費を2本同時に流すと、行ロックで直列化されて
// 片方だけが成功する。負け側は残2に対する在庫不足になる。
func Test_ConcurrentConsume_OnlyOneSucceeds(t *testing.T) {
	db := openTestDB(t)
	uc := newInventoryUsecase(db)
	ctx := context.Background()

	v := seedVariant(t, db, 5)

	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Adjust(ctx, 99, usecase.AdjustStockInput{
				VariantID: v.ID,
				Delta:     -3,
				Note:      "同時消費",
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	okCount := 0
	shortCount := 0
	for err := range errs {
		if err == nil {
			okCount++
			continue
		}
		ise, ok := usecase.AsInsufficientStock(err)
		if !ok {
			t.Fatalf("unexpected error: %v", err)
		}
		shortCount++
		//負け側は勝ち側のcommit後の残量を見る
		if ise.Available != 2 || ise.Requested != 3 {
			t.Fatalf("insufficient stock detail: available=%d requested=%d", ise.Available, ise.Requested)
		}
	}

	if okCount != 1 || shortCount != 1 {
		t.Fatalf("want exactly one success and one shortage: ok=%d short=%d", okCount, shortCount)
	}

	if q := currentQuantity(t, db, v.ID); q != 2 {
		t.Fatalf("final quantity=%d want=2", q)
	}

	//成功した1回分だけがログに残る
	logs := variantLogs(t, db, v.ID)
	if len(logs) != 1 {
		t.Fatalf("log count=%d want=1", len(logs))
	}
	if logs[0].QuantityBefore != 5 || logs[0].QuantityAfter != 2 || logs[0].Delta != -3 {
		t.Fatalf("log snapshot: before=%d after=%d delta=%d", logs[0].QuantityBefore, logs[0].QuantityAfter, logs[0].Delta)
	}
}

// 台帳を先頭から再生すると現在のquantityに一致する。
// 各行のbefore/afterが連鎖していることも確認する。
func Test_LedgerReplay_MatchesCurrentQuantity(t *testing.T) {
	db := openTestDB(t)
	uc := newInventoryUsecase(db)
	ctx := context.Background()

	v := seedVariant(t, db, 0)
	start := time.Now().Add(-time.Minute)

	for _, d := range []int64{10, -3, 5, -2} {
		if _, err := uc.Adjust(ctx, 99, usecase.AdjustStockInput{
			VariantID: v.ID,
			Delta:     d,
			Note:      "再生テスト",
		}); err != nil {
			t.Fatalf("adjust delta=%d: %v", d, err)
		}
	}

	logs := variantLogs(t, db, v.ID)
	if len(logs) != 4 {
		t.Fatalf("log count=%d want=4", len(logs))
	}

	var running int64 = 0
	for _, l := range logs {
		if l.QuantityBefore != running {
			t.Fatalf("chain broken: log id=%d before=%d want=%d", l.ID, l.QuantityBefore, running)
		}
		if l.QuantityAfter != l.QuantityBefore+l.Delta {
			t.Fatalf("arithmetic broken: log id=%d before=%d delta=%d after=%d", l.ID, l.QuantityBefore, l.Delta, l.QuantityAfter)
		}
		running = l.QuantityAfter
	}

	q := currentQuantity(t, db, v.ID)
	if running != q {
		t.Fatalf("replayed=%d current=%d", running, q)
	}
	if q != 10 {
		t.Fatalf("final quantity=%d want=10", q)
	}

	//delta合計でも一致する
	sum, err := infrarepo.NewInventoryLogGormRepository(db).SumDeltaByVariant(ctx, v.ID, start)
	if err != nil {
		t.Fatalf("sum delta: %v", err)
	}
	if sum != q {
		t.Fatalf("sum=%d quantity=%d", sum, q)
	}

	//in_stockも立っている
	var p model.Product
	if err := db.First(&p, v.ProductID).Error; err != nil {
		t.Fatalf("reload product: %v", err)
	}
	if !p.InStock {
		t.Fatalf("in_stock should be true after positive balance")
	}
}
