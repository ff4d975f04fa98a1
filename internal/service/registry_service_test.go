package service

import (
	"errors"
	"testing"

	"llmv-go/internal/models"
	"llmv-go/internal/repository"
)

func TestEnsureSeeded(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewLlmModelRepository(db)
	svc := NewRegistryService(repo, newTestLogger())

	canonical := []string{"huggingface", "cohere", "meta", "google", "stability"}
	if err := svc.EnsureSeeded(canonical); err != nil {
		t.Fatalf("首次播种失败: %v", err)
	}

	all, err := repo.ListAll()
	if err != nil {
		t.Fatalf("查询模型列表失败: %v", err)
	}
	if len(all) != len(canonical) {
		t.Fatalf("模型数量错误: 期望%d, 实际%d", len(canonical), len(all))
	}

	// 代号按池内顺序分配
	for i, m := range all {
		if m.Name != canonical[i] {
			t.Errorf("模型顺序错误: 期望%s, 实际%s", canonical[i], m.Name)
		}
		if m.AnonName != anonNamePool[i] {
			t.Errorf("代号分配错误: 模型%s期望%s, 实际%s", m.Name, anonNamePool[i], m.AnonName)
		}
	}
}

func TestEnsureSeededIdempotent(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewLlmModelRepository(db)
	svc := NewRegistryService(repo, newTestLogger())

	canonical := []string{"huggingface", "cohere", "meta"}
	if err := svc.EnsureSeeded(canonical); err != nil {
		t.Fatalf("首次播种失败: %v", err)
	}
	if err := svc.EnsureSeeded(canonical); err != nil {
		t.Fatalf("重复播种失败: %v", err)
	}

	var count int64
	db.Model(&models.LlmModel{}).Count(&count)
	if count != 3 {
		t.Errorf("重复播种产生重复行: 期望3, 实际%d", count)
	}
}

func TestEnsureSeededAppendsNewModels(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewLlmModelRepository(db)
	svc := NewRegistryService(repo, newTestLogger())

	if err := svc.EnsureSeeded([]string{"huggingface", "cohere"}); err != nil {
		t.Fatalf("首次播种失败: %v", err)
	}

	// 配置新增一个模型, 已有模型的代号不变
	if err := svc.EnsureSeeded([]string{"huggingface", "cohere", "meta"}); err != nil {
		t.Fatalf("追加播种失败: %v", err)
	}

	all, err := repo.ListAll()
	if err != nil {
		t.Fatalf("查询模型列表失败: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("模型数量错误: 期望3, 实际%d", len(all))
	}
	if all[0].AnonName != anonNamePool[0] || all[1].AnonName != anonNamePool[1] {
		t.Errorf("已有模型的代号发生变化: %s, %s", all[0].AnonName, all[1].AnonName)
	}
	if all[2].AnonName != anonNamePool[2] {
		t.Errorf("新模型代号错误: 期望%s, 实际%s", anonNamePool[2], all[2].AnonName)
	}
}

func TestEnsureSeededPoolTooSmall(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewLlmModelRepository(db)
	svc := NewRegistryService(repo, newTestLogger())

	// 超出代号池容量
	canonical := make([]string, len(anonNamePool)+1)
	for i := range canonical {
		canonical[i] = "model-" + string(rune('a'+i))
	}

	err := svc.EnsureSeeded(canonical)
	if !errors.Is(err, ErrNamePoolTooSmall) {
		t.Fatalf("期望ErrNamePoolTooSmall, 实际: %v", err)
	}

	// 失败时不应写入任何行
	var count int64
	db.Model(&models.LlmModel{}).Count(&count)
	if count != 0 {
		t.Errorf("池不足时不应注册模型, 实际写入%d行", count)
	}
}
