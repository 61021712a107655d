package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/bufgix/recipe-blog-backend/config"
	"github.com/bufgix/recipe-blog-backend/internal/app/form"
	"github.com/bufgix/recipe-blog-backend/internal/app/repository"
	"github.com/bufgix/recipe-blog-backend/internal/app/service"
	"github.com/bufgix/recipe-blog-backend/internal/db"
	"github.com/bufgix/recipe-blog-backend/pkg/redis"
)

func main() {
	// 명령줄 인자 확인
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path>")
	}

	filePath := os.Args[1]

	// 설정 로드
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// DB 연결
	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// XLSX 파일 읽기
	fmt.Printf("Reading XLSX file: %s\n", filePath)
	drafts, skipped, err := readRecipesFromXLSX(filePath)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	fmt.Printf("Total recipes to import: %d (skipped rows: %d)\n", len(drafts), skipped)

	// 사용자 확인
	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	// 서버와 같은 캐시를 써야 저장 후 목록/사이트맵 캐시가 비워진다
	cache, closeCache := openCache(&cfg.Redis)
	defer closeCache()

	recipeService := service.NewRecipeService(repository.NewRecipeRepository(db.GetDB()), cache, cfg.Redis.CacheTTL)
	imported, failed := importDrafts(context.Background(), form.NewController(recipeService, nil), drafts)

	fmt.Println("Import completed!")
	fmt.Printf("Imported: %d, failed: %d\n", imported, failed)
}

// openCache Redis가 꺼져 있거나 연결할 수 없으면 nil 캐시
func openCache(cfg *config.RedisConfig) (service.Cache, func()) {
	if !cfg.Enabled {
		return nil, func() {}
	}
	if err := redis.Init(cfg); err != nil {
		fmt.Printf("Warning: Redis unavailable, server caches will expire by TTL: %v\n", err)
		return nil, func() {}
	}
	return redis.NewCache(redis.GetClient(), redis.KeyPrefix), func() {
		if err := redis.Close(); err != nil {
			fmt.Printf("Warning: failed to close Redis: %v\n", err)
		}
	}
}

// importDrafts 한 건씩 제출하고 실패한 행은 건너뛴다
func importDrafts(ctx context.Context, ctrl *form.Controller, drafts []form.Draft) (imported, failed int) {
	for i, d := range drafts {
		start := time.Now()
		recipe, err := ctrl.Submit(ctx, d)
		if err != nil {
			fmt.Printf("  [%d] %s: failed: %v\n", i+1, d.Title, err)
			failed++
			continue
		}
		fmt.Printf("  [%d] %s -> id=%d slug=%s (%s)\n", i+1, recipe.Title, recipe.ID, recipe.Slug, time.Since(start).Round(time.Millisecond))
		imported++
	}
	return imported, failed
}
