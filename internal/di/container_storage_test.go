package di

import (
	"context"
	"database/sql"
	"testing"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	_ "github.com/mattn/go-sqlite3"

	"github.com/goliatone/go-blog/internal/store"
)

func newContainerBunDB(t *testing.T) *bun.DB {
	t.Helper()

	sqlDB, err := sql.Open("sqlite3", "file:di_test?mode=memory&cache=shared&_fk=1")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db := bun.NewDB(sqlDB, sqlitedialect.New())
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	if _, err := db.NewDropTable().Model((*store.Article)(nil)).IfExists().Exec(ctx); err != nil {
		t.Fatalf("drop table: %v", err)
	}
	if _, err := db.NewCreateTable().Model((*store.Article)(nil)).IfNotExists().Exec(ctx); err != nil {
		t.Fatalf("create table: %v", err)
	}
	return db
}

func TestNewContainerBunStorage(t *testing.T) {
	cfg := testConfig()
	cfg.Storage.Provider = "bun"

	container, err := NewContainer(cfg,
		WithContentFS(testContentFS()),
		WithBunDB(newContainerBunDB(t)))
	if err != nil {
		t.Fatalf("new container: %v", err)
	}

	ctx := context.Background()
	if err := container.Store().Reload(ctx); err != nil {
		t.Fatalf("reload: %v", err)
	}
	doc, err := container.Store().Get(ctx, "hello-world")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if doc.Metadata.Title != "Hello World" {
		t.Fatalf("unexpected title %q", doc.Metadata.Title)
	}
}

func TestNewContainerBunStorageWithoutCache(t *testing.T) {
	cfg := testConfig()
	cfg.Storage.Provider = "bun"
	cfg.Cache.Enabled = false

	container, err := NewContainer(cfg,
		WithContentFS(testContentFS()),
		WithBunDB(newContainerBunDB(t)))
	if err != nil {
		t.Fatalf("new container: %v", err)
	}
	if container.CacheService() != nil {
		t.Fatal("expected no cache service when cache is disabled")
	}

	ctx := context.Background()
	if err := container.Store().Reload(ctx); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if _, err := container.Store().Get(ctx, "hello-world"); err != nil {
		t.Fatalf("get: %v", err)
	}
}
