package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/mlegall/facturio-api/internal/domain/entity"
	"github.com/mlegall/facturio-api/internal/domain/enum"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupSequenceDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&entity.Sequence{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func TestNextReferenceIsGapFree(t *testing.T) {
	db := setupSequenceDB(t)
	repo := NewSequenceRepository(db)
	ctx := context.Background()
	year := time.Now().Year()

	for i := 1; i <= 3; i++ {
		ref, err := repo.NextReference(ctx, enum.DocTypeInvoice)
		if err != nil {
			t.Fatalf("NextReference: %v", err)
		}
		if want := fmt.Sprintf("FAC-%d-%04d", year, i); ref != want {
			t.Errorf("reference = %q, want %q", ref, want)
		}
	}
}

func TestNextReferencePerTypeCounters(t *testing.T) {
	db := setupSequenceDB(t)
	repo := NewSequenceRepository(db)
	ctx := context.Background()
	year := time.Now().Year()

	if _, err := repo.NextReference(ctx, enum.DocTypeInvoice); err != nil {
		t.Fatalf("NextReference: %v", err)
	}
	if _, err := repo.NextReference(ctx, enum.DocTypeInvoice); err != nil {
		t.Fatalf("NextReference: %v", err)
	}

	quoteRef, err := repo.NextReference(ctx, enum.DocTypeQuote)
	if err != nil {
		t.Fatalf("NextReference: %v", err)
	}
	creditRef, err := repo.NextReference(ctx, enum.DocTypeCreditNote)
	if err != nil {
		t.Fatalf("NextReference: %v", err)
	}

	if want := fmt.Sprintf("DEV-%d-0001", year); quoteRef != want {
		t.Errorf("quote reference = %q, want %q", quoteRef, want)
	}
	if want := fmt.Sprintf("AV-%d-0001", year); creditRef != want {
		t.Errorf("credit note reference = %q, want %q", creditRef, want)
	}
}

func TestNextReferenceConcurrentCallers(t *testing.T) {
	db := setupSequenceDB(t)
	// sqlite allows a single writer; the pool serializes the upserts while
	// the callers still race for them
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to access connection pool: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	repo := NewSequenceRepository(db)
	year := time.Now().Year()

	const callers = 10
	refs := make(chan string, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ref, err := repo.NextReference(context.Background(), enum.DocTypeInvoice)
			if err != nil {
				t.Errorf("NextReference: %v", err)
				return
			}
			refs <- ref
		}()
	}
	wg.Wait()
	close(refs)

	seen := make(map[string]bool)
	for ref := range refs {
		if seen[ref] {
			t.Errorf("reference %q issued twice", ref)
		}
		seen[ref] = true
	}
	for i := 1; i <= callers; i++ {
		want := fmt.Sprintf("FAC-%d-%04d", year, i)
		if !seen[want] {
			t.Errorf("reference %q was never issued", want)
		}
	}
}

func TestNextReferenceRejectsUnknownType(t *testing.T) {
	db := setupSequenceDB(t)
	repo := NewSequenceRepository(db)

	if _, err := repo.NextReference(context.Background(), "RECEIPT"); err == nil {
		t.Error("expected an error for an unknown document type")
	}
}
