package database

import (
	"context"
	"log"
	"os"
	"sejf-plikow/internal/testutil"
	"testing"
)

var testStore *Store

func TestMain(m *testing.M) {
	ctx := context.Background()

	pg, err := testutil.StartPostgres(ctx)
	if err != nil {
		log.Fatalf("failed to start test database: %s", err)
	}

	testStore = NewStore(pg.Pool)

	code := m.Run()

	if err := pg.Close(ctx); err != nil {
		log.Fatalf("failed to terminate postgres container: %s", err)
	}

	os.Exit(code)
}
