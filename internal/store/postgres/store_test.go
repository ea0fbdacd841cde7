package postgres_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/gym-scheduler/internal/db"
	"github.com/BruksfildServices01/gym-scheduler/internal/store/notify"
	"github.com/BruksfildServices01/gym-scheduler/internal/store/postgres"
	"github.com/BruksfildServices01/gym-scheduler/internal/store/storetest"
)

func TestPostgresStore(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping postgres store tests")
	}

	gdb, err := db.NewDB(url, true)
	require.NoError(t, err)

	n, err := notify.NewPostgres(context.Background(), url)
	require.NoError(t, err)
	defer n.Close()

	storetest.Run(t, postgres.New(gdb, n))
}
