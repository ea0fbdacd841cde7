package mongo_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/gym-scheduler/internal/store/mongo"
	"github.com/BruksfildServices01/gym-scheduler/internal/store/notify"
	"github.com/BruksfildServices01/gym-scheduler/internal/store/storetest"
)

func TestMongoStore(t *testing.T) {
	uri := os.Getenv("TEST_MONGO_URI")
	if uri == "" {
		t.Skip("TEST_MONGO_URI not set; skipping mongo store tests")
	}

	ctx := context.Background()
	client, err := mongo.Connect(ctx, uri)
	require.NoError(t, err)
	defer client.Disconnect(ctx)

	s, err := mongo.New(ctx, client.Database("gym_test"), notify.NewLocal())
	require.NoError(t, err)

	storetest.Run(t, s)
}
