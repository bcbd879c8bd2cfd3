/* group_stats_test.go
 * Contains unit tests for group_stats.go functions
 */

package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestReplaceGroupStats_Success(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("successfully replaces stats snapshot", func(mt *mtest.T) {
		store := &Store{Client: mt.Client, Database: mt.DB}
		store.Collections.GroupStats = mt.Coll

		mt.AddMockResponses(mtest.CreateSuccessResponse())

		stats := GroupStats{
			GroupID:      "group1",
			TotalMatches: 3,
			PlayerStats:  map[string]*PlayerStat{"p1": {DisplayName: "Alice"}},
		}
		err := store.ReplaceGroupStats(context.Background(), stats)
		assert.NoError(t, err)
	})
}

func TestReplaceGroupStats_DatabaseError(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("returns wrapped error on write failure", func(mt *mtest.T) {
		store := &Store{Client: mt.Client, Database: mt.DB}
		store.Collections.GroupStats = mt.Coll

		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    11000,
			Message: "write failed",
		}))

		err := store.ReplaceGroupStats(context.Background(), GroupStats{GroupID: "group1"})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to replace group stats")
	})
}

func TestDeleteGroupStats_Success(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("successfully deletes stats snapshot", func(mt *mtest.T) {
		store := &Store{Client: mt.Client, Database: mt.DB}
		store.Collections.GroupStats = mt.Coll

		mt.AddMockResponses(mtest.CreateSuccessResponse())

		err := store.DeleteGroupStats(context.Background(), "group1")
		assert.NoError(t, err)
	})
}

func TestDeleteGroupStats_DatabaseError(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("returns wrapped error on delete failure", func(mt *mtest.T) {
		store := &Store{Client: mt.Client, Database: mt.DB}
		store.Collections.GroupStats = mt.Coll

		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    11000,
			Message: "delete failed",
		}))

		err := store.DeleteGroupStats(context.Background(), "group1")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to delete group stats")
	})
}
