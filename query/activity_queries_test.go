package query

import (
	"context"
	"testing"
	"time"

	"github.com/marketeye/go-credstore/pkg/types"
	"github.com/stretchr/testify/require"
)

func TestActivityFeedQuery_RequiresAccountID(t *testing.T) {
	feed := NewActivityFeedQuery(&fakeActivityRepo{})

	_, err := feed.Query(context.Background(), types.ActivityFilter{})
	require.ErrorIs(t, err, types.ErrAccountIDRequired)
}

func TestActivityFeedQuery_MissingRepository(t *testing.T) {
	feed := NewActivityFeedQuery(nil)

	_, err := feed.Query(context.Background(), types.ActivityFilter{AccountID: 1})
	require.ErrorIs(t, err, types.ErrMissingActivityRepository)
}

func TestActivityFeedQuery_DelegatesToRepository(t *testing.T) {
	at := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	repo := &fakeActivityRepo{
		page: types.ActivityPage{
			Records: []types.ActivityRecord{
				{AccountID: 1, Action: types.ActionSignup, OccurredAt: at},
			},
			Total: 1,
		},
	}
	feed := NewActivityFeedQuery(repo)

	page, err := feed.Query(context.Background(), types.ActivityFilter{AccountID: 1})
	require.NoError(t, err)
	require.Len(t, page.Records, 1)
	require.Equal(t, int64(1), repo.lastFilter.AccountID)
}

func TestActivityStatsQuery_DelegatesToRepository(t *testing.T) {
	repo := &fakeActivityRepo{
		stats: types.ActivityStats{
			Total: 3,
			ByAction: map[types.Action]int{
				types.ActionSignup: 1,
				types.ActionLogin:  2,
			},
		},
	}
	stats := NewActivityStatsQuery(repo)

	result, err := stats.Query(context.Background(), types.ActivityStatsFilter{AccountID: 1})
	require.NoError(t, err)
	require.Equal(t, 3, result.Total)
	require.Equal(t, 2, result.ByAction[types.ActionLogin])

	empty := NewActivityStatsQuery(nil)
	_, err = empty.Query(context.Background(), types.ActivityStatsFilter{})
	require.ErrorIs(t, err, types.ErrMissingActivityRepository)
}

type fakeActivityRepo struct {
	page       types.ActivityPage
	stats      types.ActivityStats
	lastFilter types.ActivityFilter
}

func (f *fakeActivityRepo) ListByAccount(_ context.Context, filter types.ActivityFilter) (types.ActivityPage, error) {
	f.lastFilter = filter
	return f.page, nil
}

func (f *fakeActivityRepo) Stats(_ context.Context, _ types.ActivityStatsFilter) (types.ActivityStats, error) {
	return f.stats, nil
}
