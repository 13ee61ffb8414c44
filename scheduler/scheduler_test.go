package scheduler

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mww/dreamsquad/controller/mockcontroller"
	"github.com/mww/dreamsquad/model"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestScheduler_runsJobs(t *testing.T) {
	var syncs, updates atomic.Int32

	ctrl := &mockcontroller.C{}
	ctrl.On("SyncPlayers", mock.Anything).
		Run(func(mock.Arguments) { syncs.Add(1) }).
		Return(&model.SyncResult{}, nil)
	ctrl.On("ApplyScoreUpdate", mock.Anything).
		Run(func(mock.Arguments) { updates.Add(1) }).
		Return(&model.ScoreUpdate{Matchday: 1}, nil)

	s, err := New(ctrl, 50*time.Millisecond, 20*time.Millisecond)
	require.NoError(t, err)
	require.NoError(t, s.Start())
	defer s.Stop()

	require.Eventually(t, func() bool {
		return syncs.Load() >= 2 && updates.Load() >= 2
	}, 5*time.Second, 10*time.Millisecond)
}

func TestScheduler_zeroIntervalDisablesJob(t *testing.T) {
	var syncs atomic.Int32

	ctrl := &mockcontroller.C{}
	ctrl.On("SyncPlayers", mock.Anything).
		Run(func(mock.Arguments) { syncs.Add(1) }).
		Return(nil, errors.New("feed down"))

	s, err := New(ctrl, time.Hour, 0)
	require.NoError(t, err)
	require.NoError(t, s.Start())

	// The sync starts immediately even though its interval is long.
	require.Eventually(t, func() bool { return syncs.Load() == 1 }, 5*time.Second, 10*time.Millisecond)
	require.NoError(t, s.Stop())

	ctrl.AssertNotCalled(t, "ApplyScoreUpdate", mock.Anything)
}

func TestScheduler_nothingScheduled(t *testing.T) {
	ctrl := &mockcontroller.C{}

	s, err := New(ctrl, 0, 0)
	require.NoError(t, err)
	require.NoError(t, s.Start())
	time.Sleep(20 * time.Millisecond)
	require.NoError(t, s.Stop())

	ctrl.AssertExpectations(t)
}
