package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/backoffice/domain"
)

type countingBackuper struct{ calls int }

func (c *countingBackuper) AutoBackup(context.Context) (*domain.BackupRecord, error) {
	c.calls++
	return &domain.BackupRecord{Kind: domain.BackupAuto, Status: domain.BackupStatusOK}, nil
}

type staticHealth bool

func (s staticHealth) IsOnline() bool { return bool(s) }

func TestSchedulerDisabledWithoutInterval(t *testing.T) {
	bs, err := NewBackupScheduler(&countingBackuper{}, nil, nil, SchedulerConfig{})
	require.NoError(t, err)
	assert.False(t, bs.Enabled())

	bs.Start()
	bs.Stop(context.Background())
}

func TestRunOnce(t *testing.T) {
	backups := &countingBackuper{}
	bs, err := NewBackupScheduler(backups, staticHealth(true), nil, SchedulerConfig{Interval: time.Hour})
	require.NoError(t, err)
	assert.True(t, bs.Enabled())

	rec, err := bs.RunOnce(context.Background())
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, 1, backups.calls)
}

func TestRunOnceSkipsWhenOffline(t *testing.T) {
	backups := &countingBackuper{}
	bs, err := NewBackupScheduler(backups, staticHealth(false), nil, SchedulerConfig{Interval: time.Hour})
	require.NoError(t, err)

	rec, err := bs.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Nil(t, rec)
	assert.Zero(t, backups.calls)
}
