package noc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMetrics_RecordAndSnapshot(t *testing.T) {
	m := NewMetrics()
	m.RecordRead(64, 5_000, true)
	m.RecordWrite(128, 15_000, true)
	m.RecordRead(0, 1_000_000, false)

	snap := m.Snapshot()
	require.Equal(t, uint64(2), snap.ReadOps)
	require.Equal(t, uint64(1), snap.WriteOps)
	require.Equal(t, uint64(64), snap.ReadBytes)
	require.Equal(t, uint64(128), snap.WriteBytes)
	require.Equal(t, uint64(1), snap.ReadErrors)
	require.Equal(t, uint64(3), snap.TotalOps)
	require.InDelta(t, 33.33, snap.ErrorRate, 0.5)
}

func TestMetricsObserver_DelegatesToMetrics(t *testing.T) {
	m := NewMetrics()
	obs := NewMetricsObserver(m)

	obs.ObserveRead(16, 2_000, true)
	obs.ObserveWrite(32, 3_000, true)

	snap := m.Snapshot()
	require.Equal(t, uint64(1), snap.ReadOps)
	require.Equal(t, uint64(1), snap.WriteOps)
}
