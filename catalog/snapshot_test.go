package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wingsengineering/wingsweb/models"
)

func TestSnapshotRefresh(t *testing.T) {
	snap := NewSnapshot(StaticSource{Parts: sampleParts()}, nil)
	require.NoError(t, snap.Refresh(context.Background()))

	assert.Len(t, snap.Items(), 8)
	assert.NoError(t, snap.LastError())
	assert.False(t, snap.FetchedAt().IsZero())
	assert.Equal(t, "static", snap.SourceName())

	p, ok := snap.Find("p3")
	require.True(t, ok)
	assert.Equal(t, "Cylinder Head Gasket", p.Name)
	_, ok = snap.Find("nope")
	assert.False(t, ok)
}

func TestSnapshotFailedFetchInstallsEmpty(t *testing.T) {
	source := &switchableSource{parts: sampleParts()}
	snap := NewSnapshot(source, nil)
	require.NoError(t, snap.Refresh(context.Background()))
	require.Len(t, snap.Items(), 8)

	source.err = errors.New("connection refused")
	err := snap.Refresh(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
	assert.Empty(t, snap.Items())
	assert.ErrorIs(t, snap.LastError(), source.err)

	res, err := Run(snap.Items(), DefaultQuery(10))
	require.NoError(t, err)
	assert.True(t, res.Empty())

	source.err = nil
	require.NoError(t, snap.Refresh(context.Background()))
	assert.Len(t, snap.Items(), 8)
	assert.NoError(t, snap.LastError())
}

func TestSnapshotDropsInvalidAndDuplicateParts(t *testing.T) {
	bad := newPart("bad", "Priceless")
	bad.Currency = "KES"
	parts := append(sampleParts(), bad, newPart("p1", "Duplicate"), newPart("", "No id"))

	snap := NewSnapshot(StaticSource{Parts: parts}, nil)
	require.NoError(t, snap.Refresh(context.Background()))
	assert.Len(t, snap.Items(), 8)

	p, ok := snap.Find("p1")
	require.True(t, ok)
	assert.Equal(t, "Oil Filter", p.Name)
}

func TestSnapshotKeepsNewestStartedFetch(t *testing.T) {
	snap := NewSnapshot(StaticSource{}, nil)
	older := snap.ticket()
	newer := snap.ticket()

	snap.install(newer, []models.Part{newPart("new", "New")}, nil)
	snap.install(older, []models.Part{newPart("old", "Old")}, nil)

	assert.Equal(t, []string{"new"}, ids(snap.Items()))
}

func TestSnapshotWithoutSource(t *testing.T) {
	snap := NewSnapshot(nil, nil)
	assert.ErrorIs(t, snap.Refresh(context.Background()), ErrNoSource)
	assert.Empty(t, snap.Items())
	assert.Equal(t, "none", snap.SourceName())
}

type switchableSource struct {
	parts []models.Part
	err   error
}

func (s *switchableSource) Name() string { return "switchable" }

func (s *switchableSource) FetchParts(context.Context) ([]models.Part, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.parts, nil
}
