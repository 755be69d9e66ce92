package store_test

import (
	"bytes"
	"context"
	"math"
	"testing"

	"github.com/katalvlaran/hsml/matrix"
	"github.com/katalvlaran/hsml/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatrixRoundTrip(t *testing.T) {
	m, err := matrix.NewDense(3, 3, matrix.WithNoValidateNaNInf())
	require.NoError(t, err)
	require.NoError(t, m.SetSymmetric(0, 1, 0.5773502691896258))
	require.NoError(t, m.SetSymmetric(1, 2, -1.25e-7))
	require.NoError(t, m.SetSymmetric(2, 2, math.NaN()))

	s := store.NewMemory()
	ctx := context.Background()
	require.NoError(t, store.SaveMatrix(ctx, s, "m.npz", m))

	got, err := store.LoadMatrix(ctx, s, "m.npz")
	require.NoError(t, err)
	same, err := matrix.AllClose(got, m, 0, 0)
	require.NoError(t, err)
	assert.True(t, same, "decoded matrix must be bit-identical")
}

func TestMatrixRoundTripFilesystem(t *testing.T) {
	m, err := matrix.NewDenseFrom(2, 2, []float64{1, 2, 2, 3})
	require.NoError(t, err)

	s := store.NewFilesystem(t.TempDir())
	ctx := context.Background()
	require.NoError(t, store.SaveMatrix(ctx, s, "zeeman.npz", m))

	got, err := store.LoadMatrix(ctx, s, "zeeman.npz")
	require.NoError(t, err)
	assert.Equal(t, m.RawData(), got.RawData())
}

func TestDecodeRejectsGarbage(t *testing.T) {
	b := []byte("definitely not a zip archive")
	_, err := store.DecodeMatrix(bytes.NewReader(b), int64(len(b)))
	assert.ErrorIs(t, err, store.ErrCorrupt)
}

func TestDecodeRejectsNonSquare(t *testing.T) {
	m, err := matrix.NewDense(2, 3)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, store.EncodeMatrix(&buf, m))

	_, err = store.DecodeMatrix(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	assert.ErrorIs(t, err, store.ErrCorrupt)
}

func TestLoadMissing(t *testing.T) {
	_, err := store.LoadMatrix(context.Background(), store.NewMemory(), "nope.npz")
	assert.ErrorIs(t, err, store.ErrNotFound)
}
