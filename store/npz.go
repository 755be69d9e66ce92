package store

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/katalvlaran/hsml/matrix"
	"github.com/sbinet/npyio/npz"
	"gonum.org/v1/gonum/mat"
)

// MatrixEntry is the archive member holding the matrix; numpy exposes it as "matrix".
const MatrixEntry = "matrix.npy"

// EncodeMatrix writes m to w as a compressed .npz archive.
func EncodeMatrix(w io.Writer, m *matrix.Dense) error {
	if m == nil {
		return matrix.ErrNilMatrix
	}
	r, c := m.Shape()
	zw := npz.NewWriter(w)
	if err := zw.Write(MatrixEntry, mat.NewDense(r, c, m.RawData())); err != nil {
		_ = zw.Close()
		return err
	}

	return zw.Close()
}

// DecodeMatrix reads a square matrix from an .npz archive.
// NaN cells are preserved; a non-square or missing entry yields ErrCorrupt.
func DecodeMatrix(r io.ReaderAt, size int64) (*matrix.Dense, error) {
	zr, err := npz.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w: %v", ErrCorrupt, err)
	}
	var d mat.Dense
	if err := zr.Read(MatrixEntry, &d); err != nil {
		return nil, fmt.Errorf("read %s: %w: %v", MatrixEntry, ErrCorrupt, err)
	}
	rows, cols := d.Dims()
	if rows == 0 || rows != cols {
		return nil, fmt.Errorf("shape %dx%d: %w", rows, cols, ErrCorrupt)
	}
	data := make([]float64, 0, rows*cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			data = append(data, d.At(i, j))
		}
	}

	return matrix.NewDenseFrom(rows, cols, data, matrix.WithNoValidateNaNInf())
}

// SaveMatrix encodes m and stores it under key.
func SaveMatrix(ctx context.Context, s Store, key string, m *matrix.Dense) error {
	var buf bytes.Buffer
	if err := EncodeMatrix(&buf, m); err != nil {
		return err
	}

	return s.Put(ctx, key, &buf)
}

// LoadMatrix fetches and decodes the matrix stored under key.
func LoadMatrix(ctx context.Context, s Store, key string) (*matrix.Dense, error) {
	rc, err := s.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	b, err := io.ReadAll(rc)
	if err != nil {
		return nil, err
	}

	return DecodeMatrix(bytes.NewReader(b), int64(len(b)))
}
