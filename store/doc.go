// Package store persists interaction matrices between runs.
//
// A Store is a flat key/value blob space with three drivers:
//
//	fs     - a local directory (default; keys are file names under the root)
//	s3     - an S3 / MinIO bucket, optionally under a key prefix
//	memory - process memory, for tests and single-process reuse
//
// Matrices are encoded as NumPy .npz archives holding a single N×N float64
// entry named "matrix", so cached files interoperate with numpy.load.
package store
