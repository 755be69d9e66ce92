// Package hsml builds Stark and Zeeman interaction matrices for bases of
// Rydberg states, the ingredients of Stark maps and Zeeman spectra.
//
// 🚀 What is inside?
//
//	quantum/     - basis states |n, L, ML⟩, quantum defects and basis enumeration
//	radial/      - Numerov radial wavefunctions, ⟨n₁l₁|rᵖ|n₂l₂⟩ overlaps, LRU memo
//	interaction/ - angular overlaps, Stark / Zeeman terms, the matrix Builder
//	matrix/      - dense symmetric storage, validators, Jacobi eigensolver, coupling blocks
//	store/       - .npz matrix cache over filesystem, S3 or memory backends
//	config/      - YAML + .env run configuration
//	logging/     - zap console/file logger with lumberjack rotation
//	cmd/hsml     - command-line driver
//
// ⚙️ Quick start:
//
//	basis, _ := quantum.NewBasis(quantum.Params{NMin: 20, NMax: 25, LMax: 3, S: 0.5})
//	cfg := interaction.DefaultConfig()
//	cfg.FieldAngle = 45
//	m, err := interaction.Build(ctx, interaction.Stark, basis, cfg,
//	    interaction.WithRadial(radial.NewNumerov()))
package hsml
