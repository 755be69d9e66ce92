// Package interaction builds Stark and Zeeman interaction matrices over a
// basis of Rydberg states.
//
// 🚀 What is an interaction matrix?
//
//	For a basis |ψ₀⟩…|ψ_{N-1}⟩ the matrix M[i][j] = ⟨ψᵢ|H'|ψⱼ⟩ of a
//	perturbation H'. Two perturbations are supported:
//	  • Stark  - an electric field at an arbitrary angle to the quantization
//	             axis: angular overlap ⟨L₁M₁|cos θ|L₂M₂⟩ × radial overlap,
//	             non-zero only for |ΔL| = 1 and |ΔM| ≤ 1.
//	  • Zeeman - a magnetic field along the axis: ML on the diagonal.
//
// ✨ Key features:
//   - upper triangle evaluated once per pair and mirrored (symmetric by construction)
//   - optional parallel assembly over rows (Config.Workers)
//   - in-memory reuse, explicit Invalidate / Recompute
//   - on-disk (or S3) .npz cache keyed by the basis parameters
//   - strict or permissive handling of non-finite cells (Config.StrictDomain)
//
// ⚙️ Usage:
//
//	b, _ := interaction.NewBuilder(interaction.Stark, basis,
//	    interaction.WithRadial(radial.NewNumerov()),
//	    interaction.WithLogger(log))
//
//	cfg := interaction.DefaultConfig()
//	cfg.FieldAngle = 45
//	cfg.SaveMatrices = true
//	m, err := b.Build(ctx, cfg)
//
// Performance:
//
//   - Time:   O(N²) term evaluations; Stark pairs passing the selection rule
//     also cost one radial overlap each.
//   - Memory: O(N²) for the dense matrix.
package interaction
