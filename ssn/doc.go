// SPDX-License-Identifier: MIT

// Package ssn fits spatial stream-network linear models and compares
// candidate autocovariance structures.
//
// A model is y = Xβ + ε with Cov(ε) = Σ, where Σ is a sum of up to three
// spatial components plus an optional nugget:
//
//   - Tail-up (flow-connected pairs only, weighted by √(AFV_up/AFV_down)):
//     exponential σ²·e^{−h/α}, linear σ²·(1−h/α)₊, gaussian σ²·e^{−(h/α)²}.
//   - Tail-down (any two sites on the same network): flow-connected pairs use
//     h as above; flow-unconnected pairs with downstream distances a ≤ b use
//     e^{−(a+b)/α}, (1−b/α)₊ or e^{−((a+b)/α)²}.
//   - Euclidean: the same three shapes in straight-line distance d.
//   - Nugget: σ₀² added to the diagonal.
//
// Fitting:
//
//   - Covariance parameters (partial sill and range per active component,
//     nugget variance) are optimised on the log scale with gonum's
//     Nelder–Mead; β is the GLS estimate at every step.
//   - REML (default) minimises log|Σ| + log|XᵀΣ⁻¹X| + rᵀΣ⁻¹r + (n−p)·log 2π.
//     ML minimises log|Σ| + rᵀΣ⁻¹r + n·log 2π. Use ML when candidate models
//     differ in fixed effects.
//   - AIC = −2ℓ + 2k, with k the covariance parameters under REML and the
//     covariance parameters plus p under ML.
//   - Leave-one-out predictions use the closed form for universal kriging:
//     with P = Σ⁻¹ − Σ⁻¹X(XᵀΣ⁻¹X)⁻¹XᵀΣ⁻¹, the held-out residual is
//     (Py)_i / P_ii and its variance 1/P_ii. β is re-estimated without the
//     held-out site; covariance parameters are not.
//
// Comparison:
//
//   - Compare validates every candidate before fitting any; configuration
//     errors (unknown column, all-none structure, network missing) return
//     immediately.
//   - Candidates are fitted one after another. A fit that fails becomes a
//     FitFailure on the table and the loop continues.
//   - Rows are sorted by ascending AIC (stable); Best returns the first.
//   - BestSubset fits every covariate subset under ML with one covariance
//     structure and ranks them the same way.
//
// Cost: each likelihood evaluation is one O(n³) Cholesky factorisation.
package ssn
