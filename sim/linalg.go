package sim

import (
	"fmt"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas64"
)

// multiply computes C ← alpha·A·B + beta·C for column-major matrices.
//
// A is m×k, B is k×n and C is m×n, all stored column by column with leading
// dimension equal to their row count. k and n are inferred from the slice
// lengths. A column-major matrix read row-major is its transpose, so the
// product is evaluated as Cᵗ = Bᵗ·Aᵗ.
func multiply(alpha float64, a, b []float64, beta float64, c []float64, m int) {
	if m <= 0 || len(a)%m != 0 || len(c)%m != 0 {
		panic(fmt.Sprintf("multiply: leading dimension %d does not divide len(A)=%d, len(C)=%d", m, len(a), len(c)))
	}
	k := len(a) / m
	n := len(c) / m
	if len(b) != k*n {
		panic(fmt.Sprintf("multiply: len(B)=%d, want %d×%d", len(b), k, n))
	}
	if n == 0 {
		return
	}
	blas64.Gemm(blas.NoTrans, blas.NoTrans, alpha,
		blas64.General{Rows: n, Cols: k, Stride: k, Data: b},
		blas64.General{Rows: k, Cols: m, Stride: m, Data: a},
		beta,
		blas64.General{Rows: n, Cols: m, Stride: m, Data: c},
	)
}
