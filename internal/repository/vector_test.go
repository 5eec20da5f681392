package repository

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVectorLiteral(t *testing.T) {
	require.Equal(t, "[]", VectorLiteral(nil))
	require.Equal(t, "[1.000000]", VectorLiteral([]float32{1}))
	require.Equal(t, "[0.500000,-0.250000,0.000000]", VectorLiteral([]float32{0.5, -0.25, 0}))
}
