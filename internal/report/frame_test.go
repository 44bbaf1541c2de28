package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupAccum_ConservaOrdenDePrimeraAparicion(t *testing.T) {
	acc := newGroupAccum[string]()
	acc.Add("b", 1)
	acc.Add("a", 2)
	acc.Add("b", 3)
	acc.Add("c", 1)

	rows := acc.rows()
	require.Len(t, rows, 3)
	assert.Equal(t, "b", rows[0].Key)
	assert.Equal(t, int64(4), rows[0].Sum)
	assert.Equal(t, "a", rows[1].Key)
	assert.Equal(t, "c", rows[2].Key)
}

func TestTopNDesc_OrdenaYTrunca(t *testing.T) {
	rows := []groupRow[string]{
		{Key: "x", Sum: 5},
		{Key: "y", Sum: 9},
		{Key: "z", Sum: 1},
	}
	top := topNDesc(rows, 2)
	require.Len(t, top, 2)
	assert.Equal(t, "y", top[0].Key)
	assert.Equal(t, "x", top[1].Key)
}

// Empates: el orden de entrada (primera aparición) decide, el sort es estable.
func TestTopNDesc_EmpatesEstables(t *testing.T) {
	rows := []groupRow[string]{
		{Key: "primero", Sum: 3},
		{Key: "segundo", Sum: 3},
		{Key: "tercero", Sum: 3},
	}
	top := topNDesc(rows, 3)
	assert.Equal(t, "primero", top[0].Key)
	assert.Equal(t, "segundo", top[1].Key)
	assert.Equal(t, "tercero", top[2].Key)
}

func TestTopNDesc_MenosFilasQueN(t *testing.T) {
	rows := []groupRow[string]{{Key: "solo", Sum: 1}}
	assert.Len(t, topNDesc(rows, 5), 1)
}

func TestMinMaxNormalize_MapeaExtremos(t *testing.T) {
	values := map[int]float64{77: 10, 78: 30, 50: 20}
	minMaxNormalize(values)

	assert.Equal(t, 0.0, values[77])
	assert.Equal(t, 1.0, values[78])
	assert.Equal(t, 0.5, values[50])
}

// Todos los valores iguales: todo a 0, no NaN.
func TestMinMaxNormalize_TodosIguales(t *testing.T) {
	values := map[int]float64{1: 7, 2: 7, 3: 7}
	minMaxNormalize(values)
	for code, v := range values {
		assert.Equal(t, 0.0, v, "región %d", code)
	}
}

func TestMinMaxNormalize_Vacio(t *testing.T) {
	values := map[int]float64{}
	minMaxNormalize(values)
	assert.Empty(t, values)
}
