package data

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rmera/godissolve/lineparser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(Te *testing.T, name, content string) string {
	Te.Helper()
	path := filepath.Join(Te.TempDir(), name)
	require.NoError(Te, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func parser(s string) *lineparser.Parser {
	return lineparser.NewParser(strings.NewReader(s), "test")
}

func TestData1D(Te *testing.T) {
	D := NewData1D("line")
	for _, x := range []float64{0, 1, 2, 3} {
		D.AddPoint(x, 2*x)
	}
	assert.Equal(Te, 4, D.NValues())
	assert.False(Te, D.HasErrors())
	assert.Nil(Te, D.Errors())
	assert.InDelta(Te, 9.0, D.Integral(), 1e-12)
	D.Scale(0.5)
	assert.Equal(Te, []float64{0, 1, 2, 3}, D.Values())

	C := D.Copy()
	C.AddPointWithError(4, 4, 0.1)
	assert.True(Te, C.HasErrors())
	assert.Equal(Te, []float64{0, 0, 0, 0, 0.1}, C.Errors())
	assert.Equal(Te, 4, D.NValues())

	C.DivideEach(func(x float64, i int) float64 { return 2 })
	assert.Equal(Te, 2.0, C.Values()[4])
	assert.Equal(Te, 0.05, C.Errors()[4])

	var buf bytes.Buffer
	W := lineparser.NewWriter(&buf)
	require.NoError(Te, C.Write(W))
	require.NoError(Te, W.Flush())
	R := NewData1D("read")
	require.NoError(Te, R.Read(parser(buf.String())))
	assert.Equal(Te, C.X(), R.X())
	assert.Equal(Te, C.Values(), R.Values())
	assert.Equal(Te, C.Errors(), R.Errors())

	assert.Error(Te, R.Read(parser("3 false\n1 2\n")))
}

func TestData1DImport(Te *testing.T) {
	path := writeFile(Te, "rdf.txt", "# r g err\n0.5 1.0 0.1 9\n1.5 2.0 0.2 9\n2.5 4.0 0.3 9\n")
	F := &Data1DImportFileFormat{}
	require.NoError(Te, F.Read(parser("xy '"+path+"' Y 2 Error 3")))
	assert.Equal(Te, 1, F.XColumn)
	assert.Equal(Te, 3, F.ErrorColumn)
	D := NewData1D("rdf")
	require.NoError(Te, F.Import(D))
	assert.Equal(Te, []float64{0.5, 1.5, 2.5}, D.X())
	assert.Equal(Te, []float64{1, 2, 4}, D.Values())
	assert.Equal(Te, []float64{0.1, 0.2, 0.3}, D.Errors())

	H := &Data1DImportFileFormat{}
	require.NoError(Te, H.Read(parser("histogram '"+path+"' Y 4")))
	require.NoError(Te, H.Import(D))
	assert.Equal(Te, []float64{1, 2, 3}, D.X())
	assert.Equal(Te, []float64{9, 9, 9}, D.Values())
	assert.False(Te, D.HasErrors())

	for _, bad := range []string{"xy", "bogus file.txt", "xy file.txt Y", "xy file.txt Z 2", "xy file.txt Y 0"} {
		assert.Error(Te, F.Read(parser(bad)), bad)
	}
	missing := NewData1DImportFileFormat(filepath.Join(Te.TempDir(), "nope.txt"))
	assert.Error(Te, missing.Import(D))
}

func TestGridImport(Te *testing.T) {
	path := writeFile(Te, "map.txt", "1 10 0.5\n0 10 0.25\n0 20 1.0\n1 20 2.0\n")
	F := &Data2DImportFileFormat{}
	require.NoError(Te, F.Read(parser("cartesian "+path)))
	D := &Data2D{}
	require.NoError(Te, F.Import(D))
	assert.Equal(Te, []float64{0, 1}, D.X())
	assert.Equal(Te, []float64{10, 20}, D.Y())
	assert.Equal(Te, 0.25, D.Values().At(0, 0))
	assert.Equal(Te, 2.0, D.Values().At(1, 1))
	assert.False(Te, D.HasErrors())

	path3 := writeFile(Te, "vol.txt", "0 0 0 1 0.1\n0 0 1 2 0.2\n1 0 1 3 0.3\n")
	G := &Data3DImportFileFormat{}
	require.NoError(Te, G.Read(parser("cartesian "+path3+" Errors 1")))
	V := &Data3D{}
	require.NoError(Te, G.Import(V))
	assert.Equal(Te, []float64{0, 1}, V.X())
	assert.Equal(Te, []float64{0}, V.Y())
	assert.Equal(Te, 3.0, V.At(1, 0, 1))
	assert.Equal(Te, 0.0, V.At(1, 0, 0))
	assert.Equal(Te, 0.2, V.Error(0, 0, 1))
	assert.Panics(Te, func() { V.At(2, 0, 0) })

	assert.Error(Te, F.Read(parser("polar "+path)))
}

func TestStore(Te *testing.T) {
	good := writeFile(Te, "good.txt", "1 2\n3 4\n")
	S := NewData1DStore()
	_, err := S.AddData(parser("xy "+good), "good")
	require.NoError(Te, err)
	assert.True(Te, S.ContainsData("good"))
	d, ok := S.Data("good")
	require.True(Te, ok)
	assert.Equal(Te, []float64{2, 4}, d.Values())

	//a failed import leaves the entry in place
	bad := writeFile(Te, "bad.txt", "1 2\n3 four\n")
	e, err := S.AddData(parser("xy "+bad), "bad")
	require.Error(Te, err)
	assert.Equal(Te, 2, S.Len())
	assert.True(Te, S.ContainsData("bad"))
	assert.True(Te, S.RemoveData(e))
	assert.False(Te, S.RemoveData(e))
	assert.False(Te, S.ContainsData("bad"))

	//duplicate tags are allowed, lookups return the first
	_, err = S.AddDataWithFormat(NewData1DImportFileFormat(bad), "good")
	require.Error(Te, err)
	d2, _ := S.Data("good")
	assert.Same(Te, d, d2)
	assert.Len(Te, S.All(), 2)

	_, ok = NewData2DStore().Data("x")
	assert.False(Te, ok)

	vals := writeFile(Te, "values.txt", "1 2 3\n4\n")
	VS := NewValueStore()
	_, err = VS.AddData(parser("values "+vals), "v")
	require.NoError(Te, err)
	v, _ := VS.Data("v")
	assert.Equal(Te, []float64{1, 2, 3, 4}, v.V)
}

func TestPlotData1D(Te *testing.T) {
	D := NewData1D("g(r)")
	E := NewData1D("errors")
	for i := 0; i < 20; i++ {
		D.AddPoint(float64(i)*0.1, float64(i*i))
		E.AddPointWithError(float64(i)*0.1, float64(i), 0.5)
	}
	for _, name := range []string{"rdf.png", "rdf.svg"} {
		path := filepath.Join(Te.TempDir(), name)
		require.NoError(Te, PlotData1D(path, "RDF", "r", "g(r)", D, E, NewData1D("empty")))
		st, err := os.Stat(path)
		require.NoError(Te, err)
		assert.NotZero(Te, st.Size())
	}
}
