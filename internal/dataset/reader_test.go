package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestNewReader_DetectsFormat(t *testing.T) {
	require.Equal(t, FormatXLSX, NewReader("points.xlsx", nil).Format())
	require.Equal(t, FormatXLSX, NewReader("POINTS.XLSX", nil).Format())
	require.Equal(t, FormatCSV, NewReader("points.csv", nil).Format())
	require.Equal(t, FormatCSV, NewReader("points.txt", nil).Format())
}

func TestRead_CSVWithHeader(t *testing.T) {
	path := writeFile(t, "high.csv", "x,y,z\n1,2,3\n4, 5.5 ,6\n\n-1,0,1e2\n")

	points, err := NewReader(path, nil).Read()
	require.NoError(t, err)
	require.Equal(t, [][]float64{
		{1, 2, 3},
		{4, 5.5, 6},
		{-1, 0, 100},
	}, points)
}

func TestRead_CSVWithoutHeader(t *testing.T) {
	path := writeFile(t, "low.csv", "0.5\n1.5\n2.5\n")

	points, err := NewReader(path, nil).Read()
	require.NoError(t, err)
	require.Equal(t, [][]float64{{0.5}, {1.5}, {2.5}}, points)
}

func TestRead_CSVRaggedRows(t *testing.T) {
	path := writeFile(t, "ragged.csv", "1,2\n3\n")

	_, err := NewReader(path, nil).Read()
	require.Error(t, err)
	require.Contains(t, err.Error(), "row 2 has 1 columns, expected 2")
}

func TestRead_CSVBadCell(t *testing.T) {
	path := writeFile(t, "bad.csv", "a,b\n1,2\n3,oops\n")

	_, err := NewReader(path, nil).Read()
	require.Error(t, err)
	require.Contains(t, err.Error(), "row 3, column 2")
}

func TestRead_CSVHeaderOnly(t *testing.T) {
	path := writeFile(t, "empty.csv", "x,y\n")

	_, err := NewReader(path, nil).Read()
	require.True(t, errors.Is(err, ErrNoRows))
}

func TestRead_MissingFile(t *testing.T) {
	_, err := NewReader(filepath.Join(t.TempDir(), "nope.csv"), nil).Read()
	require.Error(t, err)
	require.True(t, errors.Is(err, os.ErrNotExist))
}

func TestRead_XLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "points.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"x", "y"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{1.5, 2}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]any{-3, 4.25}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	points, err := NewReader(path, nil).Read()
	require.NoError(t, err)
	require.Equal(t, [][]float64{{1.5, 2}, {-3, 4.25}}, points)
}

func TestParseRows(t *testing.T) {
	tests := []struct {
		name    string
		rows    [][]string
		want    [][]float64
		wantErr error
	}{
		{
			name: "numeric only",
			rows: [][]string{{"1", "2"}, {"3", "4"}},
			want: [][]float64{{1, 2}, {3, 4}},
		},
		{
			name: "leading blank rows before header",
			rows: [][]string{{"", " "}, {"a", "b"}, {"1", "2"}},
			want: [][]float64{{1, 2}},
		},
		{
			name:    "nothing",
			rows:    nil,
			wantErr: ErrNoRows,
		},
		{
			name:    "blank only",
			rows:    [][]string{{""}, {" ", ""}},
			wantErr: ErrNoRows,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRows(tt.rows)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestParseRows_SecondNonNumericRowFails(t *testing.T) {
	_, err := ParseRows([][]string{{"a"}, {"b"}, {"1"}})
	require.Error(t, err)
	require.Contains(t, err.Error(), "row 2, column 1")
}
