package projects

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestLoadActiveCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "projects.csv")
	content := "ProjectName,Active\nZulu,True\nAlpha,True\nRetired,False\n,True\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	names, err := LoadActive(path)
	require.NoError(t, err)

	// Inactive and nameless rows dropped, remainder sorted
	assert.Equal(t, []string{"Alpha", "Zulu"}, names)
}

func TestLoadActiveMissingFile(t *testing.T) {
	names, err := LoadActive(filepath.Join(t.TempDir(), "missing.csv"))
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestLoadActiveMissingColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "projects.csv")
	require.NoError(t, os.WriteFile(path, []byte("Name,Enabled\nAlpha,True\n"), 0644))

	_, err := LoadActive(path)
	assert.Error(t, err)
}

func TestLoadActiveXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "projects.xlsx")

	file := excelize.NewFile()
	require.NoError(t, file.SetSheetRow("Sheet1", "A1", &[]interface{}{"ProjectName", "Active"}))
	require.NoError(t, file.SetSheetRow("Sheet1", "A2", &[]interface{}{"Beta", "TRUE"}))
	require.NoError(t, file.SetSheetRow("Sheet1", "A3", &[]interface{}{"Alpha", "true"}))
	require.NoError(t, file.SetSheetRow("Sheet1", "A4", &[]interface{}{"Old", "FALSE"}))
	require.NoError(t, file.SaveAs(path))
	require.NoError(t, file.Close())

	names, err := LoadActive(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Alpha", "Beta"}, names)
}

func TestLoadKeepsInactiveProjects(t *testing.T) {
	path := filepath.Join(t.TempDir(), "projects.csv")
	content := "ProjectName,Active\nAlpha,True\nRetired,False\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	all, err := Load(path)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.False(t, all[1].Active)
}
