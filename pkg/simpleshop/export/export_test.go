package export_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/tendant/simple-shop/pkg/simpleshop/export"
)

type row struct {
	Name    string  `csv:"name"`
	Status  string  `csv:"status"`
	Gallons float64 `csv:"gallons"`
	Skipped string  `csv:"-"`
}

func sampleRows() []row {
	return []row{
		{Name: "Ada", Status: "completed", Gallons: 12.5, Skipped: "y"},
		{Name: "Bob", Status: "pending", Gallons: 0},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.WriteCSV(&buf, sampleRows()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "name,status,gallons", lines[0])
	assert.Equal(t, "Ada,completed,12.5", lines[1])
	assert.Equal(t, "Bob,pending,0", lines[2])
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	summary := export.Sheet{Name: "Summary", Rows: [][]any{{"count", 2}, {"gallons", 12.5}}}
	require.NoError(t, export.WriteXLSX(&buf, "Deliveries", sampleRows(), summary))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Deliveries", "Summary"}, f.GetSheetList())

	rows, err := f.GetRows("Deliveries")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"name", "status", "gallons"}, rows[0])
	assert.Equal(t, []string{"Ada", "completed", "12.5"}, rows[1])

	summaryRows, err := f.GetRows("Summary")
	require.NoError(t, err)
	assert.Equal(t, []string{"count", "2"}, summaryRows[0])
}

func TestWriteXLSX_RejectsNonStructRows(t *testing.T) {
	var buf bytes.Buffer
	err := export.WriteXLSX(&buf, "", []string{"a"})
	assert.Error(t, err)
}

func TestDatedGenerator(t *testing.T) {
	id := uuid.MustParse("12345678-9abc-def0-1234-56789abcdef0")
	at := time.Date(2024, 3, 9, 14, 5, 6, 0, time.UTC)
	gen := export.NewDatedGenerator()

	t.Run("export", func(t *testing.T) {
		key := gen.GenerateKey(id, export.KeyMetadata{View: "work_orders", Extension: "csv", CreatedAt: at})
		assert.Equal(t, "exports/work_orders/2024/03/20240309T140506-12345678.csv", key)
	})

	t.Run("snapshot", func(t *testing.T) {
		key := gen.GenerateKey(id, export.KeyMetadata{View: "deliveries", Extension: ".xlsx", CreatedAt: at, Scheduled: true})
		assert.Equal(t, "snapshots/deliveries/2024/03/20240309T140506-12345678.xlsx", key)
	})

	t.Run("sanitizes view", func(t *testing.T) {
		key := gen.GenerateKey(id, export.KeyMetadata{View: "../Some View", Extension: "csv", CreatedAt: at})
		assert.NotContains(t, key, "..")
		assert.True(t, strings.HasPrefix(key, "exports/_"))
	})

	t.Run("local times are stored as utc", func(t *testing.T) {
		loc := time.FixedZone("UTC+2", 2*60*60)
		key := gen.GenerateKey(id, export.KeyMetadata{View: "team", Extension: "csv", CreatedAt: at.In(loc)})
		assert.Contains(t, key, "20240309T140506")
	})
}

func TestFlatAndPrefixedGenerators(t *testing.T) {
	id := uuid.New()
	flat := export.NewFlatGenerator()
	assert.Equal(t, "exports/"+id.String()+".csv", flat.GenerateKey(id, export.KeyMetadata{Extension: "csv"}))

	prefixed := export.NewPrefixedGenerator("/Shop One/", flat)
	assert.Equal(t, "shop_one/exports/"+id.String()+".csv", prefixed.GenerateKey(id, export.KeyMetadata{Extension: "csv"}))

	assert.Equal(t, flat.GenerateKey(id, export.KeyMetadata{}), export.NewPrefixedGenerator("", flat).GenerateKey(id, export.KeyMetadata{}))
}
