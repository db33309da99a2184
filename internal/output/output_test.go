package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobscout/internal/aggregate"
)

func fptr(v float64) *float64 { return &v }
func bptr(b bool) *bool       { return &b }

func sampleJobs() []aggregate.FlatJob {
	return []aggregate.FlatJob{
		{
			Site:        "indeed",
			Title:       `Senior "Go" Engineer`,
			CompanyName: "Acme, Inc.",
			JobURL:      "https://indeed.example/job/1",
			City:        "Austin",
			State:       "TX",
			Country:     "USA",
			DatePosted:  "2026-08-10",
			JobType:     []string{"fulltime", "contract"},
			IsRemote:    bptr(true),
			Interval:    "yearly",
			MinAmount:   fptr(120000),
			MaxAmount:   fptr(150000),
			Currency:    "USD",
		},
		{
			Site:   "bayt",
			Title:  "DevOps Engineer",
			JobURL: "https://bayt.example/job/2",
		},
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleJobs()))

	var back []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &back))
	require.Len(t, back, 2)
	assert.Equal(t, "indeed", back[0]["site"])
	assert.Equal(t, true, back[0]["is_remote"])

	// optionals absent from the record stay absent in the JSON
	_, has := back[1]["min_amount"]
	assert.False(t, has)
	_, has = back[1]["is_remote"]
	assert.False(t, has)
}

func TestWriteJSONEmptyIsArray(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, nil))
	assert.Equal(t, "[]", string(bytes.TrimSpace(buf.Bytes())))
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleJobs()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, csvHeader, records[0])

	row := records[1]
	assert.Equal(t, "indeed", row[0])
	assert.Equal(t, `Senior "Go" Engineer`, row[1])
	assert.Equal(t, "Acme, Inc.", row[2])
	assert.Equal(t, "fulltime,contract", row[9])
	assert.Equal(t, "true", row[10])
	assert.Equal(t, "120000", row[13])

	// empty optionals stay empty cells
	assert.Equal(t, "", records[2][10])
	assert.Equal(t, "", records[2][13])
}

func TestWriteCSVSiteSpecificColumns(t *testing.T) {
	job := aggregate.FlatJob{
		Site:                "naukri",
		Title:               "Go Engineer",
		JobURL:              "https://naukri.example/job/1",
		JobLevel:            "Senior",
		JobFunction:         "Engineering",
		CompanyIndustry:     "Software",
		Skills:              []string{"go", "sql"},
		ExperienceRange:     "5-8 years",
		CompanyRating:       4.2,
		CompanyReviewsCount: 310,
		VacancyCount:        3,
		WorkFromHomeType:    "hybrid",
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, []aggregate.FlatJob{job}))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	cols := map[string]string{}
	for i, name := range records[0] {
		cols[name] = records[1][i]
	}
	assert.Equal(t, "Senior", cols["job_level"])
	assert.Equal(t, "Engineering", cols["job_function"])
	assert.Equal(t, "Software", cols["company_industry"])
	assert.Equal(t, "go,sql", cols["skills"])
	assert.Equal(t, "5-8 years", cols["experience_range"])
	assert.Equal(t, "4.2", cols["company_rating"])
	assert.Equal(t, "310", cols["company_reviews_count"])
	assert.Equal(t, "3", cols["vacancy_count"])
	assert.Equal(t, "hybrid", cols["work_from_home_type"])

	// unset enrichment fields stay empty cells
	assert.Equal(t, "", cols["company_logo"])
	assert.Equal(t, "", cols["company_revenue"])
}

func TestWriteDispatchesByExtension(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "out.json")
	require.NoError(t, Write(jsonPath, sampleJobs()))
	b, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"site": "indeed"`)

	csvPath := filepath.Join(dir, "out.csv")
	require.NoError(t, Write(csvPath, sampleJobs()))
	b, err = os.ReadFile(csvPath)
	require.NoError(t, err)
	assert.Contains(t, string(b), "site,title,company")

	err = Write(filepath.Join(dir, "out.xml"), sampleJobs())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported output extension")
}
