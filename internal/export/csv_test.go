package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"actuarial-data-service/internal/generator"
)

func TestWriteClaims_RoundTrip(t *testing.T) {
	claims, err := generator.NewClaimsGenerator(42).Generate(100, 250)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "claims.csv")
	require.NoError(t, WriteClaims(path, claims))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 251, "header plus one record per claim")

	assert.Equal(t, claimHeader, records[0])
	first := records[1]
	assert.Equal(t, "1", first[0])
	assert.Equal(t, "CLM00000001", first[1])
	assert.Regexp(t, `^\d{4}-\d{2}-\d{2}$`, first[3], "accident date layout")
	assert.Regexp(t, `^\d+\.\d{2}$`, first[11], "initial reserve has two fraction digits")
	assert.Contains(t, first[15], `"complexity"`, "attribute blob is JSON")
}

func TestWritePolicies_RoundTrip(t *testing.T) {
	policies, err := generator.NewPolicyGenerator(42).Generate(50)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "policies.csv")
	require.NoError(t, WritePolicies(path, policies))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 51)
	assert.Equal(t, policyHeader, records[0])
	assert.Equal(t, "POL00000001", records[1][1])
}

func TestWriteReserves_RoundTrip(t *testing.T) {
	claims, err := generator.NewClaimsGenerator(42).Generate(100, 500)
	require.NoError(t, err)
	groups, err := generator.NewReserveGenerator(43).Generate(claims)
	require.NoError(t, err)
	require.NotEmpty(t, groups)

	path := filepath.Join(t.TempDir(), "reserves.csv")
	require.NoError(t, WriteReserves(path, groups))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, len(groups)+1)

	assert.Equal(t, reserveHeader, records[0])
	first := records[1]
	assert.Equal(t, groups[0].ContractGroupID, first[0])
	assert.Regexp(t, `^0\.\d{6}$`, first[10], "pv factor has six fraction digits")
	assert.Contains(t, first[24], `"IFRS_17"`)
}

func TestWriteTables_Deterministic(t *testing.T) {
	claims, err := generator.NewClaimsGenerator(9).Generate(200, 1000)
	require.NoError(t, err)

	dir := t.TempDir()
	pathA := filepath.Join(dir, "a.csv")
	pathB := filepath.Join(dir, "b.csv")
	require.NoError(t, WriteClaims(pathA, claims))

	claimsAgain, err := generator.NewClaimsGenerator(9).Generate(200, 1000)
	require.NoError(t, err)
	require.NoError(t, WriteClaims(pathB, claimsAgain))

	a, err := os.ReadFile(pathA)
	require.NoError(t, err)
	b, err := os.ReadFile(pathB)
	require.NoError(t, err)
	assert.Equal(t, a, b, "same seed must produce byte-identical files")
}
