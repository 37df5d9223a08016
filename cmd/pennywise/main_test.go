package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Veraticus/pennywise/internal/analysis"
	"github.com/Veraticus/pennywise/internal/model"
	"github.com/Veraticus/pennywise/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	t      *testing.T
	dir    string
	dbPath string
	config string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	cfg := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("display:\n  currency: BRL\n"), 0o600))
	return &testEnv{t: t, dir: dir, dbPath: filepath.Join(dir, "pennywise.db"), config: cfg}
}

// run executes the CLI against the environment's database and returns stdout.
func (e *testEnv) run(args ...string) (string, error) {
	e.t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(append([]string{"--config", e.config, "--db", e.dbPath, "--log-level", "error"}, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func (e *testEnv) mustRun(args ...string) string {
	e.t.Helper()
	out, err := e.run(args...)
	require.NoError(e.t, err, "pennywise %s", strings.Join(args, " "))
	return out
}

func (e *testEnv) writeFile(name, content string) string {
	e.t.Helper()
	path := filepath.Join(e.dir, name)
	require.NoError(e.t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const sampleCSV = `date,description,amount,external_id
2024-03-01,Supermercado Extra compra semanal,-150.00,A1
2024-03-02,Uber corrida centro,-23.50,A2
2024-03-05,Salario empresa,3500.00,A3
2024-03-06,sem pista nenhuma,-9.00,A4
`

func TestVersionCmd(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun("version")
	assert.Equal(t, "pennywise dev\n", out)
}

func TestRootCmd_Commands(t *testing.T) {
	root := newRootCmd()

	names := make(map[string]bool)
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"serve", "suggest", "categorize", "batch", "rule", "categories", "import", "analyze", "review", "migrate", "version"} {
		assert.True(t, names[want], "missing command %s", want)
	}
}

func TestMigrateCmd(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun("migrate")
	assert.Contains(t, out, "12 default categories added")

	out = env.mustRun("migrate")
	assert.Contains(t, out, "0 default categories added")

	out = env.mustRun("migrate", "--status")
	assert.Contains(t, out, "Current version: 3")
	assert.Contains(t, out, "Latest version: 3")
}

func TestSuggestCmd_JSON(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun("suggest", "--user", "1", "--json", "Uber", "corrida", "centro")

	var candidates []model.Candidate
	require.NoError(t, json.Unmarshal([]byte(out), &candidates))
	require.Len(t, candidates, 1)
	assert.Equal(t, "Transporte", candidates[0].CategoryName)
	assert.InDelta(t, 0.4, candidates[0].Confidence, 1e-9)
}

func TestSuggestCmd_RequiresUser(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run("suggest", "uber")
	require.Error(t, err)
}

func TestCategorizeCmd(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun("categorize", "--user", "1", "--", "Supermercado Extra compra semanal", "-150.0")
	assert.Contains(t, out, "Alimentação")

	out = env.mustRun("categorize", "--user", "1", "--", "Salario empresa", "3.500,00")
	assert.Contains(t, out, "Salário")

	out = env.mustRun("categorize", "--user", "1", "--", "", "10")
	assert.Contains(t, out, "Could not categorize")

	_, err := env.run("categorize", "--user", "1", "--", "uber", "dez")
	assert.Error(t, err)
}

func TestImportBatchAnalyze(t *testing.T) {
	env := newTestEnv(t)
	csvPath := env.writeFile("march.csv", sampleCSV)

	out := env.mustRun("import", "csv", "--user", "7", csvPath)
	assert.Contains(t, out, "Imported 4 new transactions")

	out = env.mustRun("import", "csv", "--user", "7", csvPath)
	assert.Contains(t, out, "Imported 0 new transactions")

	// Dry run saves nothing
	env.mustRun("batch", "--user", "7", "--dry-run", "--no-progress")
	store, err := storage.NewSQLiteStorage(env.dbPath)
	require.NoError(t, err)
	pending, err := store.FindUncategorizedTransactions(context.Background(), 7, 10)
	require.NoError(t, err)
	assert.Len(t, pending, 4)
	require.NoError(t, store.Close())

	resultsPath := filepath.Join(env.dir, "results.csv")
	out = env.mustRun("batch", "--user", "7", "--no-progress", "--csv", resultsPath)
	assert.Contains(t, out, "Processed: 4")

	data, err := os.ReadFile(resultsPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 5)
	assert.Contains(t, lines[1], "Alimentação")
	assert.Contains(t, lines[4], "uncategorized")

	out = env.mustRun("analyze", "--user", "7", "--json")
	var rep analysis.Report
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	assert.Equal(t, 3, rep.TotalCategorized)
	assert.Len(t, rep.CategoryPatterns, 3)

	out = env.mustRun("analyze", "--user", "7")
	assert.Contains(t, out, "R$150,00")
}

func TestRuleCmd(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun("rule", "--user", "1", "99 pop", "2")
	assert.Contains(t, out, "is valid")

	_, err := env.run("rule", "--user", "1", "99 pop", "999")
	assert.Error(t, err)

	_, err = env.run("rule", "--user", "1", "99 pop", "dois")
	assert.Error(t, err)
}

func TestCategoriesCmd(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun("categories", "add", "--user", "3", "--type", "expense", "--color", "#22C55E", "Pets")
	assert.Contains(t, out, `Created category "Pets"`)

	_, err := env.run("categories", "add", "--user", "3", "Pets")
	assert.Error(t, err)

	_, err = env.run("categories", "add", "--user", "3", "--type", "transfer", "Outros")
	assert.Error(t, err)

	out = env.mustRun("categories", "list", "--user", "3", "--type", "expense")
	assert.Contains(t, out, "Pets")
	assert.Contains(t, out, "Alimentação")
	assert.NotContains(t, out, "Salário")

	out = env.mustRun("categories", "list", "--user", "4")
	assert.NotContains(t, out, "Pets")
}
