package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/yanqian/faqdesk/internal/domain/faq"
)

const sampleDocument = `{
  "faq": [
    {"id": 1, "question": "Как оплатить подписку", "answer": "Картой на сайте", "keywords": ["оплата", "платеж"], "category": "billing", "priority": 1},
    {"id": 2, "question": "Как отменить заказ", "answer": "В личном кабинете", "keywords": ["отмена"], "category": "orders", "priority": 5}
  ],
  "categories": {"billing": "Оплата", "orders": "Заказы"}
}`

func TestCLI_ListAndSearch(t *testing.T) {
	path := writeSample(t)

	out, err := runCLI(t, "--file", path, "list")
	require.NoError(t, err)
	require.Contains(t, out, "#1 [billing] Как оплатить подписку")
	require.Contains(t, out, "2 question(s)")

	out, err = runCLI(t, "--file", path, "list", "orders")
	require.NoError(t, err)
	require.NotContains(t, out, "#1 ")
	require.Contains(t, out, "#2 [orders]")

	out, err = runCLI(t, "--file", path, "search", "оплата")
	require.NoError(t, err)
	require.Contains(t, out, "#1 [billing]")
	require.NotContains(t, out, "#2 ")
}

func TestCLI_AskPrintsJSON(t *testing.T) {
	path := writeSample(t)

	out, err := runCLI(t, "--file", path, "--json", "ask", "оплата")
	require.NoError(t, err)

	var result faq.FuzzyResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	require.True(t, result.Success)
	require.Equal(t, 1, result.ResultsCount)
	require.Equal(t, int64(1), result.Matches[0].ID)
}

func TestCLI_AddEditDelete(t *testing.T) {
	path := writeSample(t)

	out, err := runCLI(t, "--file", path, "add", "-q", "Есть ли пробный период", "-a", "Да, 14 дней", "-c", "billing", "-k", "пробный,период")
	require.NoError(t, err)
	require.Contains(t, out, "added question #3")

	_, err = runCLI(t, "--file", path, "edit", "3", "--answer", "Да, 7 дней")
	require.NoError(t, err)

	_, err = runCLI(t, "--file", path, "edit", "3")
	require.ErrorContains(t, err, "nothing to change")

	data := readDocument(t, path)
	require.Len(t, data.FAQ, 3)
	require.Equal(t, "Да, 7 дней", data.FAQ[2].Answer)
	require.Equal(t, []string{"пробный", "период"}, data.FAQ[2].Keywords)

	_, err = runCLI(t, "--file", path, "delete", "3")
	require.ErrorContains(t, err, "without --yes")
	require.Len(t, readDocument(t, path).FAQ, 3)

	out, err = runCLI(t, "--file", path, "delete", "3", "--yes")
	require.NoError(t, err)
	require.Contains(t, out, "deleted question #3")
	require.Len(t, readDocument(t, path).FAQ, 2)
}

func TestCLI_HashPassword(t *testing.T) {
	out, err := runCLI(t, "hash-password", "pass1234")
	require.NoError(t, err)
	hash := bytes.TrimSpace([]byte(out))
	require.NoError(t, bcrypt.CompareHashAndPassword(hash, []byte("pass1234")))
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "faq.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleDocument), 0o644))
	return path
}

func readDocument(t *testing.T, path string) faq.Data {
	t.Helper()
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var data faq.Data
	require.NoError(t, json.Unmarshal(raw, &data))
	return data
}
