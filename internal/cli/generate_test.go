package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	genspec "github.com/mark3labs/swagger2retrofit/internal/spec"
)

const minimalSpecYAML = "" +
	"openapi: 3.0.0\n" +
	"info:\n" +
	"  title: Test API\n" +
	"  version: '1.0.0'\n" +
	"paths:\n" +
	"  /v1/greetings/{id}:\n" +
	"    get:\n" +
	"      summary: Hello\n" +
	"      parameters:\n" +
	"        - in: path\n" +
	"          name: id\n" +
	"          required: true\n" +
	"          schema:\n" +
	"            type: string\n" +
	"      responses:\n" +
	"        '200':\n" +
	"          description: ok\n" +
	"          content:\n" +
	"            application/json:\n" +
	"              schema:\n" +
	"                $ref: '#/components/schemas/Greeting'\n" +
	"components:\n" +
	"  schemas:\n" +
	"    Greeting:\n" +
	"      type: object\n" +
	"      properties:\n" +
	"        message_text:\n" +
	"          type: string\n"

func writeSpec(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "spec.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRunGenerate_WritesFiles(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	outDir := filepath.Join(dir, "out")
	var stdout, stderr bytes.Buffer

	err := runGenerate(context.Background(), &Config{
		Input:     writeSpec(t, dir, minimalSpecYAML),
		Output:    outDir,
		LogFormat: "text",
		Stdout:    &stdout,
		Stderr:    &stderr,
	})
	require.NoError(t, err)

	service, err := os.ReadFile(filepath.Join(outDir, "service", "GreetingService.kt"))
	require.NoError(t, err)
	assert.Contains(t, string(service), `suspend fun getGreeting(@Path("id") id: String): Response<Greeting>`)

	model, err := os.ReadFile(filepath.Join(outDir, "model", "dto", "GreetingDto.kt"))
	require.NoError(t, err)
	assert.Contains(t, string(model), `@SerializedName("message_text") val messageText: String = ""`)

	assert.Contains(t, stderr.String(), "writing file")
	assert.Contains(t, stderr.String(), "service/GreetingService.kt")
	assert.Empty(t, stdout.String())
}

func TestRunGenerate_DryRunWritesNothing(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	outDir := filepath.Join(dir, "out")
	var stdout bytes.Buffer

	err := runGenerate(context.Background(), &Config{
		Input:     writeSpec(t, dir, minimalSpecYAML),
		Output:    outDir,
		LogFormat: "json",
		DryRun:    true,
		Stdout:    &stdout,
		Stderr:    &bytes.Buffer{},
	})
	require.NoError(t, err)

	assert.Contains(t, stdout.String(), "Planned writes to")
	assert.Contains(t, stdout.String(), "(2 files)")
	assert.Contains(t, stdout.String(), "- service/GreetingService.kt\n")
	assert.Contains(t, stdout.String(), "- model/dto/GreetingDto.kt\n")
	_, err = os.Stat(outDir)
	assert.True(t, os.IsNotExist(err), "dry run must not create the output directory")
}

func TestRunGenerate_SpecErrorIsUsageError(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	bad := "openapi: 3.0.0\npaths:\n  /x:\n    get:\n      responses: [1, 2]\n"

	err := runGenerate(context.Background(), &Config{
		Input:     writeSpec(t, dir, bad),
		Output:    filepath.Join(dir, "out"),
		LogFormat: "text",
		Stdout:    &bytes.Buffer{},
		Stderr:    &bytes.Buffer{},
	})
	require.ErrorIs(t, err, ErrUsage)
	assert.Contains(t, err.Error(), "spec: ")
	assert.Contains(t, err.Error(), "Pointer: #/paths/~1x/get/responses")

	var se *genspec.SpecError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, genspec.DecodeError, se.Code)
}

func TestRunGenerate_MissingInput(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	err := runGenerate(context.Background(), &Config{
		Input:     filepath.Join(dir, "missing.yaml"),
		Output:    filepath.Join(dir, "out"),
		LogFormat: "text",
		Stdout:    &bytes.Buffer{},
		Stderr:    &bytes.Buffer{},
	})
	require.ErrorIs(t, err, ErrUsage)
	assert.Contains(t, err.Error(), "Location: ")
}

func TestRunGenerate_UnwritableOutput(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	blocker := filepath.Join(dir, "out")
	require.NoError(t, os.WriteFile(blocker, []byte("not a directory"), 0o600))

	err := runGenerate(context.Background(), &Config{
		Input:     writeSpec(t, dir, minimalSpecYAML),
		Output:    blocker,
		LogFormat: "text",
		Stdout:    &bytes.Buffer{},
		Stderr:    &bytes.Buffer{},
	})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUsage)
	assert.Contains(t, err.Error(), "service/GreetingService.kt")
}

func TestNewLogger_LevelAndFormat(t *testing.T) {
	t.Parallel()
	var text bytes.Buffer
	newLogger("text", false, &text).Debug("hidden")
	newLogger("text", false, &text).Info("shown")
	assert.NotContains(t, text.String(), "hidden")
	assert.Contains(t, text.String(), "msg=shown")

	var js bytes.Buffer
	newLogger("json", true, &js).Debug("detail")
	assert.Contains(t, js.String(), `"msg":"detail"`)
	assert.Contains(t, js.String(), `"level":"DEBUG"`)
}
