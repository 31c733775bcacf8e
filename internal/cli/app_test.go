package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	gojson "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	genieerrors "github.com/gogenie/annotate/internal/errors"
)

const userSource = `package svc

// @service(user,route="user")
type UserService interface {
	// @http(method=get,route="list")
	GetUserList() error
}

// @enum(CtxKey)
const (
	CtxKeyUserGroupIDs = 1
	CtxKeyTraceID      = 2
)

// @mount(config)
type AppConfig struct {
	RedisConfig string
}

// @config(config=RedisConfig)
func NewCache() {}
`

const generatedEnum = `package enum

type CtxKey int

const (
	CtxKeyUserGroupIDs CtxKey = 1
	CtxKeyTraceID      CtxKey = 2
)
`

const generatedRouter = `package user

func Register(router Router, svc UserService) {
	router.GET("user/list", svcH(svc.GetUserList))
}
`

type testApp struct {
	*App
	root   string
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

func newTestApp(t *testing.T, jsonMode bool, files map[string]string) *testApp {
	t.Helper()
	root := t.TempDir()
	all := map[string]string{
		"go.mod":                   "module example.com/shop\n",
		"svc/user.go":              userSource,
		"internal/enum/ctx_key.go": generatedEnum,
		"apis/user/user.go":        generatedRouter,
	}
	for name, content := range files {
		all[name] = content
	}
	for name, content := range all {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}

	var stdout, stderr bytes.Buffer
	app, err := NewApp(Config{Root: root, JSON: jsonMode, Stdout: &stdout, Stderr: &stderr})
	require.NoError(t, err)
	return &testApp{App: app, root: app.Analyzer().Project().Root(), stdout: &stdout, stderr: &stderr}
}

func (a *testApp) path(name string) string {
	return filepath.Join(a.root, filepath.FromSlash(name))
}

func (a *testApp) run(t *testing.T, args ...string) error {
	t.Helper()
	a.stdout.Reset()
	a.stderr.Reset()
	return a.Run(context.Background(), args)
}

func TestRunRequiresKnownCommand(t *testing.T) {
	app := newTestApp(t, false, nil)

	err := app.run(t)
	assert.True(t, genieerrors.IsCode(err, genieerrors.UsageErrorCode))

	err = app.run(t, "frobnicate")
	assert.True(t, genieerrors.IsCode(err, genieerrors.UsageErrorCode))
	assert.Contains(t, err.Error(), "frobnicate")

	err = app.run(t, "annotations")
	assert.True(t, genieerrors.IsCode(err, genieerrors.UsageErrorCode))
	assert.Contains(t, err.Error(), "annotations <file>")
}

func TestCommandsAreSorted(t *testing.T) {
	var names []string
	for _, command := range Commands() {
		names = append(names, command.Name)
		assert.NotEmpty(t, command.Summary)
	}
	assert.Equal(t, []string{"annotations", "commands", "complete", "config", "enum", "lint", "mounts", "routes", "serve"}, names)
}

func TestAnnotationsText(t *testing.T) {
	app := newTestApp(t, false, nil)

	require.NoError(t, app.run(t, "annotations", app.path("svc/user.go")))
	out := app.stdout.String()
	assert.Contains(t, out, "svc/user.go:3 @service")
	assert.Contains(t, out, "svc/user.go:5 @http")
	assert.Contains(t, out, "svc/user.go:9 @enum")
	assert.Contains(t, out, "run: gogenie enum")

	err := app.run(t, "annotations", app.path("svc/missing.go"))
	assert.True(t, genieerrors.IsCode(err, genieerrors.FileSystemErrorCode))
}

func TestAnnotationsJSON(t *testing.T) {
	app := newTestApp(t, true, nil)

	require.NoError(t, app.run(t, "annotations", app.path("svc/user.go")))
	var result []struct {
		Line    int `json:"line"`
		Matches []struct {
			Name       string `json:"name"`
			Recognized bool   `json:"recognized"`
		} `json:"matches"`
	}
	require.NoError(t, gojson.Unmarshal(app.stdout.Bytes(), &result))

	var names []string
	for _, entry := range result {
		for _, m := range entry.Matches {
			names = append(names, m.Name)
			assert.True(t, m.Recognized, m.Name)
		}
	}
	assert.Equal(t, []string{"service", "http", "enum", "mount", "config"}, names)
	assert.Empty(t, app.stderr.String(), "JSON mode keeps logs quiet")
}

func TestComplete(t *testing.T) {
	app := newTestApp(t, false, map[string]string{"svc/draft.go": "package svc\n\n// @en"})
	draft := app.path("svc/draft.go")

	require.NoError(t, app.run(t, "complete", draft, strconv.Itoa(len("package svc\n\n// @en"))))
	out := app.stdout.String()
	assert.True(t, strings.HasPrefix(out, `annotation_name (prefix "en")`), out)
	assert.Contains(t, out, "  @enum")

	err := app.run(t, "complete", draft, "999")
	assert.True(t, genieerrors.IsCode(err, genieerrors.UsageErrorCode))
	err = app.run(t, "complete", draft, "x")
	assert.True(t, genieerrors.IsCode(err, genieerrors.UsageErrorCode))
}

func TestEnum(t *testing.T) {
	app := newTestApp(t, false, nil)
	file := app.path("svc/user.go")

	require.NoError(t, app.run(t, "enum", file))
	out := app.stdout.String()
	assert.Contains(t, out, "svc/user.go:9:")
	assert.Contains(t, out, "CtxKey.CtxKeyTraceID")

	offset := strings.Index(userSource, "CtxKeyTraceID") + 1
	require.NoError(t, app.run(t, "enum", file, strconv.Itoa(offset)))
	assert.Equal(t, "CtxKey.CtxKeyTraceID -> internal/enum/ctx_key.go:7:2\n", app.stdout.String())

	require.NoError(t, app.run(t, "enum", file, "0"))
	assert.Equal(t, "no enum reference at offset\n", app.stdout.String())
}

func TestRoutes(t *testing.T) {
	app := newTestApp(t, false, nil)

	require.NoError(t, app.run(t, "routes", app.path("svc/user.go"), "--deep"))
	out := app.stdout.String()
	assert.Contains(t, out, "GET user/list")
	assert.Contains(t, out, "GetUserList")
	assert.Contains(t, out, "apis/user/user.go:4:")

	err := app.run(t, "routes", "--bogus", app.path("svc/user.go"))
	assert.True(t, genieerrors.IsCode(err, genieerrors.UsageErrorCode))
}

func TestMounts(t *testing.T) {
	app := newTestApp(t, true, nil)

	require.NoError(t, app.run(t, "mounts"))
	var listing mountListing
	require.NoError(t, gojson.Unmarshal(app.stdout.Bytes(), &listing))
	assert.Equal(t, []string{"config"}, listing.Aliases)
	require.Len(t, listing.Bindings["config"], 1)
	assert.Equal(t, bindingSummary{Path: "svc/user.go", StructName: "AppConfig", Fields: []string{"RedisConfig"}}, listing.Bindings["config"][0])
	assert.NotEmpty(t, listing.Generation.ID)

	require.NoError(t, app.run(t, "mounts", app.path("svc/user.go")))
	var values []struct {
		Anchor struct {
			ValueName string `json:"valueName"`
		} `json:"anchor"`
		Target *struct {
			StructName string `json:"structName"`
			FieldName  string `json:"fieldName"`
		} `json:"target"`
	}
	require.NoError(t, gojson.Unmarshal(app.stdout.Bytes(), &values))
	require.Len(t, values, 1)
	assert.Equal(t, "RedisConfig", values[0].Anchor.ValueName)
	require.NotNil(t, values[0].Target)
	assert.Equal(t, "RedisConfig", values[0].Target.FieldName)
}

func TestLint(t *testing.T) {
	app := newTestApp(t, false, nil)

	require.NoError(t, app.run(t, "lint"), "warnings alone do not fail")
	assert.NotContains(t, app.stdout.String(), ": error:")

	bad := app.path("svc/bad.go")
	require.NoError(t, os.WriteFile(bad, []byte("package svc\n\n// @http(=get)\nfunc A() {}\n"), 0644))
	err := app.run(t, "lint", app.path("svc"))
	require.Error(t, err)
	assert.True(t, genieerrors.IsCode(err, genieerrors.SyntaxErrorCode))
	assert.Contains(t, app.stdout.String(), "svc/bad.go:3:")
	assert.Contains(t, app.stdout.String(), "(empty-key)")

	err = app.run(t, "lint", app.path("nowhere"))
	assert.True(t, genieerrors.IsCode(err, genieerrors.FileSystemErrorCode))
}

func TestCommands(t *testing.T) {
	app := newTestApp(t, false, nil)

	require.NoError(t, app.run(t, "commands", "@rule", "./svc/user.go"))
	assert.Equal(t, "rule\tgogenie rule --scope ./svc/user.go\n", app.stdout.String())

	require.NoError(t, app.run(t, "commands", "nope"))
	assert.Equal(t, "no generator command for @nope\n", app.stdout.String())
}

func TestConfig(t *testing.T) {
	app := newTestApp(t, true, nil)

	require.NoError(t, app.run(t, "config", "--enum-output", "./gen/enums", "--diff"))
	var preview configResult
	require.NoError(t, gojson.Unmarshal(app.stdout.Bytes(), &preview))
	assert.Equal(t, app.path(".gogenie/config.yaml"), preview.Path)
	assert.Contains(t, preview.YAML, "./gen/enums")
	assert.Contains(t, preview.Diff, "+")
	assert.False(t, preview.Written)
	_, err := os.Stat(preview.Path)
	assert.True(t, os.IsNotExist(err), "previews do not write")

	require.NoError(t, app.run(t, "config", "--enum-output", "./gen/enums", "--write"))
	var written configResult
	require.NoError(t, gojson.Unmarshal(app.stdout.Bytes(), &written))
	assert.True(t, written.Written)
	content, err := os.ReadFile(written.Path)
	require.NoError(t, err)
	assert.Equal(t, written.YAML, string(content))
	assert.Equal(t, "./gen/enums", app.Analyzer().Project().Profiles.Config().EnumOutputPath)

	err = app.run(t, "config", "extra")
	assert.True(t, genieerrors.IsCode(err, genieerrors.UsageErrorCode))
}

func TestServeValidatesFlags(t *testing.T) {
	app := newTestApp(t, false, nil)

	err := app.run(t, "serve", "--addr", "nowhere")
	assert.True(t, genieerrors.IsCode(err, genieerrors.UsageErrorCode))

	err = app.run(t, "serve", "--engine", "martini")
	assert.True(t, genieerrors.IsCode(err, genieerrors.UsageErrorCode))
	assert.Contains(t, err.Error(), "must be one of")
}

func TestScanReports(t *testing.T) {
	app := newTestApp(t, false, nil)

	require.NoError(t, app.run(t, "mounts"))
	assert.Equal(t, "config\n    AppConfig (svc/user.go): RedisConfig\n", app.stdout.String())
	report := app.stderr.String()
	assert.Contains(t, report, "Indexing:\n")
	assert.Contains(t, report, "Mount index\n")
	assert.Contains(t, report, "   aliases: 1\n")
	assert.Contains(t, report, "   bindings: 1\n")

	require.NoError(t, app.run(t, "lint"))
	report = app.stderr.String()
	assert.Contains(t, report, "Linting:\n")
	assert.Contains(t, report, "files checked")
	assert.Contains(t, report, "   errors: 0\n")

	require.NoError(t, app.run(t, "config", "--enum-output", "./gen/enums", "--write"))
	assert.Contains(t, app.stderr.String(), "gogenie: config updated\n")
}

func TestScanReportsStayOffJSONOutput(t *testing.T) {
	app := newTestApp(t, true, nil)

	require.NoError(t, app.run(t, "mounts"))
	require.NoError(t, app.run(t, "lint"))
	assert.Empty(t, app.stderr.String())
}
