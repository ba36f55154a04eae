package cli

import (
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/moorcli/moor/test"
)

type TestLogger = test.Logger

const sampleInventory = `[global]
log-level = debug

[target "web"]
host = web-1

[target "db"]
host = db-1
service-url = cluster
tmpdir = /var/tmp
`

// writeInventory drops an inventory file into a fresh temp dir and
// returns its path.
func writeInventory(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// fakeLXC puts an lxc stand-in on PATH. It answers `remote list` and
// `list` with a fixed landscape (web-1 running, db-1 stopped, remote
// "local" only), appends every argv to a log file and hands anything
// else to the extra script fragment. Returns the argv log path.
func fakeLXC(t *testing.T, extra string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell shim not supported on windows")
	}

	dir := t.TempDir()
	argLog := filepath.Join(dir, "argv.log")
	script := `#!/bin/sh
printf '%s\n' "$*" >> "` + argLog + `"
if [ "$1" = "remote" ] && [ "$2" = "list" ]; then
  printf '%s' '{"local":{"Addr":"unix://","AuthType":"","Project":"default","Protocol":"lxd","Public":false,"Global":false,"Static":true}}'
  exit 0
fi
if [ "$1" = "list" ]; then
  printf '%s' '[{"name":"db-1","status":"Stopped","status_code":102,"type":"container"},{"name":"web-1","status":"Running","status_code":103,"type":"container"}]'
  exit 0
fi
` + extra + `
exit 0
`
	shim := filepath.Join(dir, "lxc")
	if err := os.WriteFile(shim, []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))
	return argLog
}

// shimCalls reads back the argv lines the shim recorded.
func shimCalls(t *testing.T, argLog string) []string {
	t.Helper()
	data, err := os.ReadFile(argLog)
	if err != nil {
		t.Fatal(err)
	}
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}

// captureStdout runs fn with os.Stdout redirected into a pipe and
// returns what fn wrote.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	oldStdout := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = oldStdout }()

	fn()

	w.Close()
	out := new(strings.Builder)
	if _, err := io.Copy(out, r); err != nil {
		t.Fatal(err)
	}
	return out.String()
}
