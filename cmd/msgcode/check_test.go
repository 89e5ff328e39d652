package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/loopcontext/msgcode/resource"
)

func TestRunCheck(t *testing.T) {
	dir := t.TempDir()
	a := writeTestFile(t, dir, "a.properties", "APP001-I=Started\nAPP002-E=Failed\n")
	b := writeTestFile(t, dir, "b.yaml", "APP002-W: Failed again\n")
	missing := filepath.Join(dir, "missing.properties")

	var buf bytes.Buffer
	err := runCheck(context.Background(), &buf, resource.NewFileLoader(nil), []string{a, b, missing})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "missing.properties: not found") {
		t.Errorf("missing resource not reported:\n%s", out)
	}
	if !strings.Contains(out, "APP002 defined in") {
		t.Errorf("duplicate code not reported:\n%s", out)
	}
	if !strings.Contains(out, "2 message(s) in 2 resource(s)") {
		t.Errorf("unexpected summary:\n%s", out)
	}
}

func TestRunCheck_invalid(t *testing.T) {
	dir := t.TempDir()
	bad := writeTestFile(t, dir, "bad.properties", "APP001-I=Started\nBROKEN=oops\n")

	var buf bytes.Buffer
	err := runCheck(context.Background(), &buf, resource.NewFileLoader(nil), []string{bad})
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(buf.String(), "error: "+bad) {
		t.Errorf("invalid resource not reported:\n%s", buf.String())
	}
}

func TestRunCheck_noResource(t *testing.T) {
	if err := runCheck(context.Background(), &bytes.Buffer{}, resource.NewFileLoader(nil), nil); err == nil {
		t.Fatal("expected an error")
	}
}
