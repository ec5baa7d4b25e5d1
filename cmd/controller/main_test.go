package main

import "testing"

func TestRun_RejectsPositionalArgs(t *testing.T) {
	if code := run([]string{"unexpected"}); code != exitArgError {
		t.Fatalf("expected exitArgError, got %d", code)
	}
}

func TestRun_RejectsUnknownConfigFile(t *testing.T) {
	if code := run([]string{"-config", "/no/such/file.yaml"}); code != exitArgError {
		t.Fatalf("expected exitArgError, got %d", code)
	}
}

func TestRun_PrintsVersionAndExits(t *testing.T) {
	if code := run([]string{"-version"}); code != exitOK {
		t.Fatalf("expected exitOK, got %d", code)
	}
}
