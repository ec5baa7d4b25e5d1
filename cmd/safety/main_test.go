package main

import "testing"

func TestRun_RejectsWrongArgCount(t *testing.T) {
	if code := run([]string{}); code != exitArgError {
		t.Fatalf("expected exitArgError, got %d", code)
	}
}

func TestRun_ResourceUnavailableForMissingCar(t *testing.T) {
	if code := run([]string{"no-such-car-xyz"}); code != exitResourceUnavailable {
		t.Fatalf("expected exitResourceUnavailable, got %d", code)
	}
}
