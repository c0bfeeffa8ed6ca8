package errors

import (
	"testing"

	"github.com/sml-lang/interp/internal/ast"
)

func TestAsReportRoundTrips(t *testing.T) {
	err := NewTypecheck(TC002, "unbound identifier \"foo\"", ast.Pos{File: "t.sml", Line: 3, Column: 1}, nil)
	rep, ok := AsReport(err)
	if !ok {
		t.Fatalf("expected AsReport to find a Report")
	}
	if rep.Code != TC002 || rep.Phase != "typecheck" {
		t.Fatalf("unexpected report: %+v", rep)
	}
}

func TestGetErrorInfoKnownCode(t *testing.T) {
	info, ok := GetErrorInfo(EVA001)
	if !ok {
		t.Fatalf("expected EVA001 to be registered")
	}
	if info.Phase != "eval" {
		t.Fatalf("expected phase eval, got %s", info.Phase)
	}
}

func TestGetErrorInfoUnknownCode(t *testing.T) {
	if _, ok := GetErrorInfo("ZZZ999"); ok {
		t.Fatalf("expected unknown code to be absent")
	}
}
