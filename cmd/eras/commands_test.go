package main

import (
	"strings"
	"testing"
)

func TestImportCommand_MissingPeriod(t *testing.T) {
	defer rootCmd.SetArgs(nil)

	rootCmd.SetArgs([]string{"import", "notes.txt"})
	err := rootCmd.Execute()
	if err == nil {
		t.Fatal("expected error for missing --period")
	}
	if !strings.Contains(err.Error(), "period") {
		t.Errorf("error = %q, want it to mention 'period'", err.Error())
	}
}

func TestImportCommand_BadPeriod(t *testing.T) {
	defer rootCmd.SetArgs(nil)

	rootCmd.SetArgs([]string{"import", "notes.txt", "--period", "atlantis"})
	err := rootCmd.Execute()
	if err == nil {
		t.Fatal("expected error for unknown period")
	}
}

func TestImportCommand_MissingFileArg(t *testing.T) {
	defer rootCmd.SetArgs(nil)

	rootCmd.SetArgs([]string{"import"})
	if err := rootCmd.Execute(); err == nil {
		t.Fatal("expected error for missing file argument")
	}
}

func TestPaint(t *testing.T) {
	old := noColor
	defer func() { noColor = old }()

	noColor = true
	result := paint(ansiGreen, "test")
	if strings.Contains(result, "\033") {
		t.Errorf("paint with noColor=true should not contain ANSI codes, got %q", result)
	}
	if result != "test" {
		t.Errorf("result = %q, want plain text", result)
	}

	noColor = false
	result = paint(ansiGreen, "test")
	if !strings.Contains(result, "\033") {
		t.Errorf("paint with noColor=false should contain ANSI codes, got %q", result)
	}
}
