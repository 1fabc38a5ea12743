package main

import (
	"fmt"
	"os"
	"strings"
)

// uiMode is the value of `expand --ui`: whether a directory expansion draws
// the interactive per-file progress view.
type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

var uiModeNames = map[string]uiMode{
	"":      uiModeAuto,
	"auto":  uiModeAuto,
	"on":    uiModeOn,
	"true":  uiModeOn,
	"off":   uiModeOff,
	"false": uiModeOff,
}

func readUIMode(value string) (uiMode, error) {
	if mode, ok := uiModeNames[strings.ToLower(strings.TrimSpace(value))]; ok {
		return mode, nil
	}
	return "", fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
}

// wantsProgressView решает, рисовать ли прогресс поверх out.
// Только для emit=source: остальные форматы пишут результат в stdout,
// и прогресс смешался бы с ним.
func wantsProgressView(mode uiMode, emit emitKind, quiet bool, out *os.File) bool {
	if quiet || emit != emitSource {
		return false
	}
	switch mode {
	case uiModeOn:
		return true
	case uiModeOff:
		return false
	default:
		return isTerminal(out)
	}
}
