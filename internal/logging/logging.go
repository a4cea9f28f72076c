// Copyright 2025 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package logging prints the progress and the errors of a compilation.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/pterm/pterm"
	"github.com/gsomix/Cesium/build/fmterr"
)

// Level of the messages printed by a logger.
type Level int

const (
	// LevelSilent prints nothing.
	LevelSilent Level = iota
	// LevelError only prints errors.
	LevelError
	// LevelInfo prints errors and the progress of the compilation.
	LevelInfo
	// LevelVerbose prints everything, including the instructions of functions.
	LevelVerbose
)

var (
	infoColor  = pterm.FgLightGreen
	infoStyle  = pterm.NewStyle(pterm.BgLightGreen, pterm.FgBlack)
	errorColor = pterm.FgRed
	errorStyle = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	wipStyle   = pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
)

// Logger prints messages for the user.
type Logger struct {
	w     io.Writer
	level Level
}

// New returns a logger printing messages up to a given level.
func New(w io.Writer, level Level) *Logger {
	return &Logger{w: w, level: level}
}

// Default returns a logger printing progress messages on the standard output.
func Default() *Logger {
	return New(os.Stdout, LevelInfo)
}

// Discard returns a logger printing nothing.
func Discard() *Logger {
	return New(io.Discard, LevelSilent)
}

// Level returns the level of the logger.
func (l *Logger) Level() Level {
	return l.level
}

func (l *Logger) print(level Level, tag string, style *pterm.Style, color pterm.Color, msg string) {
	if l.level < level {
		return
	}
	fmt.Fprintln(l.w, style.Sprint(tag)+" "+color.Sprint(msg))
}

// Infof prints a progress message.
func (l *Logger) Infof(format string, a ...any) {
	l.print(LevelInfo, "Info", infoStyle, infoColor, fmt.Sprintf(format, a...))
}

// Verbosef prints a detailed message.
func (l *Logger) Verbosef(format string, a ...any) {
	if l.level < LevelVerbose {
		return
	}
	fmt.Fprintf(l.w, format+"\n", a...)
}

// Error prints an error with a tag given the category of the error.
func (l *Logger) Error(err error) {
	if err == nil {
		return
	}
	switch cat := fmterr.CategoryOf(err); cat {
	case fmterr.Unimplemented:
		l.print(LevelError, "Not Implemented", wipStyle, errorColor, err.Error())
	case fmterr.Internal:
		l.print(LevelError, "Internal Error", errorStyle, errorColor, fmt.Sprintf("%+v", err))
	default:
		l.print(LevelError, categoryTag(cat), errorStyle, errorColor, err.Error())
	}
}

func categoryTag(cat fmterr.Category) string {
	switch cat {
	case fmterr.Parse:
		return "Parse Error"
	case fmterr.Input:
		return "Input Error"
	}
	return "Compilation Error"
}
