// Copyright 2019, RadiantBlue Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package util

import (
	"os"

	"github.com/rs/zerolog"
)

// Severity is a syslog-style message severity
type Severity int

// Syslog severities used in audit messages
const (
	FATAL  Severity = 2
	ERROR  Severity = 3
	WARN   Severity = 4
	NOTICE Severity = 5
	INFO   Severity = 6
	DEBUG  Severity = 7
)

var logger = zerolog.New(os.Stderr).With().Timestamp().Logger()

// LogContext carries application identity through logging calls
type LogContext interface {
	AppName() string
	SessionID() string
	LogRootDir() string
}

// BasicLogContext is a LogContext with a lazily generated session ID
type BasicLogContext struct {
	sessionID string
}

// AppName returns the application name
func (c *BasicLogContext) AppName() string {
	return "goes-ash-broker"
}

// SessionID returns a session ID, creating one if needed
func (c *BasicLogContext) SessionID() string {
	if c.sessionID == "" {
		c.sessionID, _ = PsuUUID()
	}
	return c.sessionID
}

// LogRootDir returns an empty string
func (c *BasicLogContext) LogRootDir() string {
	return ""
}

func event(ctx LogContext, lvl zerolog.Level) *zerolog.Event {
	return logger.WithLevel(lvl).
		Str("app", ctx.AppName()).
		Str("session", ctx.SessionID())
}

// LogInfo logs an informational message
func LogInfo(ctx LogContext, message string) {
	event(ctx, zerolog.InfoLevel).Msg(message)
}

// LogAlert logs a message that needs operator attention
func LogAlert(ctx LogContext, message string) {
	event(ctx, zerolog.WarnLevel).Msg(message)
}

// LogSimpleErr logs a message together with its underlying error
func LogSimpleErr(ctx LogContext, message string, err error) {
	event(ctx, zerolog.ErrorLevel).Err(err).Msg(message)
}

// LogAuditInput is the set of fields attached to an audit message
type LogAuditInput struct {
	Actor    string
	Action   string
	Actee    string
	Message  string
	Severity Severity
}

// LogAudit logs a structured audit message recording who did what to whom
func LogAudit(ctx LogContext, input LogAuditInput) {
	lvl := zerolog.InfoLevel
	switch input.Severity {
	case FATAL:
		lvl = zerolog.FatalLevel
	case ERROR:
		lvl = zerolog.ErrorLevel
	case WARN:
		lvl = zerolog.WarnLevel
	case DEBUG:
		lvl = zerolog.DebugLevel
	}
	event(ctx, lvl).
		Str("actor", input.Actor).
		Str("action", input.Action).
		Str("actee", input.Actee).
		Msg(input.Message)
}
