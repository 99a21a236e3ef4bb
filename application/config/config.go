/*
 * © 2026 Snyk Limited
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package config

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const (
	DefaultServerURL         = "http://localhost:9000"
	DefaultRequestsPerSecond = 10.0
	DefaultDebounceDelay     = 300 * time.Millisecond
	DefaultSearchConcurrency = 4
)

var (
	Version = "SNAPSHOT"
	// Development is overridden at build time for release builds.
	Development = "true"
)

type Config struct {
	m                     sync.RWMutex
	serverURL             string
	token                 string
	logPath               string
	logFile               *os.File
	logger                *zerolog.Logger
	errorReportingEnabled bool
	sentryDSN             string
	settingsFile          string
	snapshotDir           string
	requestsPerSecond     float64
	debounceDelay         time.Duration
	searchConcurrency     int
	analysisMode          string
	analysisType          string
	coverageInEditor      bool
	disableEditorTags     bool
	projectRoot           string
	projectKey            string
	insecure              bool
}

// New creates a configuration with default values.
func New(opts ...ConfigOption) *Config {
	c := &Config{
		serverURL:             DefaultServerURL,
		errorReportingEnabled: true,
		requestsPerSecond:     DefaultRequestsPerSecond,
		debounceDelay:         DefaultDebounceDelay,
		searchConcurrency:     DefaultSearchConcurrency,
		analysisMode:          "server",
		analysisType:          "file",
		coverageInEditor:      true,
	}
	nop := zerolog.Nop()
	c.logger = &nop
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// IsDevelopment is true for builds not produced by the release pipeline.
func IsDevelopment() bool {
	return Development == "true"
}

func (c *Config) ServerURL() string {
	c.m.RLock()
	defer c.m.RUnlock()
	return c.serverURL
}

func (c *Config) SetServerURL(serverURL string) {
	c.m.Lock()
	defer c.m.Unlock()
	c.serverURL = serverURL
}

func (c *Config) Token() string {
	c.m.RLock()
	defer c.m.RUnlock()
	return c.token
}

func (c *Config) SetToken(token string) {
	c.m.Lock()
	defer c.m.Unlock()
	c.token = token
}

func (c *Config) LogPath() string {
	c.m.RLock()
	defer c.m.RUnlock()
	return c.logPath
}

func (c *Config) SetLogPath(logPath string) {
	c.m.Lock()
	defer c.m.Unlock()
	c.logPath = logPath
}

func (c *Config) SetLogLevel(level string) {
	parseLevel, err := zerolog.ParseLevel(level)
	if err == nil {
		zerolog.SetGlobalLevel(parseLevel)
	}
}

func (c *Config) LogLevel() string {
	return zerolog.GlobalLevel().String()
}

func (c *Config) Logger() *zerolog.Logger {
	c.m.RLock()
	defer c.m.RUnlock()
	return c.logger
}

func (c *Config) IsErrorReportingEnabled() bool {
	c.m.RLock()
	defer c.m.RUnlock()
	return c.errorReportingEnabled
}

func (c *Config) SetErrorReportingEnabled(enabled bool) {
	c.m.Lock()
	defer c.m.Unlock()
	c.errorReportingEnabled = enabled
}

func (c *Config) SentryDSN() string {
	c.m.RLock()
	defer c.m.RUnlock()
	return c.sentryDSN
}

func (c *Config) SetSentryDSN(dsn string) {
	c.m.Lock()
	defer c.m.Unlock()
	c.sentryDSN = dsn
}

// SettingsFile is empty unless configured; the settings store then picks its XDG default.
func (c *Config) SettingsFile() string {
	c.m.RLock()
	defer c.m.RUnlock()
	return c.settingsFile
}

func (c *Config) SetSettingsFile(file string) {
	c.m.Lock()
	defer c.m.Unlock()
	c.settingsFile = file
}

func (c *Config) SnapshotDir() string {
	c.m.RLock()
	defer c.m.RUnlock()
	return c.snapshotDir
}

func (c *Config) SetSnapshotDir(dir string) {
	c.m.Lock()
	defer c.m.Unlock()
	c.snapshotDir = dir
}

func (c *Config) RequestsPerSecond() float64 {
	c.m.RLock()
	defer c.m.RUnlock()
	return c.requestsPerSecond
}

func (c *Config) SetRequestsPerSecond(rps float64) {
	c.m.Lock()
	defer c.m.Unlock()
	c.requestsPerSecond = rps
}

func (c *Config) DebounceDelay() time.Duration {
	c.m.RLock()
	defer c.m.RUnlock()
	return c.debounceDelay
}

func (c *Config) SetDebounceDelay(delay time.Duration) {
	c.m.Lock()
	defer c.m.Unlock()
	c.debounceDelay = delay
}

func (c *Config) SearchConcurrency() int {
	c.m.RLock()
	defer c.m.RUnlock()
	return c.searchConcurrency
}

func (c *Config) SetSearchConcurrency(n int) {
	c.m.Lock()
	defer c.m.Unlock()
	if n < 1 {
		n = 1
	}
	c.searchConcurrency = n
}

// AnalysisMode is the initial analysis mode, "server" or "local".
func (c *Config) AnalysisMode() string {
	c.m.RLock()
	defer c.m.RUnlock()
	return c.analysisMode
}

func (c *Config) SetAnalysisMode(mode string) {
	c.m.Lock()
	defer c.m.Unlock()
	c.analysisMode = mode
}

// AnalysisType is the initial analysis type, "file" or "solution".
func (c *Config) AnalysisType() string {
	c.m.RLock()
	defer c.m.RUnlock()
	return c.analysisType
}

func (c *Config) SetAnalysisType(analysisType string) {
	c.m.Lock()
	defer c.m.Unlock()
	c.analysisType = analysisType
}

func (c *Config) IsCoverageInEditorEnabled() bool {
	c.m.RLock()
	defer c.m.RUnlock()
	return c.coverageInEditor
}

func (c *Config) SetCoverageInEditorEnabled(enabled bool) {
	c.m.Lock()
	defer c.m.Unlock()
	c.coverageInEditor = enabled
}

func (c *Config) IsEditorTagsDisabled() bool {
	c.m.RLock()
	defer c.m.RUnlock()
	return c.disableEditorTags
}

func (c *Config) SetEditorTagsDisabled(disabled bool) {
	c.m.Lock()
	defer c.m.Unlock()
	c.disableEditorTags = disabled
}

func (c *Config) ProjectRoot() string {
	c.m.RLock()
	defer c.m.RUnlock()
	return c.projectRoot
}

func (c *Config) SetProjectRoot(root string) {
	c.m.Lock()
	defer c.m.Unlock()
	c.projectRoot = root
}

// ProjectKey is the project associated on startup, if any.
func (c *Config) ProjectKey() string {
	c.m.RLock()
	defer c.m.RUnlock()
	return c.projectKey
}

func (c *Config) SetProjectKey(key string) {
	c.m.Lock()
	defer c.m.Unlock()
	c.projectKey = key
}

// IsInsecure disables TLS certificate verification for the server connection.
func (c *Config) IsInsecure() bool {
	c.m.RLock()
	defer c.m.RUnlock()
	return c.insecure
}

func (c *Config) SetInsecure(insecure bool) {
	c.m.Lock()
	defer c.m.Unlock()
	c.insecure = insecure
}

// ConfigureLogging writes to stderr and, if a log path is set, to that file. SONAR_LS_LOG_LEVEL
// overrides the level given on the command line.
func (c *Config) ConfigureLogging() {
	logLevel, err := zerolog.ParseLevel(c.LogLevel())
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "Can't set log level from flag. Setting to default (=info)")
		logLevel = zerolog.InfoLevel
	}

	// env var overrides flag
	envLogLevel := os.Getenv(EnvPrefix + "_LOG_LEVEL")
	if envLogLevel != "" {
		_, _ = fmt.Fprintln(os.Stderr, "Setting log level from environment variable ("+EnvPrefix+"_LOG_LEVEL) \""+envLogLevel+"\"")
		if envLevel, levelErr := zerolog.ParseLevel(envLogLevel); levelErr == nil {
			logLevel = envLevel
		}
	}
	c.SetLogLevel(logLevel.String())

	writers := []io.Writer{os.Stderr}
	if logPath := c.LogPath(); logPath != "" {
		logFile, openErr := os.OpenFile(logPath, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o600)
		if openErr != nil {
			_, _ = fmt.Fprintln(os.Stderr, "couldn't open logfile")
		} else {
			_, _ = fmt.Fprintln(os.Stderr, "adding file logger to file "+logPath)
			writers = append(writers, logFile)
		}
		c.m.Lock()
		if c.logFile != nil {
			_ = c.logFile.Close()
		}
		c.logFile = logFile
		c.m.Unlock()
	}

	c.m.Lock()
	defer c.m.Unlock()
	writer := consoleWriter(zerolog.MultiLevelWriter(writers...))
	logger := zerolog.New(writer).With().Timestamp().Str("method", "").Logger().Level(logLevel)
	c.logger = &logger
}

func consoleWriter(writer io.Writer) zerolog.ConsoleWriter {
	return zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
		w.Out = writer
		w.NoColor = true
		w.TimeFormat = time.RFC3339Nano
		w.PartsOrder = []string{
			zerolog.TimestampFieldName,
			zerolog.LevelFieldName,
			"method",
			zerolog.CallerFieldName,
			zerolog.MessageFieldName,
		}
		w.FieldsExclude = []string{"method"}
	})
}

// DisableLoggingToFile closes the log file, if any.
func (c *Config) DisableLoggingToFile() {
	c.m.Lock()
	defer c.m.Unlock()
	if c.logFile != nil {
		_ = c.logFile.Close()
		c.logFile = nil
	}
}
