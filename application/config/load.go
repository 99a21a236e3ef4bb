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
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

const (
	EnvPrefix      = "SONAR_LS"
	configBaseName = "sonar-ls"
)

const (
	keyServerURL         = "server_url"
	keyToken             = "token"
	keyLogPath           = "log_path"
	keyErrorReporting    = "error_reporting"
	keySentryDSN         = "sentry_dsn"
	keySettingsFile      = "settings_file"
	keySnapshotDir       = "snapshot_dir"
	keyRequestsPerSecond = "requests_per_second"
	keyDebounceDelay     = "debounce_delay"
	keySearchConcurrency = "search_concurrency"
	keyAnalysisMode      = "analysis_mode"
	keyAnalysisType      = "analysis_type"
	keyCoverageInEditor  = "coverage_in_editor"
	keyDisableEditorTags = "disable_editor_tags"
	keyProjectRoot       = "project_root"
	keyProjectKey        = "project_key"
	keyInsecure          = "insecure"
)

// Load applies, in increasing precedence, the config file and SONAR_LS_* environment variables.
// Variables in a ".env" file of the working directory are added to the environment unless they
// are already set. Without configFile, "sonar-ls.{yaml,json,toml}" is looked up in the XDG config
// directory and the working directory; a missing file is not an error.
func (c *Config) Load(configFile string) error {
	c.loadEnvFile(".env")

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(configBaseName)
		v.AddConfigPath(filepath.Join(xdg.ConfigHome, configBaseName))
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return errors.Wrap(err, "could not read configuration")
		}
	} else {
		c.Logger().Debug().Str("method", "Load").Str("file", v.ConfigFileUsed()).Msg("configuration file loaded")
	}

	c.apply(v)
	return nil
}

func (c *Config) apply(v *viper.Viper) {
	setString := func(key string, setter func(string)) {
		if v.IsSet(key) {
			setter(v.GetString(key))
		}
	}
	setBool := func(key string, setter func(bool)) {
		if v.IsSet(key) {
			setter(v.GetBool(key))
		}
	}

	setString(keyServerURL, c.SetServerURL)
	setString(keyToken, c.SetToken)
	setString(keyLogPath, c.SetLogPath)
	setBool(keyErrorReporting, c.SetErrorReportingEnabled)
	setString(keySentryDSN, c.SetSentryDSN)
	setString(keySettingsFile, c.SetSettingsFile)
	setString(keySnapshotDir, c.SetSnapshotDir)
	setString(keyAnalysisMode, c.SetAnalysisMode)
	setString(keyAnalysisType, c.SetAnalysisType)
	setBool(keyCoverageInEditor, c.SetCoverageInEditorEnabled)
	setBool(keyDisableEditorTags, c.SetEditorTagsDisabled)
	setString(keyProjectRoot, c.SetProjectRoot)
	setString(keyProjectKey, c.SetProjectKey)
	setBool(keyInsecure, c.SetInsecure)
	if v.IsSet(keyRequestsPerSecond) {
		c.SetRequestsPerSecond(v.GetFloat64(keyRequestsPerSecond))
	}
	if v.IsSet(keyDebounceDelay) {
		c.SetDebounceDelay(v.GetDuration(keyDebounceDelay))
	}
	if v.IsSet(keySearchConcurrency) {
		c.SetSearchConcurrency(v.GetInt(keySearchConcurrency))
	}
}

func (c *Config) loadEnvFile(fileName string) {
	file, err := os.Open(fileName)
	if err != nil {
		c.Logger().Debug().Str("method", "loadEnvFile").Msg("Couldn't load " + fileName)
		return
	}
	defer file.Close()
	env := gotenv.Parse(file)
	for k, v := range env {
		if _, exists := os.LookupEnv(k); exists {
			continue
		}
		if err = os.Setenv(k, v); err != nil {
			c.Logger().Warn().Str("method", "loadEnvFile").Msg("Couldn't set environment variable " + k)
		}
	}
	c.Logger().Debug().Str("method", "loadEnvFile").Str("fileName", fileName).Msg("loaded.")
}
