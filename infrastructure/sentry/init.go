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

package sentry

import (
	"sync"

	"github.com/getsentry/sentry-go"

	"github.com/snyk/sonar-ls/application/config"
)

var initOnce sync.Once
var initialized bool

// initializeSentry sets up the sentry client once per process. Without a DSN nothing is sent.
func initializeSentry(c *config.Config) bool {
	initOnce.Do(func() {
		dsn := c.SentryDSN()
		if dsn == "" {
			c.Logger().Debug().Str("method", "initializeSentry").Msg("no sentry dsn configured, error reporting stays local")
			return
		}
		err := sentry.Init(sentry.ClientOptions{
			Dsn:              dsn,
			Environment:      sentryEnvironment(),
			Release:          config.Version,
			Debug:            config.IsDevelopment(),
			BeforeSend:       beforeSend(c),
			AttachStacktrace: true,
		})
		if err != nil {
			c.Logger().Error().Str("method", "initializeSentry").Msg(err.Error())
			return
		}
		initialized = true
		c.Logger().Info().Msg("Error reporting initialized")
	})
	return initialized
}

func beforeSend(c *config.Config) func(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
	return func(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
		if c.IsErrorReportingEnabled() {
			return event
		}
		return nil
	}
}

func sentryEnvironment() string {
	if config.IsDevelopment() {
		return "development"
	}
	return "production"
}
