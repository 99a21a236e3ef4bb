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
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/snyk/sonar-ls/application/config"
	"github.com/snyk/sonar-ls/domain/observability/error_reporting"
	"github.com/snyk/sonar-ls/internal/notification"
)

// A Sentry implementation of our error reporter that respects user preferences regarding tracking
type gdprAwareSentryErrorReporter struct {
	c        *config.Config
	notifier notification.Notifier
	enabled  bool
}

func NewSentryErrorReporter(c *config.Config, notifier notification.Notifier) error_reporting.ErrorReporter {
	return &gdprAwareSentryErrorReporter{
		c:        c,
		notifier: notifier,
		enabled:  initializeSentry(c),
	}
}

func (s *gdprAwareSentryErrorReporter) FlushErrorReporting() {
	if s.enabled {
		sentry.Flush(2 * time.Second)
	}
}

func (s *gdprAwareSentryErrorReporter) CaptureError(err error) bool {
	s.notifier.SendError(err)
	if !s.c.IsErrorReportingEnabled() {
		return false
	}
	if s.enabled {
		eventId := sentry.CaptureException(err)
		s.c.Logger().Info().Err(err).Str("method", "CaptureError").Msgf("Sent error to Sentry (ID: %v)", eventId)
	}
	return true
}
