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

package di

import (
	"testing"

	"github.com/snyk/sonar-ls/application/config"
	"github.com/snyk/sonar-ls/domain/ide/host"
	"github.com/snyk/sonar-ls/domain/ide/session"
	er "github.com/snyk/sonar-ls/domain/observability/error_reporting"
	"github.com/snyk/sonar-ls/domain/sonar"
	"github.com/snyk/sonar-ls/infrastructure/resourcecache"
	"github.com/snyk/sonar-ls/infrastructure/sonar_api"
	"github.com/snyk/sonar-ls/internal/notification"
	"github.com/snyk/sonar-ls/internal/storage"
)

// TestInit wires the container with in-memory settings and the given fetch service. A nil fetch
// service is replaced by an empty fake.
func TestInit(t *testing.T, c *config.Config, fetch sonar.FetchService) {
	t.Helper()
	initMutex.Lock()
	defer initMutex.Unlock()

	if fetch == nil {
		fetch = sonar_api.NewFakeFetchService()
	}
	currentConfig = c
	notifier = notification.NewNotifier()
	errorReporter = er.NewTestErrorReporter(c.Logger())
	fetchService = fetch
	resourceCache = resourcecache.New(c.Logger())
	settings = storage.NewInMemory()
	documents = host.NewDocuments()
	snapshots = nil

	var opts []session.Option
	if root := c.ProjectRoot(); root != "" {
		opts = append(opts, session.WithAnalysisPlugin(host.NewPathPlugin(root)))
	}
	sonarSession = session.New(c, fetchService, resourceCache, settings, notifier, errorReporter, documents, opts...)

	t.Cleanup(func() {
		notifier.DisposeListener()
	})
}
