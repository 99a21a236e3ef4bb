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
	"net/http"
	"sync"

	"github.com/snyk/sonar-ls/application/config"
	"github.com/snyk/sonar-ls/domain/ide/host"
	"github.com/snyk/sonar-ls/domain/ide/session"
	er "github.com/snyk/sonar-ls/domain/observability/error_reporting"
	"github.com/snyk/sonar-ls/domain/sonar"
	"github.com/snyk/sonar-ls/infrastructure/resourcecache"
	"github.com/snyk/sonar-ls/infrastructure/sentry"
	"github.com/snyk/sonar-ls/infrastructure/sonar_api"
	"github.com/snyk/sonar-ls/internal/httpclient"
	"github.com/snyk/sonar-ls/internal/notification"
	"github.com/snyk/sonar-ls/internal/snapshot"
	"github.com/snyk/sonar-ls/internal/storage"
)

var currentConfig *config.Config
var notifier notification.Notifier
var errorReporter er.ErrorReporter
var fetchService sonar.FetchService
var resourceCache *resourcecache.ResourceCache
var settings storage.Store
var documents *host.Documents
var snapshots *snapshot.Store
var sonarSession *session.Session

var initMutex = &sync.Mutex{}

func Init(c *config.Config) {
	initMutex.Lock()
	defer initMutex.Unlock()
	currentConfig = c
	initInfrastructure(c)
	initDomain(c)
}

func initInfrastructure(c *config.Config) {
	notifier = notification.NewNotifier()
	errorReporter = sentry.NewSentryErrorReporter(c, notifier)
	httpClient := httpclient.NewHTTPClient(c)
	fetchService = sonar_api.NewSonarApiClient(c, func() *http.Client { return httpClient })
	resourceCache = resourcecache.New(c.Logger())
	settings = initSettings(c)
	documents = host.NewDocuments()
	snapshots = initSnapshots(c)
}

func initSettings(c *config.Config) storage.Store {
	logger := c.Logger().With().Str("method", "initSettings").Logger()
	var s storage.StoreWithCallbacks
	var err error
	if file := c.SettingsFile(); file != "" {
		s, err = storage.NewStorageWithCallbacks(storage.WithLogger(c.Logger()), storage.WithStorageFile(file))
	} else {
		s, err = storage.NewStorageWithCallbacks(storage.WithLogger(c.Logger()))
	}
	if err != nil {
		logger.Err(err).Msg("settings will not be persisted")
		errorReporter.CaptureError(err)
		return storage.NewInMemory()
	}
	return s
}

func initSnapshots(c *config.Config) *snapshot.Store {
	dir := c.SnapshotDir()
	if dir == "" {
		return nil
	}
	s, err := snapshot.Open(dir)
	if err != nil {
		c.Logger().Err(err).Str("method", "initSnapshots").Str("dir", dir).Msg("snapshots disabled")
		return nil
	}
	return s
}

func initDomain(c *config.Config) {
	logger := c.Logger().With().Str("component", "resourcecache").Logger()
	resourceCache.RegisterRemovalHandler(func(resourceKey string) {
		logger.Trace().Str("resourceKey", resourceKey).Msg("evicted")
	})

	var opts []session.Option
	if snapshots != nil {
		opts = append(opts, session.WithSnapshots(snapshots))
	}
	if root := c.ProjectRoot(); root != "" {
		opts = append(opts, session.WithAnalysisPlugin(host.NewPathPlugin(root)))
	}
	sonarSession = session.New(c, fetchService, resourceCache, settings, notifier, errorReporter, documents, opts...)
}

/*
TODO Accessors: This should go away, since all dependencies should be satisfied at startup-time, if needed for testing
they can be returned by the test helper for unit/integration tests
*/

func Config() *config.Config {
	initMutex.Lock()
	defer initMutex.Unlock()
	return currentConfig
}

func Notifier() notification.Notifier {
	initMutex.Lock()
	defer initMutex.Unlock()
	return notifier
}

func ErrorReporter() er.ErrorReporter {
	initMutex.Lock()
	defer initMutex.Unlock()
	return errorReporter
}

func FetchService() sonar.FetchService {
	initMutex.Lock()
	defer initMutex.Unlock()
	return fetchService
}

func ResourceCache() *resourcecache.ResourceCache {
	initMutex.Lock()
	defer initMutex.Unlock()
	return resourceCache
}

func Settings() storage.Store {
	initMutex.Lock()
	defer initMutex.Unlock()
	return settings
}

func Documents() *host.Documents {
	initMutex.Lock()
	defer initMutex.Unlock()
	return documents
}

func Session() *session.Session {
	initMutex.Lock()
	defer initMutex.Unlock()
	return sonarSession
}
