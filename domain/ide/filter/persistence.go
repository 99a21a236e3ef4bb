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

package filter

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/snyk/sonar-ls/domain/sonar"
	"github.com/snyk/sonar-ls/internal/storage"
)

const (
	SettingsSection = "IssueFilter"

	keySaved         = "Saved"
	keySeverities    = "Severities"
	keyStatuses      = "Statuses"
	keyResolutions   = "Resolutions"
	keyAssignee      = "Assignee"
	keyReporter      = "Reporter"
	keyCreatedBefore = "CreatedBefore"
	keyCreatedAfter  = "CreatedAfter"
)

// Load reads the persisted configuration, or returns DefaultConfiguration if none was saved.
func Load(store storage.Store) Configuration {
	if store.Read(SettingsSection, keySaved) != "true" {
		return DefaultConfiguration()
	}
	return Configuration{
		Severities:    splitValues(store.Read(SettingsSection, keySeverities)),
		Statuses:      splitValues(store.Read(SettingsSection, keyStatuses)),
		Resolutions:   splitValues(store.Read(SettingsSection, keyResolutions)),
		Assignee:      store.Read(SettingsSection, keyAssignee),
		Reporter:      store.Read(SettingsSection, keyReporter),
		CreatedBefore: parseDate(store.Read(SettingsSection, keyCreatedBefore)),
		CreatedAfter:  parseDate(store.Read(SettingsSection, keyCreatedAfter)),
	}
}

func Save(store storage.Store, cfg Configuration) error {
	values := []struct{ key, value string }{
		{keySeverities, JoinValues(cfg.Severities.Ordered(sonar.Severities))},
		{keyStatuses, JoinValues(cfg.Statuses.Ordered(sonar.Statuses))},
		{keyResolutions, JoinValues(cfg.Resolutions.Ordered(sonar.Resolutions))},
		{keyAssignee, cfg.Assignee},
		{keyReporter, cfg.Reporter},
		{keyCreatedBefore, formatDate(cfg.CreatedBefore)},
		{keyCreatedAfter, formatDate(cfg.CreatedAfter)},
		{keySaved, "true"},
	}
	for _, v := range values {
		if err := store.Write(SettingsSection, v.key, v.value); err != nil {
			return errors.Wrapf(err, "could not save filter setting %s", v.key)
		}
	}
	return nil
}

func splitValues(s string) ValueSet {
	set := ValueSet{}
	for _, v := range strings.Split(s, ",") {
		if v = strings.TrimSpace(v); v != "" {
			set[v] = true
		}
	}
	return set
}
