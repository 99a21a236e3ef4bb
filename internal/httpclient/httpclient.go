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

package httpclient

import (
	"crypto/tls"
	"net/http"
	"strings"
	"time"

	"github.com/snyk/sonar-ls/application/config"
)

const DefaultTimeout = 30 * time.Second

// NewHTTPClient returns a client for the configured server that honours the proxy environment.
func NewHTTPClient(c *config.Config) *http.Client {
	logger := c.Logger().With().Str("method", "NewHTTPClient").Logger()
	tr := http.DefaultTransport.(*http.Transport).Clone()
	if c.IsInsecure() {
		tr.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // explicitly configured
		logger.Info().Msg("Creating insecure http client")
	}
	client := &http.Client{Transport: tr, Timeout: DefaultTimeout}

	req, err := http.NewRequest(http.MethodGet, c.ServerURL(), nil)
	if err != nil {
		logger.Err(err).Send()
		return client
	}
	proxy, err := tr.Proxy(req)
	if err != nil {
		logger.Err(err).Send()
	}
	if proxy != nil {
		logger.Info().Str("proxy", redact(proxy.String())).Msg("created http client with proxy support")
	}
	return client
}

// redact hides the user info of a proxy URL.
func redact(proxyURL string) string {
	parts := strings.Split(proxyURL, "@")
	if len(parts) > 1 {
		return "xxx@" + parts[len(parts)-1]
	}
	return parts[0]
}
