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

package uri

import (
	"net/url"
	"path/filepath"
	"strings"

	sglsp "github.com/sourcegraph/go-lsp"
	lspuri "go.lsp.dev/uri"
)

const fileScheme = "file://"

// PathFromUri accepts "file://" URIs, the "file:/path" form some clients send, and bare paths.
func PathFromUri(documentURI sglsp.DocumentURI) string {
	s := string(documentURI)
	if !strings.HasPrefix(s, fileScheme) {
		s = fileScheme + strings.TrimPrefix(strings.TrimPrefix(s, "file:"), "//")
	}
	if _, err := url.ParseRequestURI(s); err != nil {
		return filepath.Clean(strings.TrimPrefix(s, fileScheme))
	}
	return filepath.Clean(lspuri.URI(s).Filename())
}

func PathToUri(path string) sglsp.DocumentURI {
	return sglsp.DocumentURI(lspuri.File(path))
}

// FolderContains reports whether path lies inside folderPath.
func FolderContains(folderPath string, path string) bool {
	rel, err := filepath.Rel(folderPath, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
