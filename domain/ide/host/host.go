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

// Package host models the editor the server runs for: its open documents and the analysis plugin
// that maps files to server resources.
package host

import (
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/puzpuzpuz/xsync/v3"
)

// EditorHost exposes the documents of the editor.
type EditorHost interface {
	// Buffer returns the live text of an open document.
	Buffer(path string) (string, bool)
}

// AnalysisPlugin maps editor files to server resource keys. Local analyses it runs belong to the
// host; their completion is reported back separately.
type AnalysisPlugin interface {
	ResourceKey(path string, projectKey string) (string, error)
}

// Documents keeps the text of open documents.
type Documents struct {
	buffers *xsync.MapOf[string, string]
}

func NewDocuments() *Documents {
	return &Documents{buffers: xsync.NewMapOf[string, string]()}
}

func (d *Documents) Open(path, text string) {
	d.buffers.Store(filepath.Clean(path), text)
}

func (d *Documents) Change(path, text string) {
	d.buffers.Store(filepath.Clean(path), text)
}

func (d *Documents) Close(path string) {
	d.buffers.Delete(filepath.Clean(path))
}

func (d *Documents) Buffer(path string) (string, bool) {
	return d.buffers.Load(filepath.Clean(path))
}

// PathPlugin derives resource keys from the file path relative to a project root, the way
// sonar-runner keys files: "<projectKey>:<relative/path>".
type PathPlugin struct {
	root string
}

func NewPathPlugin(root string) *PathPlugin {
	return &PathPlugin{root: filepath.Clean(root)}
}

func (p *PathPlugin) Root() string { return p.root }

func (p *PathPlugin) ResourceKey(path string, projectKey string) (string, error) {
	if projectKey == "" {
		return "", errors.New("no project key")
	}
	rel, err := filepath.Rel(p.root, filepath.Clean(path))
	if err != nil {
		return "", errors.Wrapf(err, "%s is not below %s", path, p.root)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", errors.Errorf("%s is not below %s", path, p.root)
	}
	return projectKey + ":" + filepath.ToSlash(rel), nil
}
