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

package session

import (
	"github.com/snyk/sonar-ls/internal/notification"
)

// ColumnsSection holds the visibility of the issue grid columns, one "<Column>Visible" key each.
const ColumnsSection = "DataGridOptions"

type ColumnMenuItem struct {
	Column  string `json:"column"`
	Text    string `json:"text"`
	Visible bool   `json:"visible"`
}

// IsColumnVisible is false unless the column was shown explicitly.
func (s *Session) IsColumnVisible(column string) bool {
	return s.store.Read(ColumnsSection, column+"Visible") == "true"
}

func (s *Session) SetColumnVisible(column string, visible bool) error {
	value := "false"
	if visible {
		value = "true"
	}
	if err := s.store.Write(ColumnsSection, column+"Visible", value); err != nil {
		return err
	}
	s.notify(notification.IssuesChanged)
	return nil
}

// ToggleColumn flips the visibility of column and returns the new state.
func (s *Session) ToggleColumn(column string) (bool, error) {
	visible := !s.IsColumnVisible(column)
	return visible, s.SetColumnVisible(column, visible)
}

// ColumnMenu lists the show/hide entries for columns, in the given order.
func (s *Session) ColumnMenu(columns []string) []ColumnMenuItem {
	items := make([]ColumnMenuItem, 0, len(columns))
	for _, column := range columns {
		visible := s.IsColumnVisible(column)
		text := "Show " + column
		if visible {
			text = "Hide " + column
		}
		items = append(items, ColumnMenuItem{Column: column, Text: text, Visible: visible})
	}
	return items
}
