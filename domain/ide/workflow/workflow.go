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

// Package workflow decides which issue actions are offered for a selection of issues.
package workflow

import (
	"github.com/snyk/sonar-ls/domain/sonar"
)

type Affordance string

const (
	Confirm        Affordance = "confirm"
	Unconfirm      Affordance = "unconfirm"
	Resolve        Affordance = "resolve"
	Reopen         Affordance = "reopen"
	FalsePositive  Affordance = "falsePositive"
	Assign         Affordance = "assign"
	Comment        Affordance = "comment"
	OpenExternally Affordance = "openExternally"
)

// Affordances lists every affordance, workflow ones first.
var Affordances = []Affordance{Confirm, Unconfirm, Resolve, Reopen, FalsePositive, Assign, Comment, OpenExternally}

var transitions = map[Affordance]sonar.Transition{
	Confirm:       sonar.TransitionConfirm,
	Unconfirm:     sonar.TransitionUnconfirm,
	Resolve:       sonar.TransitionResolve,
	Reopen:        sonar.TransitionReopen,
	FalsePositive: sonar.TransitionFalsePositive,
}

// Visibility is derived from a selection and never stored.
type Visibility struct {
	Confirm        bool `json:"confirm"`
	Unconfirm      bool `json:"unconfirm"`
	Resolve        bool `json:"resolve"`
	Reopen         bool `json:"reopen"`
	FalsePositive  bool `json:"falsePositive"`
	Assign         bool `json:"assign"`
	Comment        bool `json:"comment"`
	OpenExternally bool `json:"openExternally"`
	// ExtraTextSpace and ExtraCommentWidth make room for the user input next to workflow actions.
	ExtraTextSpace    bool `json:"extraTextSpace"`
	ExtraCommentWidth bool `json:"extraCommentWidth"`
}

// Hidden is the initial state and the state of an empty or ambiguous selection.
var Hidden = Visibility{}

// Compute folds the selection into the union of the workflow actions each issue allows on a
// server of the given version. A selected issue without status makes the selection ambiguous.
// Comment and OpenExternally are never set; see ForSelection.
func Compute(selection []sonar.Issue, version sonar.Version) Visibility {
	if ambiguous(selection) {
		return Hidden
	}

	var v Visibility
	modern := version.AtLeast(sonar.WorkflowVersion)
	for _, issue := range selection {
		if modern {
			v = v.union(modernWorkflow(issue.Status))
		} else {
			v = v.union(legacyWorkflow(issue.Status))
		}
	}

	if len(v.Workflow()) > 0 {
		v.ExtraTextSpace = true
		v.ExtraCommentWidth = true
	}
	return v
}

// ForSelection is Compute plus the actions any unambiguous selection offers: commenting and
// opening the issues on the server.
func ForSelection(selection []sonar.Issue, version sonar.Version) Visibility {
	if ambiguous(selection) {
		return Hidden
	}
	v := Compute(selection, version)
	v.Comment = true
	v.OpenExternally = true
	return v
}

func ambiguous(selection []sonar.Issue) bool {
	if len(selection) == 0 {
		return true
	}
	for _, issue := range selection {
		if issue.Status == "" {
			return true
		}
	}
	return false
}

func legacyWorkflow(status string) Visibility {
	switch status {
	case sonar.StatusOpen, sonar.StatusReopened:
		return Visibility{Resolve: true, FalsePositive: true}
	case sonar.StatusResolved:
		return Visibility{Reopen: true}
	}
	return Visibility{}
}

func modernWorkflow(status string) Visibility {
	switch status {
	case sonar.StatusConfirmed:
		return Visibility{Unconfirm: true, Resolve: true, FalsePositive: true, Assign: true}
	case sonar.StatusOpen, sonar.StatusReopened:
		return Visibility{Confirm: true, Assign: true, Resolve: true}
	case sonar.StatusResolved:
		return Visibility{Reopen: true}
	}
	return Visibility{}
}

func (v Visibility) union(o Visibility) Visibility {
	v.Confirm = v.Confirm || o.Confirm
	v.Unconfirm = v.Unconfirm || o.Unconfirm
	v.Resolve = v.Resolve || o.Resolve
	v.Reopen = v.Reopen || o.Reopen
	v.FalsePositive = v.FalsePositive || o.FalsePositive
	v.Assign = v.Assign || o.Assign
	v.Comment = v.Comment || o.Comment
	v.OpenExternally = v.OpenExternally || o.OpenExternally
	return v
}

func (v Visibility) Visible(a Affordance) bool {
	switch a {
	case Confirm:
		return v.Confirm
	case Unconfirm:
		return v.Unconfirm
	case Resolve:
		return v.Resolve
	case Reopen:
		return v.Reopen
	case FalsePositive:
		return v.FalsePositive
	case Assign:
		return v.Assign
	case Comment:
		return v.Comment
	case OpenExternally:
		return v.OpenExternally
	}
	return false
}

// Workflow returns the visible state changing affordances, excluding comment and open externally.
func (v Visibility) Workflow() []Affordance {
	var visible []Affordance
	for _, a := range Affordances[:6] {
		if v.Visible(a) {
			visible = append(visible, a)
		}
	}
	return visible
}

// TransitionOf returns the server transition behind an affordance.
func TransitionOf(a Affordance) (sonar.Transition, bool) {
	t, ok := transitions[a]
	return t, ok
}

// Allowed reports whether the server transition may be executed for the selection v was computed
// for.
func Allowed(v Visibility, transition sonar.Transition) bool {
	for a, t := range transitions {
		if t == transition {
			return v.Visible(a)
		}
	}
	return false
}
