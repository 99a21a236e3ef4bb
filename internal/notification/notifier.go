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

package notification

import (
	sglsp "github.com/sourcegraph/go-lsp"
)

// Event names a change of derived state. Listeners re-read the state they care about.
type Event string

const (
	IssuesChanged   Event = "issuesChanged"
	WorkflowChanged Event = "workflowChanged"
	CoverageChanged Event = "coverageChanged"
)

// Notifier carries messages for the client and change events for in-process listeners.
type Notifier interface {
	SendShowMessage(messageType sglsp.MessageType, message string)
	Send(msg any)
	SendError(err error)
	Receive() (payload any, stop bool)
	CreateListener(callback func(params any))
	DisposeListener()
	Notify(event Event)
	Subscribe(listener func(event Event)) (unsubscribe func())
}
