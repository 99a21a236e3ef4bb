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
	"fmt"
	"sync"

	sglsp "github.com/sourcegraph/go-lsp"
)

type MockNotifier struct {
	mutex                  sync.Mutex
	sendShowMessageCounter int
	sendCounter            int
	sendErrorCounter       int
	sentMessages           []any
	events                 []Event
	listeners              map[int]func(Event)
	nextListener           int
}

func NewMockNotifier() *MockNotifier { return &MockNotifier{listeners: map[int]func(Event){}} }

func (m *MockNotifier) SendShowMessage(messageType sglsp.MessageType, message string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.sendShowMessageCounter++
	m.sentMessages = append(m.sentMessages, sglsp.ShowMessageParams{Type: messageType, Message: message})
}

func (m *MockNotifier) Send(msg any) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.sendCounter++
	m.sentMessages = append(m.sentMessages, msg)
}

func (m *MockNotifier) SendError(err error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.sendErrorCounter++
	m.sentMessages = append(m.sentMessages, sglsp.ShowMessageParams{
		Type:    sglsp.MTError,
		Message: fmt.Sprintf("Sonar encountered an error: %v", err),
	})
}

func (m *MockNotifier) Receive() (payload any, stop bool) { return nil, true }

func (m *MockNotifier) CreateListener(_ func(params any)) {}

func (m *MockNotifier) DisposeListener() {}

func (m *MockNotifier) Notify(event Event) {
	m.mutex.Lock()
	m.events = append(m.events, event)
	listeners := make([]func(Event), 0, len(m.listeners))
	for _, l := range m.listeners {
		listeners = append(listeners, l)
	}
	m.mutex.Unlock()
	for _, l := range listeners {
		l(event)
	}
}

func (m *MockNotifier) Subscribe(listener func(event Event)) func() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	id := m.nextListener
	m.nextListener++
	m.listeners[id] = listener
	return func() {
		m.mutex.Lock()
		defer m.mutex.Unlock()
		delete(m.listeners, id)
	}
}

func (m *MockNotifier) SendShowMessageCount() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.sendShowMessageCounter
}

func (m *MockNotifier) SendCount() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.sendCounter
}

func (m *MockNotifier) SendErrorCount() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.sendErrorCounter
}

func (m *MockNotifier) SentMessages() []any {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return append([]any(nil), m.sentMessages...)
}

func (m *MockNotifier) Events() []Event {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return append([]Event(nil), m.events...)
}

// CountOf returns how often event was notified.
func (m *MockNotifier) CountOf(event Event) int {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	count := 0
	for _, e := range m.events {
		if e == event {
			count++
		}
	}
	return count
}
