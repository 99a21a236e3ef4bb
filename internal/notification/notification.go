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
	"sync/atomic"

	"github.com/puzpuzpuz/xsync/v3"
	sglsp "github.com/sourcegraph/go-lsp"
)

var _ Notifier = (*notifierImpl)(nil)

type notifierImpl struct {
	channel     chan any
	stopChannel chan bool
	listeners   *xsync.MapOf[uint64, func(Event)]
	nextID      atomic.Uint64
}

func NewNotifier() Notifier {
	return &notifierImpl{
		channel:     make(chan any, 100),
		stopChannel: make(chan bool, 1000),
		listeners:   xsync.NewMapOf[uint64, func(Event)](),
	}
}

func (n *notifierImpl) SendShowMessage(messageType sglsp.MessageType, message string) {
	n.channel <- sglsp.ShowMessageParams{Type: messageType, Message: message}
}

func (n *notifierImpl) Send(msg any) {
	n.channel <- msg
}

func (n *notifierImpl) SendError(err error) {
	n.Send(sglsp.ShowMessageParams{
		Type:    sglsp.MTError,
		Message: fmt.Sprintf("Sonar encountered an error: %v", err),
	})
}

func (n *notifierImpl) Receive() (payload any, stop bool) {
	select {
	case payload = <-n.channel:
		return payload, false
	case <-n.stopChannel:
		return payload, true
	}
}

func (n *notifierImpl) CreateListener(callback func(params any)) {
	// drain stop signals of earlier listeners
	for {
		select {
		case <-n.stopChannel:
			continue
		default:
		}
		break
	}
	go func() {
		for {
			payload, stop := n.Receive()
			if stop {
				return
			}
			callback(payload)
		}
	}()
}

func (n *notifierImpl) DisposeListener() {
	n.stopChannel <- true
}

// Notify calls every subscribed listener on the caller's goroutine.
func (n *notifierImpl) Notify(event Event) {
	n.listeners.Range(func(_ uint64, listener func(Event)) bool {
		listener(event)
		return true
	})
}

func (n *notifierImpl) Subscribe(listener func(event Event)) func() {
	id := n.nextID.Add(1)
	n.listeners.Store(id, listener)
	return func() { n.listeners.Delete(id) }
}
