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

package debounce

import (
	"sync"
	"time"
)

// Debouncer collects keys and hands them to the callback once no new key arrived for the timeout.
// Each key is delivered once per burst, in first-seen order. A zero timeout delivers immediately.
type Debouncer[K comparable] struct {
	mutex    sync.Mutex
	timeout  time.Duration
	timer    *time.Timer
	pending  []K
	seen     map[K]bool
	callback func(keys []K)
}

func NewDebouncer[K comparable](timeout time.Duration, callback func(keys []K)) *Debouncer[K] {
	return &Debouncer[K]{
		timeout:  timeout,
		callback: callback,
		seen:     map[K]bool{},
	}
}

func (d *Debouncer[K]) Debounce(key K) {
	if d.timeout <= 0 {
		d.callback([]K{key})
		return
	}

	d.mutex.Lock()
	defer d.mutex.Unlock()
	if !d.seen[key] {
		d.seen[key] = true
		d.pending = append(d.pending, key)
	}
	if d.timer == nil {
		d.timer = time.AfterFunc(d.timeout, d.Flush)
		return
	}
	d.timer.Stop()
	d.timer.Reset(d.timeout)
}

// Flush delivers pending keys now.
func (d *Debouncer[K]) Flush() {
	d.mutex.Lock()
	keys := d.pending
	d.pending = nil
	d.seen = map[K]bool{}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.mutex.Unlock()

	if len(keys) > 0 {
		d.callback(keys)
	}
}
