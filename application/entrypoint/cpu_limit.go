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

package entrypoint

import (
	"os"
	"runtime"

	"github.com/rs/zerolog"
)

// desiredMaxProcs leaves half of the machine to the editor the server runs next to.
func desiredMaxProcs(numCPU int) int {
	desired := numCPU / 2
	if desired < 1 {
		return 1
	}
	return desired
}

// ApplyDefaultCPUCap lowers GOMAXPROCS unless the environment sets it explicitly.
func ApplyDefaultCPUCap(logger *zerolog.Logger) {
	if logger == nil {
		return
	}
	if _, set := os.LookupEnv("GOMAXPROCS"); set {
		logger.Debug().Msg("GOMAXPROCS set by the environment, keeping it")
		return
	}

	desired := desiredMaxProcs(runtime.NumCPU())
	previous := runtime.GOMAXPROCS(desired)
	logger.Info().Int("previous", previous).Int("current", desired).Msg("Applied default GOMAXPROCS CPU cap")
}
