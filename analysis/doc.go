// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package analysis provides the rate-limited, memoized access layer to the
// remote text-analysis service, plus a concurrent fan-out over page
// sections.
//
// # Rate limiting
//
// Sentiment and entity calls are limited independently to 10 calls per
// second each. Concurrent callers serialize on the limiter: a call that
// would exceed the quota blocks until it is eligible rather than erroring.
//
// # Memoization
//
// Single-item results are cached by exact text content for the lifetime of
// the service, so identical text submitted twice never re-invokes the
// remote service. The cache is checked before the rate limiter; repeated
// lookups of cached text are free. Clear() resets the cache for tests.
//
// # Degradation
//
// Remote failures never surface as errors. A failed sentiment analysis
// yields a nil *core.Sentiment, a failed entity analysis an empty entity
// list, and the failure is logged. The fan-out gathers every per-section
// result (success or failure) before returning, preserving input order.
package analysis
