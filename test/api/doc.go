/*
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package api provides acceptance test utilities for the PetFriends API.
//
// # Client
//
// APIClient exposes one method per remote endpoint. Every method issues a
// single request and hands back a Response carrying the status code and the
// body, which is either a decoded JSON object or raw text (the service
// answers authentication failures with an HTML page). Nothing is retried and
// no status is treated as an error: asserting on the outcome is left to the
// caller.
//
// The only local guard is the auth key. Authenticated calls made with an
// empty key fail with ErrMissingAuthKey before any request is built.
//
// # Hermetic runs
//
// When API_BASE_URL is not set the suites start the stand-in server from
// package stub and point the client at it, so the scenarios can be run
// without network access or real credentials.
//
// # Tracing
//
// Each request carries W3C trace context headers, and the trace ID is logged
// with every failure so a request can be found in the service logs.
package api
