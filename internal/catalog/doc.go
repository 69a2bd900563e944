// Package catalog talks to the streaming provider: artist search,
// discographies, track lists and audio streams.
//
// The Client interface is the exact surface the sync engine depends on;
// Gateway is the HTTP implementation against the provider's JSON
// gateway. Fakes implementing Client back the orchestrator tests.
//
// ResolveArtistID holds the name-to-ID policy in one place: prefer an
// exact normalized-name match, otherwise take the first search result.
package catalog
