// Package audio handles the local audio file format concerns: ID3
// tagging of downloaded MP3s and optional M3U playlist generation per
// release.
package audio
