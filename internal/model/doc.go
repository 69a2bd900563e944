// Package model defines the core data structures shared across yhdl:
// catalog releases and tracks, release-type classification, and artist
// references.
//
// # Release classification
//
// ClassifyReleaseType maps a release onto Album/EP/Single from its track
// count, with the provider-reported record type consulted only for
// singles:
//
//	model.ClassifyReleaseType(10, "album") // ReleaseTypeAlbum
//	model.ClassifyReleaseType(4, "album")  // ReleaseTypeEP
//	model.ClassifyReleaseType(5, "single") // ReleaseTypeSingle
//
// # Name normalization
//
// NormalizeName produces the comparison key used by the ignore list and
// artist matching, so "Beyoncé" and "beyonce" refer to the same artist:
//
//	model.NormalizeName("Beyoncé") // "beyonce"
package model
