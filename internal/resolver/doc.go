// Package resolver maps a provider's catalog releases onto the local
// folder taxonomy: one folder per artist, one subfolder per release.
//
// # Resolution
//
// ResolveArtistReleases produces one ResolvedRelease per catalog entry,
// carrying the sanitized folder path, the Album/EP/Single classification
// and whether the folder already exists locally:
//
//	res := resolver.New("/music", "Various Artists")
//	resolved := res.ResolveArtistReleases("Artist", 123, releases, nil)
//	for _, rel := range resolved {
//	    if !rel.Exists {
//	        fmt.Println("new:", rel.FolderPath)
//	    }
//	}
//
// # Existence checks
//
// Existence is answered by an ExistenceOracle. With a cached folder
// listing (from the sync state store) the snapshot oracle answers from
// memory; without one, the live oracle stats each folder. Both yield the
// same answers for a folder set consistent with the filesystem.
package resolver
