// Package mutation applies rating, tag and comment changes to a list of
// files.
//
// Each file is loaded through the store, changed in memory and committed
// once. Fields whose new value equals the stored one are left alone, so
// re-running the same change performs no writes at all.
package mutation
