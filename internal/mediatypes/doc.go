// Package mediatypes classifies files by extension.
//
// It is used to restrict walks to images (the --images flag and the images
// query parameter of the API) and to report MIME types for API entries.
//
//	if mediatypes.IsImage(name) {
//	    // File is a supported image
//	}
package mediatypes
