// Package attrs decodes the per-file attribute record.
//
// A record is a small string map keyed by KeyRating, KeyTags and
// KeyComment. An absent key means the attribute is unset. Decoding is
// lenient: ratings that do not parse as integers read as 0 because the
// stores may be edited by hand or by unrelated tools.
package attrs
