// Package query builds Solr search queries for the Brown Digital Repository
// (BDR) search API.
package query

import (
	"fmt"
	"strings"
)

// Collection identifies a collection within the BDR.
type Collection string

const (
	// LovecraftCollection is the Howard P. Lovecraft collection.
	LovecraftCollection Collection = "bdr:jyhg75bu"
)

// Solr fields used in predicates.
const (
	FieldCollection  = "rel_is_member_of_collection_ssim"
	FieldGenre       = "genre_local"
	FieldCreator     = "mods_role_creator_ssim"
	FieldRights      = "mods_access_condition_rights_text_tsim"
	FieldRestriction = "mods_access_condition_restriction_text_tsim"
)

// Fixed predicate values.
const (
	// Creator is the creator name as it appears in BDR MODS records.
	Creator     = "Lovecraft, H.P. (Howard Phillips)"
	Rights      = "No Copyright - United States."
	Restriction = "Collection is open for research."
)

// Separator joins predicates.
const Separator = " AND "

var genres = []string{
	"autograph letter",
	"autograph letter signed",
	"autograph note signed",
	"typed letter",
	"typed letter signed",
}

// Genres returns the genre terms to collect, in processing order.
func Genres() []string {
	out := make([]string, len(genres))
	copy(out, genres)
	return out
}

// Predicate renders a single field:"value" predicate.
// Quotes inside value are not escaped.
func Predicate(field, value string) string {
	return fmt.Sprintf(`%s:"%s"`, field, value)
}

// Build returns the search query for a collection and genre term.
func Build(collection Collection, genre string) string {
	parts := []string{
		Predicate(FieldCollection, string(collection)),
		Predicate(FieldGenre, genre),
		Predicate(FieldCreator, Creator),
		Predicate(FieldRights, Rights),
		Predicate(FieldRestriction, Restriction),
	}
	return strings.Join(parts, Separator)
}
